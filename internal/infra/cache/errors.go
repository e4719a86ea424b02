package cache

import "errors"

var (
	// ErrConnect возвращается, если Redis недоступен при старте
	ErrConnect = errors.New("cache: failed to connect to redis")

	// ErrGet возвращается при ошибке чтения ключа
	ErrGet = errors.New("cache: failed to get key")

	// ErrSet возвращается при ошибке записи ключа
	ErrSet = errors.New("cache: failed to set key")
)
