package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных идентификаторах в запросе
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase (БД, кэш)
	ErrInternal = errors.New("get_availability: internal error")
)
