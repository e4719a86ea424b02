package availability

import "errors"

var (
	// ErrInvalidDate возвращается для некорректной или невозможной календарной даты
	ErrInvalidDate = errors.New("availability: invalid date")

	// ErrUnknownRole возвращается для роли вне закрытого списка
	ErrUnknownRole = errors.New("availability: unknown role")

	// ErrInvalidDuration возвращается, если длительность <= 0 или превышает максимум
	ErrInvalidDuration = errors.New("availability: invalid duration")
)
