package check_availability

import "errors"

var (
	// ErrStoreNotFound возвращается, когда точка не найдена
	ErrStoreNotFound = errors.New("check_availability: store not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
