package get_available_slots

import "errors"

var (
	// ErrStoreNotFound возвращается, когда точка не найдена
	ErrStoreNotFound = errors.New("get_available_slots: store not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
