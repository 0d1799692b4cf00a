package get_statistics

import "errors"

var (
	// ErrStoreNotFound возвращается, когда точка не найдена
	ErrStoreNotFound = errors.New("get_statistics: store not found")

	// ErrNotStoreOwner возвращается, когда точка принадлежит другому владельцу
	ErrNotStoreOwner = errors.New("get_statistics: store belongs to another owner")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_statistics: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_statistics: internal error")
)
