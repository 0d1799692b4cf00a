package owner

import "errors"

var (
	// ErrStoreNotFound возвращается, когда точка не найдена
	ErrStoreNotFound = errors.New("store not found")

	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAccessDenied возвращается, когда точка принадлежит другому владельцу
	// или бронь оформлена на другую точку
	ErrAccessDenied = errors.New("access denied")

	// ErrUnknownAction возвращается при неизвестном действии
	ErrUnknownAction = errors.New("unknown action")

	// ErrInvalidTransition возвращается, когда действие недопустимо
	// из текущего статуса брони
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNoShowTooEarly возвращается при попытке отметить неявку
	// до наступления момента брони
	ErrNoShowTooEarly = errors.New("cannot mark no-show before reservation time")

	// ErrConcurrentUpdate возвращается, когда бронь успела поменять статус
	// между чтением и записью
	ErrConcurrentUpdate = errors.New("reservation was modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
