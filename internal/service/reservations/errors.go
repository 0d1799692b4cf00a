package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAccessDenied возвращается, когда у клиента нет прав доступа к брони
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронь уже в терминальном статусе
	ErrCannotCancel = errors.New("reservation cannot be cancelled")

	// ErrConcurrentUpdate возвращается, когда бронь успела поменять статус
	// между чтением и отменой
	ErrConcurrentUpdate = errors.New("reservation was modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
