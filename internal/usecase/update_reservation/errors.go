package update_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrNotOwner возвращается, когда бронь принадлежит другому клиенту
	ErrNotOwner = errors.New("update_reservation: reservation belongs to another customer")

	// ErrNotPending возвращается, когда бронь уже не в статусе PENDING
	ErrNotPending = errors.New("update_reservation: reservation is not pending")

	// ErrMenuNotFound возвращается, когда хотя бы одна услуга не найдена,
	// выключена или принадлежит другой точке
	ErrMenuNotFound = errors.New("update_reservation: menu not found")

	// ErrInvalidDate возвращается, когда новая дата в прошлом
	ErrInvalidDate = errors.New("update_reservation: invalid reservation date")

	// ErrStoreClosed возвращается, когда точка не работает в новую дату
	ErrStoreClosed = errors.New("update_reservation: store is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда новое время не попадает в сетку
	// слотов или нарушает буфер до закрытия
	ErrInvalidTimeSlot = errors.New("update_reservation: invalid time slot")

	// ErrPastTime возвращается, когда новый момент брони уже прошел
	ErrPastTime = errors.New("update_reservation: reservation time is in the past")

	// ErrSlotFull возвращается, когда вместимость нового слота исчерпана
	ErrSlotFull = errors.New("update_reservation: slot capacity exceeded")

	// ErrConcurrentUpdate возвращается, когда бронь успела поменять статус
	// между чтением и заменой
	ErrConcurrentUpdate = errors.New("update_reservation: reservation was modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)
