package create_reservation

import "errors"

var (
	// ErrStoreNotFound возвращается, когда точка не найдена
	ErrStoreNotFound = errors.New("create_reservation: store not found")

	// ErrCarNotFound возвращается, когда автомобиль не найден
	ErrCarNotFound = errors.New("create_reservation: car not found")

	// ErrCarNotOwned возвращается, когда автомобиль принадлежит другому клиенту
	ErrCarNotOwned = errors.New("create_reservation: car does not belong to customer")

	// ErrMenuNotFound возвращается, когда хотя бы одна услуга не найдена,
	// выключена или принадлежит другой точке
	ErrMenuNotFound = errors.New("create_reservation: menu not found")

	// ErrInvalidDate возвращается, когда дата брони в прошлом
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrStoreClosed возвращается, когда точка не работает в указанную дату
	// (выходной день недели или период праздников)
	ErrStoreClosed = errors.New("create_reservation: store is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда время не попадает в сетку слотов
	// или нарушает буфер до закрытия
	ErrInvalidTimeSlot = errors.New("create_reservation: invalid time slot")

	// ErrPastTime возвращается, когда момент брони уже прошел
	ErrPastTime = errors.New("create_reservation: reservation time is in the past")

	// ErrSlotFull возвращается, когда вместимость слота исчерпана
	ErrSlotFull = errors.New("create_reservation: slot capacity exceeded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
