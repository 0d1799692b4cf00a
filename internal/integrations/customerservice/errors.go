package customerservice

import "errors"

var (
	// ErrCarNotFound возвращается, когда автомобиль не найден
	ErrCarNotFound = errors.New("car not found")

	// ErrCarNotOwned возвращается, когда автомобиль принадлежит другому клиенту
	ErrCarNotOwned = errors.New("car does not belong to customer")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("customerservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("customerservice client: invalid response")
)
