package create_reservation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/CaravaProject/carava-carwash/internal/domain"
	"github.com/CaravaProject/carava-carwash/pkg/types"
)

// Request модель запроса на создание брони
type Request struct {
	CustomerID      int64            // ID клиента
	StoreID         int64            // ID точки обслуживания
	CarID           int64            // ID автомобиля клиента
	Date            time.Time        // Дата брони (без времени)
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	MenuIDs         []int64          // ID выбранных услуг
	CustomerRequest *string          // Пожелания клиента (опционально)
}

// Response модель ответа с созданной бронью
type Response struct {
	ID                       int64            // ID созданной брони
	CustomerID               int64            // ID клиента
	StoreID                  int64            // ID точки
	CarID                    int64            // ID автомобиля
	Date                     time.Time        // Дата брони
	StartTime                types.TimeString // Время начала
	EstimatedDurationMinutes int              // Суммарная длительность услуг в минутах
	Status                   string           // Статус брони

	TotalAmount    decimal.Decimal // Сумма по позициям
	DiscountAmount decimal.Decimal // Скидка
	FinalAmount    decimal.Decimal // Итоговая сумма

	CustomerRequest *string    // Пожелания клиента
	Menus           []MenuItem // Снимки позиций меню

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

// MenuItem снимок позиции меню в составе брони
type MenuItem struct {
	MenuID          int64           // ID услуги на момент брони
	MenuName        string          // Название услуги
	MenuDescription *string         // Описание услуги
	UnitPrice       decimal.Decimal // Цена за единицу
	Quantity        int             // Количество
	TotalPrice      decimal.Decimal // Сумма по позиции
	DurationMinutes int             // Длительность в минутах
	CategoryName    *string         // Категория услуги
}

// toResponse конвертирует доменную бронь в модель ответа
func toResponse(reservation *domain.Reservation) *Response {
	menus := make([]MenuItem, 0, len(reservation.Menus))
	for _, m := range reservation.Menus {
		menus = append(menus, MenuItem{
			MenuID:          m.MenuID,
			MenuName:        m.MenuName,
			MenuDescription: m.MenuDescription,
			UnitPrice:       m.UnitPrice,
			Quantity:        m.Quantity,
			TotalPrice:      m.TotalPrice,
			DurationMinutes: m.DurationMinutes,
			CategoryName:    m.CategoryName,
		})
	}

	return &Response{
		ID:                       reservation.ID,
		CustomerID:               reservation.CustomerID,
		StoreID:                  reservation.StoreID,
		CarID:                    reservation.CarID,
		Date:                     reservation.Date(),
		StartTime:                reservation.TimeOfDay(),
		EstimatedDurationMinutes: reservation.EstimatedDurationMinutes,
		Status:                   string(reservation.Status),
		TotalAmount:              reservation.TotalAmount,
		DiscountAmount:           reservation.DiscountAmount,
		FinalAmount:              reservation.FinalAmount,
		CustomerRequest:          reservation.CustomerRequest,
		Menus:                    menus,
		CreatedAt:                reservation.CreatedAt,
		UpdatedAt:                reservation.UpdatedAt,
	}
}
