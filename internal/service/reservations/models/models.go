package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/CaravaProject/carava-carwash/internal/domain"
)

// Request модели

// CancelReservationRequest запрос на отмену брони клиентом
type CancelReservationRequest struct {
	CustomerID         int64   `json:"customerId"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// GetHistoryRequest запрос истории броней клиента
type GetHistoryRequest struct {
	CustomerID int64  `json:"customerId"`
	Limit      uint64 `json:"limit,omitempty"`
	Offset     uint64 `json:"offset,omitempty"`
}

// Response модели

// ReservationResponse ответ с данными брони
type ReservationResponse struct {
	ID                       int64  `json:"id"`
	CustomerID               int64  `json:"customerId"`
	StoreID                  int64  `json:"storeId"`
	CarID                    int64  `json:"carId"`
	Date                     string `json:"date"`      // "2025-10-15"
	StartTime                string `json:"startTime"` // "10:00"
	EstimatedDurationMinutes int    `json:"estimatedDurationMinutes"`
	Status                   string `json:"status"`

	TotalAmount    decimal.Decimal `json:"totalAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	FinalAmount    decimal.Decimal `json:"finalAmount"`

	CustomerRequest    *string `json:"customerRequest,omitempty"`
	RejectionReason    *string `json:"rejectionReason,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`

	Menus []ReservationMenuResponse `json:"menus"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationMenuResponse снимок позиции меню в составе брони
type ReservationMenuResponse struct {
	MenuID          int64           `json:"menuId"`
	MenuName        string          `json:"menuName"`
	MenuDescription *string         `json:"menuDescription,omitempty"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	Quantity        int             `json:"quantity"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	DurationMinutes int             `json:"durationMinutes"`
	CategoryName    *string         `json:"categoryName,omitempty"`
}

// ReservationListResponse ответ со списком броней
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	menus := make([]ReservationMenuResponse, 0, len(r.Menus))
	for _, m := range r.Menus {
		menus = append(menus, ReservationMenuResponse{
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

	return &ReservationResponse{
		ID:                       r.ID,
		CustomerID:               r.CustomerID,
		StoreID:                  r.StoreID,
		CarID:                    r.CarID,
		Date:                     r.Date().Format(domain.DateFormat),
		StartTime:                r.TimeOfDay().String(),
		EstimatedDurationMinutes: r.EstimatedDurationMinutes,
		Status:                   string(r.Status),
		TotalAmount:              r.TotalAmount,
		DiscountAmount:           r.DiscountAmount,
		FinalAmount:              r.FinalAmount,
		CustomerRequest:          r.CustomerRequest,
		RejectionReason:          r.RejectionReason,
		CancellationReason:       r.CancellationReason,
		Menus:                    menus,
		CreatedAt:                r.CreatedAt,
		UpdatedAt:                r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	result := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		result = append(result, *FromDomainReservation(r))
	}
	return &ReservationListResponse{Reservations: result}
}
