package models

import (
	"errors"
	"time"

	"github.com/CaravaProject/carava-carwash/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// TransitionRequest запрос владельца на смену статуса брони
type TransitionRequest struct {
	OwnerID int64   `json:"ownerId"`
	Action  string  `json:"action"`           // confirm / reject / start / complete / no_show / cancel
	Reason  *string `json:"reason,omitempty"` // причина для reject и cancel
}

// GetStoreReservationsRequest запрос на получение броней точки
type GetStoreReservationsRequest struct {
	OwnerID         int64      `json:"ownerId"`
	StoreID         int64      `json:"storeId"`
	Date            *time.Time `json:"date,omitempty"`            // Конкретная дата (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить терминальные брони
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetStoreReservationsRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{
		StoreID:       r.StoreID,
		Date:          r.Date,
		StartDateTime: r.StartDate,
		EndDateTime:   r.EndDate,
		OnlyActive:    !r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
		filter.OnlyActive = false
	}

	return filter, nil
}

// ToDomainStatus конвертирует строку в domain статус
func ToDomainStatus(s string) (domain.ReservationStatus, error) {
	switch status := domain.ReservationStatus(s); status {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusRejected,
		domain.StatusInProgress, domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}
