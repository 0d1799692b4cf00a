package reservations

import (
	"context"

	"github.com/CaravaProject/carava-carwash/internal/domain"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetActiveByCustomer(ctx context.Context, customerID int64) ([]*domain.Reservation, error)
	GetHistoryByCustomer(ctx context.Context, customerID int64, limit, offset uint64) ([]*domain.Reservation, error)
	UpdateStatusIf(ctx context.Context, id int64, expected, next domain.ReservationStatus, reason *string) error
}

// StoreRepository интерфейс репозитория точек обслуживания
type StoreRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
