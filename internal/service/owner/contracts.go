package owner

import (
	"context"
	"time"

	"github.com/CaravaProject/carava-carwash/internal/domain"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByStoreWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	UpdateStatusIf(ctx context.Context, id int64, expected, next domain.ReservationStatus, reason *string) error
}

// StoreRepository интерфейс репозитория точек обслуживания
type StoreRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
