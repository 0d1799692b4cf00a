package check_availability

import (
	"context"
	"time"

	"github.com/CaravaProject/carava-carwash/internal/domain"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	CountActiveByStoreAndDateTime(ctx context.Context, storeID int64, dateTime time.Time) (int, error)
}

// StoreRepository интерфейс репозитория точек обслуживания
type StoreRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
	GetOperatingHour(ctx context.Context, storeID int64, dayOfWeek time.Weekday) (*domain.OperatingHour, error)
	IsHoliday(ctx context.Context, storeID int64, date time.Time) (bool, error)
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
