package get_available_slots

import (
	"context"
	"time"

	"github.com/CaravaProject/carava-carwash/internal/domain"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetByStoreWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// StoreRepository интерфейс репозитория точек обслуживания
type StoreRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
	GetOperatingHour(ctx context.Context, storeID int64, dayOfWeek time.Weekday) (*domain.OperatingHour, error)
	IsHoliday(ctx context.Context, storeID int64, date time.Time) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
