package create_reservation

import (
	"context"
	"time"

	"github.com/CaravaProject/carava-carwash/internal/domain"
	"github.com/CaravaProject/carava-carwash/internal/integrations/customerservice"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	GetByStoreWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// StoreRepository интерфейс репозитория точек обслуживания
type StoreRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
	GetOperatingHour(ctx context.Context, storeID int64, dayOfWeek time.Weekday) (*domain.OperatingHour, error)
	IsHoliday(ctx context.Context, storeID int64, date time.Time) (bool, error)
}

// MenuRepository интерфейс репозитория услуг
type MenuRepository interface {
	GetByIDs(ctx context.Context, storeID int64, ids []int64) ([]*domain.Menu, error)
}

// CustomerServiceClient интерфейс клиента для CustomerService
type CustomerServiceClient interface {
	GetCustomerCar(ctx context.Context, customerID, carID int64) (*customerservice.Car, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
