package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/CaravaProject/carava-carwash/pkg/types"
)

// ErrNotStoreOwner возвращается, когда пользователь не владеет точкой
var ErrNotStoreOwner = errors.New("domain: member is not the store owner")

// Store автомойка с настройками бронирования
type Store struct {
	ID            int64
	OwnerMemberID int64
	Name          string
	Phone         string

	// HourlyCapacity максимум одновременных броней на один слот
	HourlyCapacity int
	// SlotDurationMinutes шаг сетки слотов
	SlotDurationMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AvailableCapacity возвращает число свободных мест в слоте
// Никогда не отрицательно, даже если бронирований больше лимита
func (s *Store) AvailableCapacity(activeCount int) int {
	available := s.HourlyCapacity - activeCount
	if available < 0 {
		return 0
	}
	return available
}

// CanAcceptMoreReservations возвращает true, если в слоте есть место
func (s *Store) CanAcceptMoreReservations(activeCount int) bool {
	return activeCount < s.HourlyCapacity
}

// AuthorizeStoreOwner проверяет владение точкой.
// Чистая функция над данными: никакой диспетчеризации по entity-методам
func AuthorizeStoreOwner(store *Store, memberID int64) error {
	if store == nil || store.OwnerMemberID != memberID {
		return ErrNotStoreOwner
	}
	return nil
}

// OperatingHour режим работы точки в конкретный день недели
// На пару (store, weekday) существует не более одной записи
type OperatingHour struct {
	ID        int64
	StoreID   int64
	DayOfWeek time.Weekday
	OpenTime  *types.TimeString
	CloseTime *types.TimeString
	IsOpen    bool
}

// IsWorkable возвращает true, если в этот день точка принимает брони
func (h *OperatingHour) IsWorkable() bool {
	return h != nil && h.IsOpen && h.OpenTime != nil && h.CloseTime != nil
}

// Holiday выходной день или период точки
// Точная дата задается совпадающими StartDate и EndDate
type Holiday struct {
	ID        int64
	StoreID   int64
	StartDate time.Time
	EndDate   time.Time
}

// Contains возвращает true, если date попадает в период (границы включительно)
func (h *Holiday) Contains(date time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(truncateToDay(h.StartDate)) && !d.After(truncateToDay(h.EndDate))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Menu позиция меню автомойки
type Menu struct {
	ID              int64
	StoreID         int64
	Name            string
	Description     *string
	Price           decimal.Decimal
	DurationMinutes int
	CategoryName    *string
	IsActive        bool
}
