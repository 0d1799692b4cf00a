package create_reservation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/CaravaProject/carava-carwash/internal/domain"
	"github.com/CaravaProject/carava-carwash/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.StoreID <= 0 {
		return fmt.Errorf("%w: storeID must be positive", ErrInvalidInput)
	}

	if req.CarID <= 0 {
		return fmt.Errorf("%w: carID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if len(req.MenuIDs) == 0 {
		return fmt.Errorf("%w: at least one menu is required", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(req.MenuIDs))
	for _, id := range req.MenuIDs {
		if id <= 0 {
			return fmt.Errorf("%w: menuID must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate menuID %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(date, now time.Time) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}
	return nil
}

// validateTimeSlot проверяет, что время попадает в сетку слотов точки
// и оставляет буфер до закрытия для выполнения работ
func validateTimeSlot(startTime types.TimeString, hour *domain.OperatingHour, slotDurationMinutes int) error {
	if !hour.IsWorkable() {
		return ErrStoreClosed
	}

	slots := domain.GenerateSlots(*hour.OpenTime, *hour.CloseTime, slotDurationMinutes)

	found := false
	for _, slot := range slots {
		if slot == startTime {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: time %s is not on the slot grid", ErrInvalidTimeSlot, startTime)
	}

	minutesUntilClose, err := startTime.MinutesUntil(*hour.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: failed to calculate minutes until close: %v", ErrInternal, err)
	}
	if minutesUntilClose < domain.MinServiceBufferMinutes {
		return fmt.Errorf("%w: must leave %d minutes before closing", ErrInvalidTimeSlot, domain.MinServiceBufferMinutes)
	}

	return nil
}

// validateNotPast проверяет, что момент брони еще не прошел
func validateNotPast(date time.Time, startTime types.TimeString, now time.Time) error {
	if !isSameDay(date, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	if startTime.IsBefore(currentTime) {
		return ErrPastTime
	}

	return nil
}

// combineDateTime собирает момент брони из даты и времени слота
func combineDateTime(date time.Time, startTime types.TimeString) (time.Time, error) {
	parsed, err := time.Parse(types.Layout, startTime.String())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: failed to parse start time: %v", ErrInternal, err)
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		date.Location(),
	), nil
}

// countActiveAt подсчитывает активные брони на точный момент
func countActiveAt(reservations []*domain.Reservation, dateTime time.Time) int {
	count := 0
	for _, reservation := range reservations {
		if !reservation.IsActive() {
			continue
		}
		if reservation.DateTime.Equal(dateTime) {
			count++
		}
	}
	return count
}

// buildMenuSnapshots собирает снимки позиций меню и агрегаты по ним.
// Снимки фиксируют название, цену и длительность услуги на момент брони
func buildMenuSnapshots(menus []*domain.Menu) (items []domain.ReservationMenu, totalAmount decimal.Decimal, durationMinutes int) {
	items = make([]domain.ReservationMenu, 0, len(menus))
	totalAmount = decimal.Zero

	for _, menu := range menus {
		item := domain.NewReservationMenuFromMenu(menu, domain.DefaultMenuQuantity)
		items = append(items, item)
		totalAmount = totalAmount.Add(item.TotalPrice)
		durationMinutes += item.DurationMinutes * item.Quantity
	}

	return items, totalAmount, durationMinutes
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
