package update_reservation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/CaravaProject/carava-carwash/internal/domain"
	"github.com/CaravaProject/carava-carwash/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	// Хотя бы одно поле должно меняться
	if req.NewDate == nil && req.NewTime == nil && req.NewMenuIDs == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if req.NewDate != nil && req.NewDate.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.NewTime != nil {
		if req.NewTime.IsZero() {
			return fmt.Errorf("%w: time is required", ErrInvalidInput)
		}
		if err := req.NewTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
		}
	}

	if req.NewMenuIDs != nil {
		if len(req.NewMenuIDs) == 0 {
			return fmt.Errorf("%w: at least one menu is required", ErrInvalidInput)
		}
		seen := make(map[int64]struct{}, len(req.NewMenuIDs))
		for _, id := range req.NewMenuIDs {
			if id <= 0 {
				return fmt.Errorf("%w: menuID must be positive", ErrInvalidInput)
			}
			if _, ok := seen[id]; ok {
				return fmt.Errorf("%w: duplicate menuID %d", ErrInvalidInput, id)
			}
			seen[id] = struct{}{}
		}
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

	found := false
	for _, slot := range domain.GenerateSlots(*hour.OpenTime, *hour.CloseTime, slotDurationMinutes) {
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

	if startTime.IsBefore(types.NewTimeString(now)) {
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

// countActiveAtExcluding подсчитывает активные брони на точный момент,
// не учитывая заменяемую бронь
func countActiveAtExcluding(reservations []*domain.Reservation, dateTime time.Time, excludeID int64) int {
	count := 0
	for _, reservation := range reservations {
		if reservation.ID == excludeID {
			continue
		}
		if !reservation.IsActive() {
			continue
		}
		if reservation.DateTime.Equal(dateTime) {
			count++
		}
	}
	return count
}

// buildMenuSnapshots собирает снимки позиций меню и агрегаты по ним
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
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
