package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CaravaProject/carava-carwash/internal/domain"
	storeRepo "github.com/CaravaProject/carava-carwash/internal/infra/storage/store"
	"github.com/CaravaProject/carava-carwash/pkg/types"
)

// Сообщения о причинах недоступности слота
const (
	msgDateInPast      = "Дата уже прошла"
	msgTimeInPast      = "Время уже прошло"
	msgStoreClosed     = "Точка не работает в этот день"
	msgNotOnSlotGrid   = "Время не попадает в сетку слотов"
	msgTooCloseToClose = "Слишком близко к закрытию"
	msgSlotFull        = "Все места на это время заняты"
)

// UseCase use case для проверки доступности конкретного слота
type UseCase struct {
	reservationRepo ReservationRepository
	storeRepo       StoreRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	storeRepo StoreRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		storeRepo:       storeRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет ту же цепочку проверок, что и создание брони,
// но ничего не сохраняет. Результат носит информационный характер -
// к моменту создания брони доступность могла измениться
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: store=%d, date=%s, time=%s",
		req.StoreID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if req.StoreID <= 0 {
		return nil, fmt.Errorf("%w: storeID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Time.IsZero() {
		return nil, fmt.Errorf("%w: time is required", ErrInvalidInput)
	}
	if err := req.Time.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	// 2. Получаем точку обслуживания
	store, err := uc.storeRepo.GetByID(ctx, req.StoreID)
	if err != nil {
		if errors.Is(err, storeRepo.ErrStoreNotFound) {
			uc.logger.Warn("CheckAvailability: store id=%d not found", req.StoreID)
			return nil, ErrStoreNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get store id=%d: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: failed to get store: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	// 3. Момент не в прошлом: сначала дата, затем время
	if isDateInPast(req.Date, now) {
		return unavailable(store, msgDateInPast), nil
	}
	if isSameDay(req.Date, now) && req.Time.IsBefore(types.NewTimeString(now)) {
		return unavailable(store, msgTimeInPast), nil
	}

	// 4. Расписание на день недели
	hour, err := uc.storeRepo.GetOperatingHour(ctx, req.StoreID, req.Date.Weekday())
	if err != nil {
		if errors.Is(err, storeRepo.ErrOperatingHourNotFound) {
			return unavailable(store, msgStoreClosed), nil
		}
		uc.logger.Error("CheckAvailability: failed to get operating hour: %v", err)
		return nil, fmt.Errorf("%w: failed to get operating hour: %v", ErrInternal, err)
	}
	if !hour.IsWorkable() {
		return unavailable(store, msgStoreClosed), nil
	}

	// 5. Время попадает в сетку слотов
	if !isOnSlotGrid(req.Time, hour, store.SlotDurationMinutes) {
		return unavailable(store, msgNotOnSlotGrid), nil
	}

	// 6. Буфер до закрытия
	minutesUntilClose, err := req.Time.MinutesUntil(*hour.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to calculate minutes until close: %v", ErrInternal, err)
	}
	if minutesUntilClose < domain.MinServiceBufferMinutes {
		return unavailable(store, msgTooCloseToClose), nil
	}

	// 7. Праздники перекрывают расписание целиком
	isHoliday, err := uc.storeRepo.IsHoliday(ctx, req.StoreID, req.Date)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to check holiday: %v", err)
		return nil, fmt.Errorf("%w: failed to check holiday: %v", ErrInternal, err)
	}
	if isHoliday {
		return unavailable(store, msgStoreClosed), nil
	}

	// 8. Считаем занятость слота
	dateTime, err := combineDateTime(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	activeCount, err := uc.reservationRepo.CountActiveByStoreAndDateTime(ctx, req.StoreID, dateTime)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to count reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to count reservations: %v", ErrInternal, err)
	}

	availableCount := store.AvailableCapacity(activeCount)
	if availableCount == 0 {
		return unavailable(store, msgSlotFull), nil
	}

	uc.logger.Info("CheckAvailability: store=%d, slot %s available, %d/%d spots free",
		req.StoreID, req.Time, availableCount, store.HourlyCapacity)

	return &Response{
		Available:      true,
		AvailableCount: availableCount,
		TotalCapacity:  store.HourlyCapacity,
	}, nil
}

// unavailable собирает отрицательный ответ с причиной
func unavailable(store *domain.Store, message string) *Response {
	return &Response{
		Available:      false,
		AvailableCount: 0,
		TotalCapacity:  store.HourlyCapacity,
		Message:        message,
	}
}

// isOnSlotGrid проверяет попадание времени в сетку слотов
func isOnSlotGrid(t types.TimeString, hour *domain.OperatingHour, slotDurationMinutes int) bool {
	for _, slot := range domain.GenerateSlots(*hour.OpenTime, *hour.CloseTime, slotDurationMinutes) {
		if slot == t {
			return true
		}
	}
	return false
}

// combineDateTime собирает момент брони из даты и времени слота
func combineDateTime(date time.Time, t types.TimeString) (time.Time, error) {
	parsed, err := time.Parse(types.Layout, t.String())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: failed to parse time: %v", ErrInternal, err)
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		date.Location(),
	), nil
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
