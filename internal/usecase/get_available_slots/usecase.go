package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/CaravaProject/carava-carwash/internal/domain"
	storeRepo "github.com/CaravaProject/carava-carwash/internal/infra/storage/store"
	"github.com/CaravaProject/carava-carwash/pkg/types"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	reservationRepo ReservationRepository
	storeRepo       StoreRepository
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
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Выходной день и праздники дают пустой список, а не ошибку - для клиента
// это равнозначно "нет доступных слотов"
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: store=%d, date=%s", req.StoreID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.StoreID <= 0 {
		return nil, fmt.Errorf("%w: storeID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем точку обслуживания
	store, err := uc.storeRepo.GetByID(ctx, req.StoreID)
	if err != nil {
		if errors.Is(err, storeRepo.ErrStoreNotFound) {
			uc.logger.Warn("GetAvailableSlots: store id=%d not found", req.StoreID)
			return nil, ErrStoreNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get store id=%d: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: failed to get store: %v", ErrInternal, err)
	}

	// 3. Праздники перекрывают расписание целиком
	isHoliday, err := uc.storeRepo.IsHoliday(ctx, req.StoreID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check holiday: %v", err)
		return nil, fmt.Errorf("%w: failed to check holiday: %v", ErrInternal, err)
	}
	if isHoliday {
		uc.logger.Info("GetAvailableSlots: store id=%d is on holiday on %s",
			req.StoreID, req.Date.Format(domain.DateFormat))
		return emptyResponse(req), nil
	}

	// 4. Получаем расписание на день недели
	hour, err := uc.storeRepo.GetOperatingHour(ctx, req.StoreID, req.Date.Weekday())
	if err != nil {
		if errors.Is(err, storeRepo.ErrOperatingHourNotFound) {
			uc.logger.Info("GetAvailableSlots: store id=%d has no schedule for %s",
				req.StoreID, req.Date.Weekday())
			return emptyResponse(req), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get operating hour: %v", err)
		return nil, fmt.Errorf("%w: failed to get operating hour: %v", ErrInternal, err)
	}
	if !hour.IsWorkable() {
		uc.logger.Info("GetAvailableSlots: store id=%d is closed on %s", req.StoreID, req.Date.Weekday())
		return emptyResponse(req), nil
	}

	// 5. Генерируем сетку слотов
	slots := domain.GenerateSlots(*hour.OpenTime, *hour.CloseTime, store.SlotDurationMinutes)

	// 6. Получаем активные брони на эту дату
	filter := domain.ReservationFilter{
		StoreID:    req.StoreID,
		Date:       &req.Date,
		OnlyActive: true,
	}

	reservations, err := uc.reservationRepo.GetByStoreWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 7. Считаем занятость по точному времени слота
	activeByTime := countActiveByTime(reservations)
	timeSlots := domain.CalculateSlotAvailability(slots, activeByTime, store)

	result := make([]Slot, 0, len(timeSlots))
	for _, slot := range timeSlots {
		result = append(result, Slot{
			Time:           slot.Time,
			AvailableCount: slot.AvailableCount,
			TotalCapacity:  slot.TotalCapacity,
			IsAvailable:    slot.IsAvailable,
		})
	}

	uc.logger.Info("GetAvailableSlots: store=%d, date=%s, slots=%d",
		req.StoreID, req.Date.Format(domain.DateFormat), len(result))

	return &Response{
		StoreID: req.StoreID,
		Date:    req.Date,
		Slots:   result,
	}, nil
}

// countActiveByTime группирует активные брони по времени начала
func countActiveByTime(reservations []*domain.Reservation) map[types.TimeString]int {
	counts := make(map[types.TimeString]int)
	for _, reservation := range reservations {
		if !reservation.IsActive() {
			continue
		}
		counts[reservation.TimeOfDay()]++
	}
	return counts
}

func emptyResponse(req *Request) *Response {
	return &Response{
		StoreID: req.StoreID,
		Date:    req.Date,
		Slots:   []Slot{},
	}
}
