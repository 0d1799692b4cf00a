package get_statistics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CaravaProject/carava-carwash/internal/domain"
	storeRepo "github.com/CaravaProject/carava-carwash/internal/infra/storage/store"
)

// UseCase use case для получения статистики точки за период
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

// Execute выполняет use case получения статистики
// Статистика считается по всем броням, чей момент попадает в период
// [startDate 00:00, endDate 23:59:59]
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetStatistics: store=%d, owner=%d, period=%s..%s",
		req.StoreID, req.OwnerID,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetStatistics: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем точку и проверяем владение
	store, err := uc.storeRepo.GetByID(ctx, req.StoreID)
	if err != nil {
		if errors.Is(err, storeRepo.ErrStoreNotFound) {
			uc.logger.Warn("GetStatistics: store id=%d not found", req.StoreID)
			return nil, ErrStoreNotFound
		}
		uc.logger.Error("GetStatistics: failed to get store id=%d: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: failed to get store: %v", ErrInternal, err)
	}

	if err := domain.AuthorizeStoreOwner(store, req.OwnerID); err != nil {
		uc.logger.Warn("GetStatistics: store id=%d belongs to owner id=%d, requested by id=%d",
			req.StoreID, store.OwnerMemberID, req.OwnerID)
		return nil, ErrNotStoreOwner
	}

	// 3. Получаем брони за период
	start := time.Date(req.StartDate.Year(), req.StartDate.Month(), req.StartDate.Day(),
		0, 0, 0, 0, req.StartDate.Location())
	end := time.Date(req.EndDate.Year(), req.EndDate.Month(), req.EndDate.Day(),
		23, 59, 59, 0, req.EndDate.Location())

	filter := domain.ReservationFilter{
		StoreID:       req.StoreID,
		StartDateTime: &start,
		EndDateTime:   &end,
	}

	reservations, err := uc.reservationRepo.GetByStoreWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetStatistics: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	uc.logger.Info("GetStatistics: store=%d, %d reservations in period", req.StoreID, len(reservations))

	// 4. Считаем агрегаты
	return &Response{
		StoreID:    req.StoreID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Summary:    buildSummary(reservations),
		ByStatus:   countByStatus(reservations),
		ByDate:     buildDateStats(reservations),
		ByTimeSlot: buildTimeSlotStats(reservations),
		TopMenus:   buildTopMenus(reservations),
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StoreID <= 0 {
		return fmt.Errorf("%w: storeID must be positive", ErrInvalidInput)
	}
	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}
	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}
	return nil
}
