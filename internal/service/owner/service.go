package owner

import (
	"context"
	"errors"
	"fmt"

	"github.com/CaravaProject/carava-carwash/internal/domain"
	reservationRepo "github.com/CaravaProject/carava-carwash/internal/infra/storage/reservation"
	storeRepo "github.com/CaravaProject/carava-carwash/internal/infra/storage/store"
	ownerModels "github.com/CaravaProject/carava-carwash/internal/service/owner/models"
	resModels "github.com/CaravaProject/carava-carwash/internal/service/reservations/models"
)

// Service сервис для работы с бронями со стороны владельца точки
type Service struct {
	reservationRepo ReservationRepository
	storeRepo       StoreRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса владельца
func NewService(
	reservationRepo ReservationRepository,
	storeRepo StoreRepository,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		storeRepo:       storeRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Transition переводит бронь в новый статус действием владельца
// Допустимость перехода сверяется с единой таблицей переходов, запись
// выполняется атомарно (compare-and-swap): конкурентное действие над
// той же бронью приводит к ErrConcurrentUpdate.
// Бронь чужой точки дает ошибку доступа, а не "не найдено" - наличие
// брони у другой точки не раскрывается
func (s *Service) Transition(ctx context.Context, storeID, reservationID int64, req *ownerModels.TransitionRequest) (*resModels.ReservationResponse, error) {
	s.logger.Info("Transition: store=%d, reservation=%d, action=%s, owner=%d",
		storeID, reservationID, req.Action, req.OwnerID)

	// 1. Валидация входных данных
	if storeID <= 0 || reservationID <= 0 || req.OwnerID <= 0 {
		return nil, fmt.Errorf("%w: ids must be positive", ErrInvalidInput)
	}

	action, err := domain.ParseAction(req.Action)
	if err != nil {
		s.logger.Warn("Transition: unknown action=%s", req.Action)
		return nil, ErrUnknownAction
	}

	// 2. Точка должна существовать и принадлежать владельцу
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, storeRepo.ErrStoreNotFound) {
			s.logger.Warn("Transition: store id=%d not found", storeID)
			return nil, ErrStoreNotFound
		}
		s.logger.Error("Transition: failed to get store id=%d: %v", storeID, err)
		return nil, fmt.Errorf("%w: Transition - failed to get store: %v", ErrInternal, err)
	}

	if err := domain.AuthorizeStoreOwner(store, req.OwnerID); err != nil {
		s.logger.Warn("Transition: store id=%d belongs to owner id=%d, requested by id=%d",
			storeID, store.OwnerMemberID, req.OwnerID)
		return nil, ErrAccessDenied
	}

	// 3. Получаем бронь
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Transition: reservation id=%d not found", reservationID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Transition: failed to get reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: Transition - failed to get reservation: %v", ErrInternal, err)
	}

	// 4. Бронь обязана принадлежать именно этой точке
	if reservation.StoreID != storeID {
		s.logger.Warn("Transition: reservation id=%d belongs to store id=%d, requested via store id=%d",
			reservationID, reservation.StoreID, storeID)
		return nil, ErrAccessDenied
	}

	// 5. Неявку можно отметить только после наступления момента брони
	if action == domain.ActionMarkNoShow && !reservation.IsPast(s.timeProvider.Now()) {
		s.logger.Warn("Transition: reservation id=%d has not started yet, no-show rejected", reservationID)
		return nil, ErrNoShowTooEarly
	}

	// 6. Сверяемся с таблицей переходов
	next, err := domain.NextStatus(reservation.Status, action)
	if err != nil {
		s.logger.Warn("Transition: action=%s not allowed from status=%s for reservation id=%d",
			action, reservation.Status, reservationID)
		return nil, ErrInvalidTransition
	}

	// 7. Атомарная запись нового статуса
	err = s.reservationRepo.UpdateStatusIf(ctx, reservationID, reservation.Status, next, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			s.logger.Warn("Transition: reservation id=%d not found during update", reservationID)
			return nil, ErrReservationNotFound
		case errors.Is(err, reservationRepo.ErrStaleStatus):
			s.logger.Warn("Transition: reservation id=%d was modified concurrently", reservationID)
			return nil, ErrConcurrentUpdate
		}
		s.logger.Error("Transition: failed to update reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: Transition - failed to update status: %v", ErrInternal, err)
	}

	s.logger.Info("Transition: reservation id=%d moved %s -> %s", reservationID, reservation.Status, next)

	// 8. Перечитываем бронь с обновленным статусом и причинами
	updated, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		s.logger.Error("Transition: failed to re-read reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: Transition - failed to re-read reservation: %v", ErrInternal, err)
	}

	return resModels.FromDomainReservation(updated), nil
}

// GetStoreReservations получает брони точки с гибкой фильтрацией
// Доступно только владельцу точки
//
// Примеры использования:
// - Все активные брони: GetStoreReservations(ctx, &GetStoreReservationsRequest{StoreID: 1, OwnerID: 2})
// - Брони на дату: указать Date
// - Брони за период: StartDate и EndDate
// - Только подтвержденные: указать Status = "confirmed"
// - Включая терминальные: IncludeInactive = true
func (s *Service) GetStoreReservations(ctx context.Context, req *ownerModels.GetStoreReservationsRequest) (*resModels.ReservationListResponse, error) {
	s.logger.Info("GetStoreReservations: store=%d, owner=%d", req.StoreID, req.OwnerID)

	if req.StoreID <= 0 || req.OwnerID <= 0 {
		return nil, fmt.Errorf("%w: ids must be positive", ErrInvalidInput)
	}

	// Проверяем владение точкой
	store, err := s.storeRepo.GetByID(ctx, req.StoreID)
	if err != nil {
		if errors.Is(err, storeRepo.ErrStoreNotFound) {
			s.logger.Warn("GetStoreReservations: store id=%d not found", req.StoreID)
			return nil, ErrStoreNotFound
		}
		s.logger.Error("GetStoreReservations: failed to get store id=%d: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: GetStoreReservations - failed to get store: %v", ErrInternal, err)
	}

	if err := domain.AuthorizeStoreOwner(store, req.OwnerID); err != nil {
		s.logger.Warn("GetStoreReservations: store id=%d belongs to owner id=%d, requested by id=%d",
			req.StoreID, store.OwnerMemberID, req.OwnerID)
		return nil, ErrAccessDenied
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetStoreReservations: invalid filter for store=%d: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByStoreWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetStoreReservations: repository error for store=%d: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: GetStoreReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStoreReservations: successfully fetched %d reservations for store=%d",
		len(reservations), req.StoreID)
	return resModels.FromDomainReservationList(reservations), nil
}
