package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/CaravaProject/carava-carwash/internal/domain"
	reservationRepo "github.com/CaravaProject/carava-carwash/internal/infra/storage/reservation"
	"github.com/CaravaProject/carava-carwash/internal/service/reservations/models"
)

// Service сервис для работы с бронями со стороны клиента
type Service struct {
	reservationRepo ReservationRepository
	storeRepo       StoreRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(
	reservationRepo ReservationRepository,
	storeRepo StoreRepository,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		storeRepo:       storeRepo,
		logger:          logger,
	}
}

// GetByID получает бронь по ID
// Бронь видит её автор или владелец точки, на которую она оформлена
func (s *Service) GetByID(ctx context.Context, id int64, requesterID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for requester=%d", id, requesterID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkAccess(ctx, reservation, requesterID); err != nil {
		s.logger.Warn("GetByID: access denied for requester=%d to reservation id=%d", requesterID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// GetActiveReservations получает активные брони клиента (ближайшие первыми)
func (s *Service) GetActiveReservations(ctx context.Context, customerID int64) (*models.ReservationListResponse, error) {
	s.logger.Info("GetActiveReservations: fetching reservations for customer=%d", customerID)

	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetActiveByCustomer(ctx, customerID)
	if err != nil {
		s.logger.Error("GetActiveReservations: repository error for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetActiveReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetActiveReservations: successfully fetched %d reservations for customer=%d",
		len(reservations), customerID)
	return models.FromDomainReservationList(reservations), nil
}

// GetHistory получает завершенные брони клиента (новые первыми)
func (s *Service) GetHistory(ctx context.Context, req *models.GetHistoryRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetHistory: fetching history for customer=%d, limit=%d, offset=%d",
		req.CustomerID, req.Limit, req.Offset)

	if req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetHistoryByCustomer(ctx, req.CustomerID, req.Limit, req.Offset)
	if err != nil {
		s.logger.Error("GetHistory: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetHistory - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetHistory: successfully fetched %d reservations for customer=%d",
		len(reservations), req.CustomerID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронь клиентом
// Отменить бронь может только её автор, и только пока она активна.
// Перевод статуса выполняется атомарно (compare-and-swap) - конкурентное
// изменение статуса приводит к ErrConcurrentUpdate
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by customer=%d", reservationID, req.CustomerID)

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Отменить бронь может только её автор
	if reservation.CustomerID != req.CustomerID {
		s.logger.Warn("Cancel: reservation id=%d belongs to customer id=%d, requested by id=%d",
			reservationID, reservation.CustomerID, req.CustomerID)
		return ErrAccessDenied
	}

	// Переход в CANCELLED допустим только из активного статуса
	next, err := domain.NextStatus(reservation.Status, domain.ActionCancel)
	if err != nil {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
		return ErrCannotCancel
	}

	err = s.reservationRepo.UpdateStatusIf(ctx, reservationID, reservation.Status, next, req.CancellationReason)
	if err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", reservationID)
			return ErrReservationNotFound
		case errors.Is(err, reservationRepo.ErrStaleStatus):
			s.logger.Warn("Cancel: reservation id=%d was modified concurrently", reservationID)
			return ErrConcurrentUpdate
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	return nil
}

// Вспомогательные методы

// checkAccess проверяет права доступа к брони
// Доступ имеет автор брони или владелец точки
func (s *Service) checkAccess(ctx context.Context, reservation *domain.Reservation, requesterID int64) error {
	if reservation.CustomerID == requesterID {
		return nil
	}

	store, err := s.storeRepo.GetByID(ctx, reservation.StoreID)
	if err != nil {
		s.logger.Error("checkAccess: failed to get store id=%d: %v", reservation.StoreID, err)
		return ErrAccessDenied
	}

	if err := domain.AuthorizeStoreOwner(store, requesterID); err != nil {
		return ErrAccessDenied
	}

	return nil
}
