package update_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/CaravaProject/carava-carwash/internal/domain"
	reservationRepo "github.com/CaravaProject/carava-carwash/internal/infra/storage/reservation"
	storeRepo "github.com/CaravaProject/carava-carwash/internal/infra/storage/store"
	"github.com/CaravaProject/carava-carwash/pkg/ptr"
)

// cancelReasonReplaced причина отмены исходной брони при замене
const cancelReasonReplaced = "Бронь изменена клиентом"

// UseCase use case для изменения брони
type UseCase struct {
	reservationRepo ReservationRepository
	storeRepo       StoreRepository
	menuRepo        MenuRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	storeRepo StoreRepository,
	menuRepo MenuRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		storeRepo:       storeRepo,
		menuRepo:        menuRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет замену брони одной атомарной операцией.
// Новая бронь полностью валидируется до отмены исходной: проваленная
// валидация оставляет исходную бронь нетронутой. Отмена и создание
// выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateReservation: reservation=%d, customer=%d", req.ReservationID, req.CustomerID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.Reservation
	var replacedID int64

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3. Получаем исходную бронь
		original, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("UpdateReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("UpdateReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 4. Изменять бронь может только её автор
		if original.CustomerID != req.CustomerID {
			uc.logger.Warn("UpdateReservation: reservation id=%d belongs to customer id=%d, requested by id=%d",
				req.ReservationID, original.CustomerID, req.CustomerID)
			return ErrNotOwner
		}

		// 5. Изменение допустимо только до подтверждения
		if original.Status != domain.StatusPending {
			uc.logger.Warn("UpdateReservation: reservation id=%d has status %s", req.ReservationID, original.Status)
			return ErrNotPending
		}

		// 6. Собираем целевые параметры: незаполненные наследуются
		date := original.Date()
		if req.NewDate != nil {
			date = *req.NewDate
		}
		startTime := original.TimeOfDay()
		if req.NewTime != nil {
			startTime = *req.NewTime
		}
		menuIDs := original.MenuIDs()
		if req.NewMenuIDs != nil {
			menuIDs = req.NewMenuIDs
		}

		// 7. Получаем точку обслуживания
		store, err := uc.storeRepo.GetByID(txCtx, original.StoreID)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to get store id=%d: %v", original.StoreID, err)
			return fmt.Errorf("%w: failed to get store: %v", ErrInternal, err)
		}

		// 8. Разрешаем услуги
		menus, err := uc.menuRepo.GetByIDs(txCtx, original.StoreID, menuIDs)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to get menus: %v", err)
			return fmt.Errorf("%w: failed to get menus: %v", ErrInternal, err)
		}
		if len(menus) != len(menuIDs) {
			uc.logger.Warn("UpdateReservation: resolved %d of %d menus for store id=%d",
				len(menus), len(menuIDs), original.StoreID)
			return ErrMenuNotFound
		}

		// 9. Валидация новой даты и времени: сначала прошедший момент,
		// затем расписание и сетка, затем праздники
		if err := validateDate(date, now); err != nil {
			uc.logger.Warn("UpdateReservation: date validation failed: %v", err)
			return err
		}
		if err := validateNotPast(date, startTime, now); err != nil {
			uc.logger.Warn("UpdateReservation: reservation time is in the past")
			return err
		}

		hour, err := uc.storeRepo.GetOperatingHour(txCtx, original.StoreID, date.Weekday())
		if err != nil {
			if errors.Is(err, storeRepo.ErrOperatingHourNotFound) {
				return ErrStoreClosed
			}
			uc.logger.Error("UpdateReservation: failed to get operating hour: %v", err)
			return fmt.Errorf("%w: failed to get operating hour: %v", ErrInternal, err)
		}

		if err := validateTimeSlot(startTime, hour, store.SlotDurationMinutes); err != nil {
			uc.logger.Warn("UpdateReservation: time slot validation failed: %v", err)
			return err
		}

		isHoliday, err := uc.storeRepo.IsHoliday(txCtx, original.StoreID, date)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to check holiday: %v", err)
			return fmt.Errorf("%w: failed to check holiday: %v", ErrInternal, err)
		}
		if isHoliday {
			return ErrStoreClosed
		}

		dateTime, err := combineDateTime(date, startTime)
		if err != nil {
			return err
		}

		// 10. Проверяем вместимость нового слота с блокировкой (FOR UPDATE)
		// Исходная бронь в подсчет не входит - она будет отменена заменой
		filter := domain.ReservationFilter{
			StoreID:    original.StoreID,
			Date:       &date,
			OnlyActive: true,
		}

		reservations, err := uc.reservationRepo.GetByStoreWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		activeCount := countActiveAtExcluding(reservations, dateTime, original.ID)
		if !store.CanAcceptMoreReservations(activeCount) {
			uc.logger.Warn("UpdateReservation: slot %s full, %d/%d spots taken",
				startTime, activeCount, store.HourlyCapacity)
			return ErrSlotFull
		}

		// 11. Замена гарантированно пройдет - отменяем исходную бронь (CAS)
		err = uc.reservationRepo.UpdateStatusIf(txCtx, original.ID,
			domain.StatusPending, domain.StatusCancelled, ptr.Ptr(cancelReasonReplaced))
		if err != nil {
			if errors.Is(err, reservationRepo.ErrStaleStatus) {
				uc.logger.Warn("UpdateReservation: reservation id=%d was modified concurrently", original.ID)
				return ErrConcurrentUpdate
			}
			uc.logger.Error("UpdateReservation: failed to cancel original id=%d: %v", original.ID, err)
			return fmt.Errorf("%w: failed to cancel original: %v", ErrInternal, err)
		}

		// 12. Создаем замещающую бронь со свежими снимками позиций
		items, totalAmount, durationMinutes := buildMenuSnapshots(menus)

		replacement := &domain.Reservation{
			CustomerID:               original.CustomerID,
			StoreID:                  original.StoreID,
			CarID:                    original.CarID,
			DateTime:                 dateTime,
			EstimatedDurationMinutes: durationMinutes,
			Status:                   domain.StatusPending,
			TotalAmount:              totalAmount,
			DiscountAmount:           decimal.Zero,
			FinalAmount:              totalAmount,
			CustomerRequest:          original.CustomerRequest,
			Menus:                    items,
		}

		created, err := uc.reservationRepo.Create(txCtx, replacement)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to create replacement: %v", err)
			return fmt.Errorf("%w: failed to create replacement: %v", ErrInternal, err)
		}

		result = created
		replacedID = original.ID
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateReservation: reservation id=%d replaced by id=%d", replacedID, result.ID)

	return toResponse(result, replacedID), nil
}
