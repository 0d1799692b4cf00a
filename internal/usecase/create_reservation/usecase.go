package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/CaravaProject/carava-carwash/internal/domain"
	storeRepo "github.com/CaravaProject/carava-carwash/internal/infra/storage/store"
	customerClient "github.com/CaravaProject/carava-carwash/internal/integrations/customerservice"
)

// UseCase use case для создания брони
type UseCase struct {
	reservationRepo ReservationRepository
	storeRepo       StoreRepository
	menuRepo        MenuRepository
	customerClient  CustomerServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	storeRepo StoreRepository,
	menuRepo MenuRepository,
	customerClient CustomerServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		storeRepo:       storeRepo,
		menuRepo:        menuRepo,
		customerClient:  customerClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания брони
// Проверка вместимости слота и вставка выполняются в сериализуемой
// транзакции - при конкурентных запросах на последнее место лишние
// транзакции завершатся ошибкой сериализации
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: customer=%d, store=%d, car=%d, date=%s, time=%s, menus=%d",
		req.CustomerID, req.StoreID, req.CarID, req.Date.Format(domain.DateFormat), req.StartTime, len(req.MenuIDs))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем точку обслуживания
	store, err := uc.storeRepo.GetByID(ctx, req.StoreID)
	if err != nil {
		if errors.Is(err, storeRepo.ErrStoreNotFound) {
			uc.logger.Warn("CreateReservation: store id=%d not found", req.StoreID)
			return nil, ErrStoreNotFound
		}
		uc.logger.Error("CreateReservation: failed to get store id=%d: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: failed to get store: %v", ErrInternal, err)
	}

	// 4. Получаем автомобиль клиента с проверкой владения
	car, err := uc.customerClient.GetCustomerCar(ctx, req.CustomerID, req.CarID)
	if err != nil {
		switch {
		case errors.Is(err, customerClient.ErrCarNotFound):
			uc.logger.Warn("CreateReservation: car id=%d not found", req.CarID)
			return nil, ErrCarNotFound
		case errors.Is(err, customerClient.ErrCarNotOwned):
			uc.logger.Warn("CreateReservation: car id=%d does not belong to customer id=%d", req.CarID, req.CustomerID)
			return nil, ErrCarNotOwned
		}
		uc.logger.Error("CreateReservation: failed to get car id=%d: %v", req.CarID, err)
		return nil, fmt.Errorf("%w: failed to get car: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Reservation

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Разрешаем услуги: все ID обязаны разрешиться в активные услуги точки
		menus, err := uc.menuRepo.GetByIDs(txCtx, req.StoreID, req.MenuIDs)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get menus: %v", err)
			return fmt.Errorf("%w: failed to get menus: %v", ErrInternal, err)
		}
		if len(menus) != len(req.MenuIDs) {
			uc.logger.Warn("CreateReservation: resolved %d of %d menus for store id=%d",
				len(menus), len(req.MenuIDs), req.StoreID)
			return ErrMenuNotFound
		}

		// 5.2. Момент брони не должен быть в прошлом: сначала дата, затем время
		if err := validateDate(req.Date, now); err != nil {
			uc.logger.Warn("CreateReservation: date validation failed: %v", err)
			return err
		}
		if err := validateNotPast(req.Date, req.StartTime, now); err != nil {
			uc.logger.Warn("CreateReservation: reservation time is in the past")
			return err
		}

		// 5.3. Получаем расписание на день недели
		hour, err := uc.storeRepo.GetOperatingHour(txCtx, req.StoreID, req.Date.Weekday())
		if err != nil {
			if errors.Is(err, storeRepo.ErrOperatingHourNotFound) {
				uc.logger.Warn("CreateReservation: store id=%d has no schedule for %s",
					req.StoreID, req.Date.Weekday())
				return ErrStoreClosed
			}
			uc.logger.Error("CreateReservation: failed to get operating hour: %v", err)
			return fmt.Errorf("%w: failed to get operating hour: %v", ErrInternal, err)
		}

		// 5.4. Валидация времени слота (сетка + буфер до закрытия)
		if err := validateTimeSlot(req.StartTime, hour, store.SlotDurationMinutes); err != nil {
			uc.logger.Warn("CreateReservation: time slot validation failed: %v", err)
			return err
		}

		// 5.5. Проверяем период праздников
		isHoliday, err := uc.storeRepo.IsHoliday(txCtx, req.StoreID, req.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to check holiday: %v", err)
			return fmt.Errorf("%w: failed to check holiday: %v", ErrInternal, err)
		}
		if isHoliday {
			uc.logger.Warn("CreateReservation: store id=%d is on holiday on %s",
				req.StoreID, req.Date.Format(domain.DateFormat))
			return ErrStoreClosed
		}

		dateTime, err := combineDateTime(req.Date, req.StartTime)
		if err != nil {
			return err
		}

		// 5.6. Получаем все активные брони на эту дату с блокировкой (FOR UPDATE)
		filter := domain.ReservationFilter{
			StoreID:    req.StoreID,
			Date:       &req.Date,
			OnlyActive: true,
		}

		reservations, err := uc.reservationRepo.GetByStoreWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 5.7. Проверяем вместимость слота
		activeCount := countActiveAt(reservations, dateTime)
		if !store.CanAcceptMoreReservations(activeCount) {
			uc.logger.Warn("CreateReservation: slot %s full, %d/%d spots taken",
				req.StartTime, activeCount, store.HourlyCapacity)
			return ErrSlotFull
		}

		uc.logger.Info("CreateReservation: slot %s available, %d/%d spots taken",
			req.StartTime, activeCount, store.HourlyCapacity)

		// 5.8. Собираем бронь со снимками позиций меню
		items, totalAmount, durationMinutes := buildMenuSnapshots(menus)

		reservation := &domain.Reservation{
			CustomerID:               req.CustomerID,
			StoreID:                  req.StoreID,
			CarID:                    car.ID,
			DateTime:                 dateTime,
			EstimatedDurationMinutes: durationMinutes,
			Status:                   domain.StatusPending,
			TotalAmount:              totalAmount,
			DiscountAmount:           decimal.Zero,
			FinalAmount:              totalAmount,
			CustomerRequest:          req.CustomerRequest,
			Menus:                    items,
		}

		// 5.9. Сохраняем бронь
		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	return toResponse(result), nil
}
