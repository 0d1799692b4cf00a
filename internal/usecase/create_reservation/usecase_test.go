package create_reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CaravaProject/carava-carwash/internal/domain"
	storeRepo "github.com/CaravaProject/carava-carwash/internal/infra/storage/store"
	"github.com/CaravaProject/carava-carwash/internal/integrations/customerservice"
	"github.com/CaravaProject/carava-carwash/pkg/types"
)

// --- fakes ---

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type fakeReservationRepo struct {
	mu           sync.Mutex
	nextID       int64
	reservations []*domain.Reservation
}

func (r *fakeReservationRepo) Create(_ context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	created := *reservation
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.reservations = append(r.reservations, &created)
	return &created, nil
}

func (r *fakeReservationRepo) GetByStoreWithFilter(_ context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Reservation, 0)
	for _, res := range r.reservations {
		if res.StoreID != filter.StoreID {
			continue
		}
		if filter.OnlyActive && !res.IsActive() {
			continue
		}
		result = append(result, res)
	}
	return result, nil
}

type fakeStoreRepo struct {
	store    *domain.Store
	hours    map[time.Weekday]*domain.OperatingHour
	holidays map[string]bool
}

func (r *fakeStoreRepo) GetByID(_ context.Context, id int64) (*domain.Store, error) {
	if r.store == nil || r.store.ID != id {
		return nil, storeRepo.ErrStoreNotFound
	}
	return r.store, nil
}

func (r *fakeStoreRepo) GetOperatingHour(_ context.Context, _ int64, dayOfWeek time.Weekday) (*domain.OperatingHour, error) {
	hour, ok := r.hours[dayOfWeek]
	if !ok {
		return nil, storeRepo.ErrOperatingHourNotFound
	}
	return hour, nil
}

func (r *fakeStoreRepo) IsHoliday(_ context.Context, _ int64, date time.Time) (bool, error) {
	return r.holidays[date.Format(domain.DateFormat)], nil
}

type fakeMenuRepo struct {
	menus map[int64]*domain.Menu
}

func (r *fakeMenuRepo) GetByIDs(_ context.Context, storeID int64, ids []int64) ([]*domain.Menu, error) {
	result := make([]*domain.Menu, 0, len(ids))
	for _, id := range ids {
		menu, ok := r.menus[id]
		if !ok || menu.StoreID != storeID || !menu.IsActive {
			continue
		}
		result = append(result, menu)
	}
	return result, nil
}

type fakeCustomerClient struct {
	cars map[int64]*customerservice.Car
}

func (c *fakeCustomerClient) GetCustomerCar(_ context.Context, customerID, carID int64) (*customerservice.Car, error) {
	car, ok := c.cars[carID]
	if !ok {
		return nil, customerservice.ErrCarNotFound
	}
	if car.CustomerID != customerID {
		return nil, customerservice.ErrCarNotOwned
	}
	return car, nil
}

// fakeTxManager выполняет транзакции последовательно, имитируя
// сериализуемую изоляцию
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// --- fixture ---

type fixture struct {
	uc              *UseCase
	reservationRepo *fakeReservationRepo
	storeRepo       *fakeStoreRepo
	menuRepo        *fakeMenuRepo
	clock           *fixedClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	open := types.TimeString("09:00")
	closeTime := types.TimeString("18:00")

	storeRepository := &fakeStoreRepo{
		store: &domain.Store{
			ID:                  1,
			OwnerMemberID:       100,
			Name:                "Мойка на Ленина",
			HourlyCapacity:      2,
			SlotDurationMinutes: 30,
		},
		hours: map[time.Weekday]*domain.OperatingHour{
			time.Tuesday: {StoreID: 1, DayOfWeek: time.Tuesday, IsOpen: true, OpenTime: &open, CloseTime: &closeTime},
		},
		holidays: map[string]bool{},
	}

	menuRepository := &fakeMenuRepo{
		menus: map[int64]*domain.Menu{
			10: {ID: 10, StoreID: 1, Name: "Мойка кузова", Price: decimal.NewFromInt(20000), DurationMinutes: 30, IsActive: true},
			11: {ID: 11, StoreID: 1, Name: "Химчистка салона", Price: decimal.NewFromInt(25000), DurationMinutes: 30, IsActive: true},
			12: {ID: 12, StoreID: 1, Name: "Старая услуга", Price: decimal.NewFromInt(5000), DurationMinutes: 15, IsActive: false},
		},
	}

	customerClient := &fakeCustomerClient{
		cars: map[int64]*customerservice.Car{
			7: {ID: 7, CustomerID: 50, Brand: "Toyota", Model: "Camry"},
		},
	}

	reservationRepository := &fakeReservationRepo{}
	clock := &fixedClock{now: time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)}

	uc := NewUseCase(reservationRepository, storeRepository, menuRepository, customerClient, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = clock

	return &fixture{
		uc:              uc,
		reservationRepo: reservationRepository,
		storeRepo:       storeRepository,
		menuRepo:        menuRepository,
		clock:           clock,
	}
}

func validRequest() *Request {
	return &Request{
		CustomerID: 50,
		StoreID:    1,
		CarID:      7,
		Date:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), // вторник
		StartTime:  types.TimeString("10:00"),
		MenuIDs:    []int64{10, 11},
	}
}

// --- tests ---

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(50), resp.CustomerID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, 60, resp.EstimatedDurationMinutes)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(45000)))
	assert.True(t, resp.DiscountAmount.IsZero())
	assert.True(t, resp.FinalAmount.Equal(decimal.NewFromInt(45000)))
	require.Len(t, resp.Menus, 2)
	assert.Equal(t, "Мойка кузова", resp.Menus[0].MenuName)
	assert.Equal(t, 1, resp.Menus[0].Quantity)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"ZeroCustomerID", func(req *Request) { req.CustomerID = 0 }},
		{"ZeroStoreID", func(req *Request) { req.StoreID = 0 }},
		{"NegativeCarID", func(req *Request) { req.CarID = -1 }},
		{"ZeroDate", func(req *Request) { req.Date = time.Time{} }},
		{"EmptyStartTime", func(req *Request) { req.StartTime = "" }},
		{"BadStartTimeFormat", func(req *Request) { req.StartTime = "10:00:00" }},
		{"NoMenus", func(req *Request) { req.MenuIDs = nil }},
		{"DuplicateMenus", func(req *Request) { req.MenuIDs = []int64{10, 10} }},
		{"NegativeMenuID", func(req *Request) { req.MenuIDs = []int64{-5} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_StoreNotFound(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.StoreID = 999

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestExecute_CarErrors(t *testing.T) {
	f := newFixture(t)

	t.Run("CarNotFound", func(t *testing.T) {
		req := validRequest()
		req.CarID = 999

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrCarNotFound)
	})

	t.Run("CarNotOwned", func(t *testing.T) {
		req := validRequest()
		req.CustomerID = 51

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrCarNotOwned)
	})
}

func TestExecute_MenuNotFound(t *testing.T) {
	f := newFixture(t)

	t.Run("UnknownMenu", func(t *testing.T) {
		req := validRequest()
		req.MenuIDs = []int64{10, 999}

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrMenuNotFound)
	})

	t.Run("InactiveMenu", func(t *testing.T) {
		req := validRequest()
		req.MenuIDs = []int64{12}

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrMenuNotFound)
	})
}

func TestExecute_DateInPast(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.Date = time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_StoreClosed(t *testing.T) {
	f := newFixture(t)

	t.Run("Holiday", func(t *testing.T) {
		f.storeRepo.holidays["2026-09-15"] = true
		defer delete(f.storeRepo.holidays, "2026-09-15")

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrStoreClosed)
	})

	t.Run("NoScheduleForWeekday", func(t *testing.T) {
		req := validRequest()
		req.Date = time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC) // среда - расписания нет

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrStoreClosed)
	})

	t.Run("DayMarkedClosed", func(t *testing.T) {
		hour := f.storeRepo.hours[time.Tuesday]
		hour.IsOpen = false
		defer func() { hour.IsOpen = true }()

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrStoreClosed)
	})
}

func TestExecute_InvalidTimeSlot(t *testing.T) {
	f := newFixture(t)

	t.Run("OffGrid", func(t *testing.T) {
		req := validRequest()
		req.StartTime = types.TimeString("10:15")

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("TooCloseToClosing", func(t *testing.T) {
		// С шагом 15 минут слот 17:45 помещается до закрытия,
		// но нарушает буфер в 30 минут
		f.storeRepo.store.SlotDurationMinutes = 15
		defer func() { f.storeRepo.store.SlotDurationMinutes = 30 }()

		req := validRequest()
		req.StartTime = types.TimeString("17:45")

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})
}

func TestExecute_PastTime(t *testing.T) {
	f := newFixture(t)

	// Сегодняшний день, время слота раньше текущего
	f.clock.now = time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	req := validRequest()
	req.StartTime = types.TimeString("10:00")

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPastTime)
}

func TestExecute_SlotFull(t *testing.T) {
	f := newFixture(t)

	// Занимаем оба места слота 10:00
	for i := 0; i < 2; i++ {
		_, err := f.uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotFull)

	// Соседний слот остается доступным
	req := validRequest()
	req.StartTime = types.TimeString("10:30")
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_TerminalReservationsDoNotOccupySlot(t *testing.T) {
	f := newFixture(t)

	dateTime := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	f.reservationRepo.reservations = []*domain.Reservation{
		{ID: 90, StoreID: 1, DateTime: dateTime, Status: domain.StatusCancelled},
		{ID: 91, StoreID: 1, DateTime: dateTime, Status: domain.StatusRejected},
		{ID: 92, StoreID: 1, DateTime: dateTime, Status: domain.StatusPending},
	}
	f.reservationRepo.nextID = 92

	// Одно активное из трех - второе место свободно
	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_ConcurrentRequestsRespectCapacity(t *testing.T) {
	f := newFixture(t)

	const workers = 8

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = f.uc.Execute(context.Background(), validRequest())
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrSlotFull)
		}
	}
	assert.Equal(t, 2, succeeded)
	assert.Len(t, f.reservationRepo.reservations, 2)
}

// Порядок проверок фиксирован: прошедший момент, затем расписание и
// сетка слотов, затем праздники. При нескольких нарушениях сразу
// клиент получает ошибку самой ранней проверки
func TestExecute_ValidationOrder(t *testing.T) {
	t.Run("OffGridBeatsHoliday", func(t *testing.T) {
		f := newFixture(t)
		f.storeRepo.holidays["2026-09-15"] = true

		req := validRequest()
		req.StartTime = types.TimeString("08:00") // до открытия, мимо сетки

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("PastTimeBeatsMissingSchedule", func(t *testing.T) {
		f := newFixture(t)
		f.clock.now = time.Date(2026, 9, 16, 12, 0, 0, 0, time.UTC) // среда - расписания нет

		req := validRequest()
		req.Date = time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)
		req.StartTime = types.TimeString("10:00")

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrPastTime)
	})

	t.Run("PastDateBeatsHoliday", func(t *testing.T) {
		f := newFixture(t)
		f.storeRepo.holidays["2026-09-13"] = true

		req := validRequest()
		req.Date = time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}
