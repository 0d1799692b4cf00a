package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CaravaProject/carava-carwash/internal/domain"
	storeRepo "github.com/CaravaProject/carava-carwash/internal/infra/storage/store"
	"github.com/CaravaProject/carava-carwash/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type fakeReservationRepo struct {
	countByDateTime map[string]int
}

func (r *fakeReservationRepo) CountActiveByStoreAndDateTime(_ context.Context, _ int64, dateTime time.Time) (int, error) {
	return r.countByDateTime[dateTime.Format(time.RFC3339)], nil
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

type fixture struct {
	uc           *UseCase
	reservations *fakeReservationRepo
	stores       *fakeStoreRepo
	clock        *fixedClock
}

func newFixture() *fixture {
	open := types.TimeString("09:00")
	closeTime := types.TimeString("18:00")

	stores := &fakeStoreRepo{
		store: &domain.Store{ID: 1, HourlyCapacity: 2, SlotDurationMinutes: 30},
		hours: map[time.Weekday]*domain.OperatingHour{
			time.Tuesday: {StoreID: 1, DayOfWeek: time.Tuesday, IsOpen: true, OpenTime: &open, CloseTime: &closeTime},
		},
		holidays: map[string]bool{},
	}
	reservations := &fakeReservationRepo{countByDateTime: map[string]int{}}
	clock := &fixedClock{now: time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)}

	uc := NewUseCase(reservations, stores, nopLogger{})
	uc.timeProvider = clock

	return &fixture{uc: uc, reservations: reservations, stores: stores, clock: clock}
}

var testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC) // вторник

func TestExecute_Available(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		StoreID: 1,
		Date:    testDate,
		Time:    types.TimeString("10:00"),
	})
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.Equal(t, 2, resp.AvailableCount)
	assert.Equal(t, 2, resp.TotalCapacity)
	assert.Empty(t, resp.Message)
}

func TestExecute_PartiallyOccupied(t *testing.T) {
	f := newFixture()

	slotMoment := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	f.reservations.countByDateTime[slotMoment.Format(time.RFC3339)] = 1

	resp, err := f.uc.Execute(context.Background(), &Request{
		StoreID: 1,
		Date:    testDate,
		Time:    types.TimeString("10:00"),
	})
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.Equal(t, 1, resp.AvailableCount)
}

func TestExecute_UnavailableReasons(t *testing.T) {
	cases := []struct {
		name    string
		prepare func(f *fixture, req *Request)
		message string
	}{
		{
			name: "DateInPast",
			prepare: func(f *fixture, req *Request) {
				req.Date = time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)
			},
			message: msgDateInPast,
		},
		{
			name: "Holiday",
			prepare: func(f *fixture, req *Request) {
				f.stores.holidays["2026-09-15"] = true
			},
			message: msgStoreClosed,
		},
		{
			name: "NoScheduleForWeekday",
			prepare: func(f *fixture, req *Request) {
				req.Date = time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)
			},
			message: msgStoreClosed,
		},
		{
			name: "OffGrid",
			prepare: func(f *fixture, req *Request) {
				req.Time = types.TimeString("10:17")
			},
			message: msgNotOnSlotGrid,
		},
		{
			name: "TooCloseToClosing",
			prepare: func(f *fixture, req *Request) {
				f.stores.store.SlotDurationMinutes = 15
				req.Time = types.TimeString("17:45")
			},
			message: msgTooCloseToClose,
		},
		{
			name: "TimeInPast",
			prepare: func(f *fixture, req *Request) {
				f.clock.now = time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
				req.Time = types.TimeString("10:00")
			},
			message: msgTimeInPast,
		},
		{
			name: "SlotFull",
			prepare: func(f *fixture, req *Request) {
				slotMoment := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
				f.reservations.countByDateTime[slotMoment.Format(time.RFC3339)] = 2
			},
			message: msgSlotFull,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			req := &Request{StoreID: 1, Date: testDate, Time: types.TimeString("10:00")}
			tc.prepare(f, req)

			resp, err := f.uc.Execute(context.Background(), req)
			require.NoError(t, err)

			assert.False(t, resp.Available)
			assert.Zero(t, resp.AvailableCount)
			assert.Equal(t, tc.message, resp.Message)
		})
	}
}

// Проверка не меняет состояние: повторные вызовы дают тот же результат
func TestExecute_Idempotent(t *testing.T) {
	f := newFixture()

	req := &Request{StoreID: 1, Date: testDate, Time: types.TimeString("10:00")}

	first, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture()

	t.Run("StoreNotFound", func(t *testing.T) {
		_, err := f.uc.Execute(context.Background(), &Request{
			StoreID: 999, Date: testDate, Time: types.TimeString("10:00"),
		})
		assert.ErrorIs(t, err, ErrStoreNotFound)
	})

	t.Run("InvalidInput", func(t *testing.T) {
		_, err := f.uc.Execute(context.Background(), &Request{StoreID: 0, Date: testDate, Time: "10:00"})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = f.uc.Execute(context.Background(), &Request{StoreID: 1, Time: "10:00"})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = f.uc.Execute(context.Background(), &Request{StoreID: 1, Date: testDate, Time: "10:00:00"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

// При нескольких причинах недоступности сразу сообщение соответствует
// самой ранней проверке: прошедший момент, расписание, сетка, праздники
func TestExecute_UnavailableReasonOrder(t *testing.T) {
	t.Run("OffGridBeatsHoliday", func(t *testing.T) {
		f := newFixture()
		f.stores.holidays["2026-09-15"] = true

		resp, err := f.uc.Execute(context.Background(), &Request{
			StoreID: 1, Date: testDate, Time: types.TimeString("08:00"), // до открытия
		})
		require.NoError(t, err)
		assert.False(t, resp.Available)
		assert.Equal(t, msgNotOnSlotGrid, resp.Message)
	})

	t.Run("PastTimeBeatsMissingSchedule", func(t *testing.T) {
		f := newFixture()
		f.clock.now = time.Date(2026, 9, 16, 12, 0, 0, 0, time.UTC) // среда - расписания нет

		resp, err := f.uc.Execute(context.Background(), &Request{
			StoreID: 1,
			Date:    time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
			Time:    types.TimeString("10:00"),
		})
		require.NoError(t, err)
		assert.False(t, resp.Available)
		assert.Equal(t, msgTimeInPast, resp.Message)
	})

	t.Run("PastDateBeatsHoliday", func(t *testing.T) {
		f := newFixture()
		f.stores.holidays["2026-09-13"] = true

		resp, err := f.uc.Execute(context.Background(), &Request{
			StoreID: 1,
			Date:    time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC),
			Time:    types.TimeString("10:00"),
		})
		require.NoError(t, err)
		assert.False(t, resp.Available)
		assert.Equal(t, msgDateInPast, resp.Message)
	})
}
