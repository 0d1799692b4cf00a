package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CaravaProject/carava-carwash/pkg/types"
)

func TestNextStatus(t *testing.T) {
	cases := []struct {
		name    string
		current ReservationStatus
		action  ReservationAction
		want    ReservationStatus
		wantErr bool
	}{
		{"ConfirmPending", StatusPending, ActionConfirm, StatusConfirmed, false},
		{"RejectPending", StatusPending, ActionReject, StatusRejected, false},
		{"CancelPending", StatusPending, ActionCancel, StatusCancelled, false},
		{"StartConfirmed", StatusConfirmed, ActionStart, StatusInProgress, false},
		{"NoShowConfirmed", StatusConfirmed, ActionMarkNoShow, StatusNoShow, false},
		{"CancelConfirmed", StatusConfirmed, ActionCancel, StatusCancelled, false},
		{"CompleteInProgress", StatusInProgress, ActionComplete, StatusCompleted, false},
		{"CancelInProgress", StatusInProgress, ActionCancel, StatusCancelled, false},

		{"ConfirmConfirmed", StatusConfirmed, ActionConfirm, "", true},
		{"StartPending", StatusPending, ActionStart, "", true},
		{"NoShowPending", StatusPending, ActionMarkNoShow, "", true},
		{"CompletePending", StatusPending, ActionComplete, "", true},
		{"CancelCompleted", StatusCompleted, ActionCancel, "", true},
		{"ConfirmCancelled", StatusCancelled, ActionConfirm, "", true},
		{"StartNoShow", StatusNoShow, ActionStart, "", true},
		{"RejectRejected", StatusRejected, ActionReject, "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := NextStatus(tc.current, tc.action)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrTransitionNotAllowed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, next)
		})
	}
}

func TestParseAction(t *testing.T) {
	for _, raw := range []string{"confirm", "reject", "start", "complete", "no_show", "cancel"} {
		action, err := ParseAction(raw)
		require.NoError(t, err)
		assert.Equal(t, ReservationAction(raw), action)
	}

	_, err := ParseAction("approve")
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = ParseAction("")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestStatusClassification(t *testing.T) {
	for _, status := range ActiveStatuses {
		assert.True(t, status.IsActive(), "status %s", status)
		assert.False(t, status.IsTerminal(), "status %s", status)
	}
	for _, status := range TerminalStatuses {
		assert.True(t, status.IsTerminal(), "status %s", status)
		assert.False(t, status.IsActive(), "status %s", status)
	}
}

func TestStoreCapacity(t *testing.T) {
	store := &Store{HourlyCapacity: 2}

	assert.Equal(t, 2, store.AvailableCapacity(0))
	assert.Equal(t, 1, store.AvailableCapacity(1))
	assert.Equal(t, 0, store.AvailableCapacity(2))
	// Переполнение не дает отрицательных значений
	assert.Equal(t, 0, store.AvailableCapacity(5))

	assert.True(t, store.CanAcceptMoreReservations(1))
	assert.False(t, store.CanAcceptMoreReservations(2))
}

func TestAuthorizeStoreOwner(t *testing.T) {
	store := &Store{ID: 1, OwnerMemberID: 42}

	assert.NoError(t, AuthorizeStoreOwner(store, 42))
	assert.ErrorIs(t, AuthorizeStoreOwner(store, 7), ErrNotStoreOwner)
	assert.ErrorIs(t, AuthorizeStoreOwner(nil, 42), ErrNotStoreOwner)
}

func TestReservationHelpers(t *testing.T) {
	moment := time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)
	r := &Reservation{
		DateTime:                 moment,
		EstimatedDurationMinutes: 60,
		Status:                   StatusConfirmed,
		Menus: []ReservationMenu{
			{MenuID: 3},
			{MenuID: 8},
		},
	}

	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), r.Date())
	assert.Equal(t, types.TimeString("10:30"), r.TimeOfDay())
	assert.Equal(t, moment.Add(time.Hour), r.EndDateTime())
	assert.Equal(t, []int64{3, 8}, r.MenuIDs())
	assert.True(t, r.IsActive())

	assert.False(t, r.IsPast(moment.Add(-time.Minute)))
	assert.False(t, r.IsPast(moment))
	assert.True(t, r.IsPast(moment.Add(time.Minute)))
}

func TestNewReservationMenuFromMenu(t *testing.T) {
	menu := &Menu{
		ID:              5,
		Name:            "Комплексная мойка",
		Price:           decimal.NewFromInt(25000),
		DurationMinutes: 30,
	}

	snapshot := NewReservationMenuFromMenu(menu, 2)
	assert.Equal(t, int64(5), snapshot.MenuID)
	assert.Equal(t, 2, snapshot.Quantity)
	assert.True(t, snapshot.TotalPrice.Equal(decimal.NewFromInt(50000)))
	// Длительность - за единицу, суммируется на уровне брони
	assert.Equal(t, 30, snapshot.DurationMinutes)

	defaulted := NewReservationMenuFromMenu(menu, 0)
	assert.Equal(t, DefaultMenuQuantity, defaulted.Quantity)
	assert.True(t, defaulted.TotalPrice.Equal(decimal.NewFromInt(25000)))
}

func TestHolidayContains(t *testing.T) {
	h := &Holiday{
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, h.Contains(time.Date(2026, 1, 1, 15, 30, 0, 0, time.UTC)))
	assert.True(t, h.Contains(time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)))
	assert.False(t, h.Contains(time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, h.Contains(time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)))
}

func TestOperatingHourIsWorkable(t *testing.T) {
	open := types.TimeString("09:00")
	close := types.TimeString("18:00")

	workable := &OperatingHour{IsOpen: true, OpenTime: &open, CloseTime: &close}
	assert.True(t, workable.IsWorkable())

	closed := &OperatingHour{IsOpen: false, OpenTime: &open, CloseTime: &close}
	assert.False(t, closed.IsWorkable())

	noHours := &OperatingHour{IsOpen: true}
	assert.False(t, noHours.IsWorkable())

	var nilHour *OperatingHour
	assert.False(t, nilHour.IsWorkable())
}
