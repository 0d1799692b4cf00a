package owner

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CaravaProject/carava-carwash/internal/domain"
	reservationRepo "github.com/CaravaProject/carava-carwash/internal/infra/storage/reservation"
	storeRepo "github.com/CaravaProject/carava-carwash/internal/infra/storage/store"
	ownerModels "github.com/CaravaProject/carava-carwash/internal/service/owner/models"
	"github.com/CaravaProject/carava-carwash/pkg/ptr"
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
	reservations map[int64]*domain.Reservation
	lastFilter   domain.ReservationFilter
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[int64]*domain.Reservation)}
}

func (r *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := r.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	clone := *res
	return &clone, nil
}

func (r *fakeReservationRepo) GetByStoreWithFilter(_ context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	r.lastFilter = filter

	result := make([]*domain.Reservation, 0)
	for _, res := range r.reservations {
		if res.StoreID != filter.StoreID {
			continue
		}
		if filter.Status != nil && res.Status != *filter.Status {
			continue
		}
		if filter.OnlyActive && !res.IsActive() {
			continue
		}
		result = append(result, res)
	}
	return result, nil
}

func (r *fakeReservationRepo) UpdateStatusIf(_ context.Context, id int64, expected, next domain.ReservationStatus, reason *string) error {
	res, ok := r.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	if res.Status != expected {
		return reservationRepo.ErrStaleStatus
	}
	res.Status = next
	switch next {
	case domain.StatusRejected:
		res.RejectionReason = reason
	case domain.StatusCancelled:
		res.CancellationReason = reason
	}
	return nil
}

type fakeStoreRepo struct {
	stores map[int64]*domain.Store
}

func (r *fakeStoreRepo) GetByID(_ context.Context, id int64) (*domain.Store, error) {
	store, ok := r.stores[id]
	if !ok {
		return nil, storeRepo.ErrStoreNotFound
	}
	return store, nil
}

type fixture struct {
	svc   *Service
	repo  *fakeReservationRepo
	clock *fixedClock
}

func newFixture() *fixture {
	repo := newFakeReservationRepo()
	stores := &fakeStoreRepo{stores: map[int64]*domain.Store{
		1: {ID: 1, OwnerMemberID: 100},
		2: {ID: 2, OwnerMemberID: 200},
	}}
	clock := &fixedClock{now: time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)}

	svc := NewService(repo, stores, nopLogger{})
	svc.timeProvider = clock

	return &fixture{svc: svc, repo: repo, clock: clock}
}

func seedReservation(repo *fakeReservationRepo, id, storeID int64, status domain.ReservationStatus, dateTime time.Time) *domain.Reservation {
	res := &domain.Reservation{
		ID:          id,
		CustomerID:  50,
		StoreID:     storeID,
		CarID:       7,
		DateTime:    dateTime,
		Status:      status,
		FinalAmount: decimal.NewFromInt(20000),
	}
	repo.reservations[id] = res
	return res
}

var futureMoment = time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

func TestTransition_Confirm(t *testing.T) {
	f := newFixture()
	seedReservation(f.repo, 1, 1, domain.StatusPending, futureMoment)

	resp, err := f.svc.Transition(context.Background(), 1, 1, &ownerModels.TransitionRequest{
		OwnerID: 100,
		Action:  "confirm",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, domain.StatusConfirmed, f.repo.reservations[1].Status)
}

func TestTransition_RejectWithReason(t *testing.T) {
	f := newFixture()
	seedReservation(f.repo, 1, 1, domain.StatusPending, futureMoment)

	resp, err := f.svc.Transition(context.Background(), 1, 1, &ownerModels.TransitionRequest{
		OwnerID: 100,
		Action:  "reject",
		Reason:  ptr.Ptr("Нет свободных мастеров"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusRejected), resp.Status)
	require.NotNil(t, resp.RejectionReason)
	assert.Equal(t, "Нет свободных мастеров", *resp.RejectionReason)
	assert.Nil(t, resp.CancellationReason)
}

func TestTransition_OwnerCancelWithReason(t *testing.T) {
	f := newFixture()
	seedReservation(f.repo, 1, 1, domain.StatusPending, futureMoment)

	resp, err := f.svc.Transition(context.Background(), 1, 1, &ownerModels.TransitionRequest{
		OwnerID: 100,
		Action:  "cancel",
		Reason:  ptr.Ptr("Поломка оборудования"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "Поломка оборудования", *resp.CancellationReason)
	assert.Nil(t, resp.RejectionReason)
}

func TestTransition_ServiceFlow(t *testing.T) {
	f := newFixture()
	seedReservation(f.repo, 1, 1, domain.StatusConfirmed, futureMoment)

	_, err := f.svc.Transition(context.Background(), 1, 1, &ownerModels.TransitionRequest{OwnerID: 100, Action: "start"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, f.repo.reservations[1].Status)

	_, err = f.svc.Transition(context.Background(), 1, 1, &ownerModels.TransitionRequest{OwnerID: 100, Action: "complete"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, f.repo.reservations[1].Status)
}

func TestTransition_NoShow(t *testing.T) {
	t.Run("BeforeReservationTime", func(t *testing.T) {
		f := newFixture()
		seedReservation(f.repo, 1, 1, domain.StatusConfirmed, futureMoment)

		_, err := f.svc.Transition(context.Background(), 1, 1, &ownerModels.TransitionRequest{
			OwnerID: 100,
			Action:  "no_show",
		})
		assert.ErrorIs(t, err, ErrNoShowTooEarly)
		assert.Equal(t, domain.StatusConfirmed, f.repo.reservations[1].Status)
	})

	t.Run("AfterReservationTime", func(t *testing.T) {
		f := newFixture()
		seedReservation(f.repo, 1, 1, domain.StatusConfirmed, futureMoment)
		f.clock.now = futureMoment.Add(15 * time.Minute)

		resp, err := f.svc.Transition(context.Background(), 1, 1, &ownerModels.TransitionRequest{
			OwnerID: 100,
			Action:  "no_show",
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusNoShow), resp.Status)
	})
}

func TestTransition_Failures(t *testing.T) {
	t.Run("UnknownAction", func(t *testing.T) {
		f := newFixture()
		seedReservation(f.repo, 1, 1, domain.StatusPending, futureMoment)

		_, err := f.svc.Transition(context.Background(), 1, 1, &ownerModels.TransitionRequest{OwnerID: 100, Action: "approve"})
		assert.ErrorIs(t, err, ErrUnknownAction)
	})

	t.Run("InvalidTransition", func(t *testing.T) {
		f := newFixture()
		seedReservation(f.repo, 1, 1, domain.StatusCompleted, futureMoment)

		_, err := f.svc.Transition(context.Background(), 1, 1, &ownerModels.TransitionRequest{OwnerID: 100, Action: "cancel"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("NotOwner", func(t *testing.T) {
		f := newFixture()
		seedReservation(f.repo, 1, 1, domain.StatusPending, futureMoment)

		_, err := f.svc.Transition(context.Background(), 1, 1, &ownerModels.TransitionRequest{OwnerID: 200, Action: "confirm"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("ReservationOfAnotherStore", func(t *testing.T) {
		f := newFixture()
		seedReservation(f.repo, 1, 2, domain.StatusPending, futureMoment)

		// Бронь чужой точки дает ошибку доступа, а не "не найдено"
		_, err := f.svc.Transition(context.Background(), 1, 1, &ownerModels.TransitionRequest{OwnerID: 100, Action: "confirm"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("StoreNotFound", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Transition(context.Background(), 999, 1, &ownerModels.TransitionRequest{OwnerID: 100, Action: "confirm"})
		assert.ErrorIs(t, err, ErrStoreNotFound)
	})

	t.Run("ReservationNotFound", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Transition(context.Background(), 1, 999, &ownerModels.TransitionRequest{OwnerID: 100, Action: "confirm"})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("ConcurrentStatusChange", func(t *testing.T) {
		f := newFixture()
		seedReservation(f.repo, 1, 1, domain.StatusPending, futureMoment)
		f.svc.reservationRepo = &flippingRepo{fakeReservationRepo: f.repo}

		_, err := f.svc.Transition(context.Background(), 1, 1, &ownerModels.TransitionRequest{OwnerID: 100, Action: "confirm"})
		assert.ErrorIs(t, err, ErrConcurrentUpdate)
	})
}

func TestGetStoreReservations(t *testing.T) {
	f := newFixture()
	seedReservation(f.repo, 1, 1, domain.StatusPending, futureMoment)
	seedReservation(f.repo, 2, 1, domain.StatusConfirmed, futureMoment.Add(time.Hour))
	seedReservation(f.repo, 3, 1, domain.StatusCompleted, futureMoment.Add(2*time.Hour))
	seedReservation(f.repo, 4, 2, domain.StatusPending, futureMoment)

	t.Run("ActiveByDefault", func(t *testing.T) {
		resp, err := f.svc.GetStoreReservations(context.Background(), &ownerModels.GetStoreReservationsRequest{
			OwnerID: 100,
			StoreID: 1,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Reservations, 2)
		assert.True(t, f.repo.lastFilter.OnlyActive)
	})

	t.Run("IncludeInactive", func(t *testing.T) {
		resp, err := f.svc.GetStoreReservations(context.Background(), &ownerModels.GetStoreReservationsRequest{
			OwnerID:         100,
			StoreID:         1,
			IncludeInactive: true,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Reservations, 3)
	})

	t.Run("ExplicitStatusOverridesOnlyActive", func(t *testing.T) {
		resp, err := f.svc.GetStoreReservations(context.Background(), &ownerModels.GetStoreReservationsRequest{
			OwnerID: 100,
			StoreID: 1,
			Status:  ptr.Ptr("completed"),
		})
		require.NoError(t, err)
		assert.Len(t, resp.Reservations, 1)
		assert.False(t, f.repo.lastFilter.OnlyActive)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		_, err := f.svc.GetStoreReservations(context.Background(), &ownerModels.GetStoreReservationsRequest{
			OwnerID: 100,
			StoreID: 1,
			Status:  ptr.Ptr("unknown"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("NotOwner", func(t *testing.T) {
		_, err := f.svc.GetStoreReservations(context.Background(), &ownerModels.GetStoreReservationsRequest{
			OwnerID: 200,
			StoreID: 1,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

// flippingRepo подтверждает бронь сразу после чтения, имитируя
// конкурентное действие
type flippingRepo struct {
	*fakeReservationRepo
	flipped bool
}

func (r *flippingRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := r.fakeReservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.flipped {
		r.flipped = true
		_ = r.fakeReservationRepo.UpdateStatusIf(ctx, id, domain.StatusPending, domain.StatusConfirmed, nil)
	}
	return res, nil
}
