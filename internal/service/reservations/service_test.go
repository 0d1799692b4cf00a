package reservations

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
	"github.com/CaravaProject/carava-carwash/internal/service/reservations/models"
	"github.com/CaravaProject/carava-carwash/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation
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

func (r *fakeReservationRepo) GetActiveByCustomer(_ context.Context, customerID int64) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0)
	for _, res := range r.reservations {
		if res.CustomerID == customerID && res.IsActive() {
			result = append(result, res)
		}
	}
	return result, nil
}

func (r *fakeReservationRepo) GetHistoryByCustomer(_ context.Context, customerID int64, _, _ uint64) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0)
	for _, res := range r.reservations {
		if res.CustomerID == customerID && res.Status.IsTerminal() {
			result = append(result, res)
		}
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

func newFixture() (*Service, *fakeReservationRepo) {
	repo := newFakeReservationRepo()
	stores := &fakeStoreRepo{stores: map[int64]*domain.Store{
		1: {ID: 1, OwnerMemberID: 100},
	}}
	return NewService(repo, stores, nopLogger{}), repo
}

func seedReservation(repo *fakeReservationRepo, id int64, status domain.ReservationStatus) *domain.Reservation {
	res := &domain.Reservation{
		ID:          id,
		CustomerID:  50,
		StoreID:     1,
		CarID:       7,
		DateTime:    time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		Status:      status,
		TotalAmount: decimal.NewFromInt(20000),
		FinalAmount: decimal.NewFromInt(20000),
	}
	repo.reservations[id] = res
	return res
}

func TestGetByID(t *testing.T) {
	svc, repo := newFixture()
	seedReservation(repo, 1, domain.StatusPending)

	t.Run("Author", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, 50)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "2026-09-15", resp.Date)
		assert.Equal(t, "10:00", resp.StartTime)
	})

	t.Run("StoreOwner", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, 100)
		assert.NoError(t, err)
	})

	t.Run("Stranger", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, 77)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 999, 50)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestGetActiveReservations(t *testing.T) {
	svc, repo := newFixture()
	seedReservation(repo, 1, domain.StatusPending)
	seedReservation(repo, 2, domain.StatusConfirmed)
	seedReservation(repo, 3, domain.StatusCompleted)

	resp, err := svc.GetActiveReservations(context.Background(), 50)
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 2)

	_, err = svc.GetActiveReservations(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetHistory(t *testing.T) {
	svc, repo := newFixture()
	seedReservation(repo, 1, domain.StatusPending)
	seedReservation(repo, 2, domain.StatusCompleted)
	seedReservation(repo, 3, domain.StatusNoShow)

	resp, err := svc.GetHistory(context.Background(), &models.GetHistoryRequest{CustomerID: 50, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 2)

	_, err = svc.GetHistory(context.Background(), &models.GetHistoryRequest{CustomerID: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel(t *testing.T) {
	t.Run("PendingWithReason", func(t *testing.T) {
		svc, repo := newFixture()
		seedReservation(repo, 1, domain.StatusPending)

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
			CustomerID:         50,
			CancellationReason: ptr.Ptr("Изменились планы"),
		})
		require.NoError(t, err)

		stored := repo.reservations[1]
		assert.Equal(t, domain.StatusCancelled, stored.Status)
		require.NotNil(t, stored.CancellationReason)
		assert.Equal(t, "Изменились планы", *stored.CancellationReason)
		// Причина отказа не затрагивается отменой
		assert.Nil(t, stored.RejectionReason)
	})

	t.Run("Confirmed", func(t *testing.T) {
		svc, repo := newFixture()
		seedReservation(repo, 1, domain.StatusConfirmed)

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{CustomerID: 50})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, repo.reservations[1].Status)
	})

	t.Run("TerminalStatus", func(t *testing.T) {
		svc, repo := newFixture()
		seedReservation(repo, 1, domain.StatusCompleted)

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{CustomerID: 50})
		assert.ErrorIs(t, err, ErrCannotCancel)
		assert.Equal(t, domain.StatusCompleted, repo.reservations[1].Status)
	})

	t.Run("NotAuthor", func(t *testing.T) {
		svc, repo := newFixture()
		seedReservation(repo, 1, domain.StatusPending)

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{CustomerID: 77})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc, _ := newFixture()

		err := svc.Cancel(context.Background(), 999, &models.CancelReservationRequest{CustomerID: 50})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("ConcurrentStatusChange", func(t *testing.T) {
		svc, repo := newFixture()
		seedReservation(repo, 1, domain.StatusPending)
		svc.reservationRepo = &flippingRepo{fakeReservationRepo: repo}

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{CustomerID: 50})
		assert.ErrorIs(t, err, ErrConcurrentUpdate)
	})
}

// flippingRepo подтверждает бронь сразу после чтения, имитируя
// конкурентное действие владельца
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
