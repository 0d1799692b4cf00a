package create_reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createReservation "github.com/CaravaProject/carava-carwash/internal/usecase/create_reservation"
	"github.com/CaravaProject/carava-carwash/pkg/txmanager"
	"github.com/CaravaProject/carava-carwash/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubUseCase struct {
	resp *createReservation.Response
	err  error
	got  *createReservation.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func doRequest(t *testing.T, uc *stubUseCase, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewReader(payload))
	w := httptest.NewRecorder()

	NewHandler(uc, nopLogger{}).Handle(w, req)
	return w
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"customerId": 50,
		"storeId":    1,
		"carId":      7,
		"date":       "2026-09-15",
		"startTime":  "10:00",
		"menuIds":    []int64{10, 11},
	}
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{
		resp: &createReservation.Response{
			ID:                       1,
			CustomerID:               50,
			StoreID:                  1,
			CarID:                    7,
			Date:                     time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
			StartTime:                types.TimeString("10:00"),
			EstimatedDurationMinutes: 60,
			Status:                   "pending",
			TotalAmount:              decimal.NewFromInt(45000),
			FinalAmount:              decimal.NewFromInt(45000),
		},
	}

	w := doRequest(t, uc, validBody())

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp ReservationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2026-09-15", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "pending", resp.Status)

	// Запрос дошел до use case с разобранными датой и временем
	require.NotNil(t, uc.got)
	assert.Equal(t, types.TimeString("10:00"), uc.got.StartTime)
	assert.Equal(t, []int64{10, 11}, uc.got.MenuIDs)
}

func TestHandle_BadRequests(t *testing.T) {
	t.Run("MalformedJSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewReader([]byte("{")))
		w := httptest.NewRecorder()

		NewHandler(&stubUseCase{}, nopLogger{}).Handle(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("BadDate", func(t *testing.T) {
		body := validBody()
		body["date"] = "15.09.2026"

		w := doRequest(t, &stubUseCase{}, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("BadTime", func(t *testing.T) {
		body := validBody()
		body["startTime"] = "10:00:00"

		w := doRequest(t, &stubUseCase{}, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandle_UseCaseErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"SlotFull", createReservation.ErrSlotFull, http.StatusConflict},
		{"SerializationConflict", txmanager.ErrSerializationFailure, http.StatusConflict},
		{"StoreNotFound", createReservation.ErrStoreNotFound, http.StatusNotFound},
		{"CarNotFound", createReservation.ErrCarNotFound, http.StatusNotFound},
		{"MenuNotFound", createReservation.ErrMenuNotFound, http.StatusNotFound},
		{"CarNotOwned", createReservation.ErrCarNotOwned, http.StatusForbidden},
		{"DateInPast", createReservation.ErrInvalidDate, http.StatusBadRequest},
		{"StoreClosed", createReservation.ErrStoreClosed, http.StatusBadRequest},
		{"InvalidTimeSlot", createReservation.ErrInvalidTimeSlot, http.StatusBadRequest},
		{"PastTime", createReservation.ErrPastTime, http.StatusBadRequest},
		{"InvalidInput", createReservation.ErrInvalidInput, http.StatusBadRequest},
		{"Internal", createReservation.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, &stubUseCase{err: tc.err}, validBody())
			assert.Equal(t, tc.status, w.Code)
		})
	}
}
