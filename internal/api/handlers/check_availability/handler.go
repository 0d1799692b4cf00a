package check_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/CaravaProject/carava-carwash/internal/api/handlers"
	"github.com/CaravaProject/carava-carwash/internal/domain"
	checkAvailability "github.com/CaravaProject/carava-carwash/internal/usecase/check_availability"
	"github.com/CaravaProject/carava-carwash/pkg/types"
)

const (
	msgInvalidStoreID = "некорректный ID точки"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime    = "некорректный формат времени, ожидается HH:MM"
	msgStoreNotFound  = "точка обслуживания не найдена"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Available      bool   `json:"available"`
	AvailableCount int    `json:"availableCount"`
	TotalCapacity  int    `json:"totalCapacity"`
	Message        string `json:"message,omitempty"`
}

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/stores/{storeId}/availability?date=YYYY-MM-DD&time=HH:MM
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, err := strconv.ParseInt(vars["storeId"], 10, 64)
	if err != nil || storeID <= 0 {
		h.logger.Warn("GET /stores/{id}/availability - Invalid store ID: %s", vars["storeId"])
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	query := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /stores/%d/availability - Invalid date: %v", storeID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	slotTime, err := types.NewTimeStringFromString(query.Get("time"))
	if err != nil {
		h.logger.Warn("GET /stores/%d/availability - Invalid time: %v", storeID, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		StoreID: storeID,
		Date:    date,
		Time:    slotTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrStoreNotFound):
			h.logger.Warn("GET /stores/%d/availability - Store not found", storeID)
			handlers.RespondNotFound(w, msgStoreNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /stores/%d/availability - Invalid input: %v", storeID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /stores/%d/availability - Failed to check availability: %v", storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stores/%d/availability - date=%s time=%s available=%t",
		storeID, date.Format(domain.DateFormat), slotTime, result.Available)
	handlers.RespondJSON(w, http.StatusOK, AvailabilityResponse{
		Available:      result.Available,
		AvailableCount: result.AvailableCount,
		TotalCapacity:  result.TotalCapacity,
		Message:        result.Message,
	})
}
