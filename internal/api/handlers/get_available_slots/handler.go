package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/CaravaProject/carava-carwash/internal/api/handlers"
	"github.com/CaravaProject/carava-carwash/internal/domain"
	getAvailableSlots "github.com/CaravaProject/carava-carwash/internal/usecase/get_available_slots"
)

const (
	msgInvalidStoreID = "некорректный ID точки"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStoreNotFound  = "точка обслуживания не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/stores/{storeId}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, err := strconv.ParseInt(vars["storeId"], 10, 64)
	if err != nil || storeID <= 0 {
		h.logger.Warn("GET /stores/{id}/available-slots - Invalid store ID: %s", vars["storeId"])
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /stores/%d/available-slots - Invalid date: %v", storeID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		StoreID: storeID,
		Date:    date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrStoreNotFound):
			h.logger.Warn("GET /stores/%d/available-slots - Store not found", storeID)
			handlers.RespondNotFound(w, msgStoreNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /stores/%d/available-slots - Invalid input: %v", storeID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /stores/%d/available-slots - Failed to get slots: %v", storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stores/%d/available-slots - Returned %d slots for %s",
		storeID, len(result.Slots), date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
