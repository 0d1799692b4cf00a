package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/CaravaProject/carava-carwash/internal/api/handlers"
	reservationsService "github.com/CaravaProject/carava-carwash/internal/service/reservations"
	"github.com/CaravaProject/carava-carwash/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "бронь не найдена"
	msgForbidden            = "нет доступа к этой брони"
	msgCannotCancel         = "бронь уже завершена и не может быть отменена"
	msgConflict             = "бронь изменена конкурентно, повторите запрос"
)

type Handler struct {
	service ReservationsService
	logger  Logger
}

func NewHandler(service ReservationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid reservation ID: %s", vars["reservationId"])
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req models.CancelReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/%d/cancel - Invalid request body: %v", reservationID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Cancel(r.Context(), reservationID, &req); err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/%d/cancel - Reservation not found", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservationsService.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/%d/cancel - Access denied for customer_id=%d",
				reservationID, req.CustomerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservationsService.ErrCannotCancel):
			h.logger.Warn("PATCH /reservations/%d/cancel - Cannot cancel", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		case errors.Is(err, reservationsService.ErrConcurrentUpdate):
			h.logger.Warn("PATCH /reservations/%d/cancel - Concurrent update", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgConflict)

		case errors.Is(err, reservationsService.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/%d/cancel - Invalid input: %v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /reservations/%d/cancel - Failed to cancel: %v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/%d/cancel - Reservation cancelled by customer_id=%d",
		reservationID, req.CustomerID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
