package get_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/CaravaProject/carava-carwash/internal/api/handlers"
	"github.com/CaravaProject/carava-carwash/internal/api/middleware"
	reservationsService "github.com/CaravaProject/carava-carwash/internal/service/reservations"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgMissingUserID        = "отсутствует идентификатор пользователя"
	msgNotFound             = "бронь не найдена"
	msgForbidden            = "нет доступа к этой брони"
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

// Handle GET /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		h.logger.Warn("GET /reservations/{id} - Invalid reservation ID: %s", vars["reservationId"])
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations/%d - Missing user ID in context", reservationID)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetByID(r.Context(), reservationID, requesterID)
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrReservationNotFound):
			h.logger.Warn("GET /reservations/%d - Reservation not found", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservationsService.ErrAccessDenied):
			h.logger.Warn("GET /reservations/%d - Access denied for user_id=%d", reservationID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /reservations/%d - Failed to fetch reservation: %v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations/%d - Reservation fetched by user_id=%d", reservationID, requesterID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
