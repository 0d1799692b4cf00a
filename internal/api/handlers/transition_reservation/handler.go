package transition_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/CaravaProject/carava-carwash/internal/api/handlers"
	"github.com/CaravaProject/carava-carwash/internal/service/owner"
	ownerModels "github.com/CaravaProject/carava-carwash/internal/service/owner/models"
)

const (
	msgInvalidStoreID       = "некорректный ID точки"
	msgInvalidReservationID = "некорректный ID брони"
	msgInvalidBody          = "некорректное тело запроса"
	msgInvalidOwnerID       = "некорректный ID владельца"
	msgUnknownAction        = "неизвестное действие над бронью"
	msgNoShowTooEarly       = "неявку можно отметить только после времени брони"
	msgInvalidTransition    = "действие недопустимо для текущего статуса брони"
	msgConcurrentUpdate     = "бронь была изменена параллельно, повторите запрос"
	msgForbidden            = "нет доступа к броням этой точки"
	msgStoreNotFound        = "точка обслуживания не найдена"
	msgReservationNotFound  = "бронь не найдена"
)

type Handler struct {
	service OwnerService
	logger  Logger
}

func NewHandler(service OwnerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/stores/{storeId}/reservations/{reservationId}/{action}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	storeID, err := strconv.ParseInt(vars["storeId"], 10, 64)
	if err != nil || storeID <= 0 {
		h.logger.Warn("PATCH transition - Invalid store ID: %s", vars["storeId"])
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		h.logger.Warn("PATCH transition - Invalid reservation ID: %s", vars["reservationId"])
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	action := vars["action"]

	var body TransitionHTTPRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PATCH /stores/%d/reservations/%d/%s - Invalid body: %v",
			storeID, reservationID, action, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if body.OwnerID <= 0 {
		h.logger.Warn("PATCH /stores/%d/reservations/%d/%s - Invalid owner ID: %d",
			storeID, reservationID, action, body.OwnerID)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	result, err := h.service.Transition(r.Context(), storeID, reservationID, &ownerModels.TransitionRequest{
		OwnerID: body.OwnerID,
		Action:  action,
		Reason:  body.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, owner.ErrUnknownAction):
			h.logger.Warn("PATCH /stores/%d/reservations/%d/%s - Unknown action", storeID, reservationID, action)
			handlers.RespondBadRequest(w, msgUnknownAction)

		case errors.Is(err, owner.ErrNoShowTooEarly):
			h.logger.Warn("PATCH /stores/%d/reservations/%d/%s - No-show too early", storeID, reservationID, action)
			handlers.RespondBadRequest(w, msgNoShowTooEarly)

		case errors.Is(err, owner.ErrInvalidTransition):
			h.logger.Warn("PATCH /stores/%d/reservations/%d/%s - Invalid transition", storeID, reservationID, action)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, owner.ErrConcurrentUpdate):
			h.logger.Warn("PATCH /stores/%d/reservations/%d/%s - Concurrent update", storeID, reservationID, action)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentUpdate)

		case errors.Is(err, owner.ErrAccessDenied):
			h.logger.Warn("PATCH /stores/%d/reservations/%d/%s - Access denied for owner id=%d",
				storeID, reservationID, action, body.OwnerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, owner.ErrStoreNotFound):
			h.logger.Warn("PATCH /stores/%d/reservations/%d/%s - Store not found", storeID, reservationID, action)
			handlers.RespondNotFound(w, msgStoreNotFound)

		case errors.Is(err, owner.ErrReservationNotFound):
			h.logger.Warn("PATCH /stores/%d/reservations/%d/%s - Reservation not found", storeID, reservationID, action)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, owner.ErrInvalidInput):
			h.logger.Warn("PATCH /stores/%d/reservations/%d/%s - Invalid input: %v",
				storeID, reservationID, action, err)
			handlers.RespondBadRequest(w, msgInvalidBody)

		default:
			h.logger.Error("PATCH /stores/%d/reservations/%d/%s - Failed to transition: %v",
				storeID, reservationID, action, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /stores/%d/reservations/%d/%s - Reservation moved to status=%s",
		storeID, reservationID, action, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
