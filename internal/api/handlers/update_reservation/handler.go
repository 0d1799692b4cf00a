package update_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/CaravaProject/carava-carwash/internal/api/handlers"
	updateReservation "github.com/CaravaProject/carava-carwash/internal/usecase/update_reservation"
	"github.com/CaravaProject/carava-carwash/pkg/txmanager"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты или времени"
	msgNotFound             = "бронь не найдена"
	msgForbidden            = "нет доступа к этой брони"
	msgNotPending           = "изменить можно только неподтвержденную бронь"
	msgMenuNotFound         = "одна или несколько услуг не найдены"
	msgInvalidDateValue     = "дата брони уже прошла"
	msgStoreClosed          = "точка не работает в выбранную дату"
	msgInvalidTimeSlot      = "некорректный временной слот"
	msgPastTime             = "время брони уже прошло"
	msgSlotFull             = "все места на это время заняты"
	msgConflict             = "бронь изменена конкурентно, повторите запрос"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		h.logger.Warn("PUT /reservations/{id} - Invalid reservation ID: %s", vars["reservationId"])
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/%d - Invalid request body: %v", reservationID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID)
	if err != nil {
		h.logger.Warn("PUT /reservations/%d - Failed to parse request: %v", reservationID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateReservation.ErrReservationNotFound):
			h.logger.Warn("PUT /reservations/%d - Reservation not found", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateReservation.ErrNotOwner):
			h.logger.Warn("PUT /reservations/%d - Access denied for customer_id=%d", reservationID, req.CustomerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateReservation.ErrNotPending):
			h.logger.Warn("PUT /reservations/%d - Reservation is not pending", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgNotPending)

		case errors.Is(err, updateReservation.ErrMenuNotFound):
			h.logger.Warn("PUT /reservations/%d - Menu not found", reservationID)
			handlers.RespondNotFound(w, msgMenuNotFound)

		case errors.Is(err, updateReservation.ErrInvalidDate):
			h.logger.Warn("PUT /reservations/%d - Invalid date", reservationID)
			handlers.RespondBadRequest(w, msgInvalidDateValue)

		case errors.Is(err, updateReservation.ErrStoreClosed):
			h.logger.Warn("PUT /reservations/%d - Store closed", reservationID)
			handlers.RespondBadRequest(w, msgStoreClosed)

		case errors.Is(err, updateReservation.ErrInvalidTimeSlot):
			h.logger.Warn("PUT /reservations/%d - Invalid time slot", reservationID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, updateReservation.ErrPastTime):
			h.logger.Warn("PUT /reservations/%d - Past time", reservationID)
			handlers.RespondBadRequest(w, msgPastTime)

		case errors.Is(err, updateReservation.ErrSlotFull):
			h.logger.Warn("PUT /reservations/%d - Slot full", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, updateReservation.ErrConcurrentUpdate),
			errors.Is(err, txmanager.ErrSerializationFailure):
			h.logger.Warn("PUT /reservations/%d - Concurrent update", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgConflict)

		case errors.Is(err, updateReservation.ErrInvalidInput):
			h.logger.Warn("PUT /reservations/%d - Invalid input: %v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /reservations/%d - Failed to update reservation: %v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PUT /reservations/%d - Reservation replaced by id=%d", reservationID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
