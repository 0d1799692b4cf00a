package get_customer_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/CaravaProject/carava-carwash/internal/api/handlers"
	"github.com/CaravaProject/carava-carwash/internal/api/middleware"
	reservationsService "github.com/CaravaProject/carava-carwash/internal/service/reservations"
	"github.com/CaravaProject/carava-carwash/internal/service/reservations/models"
)

const (
	msgInvalidCustomerID = "некорректный ID клиента"
	msgInvalidParams     = "некорректные параметры запроса"
	msgMissingUserID     = "отсутствует идентификатор пользователя"
	msgForbidden         = "нет доступа к броням другого клиента"
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

// HandleActive GET /api/v1/customers/{customerId}/reservations
func (h *Handler) HandleActive(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetActiveReservations(r.Context(), customerID)
	if err != nil {
		h.respondServiceError(w, r, customerID, err)
		return
	}

	h.logger.Info("GET /customers/%d/reservations - Fetched %d active reservations",
		customerID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleHistory GET /api/v1/customers/{customerId}/reservations/history
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}

	req := models.GetHistoryRequest{CustomerID: customerID}

	// Опциональная пагинация
	query := r.URL.Query()
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.Limit = limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.Offset = offset
	}

	result, err := h.service.GetHistory(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, r, customerID, err)
		return
	}

	h.logger.Info("GET /customers/%d/reservations/history - Fetched %d reservations",
		customerID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// customerID извлекает и проверяет ID клиента из пути
// Клиент может смотреть только собственные брони
func (h *Handler) customerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	customerID, err := strconv.ParseInt(vars["customerId"], 10, 64)
	if err != nil || customerID <= 0 {
		h.logger.Warn("GET /customers/{id}/reservations - Invalid customer ID: %s", vars["customerId"])
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return 0, false
	}

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /customers/%d/reservations - Missing user ID in context", customerID)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return 0, false
	}

	if requesterID != customerID {
		h.logger.Warn("GET /customers/%d/reservations - Access denied for user_id=%d", customerID, requesterID)
		handlers.RespondForbidden(w, msgForbidden)
		return 0, false
	}

	return customerID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, customerID int64, err error) {
	if errors.Is(err, reservationsService.ErrInvalidInput) {
		h.logger.Warn("%s %s - Invalid input: %v", r.Method, r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	h.logger.Error("%s %s - Failed to fetch reservations for customer_id=%d: %v",
		r.Method, r.URL.Path, customerID, err)
	handlers.RespondInternalError(w)
}
