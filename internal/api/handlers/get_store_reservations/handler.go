package get_store_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/CaravaProject/carava-carwash/internal/api/handlers"
	"github.com/CaravaProject/carava-carwash/internal/api/middleware"
	"github.com/CaravaProject/carava-carwash/internal/domain"
	"github.com/CaravaProject/carava-carwash/internal/service/owner"
	ownerModels "github.com/CaravaProject/carava-carwash/internal/service/owner/models"
)

const (
	msgInvalidStoreID = "некорректный ID точки"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus  = "некорректный статус брони"
	msgUnauthorized   = "не указан ID пользователя"
	msgForbidden      = "нет доступа к броням этой точки"
	msgStoreNotFound  = "точка обслуживания не найдена"
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

// Handle GET /api/v1/stores/{storeId}/reservations
// Query параметры: date, startDate, endDate, status, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, err := strconv.ParseInt(vars["storeId"], 10, 64)
	if err != nil || storeID <= 0 {
		h.logger.Warn("GET /stores/{id}/reservations - Invalid store ID: %s", vars["storeId"])
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /stores/%d/reservations - Missing user ID", storeID)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	req := &ownerModels.GetStoreReservationsRequest{
		OwnerID: ownerID,
		StoreID: storeID,
	}

	query := r.URL.Query()

	if raw := query.Get("date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /stores/%d/reservations - Invalid date: %v", storeID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /stores/%d/reservations - Invalid startDate: %v", storeID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /stores/%d/reservations - Invalid endDate: %v", storeID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		// Конец периода включительно - сдвигаем на конец дня
		endOfDay := endDate.Add(24*time.Hour - time.Second)
		req.EndDate = &endOfDay
	}

	if raw := query.Get("status"); raw != "" {
		if _, err := ownerModels.ToDomainStatus(raw); err != nil {
			h.logger.Warn("GET /stores/%d/reservations - Invalid status: %s", storeID, raw)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		req.Status = &raw
	}

	if raw := query.Get("includeInactive"); raw != "" {
		req.IncludeInactive, _ = strconv.ParseBool(raw)
	}

	result, err := h.service.GetStoreReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, owner.ErrStoreNotFound):
			h.logger.Warn("GET /stores/%d/reservations - Store not found", storeID)
			handlers.RespondNotFound(w, msgStoreNotFound)

		case errors.Is(err, owner.ErrAccessDenied):
			h.logger.Warn("GET /stores/%d/reservations - Access denied for owner id=%d", storeID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, owner.ErrInvalidInput):
			h.logger.Warn("GET /stores/%d/reservations - Invalid input: %v", storeID, err)
			handlers.RespondBadRequest(w, msgInvalidStoreID)

		default:
			h.logger.Error("GET /stores/%d/reservations - Failed to get reservations: %v", storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stores/%d/reservations - Returned %d reservations to owner id=%d",
		storeID, len(result.Reservations), ownerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
