package get_statistics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/CaravaProject/carava-carwash/internal/api/handlers"
	"github.com/CaravaProject/carava-carwash/internal/api/middleware"
	"github.com/CaravaProject/carava-carwash/internal/domain"
	getStatistics "github.com/CaravaProject/carava-carwash/internal/usecase/get_statistics"
)

const (
	msgInvalidStoreID = "некорректный ID точки"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod  = "некорректный период"
	msgUnauthorized   = "не указан ID пользователя"
	msgForbidden      = "нет доступа к статистике этой точки"
	msgStoreNotFound  = "точка обслуживания не найдена"
)

type Handler struct {
	useCase GetStatisticsUseCase
	logger  Logger
}

func NewHandler(useCase GetStatisticsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/stores/{storeId}/statistics?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, err := strconv.ParseInt(vars["storeId"], 10, 64)
	if err != nil || storeID <= 0 {
		h.logger.Warn("GET /stores/{id}/statistics - Invalid store ID: %s", vars["storeId"])
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /stores/%d/statistics - Missing user ID", storeID)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	query := r.URL.Query()

	startDate, err := time.Parse(domain.DateFormat, query.Get("startDate"))
	if err != nil {
		h.logger.Warn("GET /stores/%d/statistics - Invalid startDate: %v", storeID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	endDate, err := time.Parse(domain.DateFormat, query.Get("endDate"))
	if err != nil {
		h.logger.Warn("GET /stores/%d/statistics - Invalid endDate: %v", storeID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getStatistics.Request{
		StoreID:   storeID,
		OwnerID:   ownerID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, getStatistics.ErrStoreNotFound):
			h.logger.Warn("GET /stores/%d/statistics - Store not found", storeID)
			handlers.RespondNotFound(w, msgStoreNotFound)

		case errors.Is(err, getStatistics.ErrNotStoreOwner):
			h.logger.Warn("GET /stores/%d/statistics - Access denied for owner id=%d", storeID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, getStatistics.ErrInvalidInput):
			h.logger.Warn("GET /stores/%d/statistics - Invalid input: %v", storeID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /stores/%d/statistics - Failed to get statistics: %v", storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stores/%d/statistics - Returned statistics for period %s..%s to owner id=%d",
		storeID, query.Get("startDate"), query.Get("endDate"), ownerID)
	handlers.RespondJSON(w, http.StatusOK, toHTTPResponse(result))
}
