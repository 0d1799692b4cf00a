package create_reservation

import (
	"errors"
	"net/http"

	"github.com/CaravaProject/carava-carwash/internal/api/handlers"
	createReservation "github.com/CaravaProject/carava-carwash/internal/usecase/create_reservation"
	"github.com/CaravaProject/carava-carwash/pkg/txmanager"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStoreNotFound      = "точка обслуживания не найдена"
	msgCarNotFound        = "автомобиль не найден"
	msgCarNotOwned        = "автомобиль принадлежит другому клиенту"
	msgMenuNotFound       = "одна или несколько услуг не найдены"
	msgInvalidDateValue   = "дата брони уже прошла"
	msgStoreClosed        = "точка не работает в выбранную дату"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgPastTime           = "время брони уже прошло"
	msgSlotFull           = "все места на это время заняты"
	msgConflict           = "слот заняли раньше вас, выберите другое время"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createReservation.ErrSlotFull):
			h.logger.Warn("POST /reservations - Slot full: customer_id=%d, store_id=%d", req.CustomerID, req.StoreID)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, txmanager.ErrSerializationFailure):
			// Конкурентная бронь выиграла гонку за слот
			h.logger.Warn("POST /reservations - Serialization failure: customer_id=%d, store_id=%d", req.CustomerID, req.StoreID)
			handlers.RespondError(w, http.StatusConflict, msgConflict)

		case errors.Is(err, createReservation.ErrStoreNotFound):
			h.logger.Warn("POST /reservations - Store not found: store_id=%d", req.StoreID)
			handlers.RespondNotFound(w, msgStoreNotFound)

		case errors.Is(err, createReservation.ErrCarNotFound):
			h.logger.Warn("POST /reservations - Car not found: car_id=%d", req.CarID)
			handlers.RespondNotFound(w, msgCarNotFound)

		case errors.Is(err, createReservation.ErrCarNotOwned):
			h.logger.Warn("POST /reservations - Car not owned: customer_id=%d, car_id=%d", req.CustomerID, req.CarID)
			handlers.RespondForbidden(w, msgCarNotOwned)

		case errors.Is(err, createReservation.ErrMenuNotFound):
			h.logger.Warn("POST /reservations - Menu not found: customer_id=%d, store_id=%d", req.CustomerID, req.StoreID)
			handlers.RespondNotFound(w, msgMenuNotFound)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Invalid date: customer_id=%d, store_id=%d", req.CustomerID, req.StoreID)
			handlers.RespondBadRequest(w, msgInvalidDateValue)

		case errors.Is(err, createReservation.ErrStoreClosed):
			h.logger.Warn("POST /reservations - Store closed: customer_id=%d, store_id=%d", req.CustomerID, req.StoreID)
			handlers.RespondBadRequest(w, msgStoreClosed)

		case errors.Is(err, createReservation.ErrInvalidTimeSlot):
			h.logger.Warn("POST /reservations - Invalid time slot: customer_id=%d, store_id=%d", req.CustomerID, req.StoreID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createReservation.ErrPastTime):
			h.logger.Warn("POST /reservations - Past time: customer_id=%d, store_id=%d", req.CustomerID, req.StoreID)
			handlers.RespondBadRequest(w, msgPastTime)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: customer_id=%d, store_id=%d, error=%v",
				req.CustomerID, req.StoreID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, customer_id=%d, store_id=%d",
		result.ID, req.CustomerID, req.StoreID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
