package get_customer_reservations

import (
	"context"

	"github.com/CaravaProject/carava-carwash/internal/service/reservations/models"
)

type ReservationsService interface {
	GetActiveReservations(ctx context.Context, customerID int64) (*models.ReservationListResponse, error)
	GetHistory(ctx context.Context, req *models.GetHistoryRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
