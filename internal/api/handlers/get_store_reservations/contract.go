package get_store_reservations

import (
	"context"

	ownerModels "github.com/CaravaProject/carava-carwash/internal/service/owner/models"
	resModels "github.com/CaravaProject/carava-carwash/internal/service/reservations/models"
)

type OwnerService interface {
	GetStoreReservations(ctx context.Context, req *ownerModels.GetStoreReservationsRequest) (*resModels.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
