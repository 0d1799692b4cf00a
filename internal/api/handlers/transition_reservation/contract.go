package transition_reservation

import (
	"context"

	ownerModels "github.com/CaravaProject/carava-carwash/internal/service/owner/models"
	resModels "github.com/CaravaProject/carava-carwash/internal/service/reservations/models"
)

type OwnerService interface {
	Transition(ctx context.Context, storeID, reservationID int64, req *ownerModels.TransitionRequest) (*resModels.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
