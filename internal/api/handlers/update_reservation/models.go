package update_reservation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/CaravaProject/carava-carwash/internal/domain"
	updateReservation "github.com/CaravaProject/carava-carwash/internal/usecase/update_reservation"
	"github.com/CaravaProject/carava-carwash/pkg/types"
)

// UpdateReservationRequest HTTP request model
// Незаполненные поля наследуются от исходной брони
type UpdateReservationRequest struct {
	CustomerID int64   `json:"customerId"`
	Date       *string `json:"date,omitempty"`      // "2025-10-15"
	StartTime  *string `json:"startTime,omitempty"` // "10:00"
	MenuIDs    []int64 `json:"menuIds,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID                       int64           `json:"id"`
	ReplacedReservationID    int64           `json:"replacedReservationId"`
	CustomerID               int64           `json:"customerId"`
	StoreID                  int64           `json:"storeId"`
	CarID                    int64           `json:"carId"`
	Date                     string          `json:"date"`
	StartTime                string          `json:"startTime"`
	EstimatedDurationMinutes int             `json:"estimatedDurationMinutes"`
	Status                   string          `json:"status"`
	TotalAmount              decimal.Decimal `json:"totalAmount"`
	DiscountAmount           decimal.Decimal `json:"discountAmount"`
	FinalAmount              decimal.Decimal `json:"finalAmount"`
	CustomerRequest          *string         `json:"customerRequest,omitempty"`
	Menus                    []MenuItem      `json:"menus"`
	CreatedAt                string          `json:"createdAt"`
	UpdatedAt                string          `json:"updatedAt"`
}

// MenuItem снимок позиции меню в составе брони
type MenuItem struct {
	MenuID          int64           `json:"menuId"`
	MenuName        string          `json:"menuName"`
	MenuDescription *string         `json:"menuDescription,omitempty"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	Quantity        int             `json:"quantity"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	DurationMinutes int             `json:"durationMinutes"`
	CategoryName    *string         `json:"categoryName,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateReservationRequest) ToUseCaseRequest(reservationID int64) (*updateReservation.Request, error) {
	req := &updateReservation.Request{
		ReservationID: reservationID,
		CustomerID:    r.CustomerID,
		NewMenuIDs:    r.MenuIDs,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.NewDate = &date
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.NewTime = &startTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateReservation.Response) *ReservationResponse {
	menus := make([]MenuItem, 0, len(resp.Menus))
	for _, m := range resp.Menus {
		menus = append(menus, MenuItem{
			MenuID:          m.MenuID,
			MenuName:        m.MenuName,
			MenuDescription: m.MenuDescription,
			UnitPrice:       m.UnitPrice,
			Quantity:        m.Quantity,
			TotalPrice:      m.TotalPrice,
			DurationMinutes: m.DurationMinutes,
			CategoryName:    m.CategoryName,
		})
	}

	return &ReservationResponse{
		ID:                       resp.ID,
		ReplacedReservationID:    resp.ReplacedReservationID,
		CustomerID:               resp.CustomerID,
		StoreID:                  resp.StoreID,
		CarID:                    resp.CarID,
		Date:                     resp.Date.Format(domain.DateFormat),
		StartTime:                resp.StartTime.String(),
		EstimatedDurationMinutes: resp.EstimatedDurationMinutes,
		Status:                   resp.Status,
		TotalAmount:              resp.TotalAmount,
		DiscountAmount:           resp.DiscountAmount,
		FinalAmount:              resp.FinalAmount,
		CustomerRequest:          resp.CustomerRequest,
		Menus:                    menus,
		CreatedAt:                resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:                resp.UpdatedAt.Format(time.RFC3339),
	}
}
