package create_reservation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/CaravaProject/carava-carwash/internal/domain"
	createReservation "github.com/CaravaProject/carava-carwash/internal/usecase/create_reservation"
	"github.com/CaravaProject/carava-carwash/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	CustomerID      int64   `json:"customerId"`
	StoreID         int64   `json:"storeId"`
	CarID           int64   `json:"carId"`
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "10:00"
	MenuIDs         []int64 `json:"menuIds"`
	CustomerRequest *string `json:"customerRequest,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID                       int64           `json:"id"`
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
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		CustomerID:      r.CustomerID,
		StoreID:         r.StoreID,
		CarID:           r.CarID,
		Date:            date,
		StartTime:       startTime,
		MenuIDs:         r.MenuIDs,
		CustomerRequest: r.CustomerRequest,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
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
