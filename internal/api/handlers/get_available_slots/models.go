package get_available_slots

import (
	"github.com/CaravaProject/carava-carwash/internal/domain"
	getAvailableSlots "github.com/CaravaProject/carava-carwash/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	StoreID int64          `json:"storeId"`
	Date    string         `json:"date"`
	Slots   []SlotResponse `json:"slots"`
}

// SlotResponse слот с информацией о доступности
type SlotResponse struct {
	Time           string `json:"time"`
	AvailableCount int    `json:"availableCount"`
	TotalCapacity  int    `json:"totalCapacity"`
	IsAvailable    bool   `json:"isAvailable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			Time:           slot.Time.String(),
			AvailableCount: slot.AvailableCount,
			TotalCapacity:  slot.TotalCapacity,
			IsAvailable:    slot.IsAvailable,
		})
	}

	return &SlotsResponse{
		StoreID: resp.StoreID,
		Date:    resp.Date.Format(domain.DateFormat),
		Slots:   slots,
	}
}
