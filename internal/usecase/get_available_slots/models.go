package get_available_slots

import (
	"time"

	"github.com/CaravaProject/carava-carwash/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	StoreID int64     // ID точки обслуживания
	Date    time.Time // Дата (без времени)
}

// Response модель ответа со слотами на дату
type Response struct {
	StoreID int64     // ID точки
	Date    time.Time // Дата
	Slots   []Slot    // Слоты в хронологическом порядке (пусто, если точка закрыта)
}

// Slot слот с информацией о доступности
type Slot struct {
	Time           types.TimeString // Время начала слота
	AvailableCount int              // Оставшиеся места
	TotalCapacity  int              // Вместимость слота
	IsAvailable    bool             // Есть ли свободные места
}
