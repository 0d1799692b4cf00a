package check_availability

import (
	"time"

	"github.com/CaravaProject/carava-carwash/pkg/types"
)

// Request модель запроса проверки доступности слота
type Request struct {
	StoreID int64            // ID точки обслуживания
	Date    time.Time        // Дата (без времени)
	Time    types.TimeString // Время слота
}

// Response модель ответа о доступности слота
// Проблемы валидации (прошлое, выходной, не по сетке) не являются ошибками -
// слот просто недоступен, причина в Message
type Response struct {
	Available      bool   // Можно ли забронировать слот
	AvailableCount int    // Оставшиеся места (0, если слот недоступен)
	TotalCapacity  int    // Вместимость слота
	Message        string // Причина недоступности (пусто при Available=true)
}
