package get_statistics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/CaravaProject/carava-carwash/pkg/types"
)

// Request модель запроса статистики за период
type Request struct {
	StoreID   int64     // ID точки обслуживания
	OwnerID   int64     // ID владельца (должен владеть точкой)
	StartDate time.Time // Начало периода (включительно)
	EndDate   time.Time // Конец периода (включительно)
}

// Response статистика точки за период
type Response struct {
	StoreID   int64     // ID точки
	StartDate time.Time // Начало периода
	EndDate   time.Time // Конец периода

	Summary    Summary        // Сводка за период
	ByStatus   map[string]int // Количество броней по статусам
	ByDate     []DateStats    // Дневная разбивка в хронологическом порядке
	ByTimeSlot []TimeSlotStats // Разбивка по времени слота
	TopMenus   []MenuStats    // Топ-5 услуг по числу заказов
}

// Summary сводные показатели за период
type Summary struct {
	TotalReservations int             // Всего броней за период
	CompletedCount    int             // Завершенных
	NoShowCount       int             // Неявок
	TotalRevenue      decimal.Decimal // Выручка по завершенным броням
	CompletionRate    float64         // Доля завершенных (0 при пустом периоде)
	NoShowRate        float64         // Доля неявок (0 при пустом периоде)
}

// DateStats показатели за день
type DateStats struct {
	Date    time.Time       // Календарная дата
	Count   int             // Броней за день
	Revenue decimal.Decimal // Выручка по завершенным за день
}

// TimeSlotStats показатели по времени слота
type TimeSlotStats struct {
	Time          types.TimeString // Время слота
	Count         int              // Броней на это время
	AverageAmount decimal.Decimal  // Средний чек по броням слота
}

// MenuStats показатели по услуге
type MenuStats struct {
	MenuName string          // Название услуги на момент брони
	Count    int             // Сколько раз заказана
	Revenue  decimal.Decimal // Сумма по позициям
}
