package get_statistics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/CaravaProject/carava-carwash/internal/domain"
	"github.com/CaravaProject/carava-carwash/pkg/types"
)

const topMenusLimit = 5

// buildSummary собирает сводные показатели за период
// Доли считаются от общего числа броней; пустой период дает нулевые доли
func buildSummary(reservations []*domain.Reservation) Summary {
	summary := Summary{TotalRevenue: decimal.Zero}

	for _, reservation := range reservations {
		summary.TotalReservations++
		switch reservation.Status {
		case domain.StatusCompleted:
			summary.CompletedCount++
			summary.TotalRevenue = summary.TotalRevenue.Add(reservation.FinalAmount)
		case domain.StatusNoShow:
			summary.NoShowCount++
		}
	}

	if summary.TotalReservations > 0 {
		total := float64(summary.TotalReservations)
		summary.CompletionRate = float64(summary.CompletedCount) / total
		summary.NoShowRate = float64(summary.NoShowCount) / total
	}

	return summary
}

// countByStatus группирует брони по статусам
func countByStatus(reservations []*domain.Reservation) map[string]int {
	counts := make(map[string]int)
	for _, reservation := range reservations {
		counts[string(reservation.Status)]++
	}
	return counts
}

// buildDateStats собирает дневную разбивку в хронологическом порядке
// Выручка за день считается только по завершенным броням
func buildDateStats(reservations []*domain.Reservation) []DateStats {
	byDate := make(map[time.Time]*DateStats)

	for _, reservation := range reservations {
		date := reservation.Date()
		stats, ok := byDate[date]
		if !ok {
			stats = &DateStats{Date: date, Revenue: decimal.Zero}
			byDate[date] = stats
		}
		stats.Count++
		if reservation.Status == domain.StatusCompleted {
			stats.Revenue = stats.Revenue.Add(reservation.FinalAmount)
		}
	}

	result := make([]DateStats, 0, len(byDate))
	for _, stats := range byDate {
		result = append(result, *stats)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	return result
}

// buildTimeSlotStats собирает разбивку по времени слота
func buildTimeSlotStats(reservations []*domain.Reservation) []TimeSlotStats {
	type slotAccumulator struct {
		count int
		total decimal.Decimal
	}

	bySlot := make(map[string]*slotAccumulator)
	for _, reservation := range reservations {
		key := reservation.TimeOfDay().String()
		acc, ok := bySlot[key]
		if !ok {
			acc = &slotAccumulator{total: decimal.Zero}
			bySlot[key] = acc
		}
		acc.count++
		acc.total = acc.total.Add(reservation.FinalAmount)
	}

	result := make([]TimeSlotStats, 0, len(bySlot))
	for key, acc := range bySlot {
		result = append(result, TimeSlotStats{
			Time:          types.TimeString(key),
			Count:         acc.count,
			AverageAmount: acc.total.Div(decimal.NewFromInt(int64(acc.count))),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Time < result[j].Time
	})

	return result
}

// buildTopMenus собирает топ услуг по числу заказов
// При равном числе заказов порядок фиксируется по названию
func buildTopMenus(reservations []*domain.Reservation) []MenuStats {
	byName := make(map[string]*MenuStats)

	for _, reservation := range reservations {
		for _, item := range reservation.Menus {
			stats, ok := byName[item.MenuName]
			if !ok {
				stats = &MenuStats{MenuName: item.MenuName, Revenue: decimal.Zero}
				byName[item.MenuName] = stats
			}
			stats.Count += item.Quantity
			stats.Revenue = stats.Revenue.Add(item.TotalPrice)
		}
	}

	result := make([]MenuStats, 0, len(byName))
	for _, stats := range byName {
		result = append(result, *stats)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].MenuName < result[j].MenuName
	})

	if len(result) > topMenusLimit {
		result = result[:topMenusLimit]
	}

	return result
}
