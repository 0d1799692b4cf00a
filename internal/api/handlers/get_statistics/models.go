package get_statistics

import (
	"github.com/shopspring/decimal"

	"github.com/CaravaProject/carava-carwash/internal/domain"
	getStatistics "github.com/CaravaProject/carava-carwash/internal/usecase/get_statistics"
)

// StatisticsHTTPResponse HTTP модель статистики точки за период
type StatisticsHTTPResponse struct {
	StoreID   int64  `json:"storeId"`
	StartDate string `json:"startDate"` // YYYY-MM-DD
	EndDate   string `json:"endDate"`   // YYYY-MM-DD

	Summary    SummaryHTTP        `json:"summary"`
	ByStatus   map[string]int     `json:"byStatus"`
	ByDate     []DateStatsHTTP    `json:"byDate"`
	ByTimeSlot []TimeSlotStatsHTTP `json:"byTimeSlot"`
	TopMenus   []MenuStatsHTTP    `json:"topMenus"`
}

type SummaryHTTP struct {
	TotalReservations int             `json:"totalReservations"`
	CompletedCount    int             `json:"completedCount"`
	NoShowCount       int             `json:"noShowCount"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	CompletionRate    float64         `json:"completionRate"`
	NoShowRate        float64         `json:"noShowRate"`
}

type DateStatsHTTP struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

type TimeSlotStatsHTTP struct {
	Time          string          `json:"time"` // HH:MM
	Count         int             `json:"count"`
	AverageAmount decimal.Decimal `json:"averageAmount"`
}

type MenuStatsHTTP struct {
	MenuName string          `json:"menuName"`
	Count    int             `json:"count"`
	Revenue  decimal.Decimal `json:"revenue"`
}

func toHTTPResponse(res *getStatistics.Response) StatisticsHTTPResponse {
	byDate := make([]DateStatsHTTP, 0, len(res.ByDate))
	for _, d := range res.ByDate {
		byDate = append(byDate, DateStatsHTTP{
			Date:    d.Date.Format(domain.DateFormat),
			Count:   d.Count,
			Revenue: d.Revenue,
		})
	}

	byTimeSlot := make([]TimeSlotStatsHTTP, 0, len(res.ByTimeSlot))
	for _, t := range res.ByTimeSlot {
		byTimeSlot = append(byTimeSlot, TimeSlotStatsHTTP{
			Time:          string(t.Time),
			Count:         t.Count,
			AverageAmount: t.AverageAmount,
		})
	}

	topMenus := make([]MenuStatsHTTP, 0, len(res.TopMenus))
	for _, m := range res.TopMenus {
		topMenus = append(topMenus, MenuStatsHTTP{
			MenuName: m.MenuName,
			Count:    m.Count,
			Revenue:  m.Revenue,
		})
	}

	return StatisticsHTTPResponse{
		StoreID:   res.StoreID,
		StartDate: res.StartDate.Format(domain.DateFormat),
		EndDate:   res.EndDate.Format(domain.DateFormat),
		Summary: SummaryHTTP{
			TotalReservations: res.Summary.TotalReservations,
			CompletedCount:    res.Summary.CompletedCount,
			NoShowCount:       res.Summary.NoShowCount,
			TotalRevenue:      res.Summary.TotalRevenue,
			CompletionRate:    res.Summary.CompletionRate,
			NoShowRate:        res.Summary.NoShowRate,
		},
		ByStatus:   res.ByStatus,
		ByDate:     byDate,
		ByTimeSlot: byTimeSlot,
		TopMenus:   topMenus,
	}
}
