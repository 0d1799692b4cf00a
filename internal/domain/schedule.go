package domain

import (
	"github.com/CaravaProject/carava-carwash/pkg/types"
)

// GenerateSlots генерирует упорядоченный список слотов рабочего дня.
// Первый слот начинается в openTime, шаг slotDurationMinutes.
// Слот попадает в результат, только если целиком помещается до closeTime
// (граница закрытия исключена). Пустой список при openTime >= closeTime
// или некорректном шаге.
//
// Функция чистая и детерминированная: результат пересчитывается на каждый
// вызов и не кешируется
func GenerateSlots(openTime, closeTime types.TimeString, slotDurationMinutes int) []types.TimeString {
	slots := make([]types.TimeString, 0)

	if slotDurationMinutes <= 0 {
		return slots
	}
	if !openTime.IsBefore(closeTime) {
		return slots
	}

	current := openTime
	for current.IsBefore(closeTime) {
		slotEnd, err := current.AddMinutes(slotDurationMinutes)
		if err != nil {
			return slots
		}
		// AddMinutes не переходит через полночь: если конец слота "раньше"
		// начала, значит слот вышел за пределы суток
		if slotEnd.IsAfter(closeTime) || !current.IsBefore(slotEnd) {
			break
		}

		slots = append(slots, current)
		current = slotEnd
	}

	return slots
}

// TimeSlot слот с рассчитанной доступностью
type TimeSlot struct {
	Time           types.TimeString
	AvailableCount int // свободные места
	TotalCapacity  int // общий лимит точки (hourlyCapacity), не зависит от броней
	IsAvailable    bool
}

// IsFull возвращает true, если свободных мест нет
func (s *TimeSlot) IsFull() bool {
	return s.AvailableCount <= 0
}

// OccupancyRate возвращает занятость слота в процентах (0-100)
func (s *TimeSlot) OccupancyRate() float64 {
	if s.TotalCapacity == 0 {
		return 0
	}
	occupied := s.TotalCapacity - s.AvailableCount
	return float64(occupied) / float64(s.TotalCapacity) * 100
}

// CalculateSlotAvailability считает доступность каждого слота по числу
// активных броней на точное время слота
func CalculateSlotAvailability(
	slots []types.TimeString,
	activeCountByTime map[types.TimeString]int,
	store *Store,
) []TimeSlot {
	result := make([]TimeSlot, len(slots))

	for i, slotTime := range slots {
		available := store.AvailableCapacity(activeCountByTime[slotTime])
		result[i] = TimeSlot{
			Time:           slotTime,
			AvailableCount: available,
			TotalCapacity:  store.HourlyCapacity,
			IsAvailable:    available > 0,
		}
	}

	return result
}
