package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 30
	DefaultHourlyCapacity      = 1
	DefaultMenuQuantity        = 1
)

// Business validation constants
const (
	// MinServiceBufferMinutes минимальный запас до закрытия:
	// бронь не может начинаться позже, чем closeTime - 30 минут,
	// иначе услуга не успеет завершиться до конца рабочего дня
	MinServiceBufferMinutes = 30

	MaxCustomerRequestLength = 500
	MaxReasonLength          = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, учитываемые при подсчете занятости слота
// Только активные брони занимают место и могут быть отменены
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// TerminalStatuses конечные статусы: переходы из них запрещены
var TerminalStatuses = []ReservationStatus{
	StatusRejected,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
