package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/CaravaProject/carava-carwash/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending    ReservationStatus = "pending"     // ожидает подтверждения владельца
	StatusConfirmed  ReservationStatus = "confirmed"   // подтверждена владельцем
	StatusRejected   ReservationStatus = "rejected"    // отклонена владельцем
	StatusInProgress ReservationStatus = "in_progress" // услуга выполняется
	StatusCompleted  ReservationStatus = "completed"   // услуга завершена
	StatusCancelled  ReservationStatus = "cancelled"   // отменена клиентом или владельцем
	StatusNoShow     ReservationStatus = "no_show"     // клиент не явился
)

// IsActive возвращает true для статусов, занимающих место в слоте
func (s ReservationStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusInProgress
}

// IsTerminal возвращает true для конечных статусов
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusCompleted ||
		s == StatusCancelled || s == StatusNoShow
}

// ReservationAction действие над бронью, меняющее её статус
type ReservationAction string

const (
	ActionConfirm    ReservationAction = "confirm"
	ActionReject     ReservationAction = "reject"
	ActionStart      ReservationAction = "start"
	ActionComplete   ReservationAction = "complete"
	ActionMarkNoShow ReservationAction = "no_show"
	ActionCancel     ReservationAction = "cancel"
)

// ErrTransitionNotAllowed возвращается при недопустимом переходе статуса
var ErrTransitionNotAllowed = errors.New("domain: status transition not allowed")

// ErrUnknownAction возвращается при неизвестном действии над бронью
var ErrUnknownAction = errors.New("domain: unknown reservation action")

// ParseAction разбирает строковое представление действия над бронью
func ParseAction(s string) (ReservationAction, error) {
	switch ReservationAction(s) {
	case ActionConfirm, ActionReject, ActionStart, ActionComplete, ActionMarkNoShow, ActionCancel:
		return ReservationAction(s), nil
	default:
		return "", ErrUnknownAction
	}
}

// transitions единая таблица переходов статусов.
// Все операции (подтверждение, отмена, завершение и т.д.) сверяются
// именно с ней - проверки статусов не дублируются по операциям
var transitions = map[ReservationStatus]map[ReservationAction]ReservationStatus{
	StatusPending: {
		ActionConfirm: StatusConfirmed,
		ActionReject:  StatusRejected,
		ActionCancel:  StatusCancelled,
	},
	StatusConfirmed: {
		ActionStart:      StatusInProgress,
		ActionMarkNoShow: StatusNoShow,
		ActionCancel:     StatusCancelled,
	},
	StatusInProgress: {
		ActionComplete: StatusCompleted,
		ActionCancel:   StatusCancelled,
	},
}

// NextStatus возвращает статус, в который переводит action из current
// Возвращает ErrTransitionNotAllowed, если переход запрещен таблицей
func NextStatus(current ReservationStatus, action ReservationAction) (ReservationStatus, error) {
	allowed, ok := transitions[current]
	if !ok {
		// Терминальный или неизвестный статус - переходов нет
		return "", ErrTransitionNotAllowed
	}

	next, ok := allowed[action]
	if !ok {
		return "", ErrTransitionNotAllowed
	}

	return next, nil
}

// CanTransition возвращает true, если action допустим из current
func CanTransition(current ReservationStatus, action ReservationAction) bool {
	_, err := NextStatus(current, action)
	return err == nil
}

// Reservation represents a carwash service reservation
type Reservation struct {
	ID         int64
	CustomerID int64
	StoreID    int64
	CarID      int64

	// DateTime момент брони: дата и время хранятся только вместе
	DateTime                 time.Time
	EstimatedDurationMinutes int
	Status                   ReservationStatus

	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal

	CustomerRequest    *string
	RejectionReason    *string // заполняется только в статусе rejected
	CancellationReason *string // заполняется только в статусе cancelled

	// Menus снимки позиций меню на момент брони, порядок фиксирован
	Menus []ReservationMenu

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Date возвращает дату брони (время обнулено)
func (r *Reservation) Date() time.Time {
	y, m, d := r.DateTime.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.DateTime.Location())
}

// TimeOfDay возвращает время брони в формате HH:MM
func (r *Reservation) TimeOfDay() types.TimeString {
	return types.NewTimeString(r.DateTime)
}

// EndDateTime возвращает расчетное время окончания услуги
func (r *Reservation) EndDateTime() time.Time {
	return r.DateTime.Add(time.Duration(r.EstimatedDurationMinutes) * time.Minute)
}

// IsPast возвращает true, если момент брони уже прошел
func (r *Reservation) IsPast(now time.Time) bool {
	return now.After(r.DateTime)
}

// IsActive возвращает true, если бронь занимает место в слоте
func (r *Reservation) IsActive() bool {
	return r.Status.IsActive()
}

// MenuIDs возвращает идентификаторы меню всех позиций брони
func (r *Reservation) MenuIDs() []int64 {
	ids := make([]int64, len(r.Menus))
	for i, m := range r.Menus {
		ids[i] = m.MenuID
	}
	return ids
}

// ReservationMenu снимок позиции меню на момент создания брони.
// После создания не перечитывает данные меню: историческая бронь
// не зависит от последующих изменений цен и названий
type ReservationMenu struct {
	ID            int64
	ReservationID int64

	MenuID          int64
	MenuName        string
	MenuDescription *string
	UnitPrice       decimal.Decimal
	Quantity        int
	TotalPrice      decimal.Decimal
	DurationMinutes int
	CategoryName    *string
}

// NewReservationMenuFromMenu создает снимок позиции из актуального меню
func NewReservationMenuFromMenu(menu *Menu, quantity int) ReservationMenu {
	if quantity < 1 {
		quantity = DefaultMenuQuantity
	}

	return ReservationMenu{
		MenuID:          menu.ID,
		MenuName:        menu.Name,
		MenuDescription: menu.Description,
		UnitPrice:       menu.Price,
		Quantity:        quantity,
		TotalPrice:      menu.Price.Mul(decimal.NewFromInt(int64(quantity))),
		DurationMinutes: menu.DurationMinutes,
		CategoryName:    menu.CategoryName,
	}
}

// ReservationFilter фильтр выборки броней точки
type ReservationFilter struct {
	StoreID       int64              // Обязательный параметр
	Date          *time.Time         // Конкретная дата (опционально)
	StartDateTime *time.Time         // Начало периода (опционально)
	EndDateTime   *time.Time         // Конец периода (опционально)
	Status        *ReservationStatus // Фильтр по статусу (опционально)
	OnlyActive    bool               // Только активные брони (pending/confirmed/in_progress)
}
