package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/CaravaProject/carava-carwash/internal/domain"
	"github.com/CaravaProject/carava-carwash/pkg/dbmetrics"
	"github.com/CaravaProject/carava-carwash/pkg/psqlbuilder"
)

// reservationColumns колонки таблицы reservations в порядке сканирования
var reservationColumns = []string{
	"id",
	"customer_id",
	"store_id",
	"car_id",
	"reservation_date_time",
	"estimated_duration_minutes",
	"status",
	"total_amount",
	"discount_amount",
	"final_amount",
	"customer_request",
	"rejection_reason",
	"cancellation_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронь вместе со снимками позиций меню.
// Если в контексте есть активная транзакция, использует её - создание
// брони с проверкой доступности слота обязано выполняться в транзакции,
// иначе вставка брони и её позиций не атомарна
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"customer_id",
			"store_id",
			"car_id",
			"reservation_date_time",
			"estimated_duration_minutes",
			"status",
			"total_amount",
			"discount_amount",
			"final_amount",
			"customer_request",
		).
		Values(
			reservation.CustomerID,
			reservation.StoreID,
			reservation.CarID,
			reservation.DateTime,
			reservation.EstimatedDurationMinutes,
			reservation.Status,
			reservation.TotalAmount,
			reservation.DiscountAmount,
			reservation.FinalAmount,
			reservation.CustomerRequest,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	// Вставляем снимки позиций меню в порядке их следования
	for i := range reservation.Menus {
		menu := &reservation.Menus[i]
		menu.ReservationID = reservation.ID

		menuQuery, menuArgs, err := psqlbuilder.Insert("reservation_menus").
			Columns(
				"reservation_id",
				"menu_id",
				"menu_name",
				"menu_description",
				"unit_price",
				"quantity",
				"total_price",
				"duration_minutes",
				"category_name",
			).
			Values(
				menu.ReservationID,
				menu.MenuID,
				menu.MenuName,
				menu.MenuDescription,
				menu.UnitPrice,
				menu.Quantity,
				menu.TotalPrice,
				menu.DurationMinutes,
				menu.CategoryName,
			).
			Suffix("RETURNING id").
			ToSql()

		if err != nil {
			return nil, fmt.Errorf("%w: Create - build menu insert: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(ctx, menuQuery, menuArgs...).Scan(&menu.ID); err != nil {
			return nil, fmt.Errorf("%w: Create - execute menu insert: %v", ErrExecQuery, err)
		}
	}

	return reservation, nil
}

// GetByID получает бронь по ID вместе с позициями меню
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	if err := r.loadMenus(ctx, executor, []*domain.Reservation{reservation}); err != nil {
		return nil, err
	}

	return reservation, nil
}

// GetActiveByCustomer получает активные брони клиента (ближайшие первыми)
func (r *Repository) GetActiveByCustomer(ctx context.Context, customerID int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"customer_id": customerID}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		OrderBy("reservation_date_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryReservations(ctx, executor, query, args)
}

// GetHistoryByCustomer получает завершенные брони клиента
// (completed/cancelled/rejected/no_show), новые первыми
func (r *Repository) GetHistoryByCustomer(ctx context.Context, customerID int64, limit, offset uint64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"customer_id": customerID}).
		Where(squirrel.Eq{"status": statusStrings(domain.TerminalStatuses)}).
		OrderBy("reservation_date_time DESC")

	if limit > 0 {
		selectBuilder = selectBuilder.Limit(limit).Offset(offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetHistoryByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryReservations(ctx, executor, query, args)
}

// GetByStoreWithFilter получает брони точки с гибкой фильтрацией
// Поддерживает фильтрацию по:
// - Конкретной дате (Date)
// - Периоду (StartDateTime, EndDateTime)
// - Статусу (Status)
// - Только активным броням (OnlyActive)
//
// Внутри транзакции выборка на конкретную дату блокирует строки (FOR UPDATE) -
// так проверка вместимости слота и вставка новой брони не гоняются между собой
func (r *Repository) GetByStoreWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"store_id": filter.StoreID})

	if filter.Date != nil {
		dayStart := truncateToDay(*filter.Date)
		selectBuilder = selectBuilder.
			Where(squirrel.GtOrEq{"reservation_date_time": dayStart}).
			Where(squirrel.Lt{"reservation_date_time": dayStart.AddDate(0, 0, 1)})
	}
	if filter.StartDateTime != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reservation_date_time": *filter.StartDateTime})
	}
	if filter.EndDateTime != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"reservation_date_time": *filter.EndDateTime})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.OnlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)})
	}

	if filter.Date != nil {
		// Для конкретной даты сортируем по времени начала
		selectBuilder = selectBuilder.OrderBy("reservation_date_time ASC")
	} else {
		// Для периода - новые первыми
		selectBuilder = selectBuilder.OrderBy("reservation_date_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStoreWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryReservations(ctx, executor, query, args)
}

// CountActiveByStoreAndDateTime считает активные брони точки на точный момент
// Используется при проверке вместимости слота перед созданием брони
func (r *Repository) CountActiveByStoreAndDateTime(ctx context.Context, storeID int64, dateTime time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"store_id": storeID}).
		Where(squirrel.Eq{"reservation_date_time": dateTime}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveByStoreAndDateTime - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveByStoreAndDateTime - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatusIf атомарно переводит бронь из expected в next (compare-and-swap).
// Причина записывается в rejection_reason или cancellation_reason в зависимости
// от целевого статуса; для остальных статусов reason игнорируется.
//
// Если текущий статус не совпал с expected, возвращает ErrStaleStatus -
// конкурирующее обновление уже перевело бронь в другой статус
func (r *Repository) UpdateStatusIf(ctx context.Context, id int64, expected, next domain.ReservationStatus, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("reservations").
		Set("status", next).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": expected})

	switch next {
	case domain.StatusRejected:
		updateBuilder = updateBuilder.Set("rejection_reason", reason)
	case domain.StatusCancelled:
		updateBuilder = updateBuilder.Set("cancellation_reason", reason)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIf - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIf - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIf - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// 0 строк: либо брони нет, либо статус уже другой - различаем перечитыванием
		exists, err := r.exists(ctx, executor, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrReservationNotFound
		}
		return ErrStaleStatus
	}

	return nil
}

// Вспомогательные методы

func (r *Repository) exists(ctx context.Context, executor DBExecutor, id int64) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: exists - scan: %v", ErrScanRow, err)
	}
	return true, nil
}

// queryReservations выполняет запрос и загружает позиции меню для результата
func (r *Repository) queryReservations(ctx context.Context, executor DBExecutor, query string, args []interface{}) ([]*domain.Reservation, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: queryReservations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := scanReservations(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadMenus(ctx, executor, reservations); err != nil {
		return nil, err
	}

	return reservations, nil
}

// loadMenus загружает снимки позиций меню для набора броней одним запросом
func (r *Repository) loadMenus(ctx context.Context, executor DBExecutor, reservations []*domain.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Reservation, len(reservations))
	ids := make([]int64, 0, len(reservations))
	for _, res := range reservations {
		res.Menus = make([]domain.ReservationMenu, 0)
		byID[res.ID] = res
		ids = append(ids, res.ID)
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"reservation_id",
		"menu_id",
		"menu_name",
		"menu_description",
		"unit_price",
		"quantity",
		"total_price",
		"duration_minutes",
		"category_name",
	).
		From("reservation_menus").
		Where(squirrel.Eq{"reservation_id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadMenus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadMenus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var menu domain.ReservationMenu
		err := rows.Scan(
			&menu.ID,
			&menu.ReservationID,
			&menu.MenuID,
			&menu.MenuName,
			&menu.MenuDescription,
			&menu.UnitPrice,
			&menu.Quantity,
			&menu.TotalPrice,
			&menu.DurationMinutes,
			&menu.CategoryName,
		)
		if err != nil {
			return fmt.Errorf("%w: loadMenus - scan row: %v", ErrScanRow, err)
		}

		if res, ok := byID[menu.ReservationID]; ok {
			res.Menus = append(res.Menus, menu)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadMenus - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&reservation.ID,
		&reservation.CustomerID,
		&reservation.StoreID,
		&reservation.CarID,
		&reservation.DateTime,
		&reservation.EstimatedDurationMinutes,
		&reservation.Status,
		&reservation.TotalAmount,
		&reservation.DiscountAmount,
		&reservation.FinalAmount,
		&reservation.CustomerRequest,
		&reservation.RejectionReason,
		&reservation.CancellationReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
