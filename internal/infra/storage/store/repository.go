package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/CaravaProject/carava-carwash/internal/domain"
	"github.com/CaravaProject/carava-carwash/pkg/dbmetrics"
	"github.com/CaravaProject/carava-carwash/pkg/psqlbuilder"
	"github.com/CaravaProject/carava-carwash/pkg/types"
)

// Repository репозиторий для работы с точками обслуживания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория точек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает точку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_member_id",
		"name",
		"phone",
		"hourly_capacity",
		"slot_duration_minutes",
		"created_at",
		"updated_at",
	).
		From("stores").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var store domain.Store
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&store.ID,
		&store.OwnerMemberID,
		&store.Name,
		&store.Phone,
		&store.HourlyCapacity,
		&store.SlotDurationMinutes,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan store: %v", ErrScanRow, err)
	}

	store.CreatedAt = createdAt.Time
	store.UpdatedAt = updatedAt.Time

	return &store, nil
}

// GetOperatingHour получает расписание точки на день недели.
// Если расписание на этот день не задано, возвращает ErrOperatingHourNotFound -
// вызывающая сторона трактует это как выходной
func (r *Repository) GetOperatingHour(ctx context.Context, storeID int64, dayOfWeek time.Weekday) (*domain.OperatingHour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"store_id",
		"day_of_week",
		"open_time",
		"close_time",
		"is_open",
	).
		From("operating_hours").
		Where(squirrel.Eq{"store_id": storeID}).
		Where(squirrel.Eq{"day_of_week": int(dayOfWeek)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingHour - build select query: %v", ErrBuildQuery, err)
	}

	var hour domain.OperatingHour
	var dayOfWeekRaw int
	var openTime, closeTime types.TimeString
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&hour.StoreID,
		&dayOfWeekRaw,
		&openTime,
		&closeTime,
		&hour.IsOpen,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOperatingHourNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingHour - scan operating hour: %v", ErrScanRow, err)
	}

	hour.DayOfWeek = time.Weekday(dayOfWeekRaw)
	if !openTime.IsZero() {
		hour.OpenTime = &openTime
	}
	if !closeTime.IsZero() {
		hour.CloseTime = &closeTime
	}

	return &hour, nil
}

// IsHoliday проверяет, попадает ли дата в период выходных точки
func (r *Repository) IsHoliday(ctx context.Context, storeID int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("holidays").
		Where(squirrel.Eq{"store_id": storeID}).
		Where(squirrel.LtOrEq{"start_date": day}).
		Where(squirrel.GtOrEq{"end_date": day}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsHoliday - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: IsHoliday - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}
