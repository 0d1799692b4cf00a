package menu

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/CaravaProject/carava-carwash/internal/domain"
	"github.com/CaravaProject/carava-carwash/pkg/dbmetrics"
	"github.com/CaravaProject/carava-carwash/pkg/psqlbuilder"
)

// Repository репозиторий для работы с услугами точек
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByIDs получает активные услуги точки по списку ID.
// Возвращает только найденные активные услуги - вызывающая сторона
// сравнивает длину результата с длиной запроса, чтобы выявить
// несуществующие, чужие или выключенные услуги
func (r *Repository) GetByIDs(ctx context.Context, storeID int64, ids []int64) ([]*domain.Menu, error) {
	if len(ids) == 0 {
		return []*domain.Menu{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"store_id",
		"name",
		"description",
		"price",
		"duration_minutes",
		"category_name",
		"is_active",
	).
		From("menus").
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"store_id": storeID}).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	menus := make([]*domain.Menu, 0, len(ids))
	for rows.Next() {
		var menu domain.Menu
		err := rows.Scan(
			&menu.ID,
			&menu.StoreID,
			&menu.Name,
			&menu.Description,
			&menu.Price,
			&menu.DurationMinutes,
			&menu.CategoryName,
			&menu.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan row: %v", ErrScanRow, err)
		}
		menus = append(menus, &menu)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %v", ErrScanRow, err)
	}

	return menus, nil
}
