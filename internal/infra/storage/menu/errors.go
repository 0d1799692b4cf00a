package menu

import "errors"

var (
	// ErrMenuNotFound услуга не найдена
	ErrMenuNotFound = errors.New("storage.menu: menu not found")
	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("storage.menu: failed to build query")
	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("storage.menu: failed to execute query")
	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("storage.menu: failed to scan row")
)
