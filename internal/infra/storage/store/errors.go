package store

import "errors"

var (
	// ErrStoreNotFound точка не найдена
	ErrStoreNotFound = errors.New("storage.store: store not found")
	// ErrOperatingHourNotFound расписание на день недели не задано
	ErrOperatingHourNotFound = errors.New("storage.store: operating hour not found")
	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("storage.store: failed to build query")
	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("storage.store: failed to execute query")
	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("storage.store: failed to scan row")
)
