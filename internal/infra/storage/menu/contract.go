package menu

import (
	"github.com/CaravaProject/carava-carwash/pkg/dbmetrics"
)

// DBExecutor интерфейс для выполнения запросов к БД
type DBExecutor = dbmetrics.DBExecutor
