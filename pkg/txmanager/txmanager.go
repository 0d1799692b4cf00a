package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/CaravaProject/carava-carwash/pkg/dbmetrics"
)

var (
	// ErrBeginTx возвращается при ошибке начала транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommit возвращается при ошибке коммита
	ErrCommit = errors.New("txmanager: failed to commit transaction")

	// ErrSerializationFailure возвращается при конфликте сериализуемых транзакций
	// (postgres SQLSTATE 40001). Повторы не выполняются - решение за вызывающим
	ErrSerializationFailure = errors.New("txmanager: serialization failure")
)

// TxBeginner интерфейс источника транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции внутри транзакций БД
// Транзакция передается репозиториям через контекст (dbmetrics.WithTx)
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции
// Используется для операций проверки и создания бронирований,
// где недопустима гонка count-then-insert
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) do(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return wrapSerialization(err)
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", ErrSerializationFailure, err)
		}
		return fmt.Errorf("%w: %v", ErrCommit, err)
	}

	return nil
}

// wrapSerialization помечает ошибки сериализации postgres sentinel-ошибкой,
// остальные пробрасывает без изменений
func wrapSerialization(err error) error {
	if isSerializationFailure(err) {
		return fmt.Errorf("%w: %v", ErrSerializationFailure, err)
	}
	return err
}

// isSerializationFailure проверяет SQLSTATE 40001 (serialization_failure)
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001"
	}
	return false
}
