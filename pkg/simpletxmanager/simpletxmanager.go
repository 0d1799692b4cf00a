package simpletxmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/CaravaProject/carava-carwash/pkg/dbmetrics"
	"github.com/CaravaProject/carava-carwash/pkg/txmanager"
)

// TransactionManager менеджер транзакций поверх чистого *sql.DB
// Используется, когда метрики выключены и dbmetrics-обертка не нужна
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager создает менеджер транзакций без метрик
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции
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
		return fmt.Errorf("%w: %v", txmanager.ErrBeginTx, err)
	}

	wrapped := &dbmetrics.SqlTxWrapper{Tx: tx}
	txCtx := dbmetrics.WithTx(ctx, wrapped)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", txmanager.ErrSerializationFailure, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", txmanager.ErrSerializationFailure, err)
		}
		return fmt.Errorf("%w: %v", txmanager.ErrCommit, err)
	}

	return nil
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001"
	}
	return false
}
