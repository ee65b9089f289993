package memstore

import (
	"context"

	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
)

// TxManager выполняет транзакции строго по одной
// При ошибке состояние хранилища откатывается к началу транзакции
type TxManager struct {
	s *Store
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	snap := m.s.snapshot()
	if err := fn(dbmetrics.WithTx(ctx, fakeTx{})); err != nil {
		m.s.restore(snap)
		return err
	}
	return nil
}

// fakeTx маркер транзакции в контексте
type fakeTx struct {
	dbmetrics.TxExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

// TxContext возвращает контекст с открытой транзакцией без блокировки.
// Для тестов, которые вызывают методы, требующие транзакцию, напрямую.
func TxContext(ctx context.Context) context.Context {
	return dbmetrics.WithTx(ctx, fakeTx{})
}
