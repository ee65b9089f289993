package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/pgerr"
)

const (
	// DefaultMaxRetries сколько раз повторяется сериализуемая транзакция при конфликте
	DefaultMaxRetries = 3
	// DefaultRetryBackoff базовая пауза между повторами (растет линейно)
	DefaultRetryBackoff = 20 * time.Millisecond
)

var (
	// ErrConflict транзакция не смогла завершиться из-за конкурентного доступа, запрос можно повторить
	ErrConflict = errors.New("txmanager: transaction conflict, retry later")

	// ErrBeginTx ошибка начала транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx ошибка фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")
)

// TxBeginner интерфейс для начала транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// RetryObserver получает уведомление о каждом повторе транзакции
type RetryObserver interface {
	IncTxRetry()
}

// Manager менеджер транзакций
// Транзакция передается в репозитории через context (dbmetrics.WithTx)
type Manager struct {
	db         TxBeginner
	maxRetries int
	backoff    time.Duration
	observer   RetryObserver
}

// Option настройка менеджера
type Option func(*Manager)

// WithMaxRetries задает количество повторов при конфликте сериализации
func WithMaxRetries(n int) Option {
	return func(m *Manager) {
		if n >= 0 {
			m.maxRetries = n
		}
	}
}

// WithBackoff задает базовую паузу между повторами
func WithBackoff(d time.Duration) Option {
	return func(m *Manager) {
		m.backoff = d
	}
}

// WithRetryObserver подключает наблюдателя повторов (метрики)
func WithRetryObserver(o RetryObserver) Option {
	return func(m *Manager) {
		m.observer = o
	}
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner, opts ...Option) *Manager {
	m := &Manager{
		db:         db,
		maxRetries: DefaultMaxRetries,
		backoff:    DefaultRetryBackoff,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию (READ COMMITTED)
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *Manager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции
// При конфликте сериализации или deadlock транзакция повторяется до maxRetries раз,
// после чего возвращается ErrConflict. fn должна быть готова к повторному вызову.
func (m *Manager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		if attempt > 0 {
			if m.observer != nil {
				m.observer.IncTxRetry()
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * m.backoff):
			}
		}

		err = m.run(ctx, opts, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}
	}

	return fmt.Errorf("%w: %w", ErrConflict, err)
}

func (m *Manager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}

	return nil
}

// IsRetryable проверяет, что ошибка вызвана конфликтом сериализации или deadlock
func IsRetryable(err error) bool {
	return pgerr.IsRetryable(err)
}
