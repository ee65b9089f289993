package ledger

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
)

// InsertResult результат добавления интервала в журнал
type InsertResult struct {
	Window   domain.AvailabilityWindow
	Absorbed int // сколько существующих окон поглощено слиянием
}

// Ledger журнал окон доступности ресурса
// Окна одного ресурса не пересекаются и не касаются друг друга.
// Все изменения выполняются внутри транзакции вызывающего кода,
// которая уже держит блокировку строки ресурса.
type Ledger struct {
	windows WindowRepository
	logger  Logger
}

// New создает журнал доступности
func New(windows WindowRepository, logger Logger) *Ledger {
	return &Ledger{windows: windows, logger: logger}
}

// Insert добавляет интервал, сливая его с пересекающимися и соседними окнами
// Повторная вставка того же интервала ничего не меняет.
func (l *Ledger) Insert(ctx context.Context, resourceID int64, rng domain.Interval) (*InsertResult, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, ErrNoTransaction
	}
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	touching, err := l.windows.ListTouching(ctx, resourceID, rng)
	if err != nil {
		return nil, fmt.Errorf("%w: Insert - list touching: %w", ErrInternal, err)
	}

	plan := domain.PlanInsert(touching, rng)

	// интервал уже целиком внутри существующего окна
	if len(plan.Absorbed) == 1 && plan.Absorbed[0].Range.Equal(plan.Merged) {
		return &InsertResult{Window: plan.Absorbed[0]}, nil
	}

	ids := make([]int64, 0, len(plan.Absorbed))
	for _, w := range plan.Absorbed {
		ids = append(ids, w.ID)
	}
	if err := l.windows.DeleteByIDs(ctx, ids); err != nil {
		return nil, fmt.Errorf("%w: Insert - delete absorbed: %w", ErrInternal, err)
	}

	created, err := l.windows.Create(ctx, &domain.AvailabilityWindow{ResourceID: resourceID, Range: plan.Merged})
	if err != nil {
		return nil, fmt.Errorf("%w: Insert - create merged: %w", ErrInternal, err)
	}

	if len(ids) > 0 {
		l.logger.Info("Insert: resource=%d merged %d windows into %s", resourceID, len(ids), plan.Merged)
	}

	return &InsertResult{Window: *created, Absorbed: len(ids)}, nil
}

// FindSoleCovering возвращает единственное окно, целиком содержащее интервал
// Если таких окон 0 или больше одного, возвращается domain.ErrAmbiguousAvailability
func (l *Ledger) FindSoleCovering(ctx context.Context, resourceID int64, rng domain.Interval) (*domain.AvailabilityWindow, error) {
	candidates, err := l.windows.ListCovering(ctx, resourceID, rng)
	if err != nil {
		return nil, fmt.Errorf("%w: FindSoleCovering - list covering: %w", ErrInternal, err)
	}

	covering := domain.CoveringWindows(candidates, rng)
	if len(covering) != 1 {
		if len(covering) > 1 {
			l.logger.Error("FindSoleCovering: resource=%d has %d windows covering %s", resourceID, len(covering), rng)
		}
		return nil, fmt.Errorf("%w: found %d for %s", domain.ErrAmbiguousAvailability, len(covering), rng)
	}

	return &covering[0], nil
}

// Consume вырезает интервал из окна: окно удаляется, остатки слева и справа сохраняются
func (l *Ledger) Consume(ctx context.Context, window *domain.AvailabilityWindow, rng domain.Interval) ([]domain.AvailabilityWindow, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, ErrNoTransaction
	}
	if !window.Range.Covers(rng) {
		return nil, fmt.Errorf("%w: window %s, range %s", ErrWindowMismatch, window.Range, rng)
	}

	if err := l.windows.DeleteByIDs(ctx, []int64{window.ID}); err != nil {
		return nil, fmt.Errorf("%w: Consume - delete window: %w", ErrInternal, err)
	}

	remainders := domain.Remainders(window.Range, rng)
	created := make([]domain.AvailabilityWindow, 0, len(remainders))
	for _, rem := range remainders {
		w, err := l.windows.Create(ctx, &domain.AvailabilityWindow{ResourceID: window.ResourceID, Range: rem})
		if err != nil {
			return nil, fmt.Errorf("%w: Consume - create remainder: %w", ErrInternal, err)
		}
		created = append(created, *w)
	}

	return created, nil
}

// List возвращает окна ресурса, упорядоченные по началу
func (l *Ledger) List(ctx context.Context, resourceID int64) ([]domain.AvailabilityWindow, error) {
	windows, err := l.windows.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, fmt.Errorf("%w: List - list by resource: %w", ErrInternal, err)
	}
	return windows, nil
}
