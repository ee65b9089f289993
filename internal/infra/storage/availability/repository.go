package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

// Repository репозиторий окон доступности ресурсов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет окно доступности
func (r *Repository) Create(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_windows").
		Columns("resource_id", "start_at", "end_at").
		Values(window.ResourceID, window.Range.Start, window.Range.End).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&window.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	window.CreatedAt = createdAt.Time

	return window, nil
}

// ListByResource возвращает все окна ресурса, упорядоченные по началу
func (r *Repository) ListByResource(ctx context.Context, resourceID int64) ([]domain.AvailabilityWindow, error) {
	return r.list(ctx, "ListByResource", squirrel.Eq{"resource_id": resourceID})
}

// ListTouching возвращает окна ресурса, которые пересекаются с интервалом или касаются его
func (r *Repository) ListTouching(ctx context.Context, resourceID int64, rng domain.Interval) ([]domain.AvailabilityWindow, error) {
	return r.list(ctx, "ListTouching", squirrel.And{
		squirrel.Eq{"resource_id": resourceID},
		squirrel.LtOrEq{"start_at": rng.End},
		squirrel.GtOrEq{"end_at": rng.Start},
	})
}

// ListCovering возвращает окна ресурса, целиком содержащие интервал
func (r *Repository) ListCovering(ctx context.Context, resourceID int64, rng domain.Interval) ([]domain.AvailabilityWindow, error) {
	return r.list(ctx, "ListCovering", squirrel.And{
		squirrel.Eq{"resource_id": resourceID},
		squirrel.LtOrEq{"start_at": rng.Start},
		squirrel.GtOrEq{"end_at": rng.End},
	})
}

// DeleteByIDs удаляет окна по списку ID
func (r *Repository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_windows").
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByIDs - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByIDs - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByIDs - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected != int64(len(ids)) {
		return fmt.Errorf("%w: deleted %d of %d", ErrWindowNotFound, rowsAffected, len(ids))
	}

	return nil
}

// DeleteEndedBefore удаляет окна, закончившиеся до момента t
// Возвращает количество удаленных окон
func (r *Repository) DeleteEndedBefore(ctx context.Context, t time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_windows").
		Where(squirrel.LtOrEq{"end_at": t}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteEndedBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteEndedBefore - execute delete: %w", ErrExecQuery, err)
	}

	return result.RowsAffected()
}

// list выбирает окна по условию
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "resource_id", "start_at", "end_at", "created_at").
		From("availability_windows").
		Where(where).
		OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	windows := make([]domain.AvailabilityWindow, 0)
	for rows.Next() {
		var w domain.AvailabilityWindow
		var createdAt sql.NullTime
		if err := rows.Scan(&w.ID, &w.ResourceID, &w.Range.Start, &w.Range.End, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		w.Range.Start = w.Range.Start.UTC()
		w.Range.End = w.Range.End.UTC()
		w.CreatedAt = createdAt.Time
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return windows, nil
}
