package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/pgerr"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

// bookingColumns колонки бронирования вместе с типом ресурса
var bookingColumns = []string{
	"b.id",
	"b.resource_id",
	"r.kind",
	"b.customer_id",
	"b.start_at",
	"b.end_at",
	"b.total_price",
	"b.status",
	"b.cancelled_at",
	"b.created_at",
	"b.updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Пересечение с активным бронированием на уровне БД (exclusion constraint)
// возвращается как domain.ErrOverlappingBooking.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"resource_id",
			"customer_id",
			"start_at",
			"end_at",
			"total_price",
			"status",
		).
		Values(
			booking.ResourceID,
			booking.CustomerID,
			booking.Range.Start,
			booking.Range.End,
			booking.TotalPrice,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pgerr.IsExclusionViolation(err) {
			return nil, fmt.Errorf("%w: %w", domain.ErrOverlappingBooking, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка бронирования блокируется (FOR UPDATE OF b)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.selectBookings().
		Where(squirrel.Eq{"b.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования по фильтру
//
// Примеры использования:
//
// 1. Бронирования пользователя:
//    filter := domain.BookingsFilter{CustomerID: &userID}
//
// 2. Активные бронирования ресурса, пересекающиеся с интервалом:
//    filter := domain.BookingsFilter{ResourceID: &id, ActiveOnly: true, Overlaps: &r}
//
// 3. Бронирования всех ресурсов владельца в статусе confirmed:
//    status := domain.StatusConfirmed
//    filter := domain.BookingsFilter{OwnerID: &profileID, Status: &status}
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(r.selectBookings(), filter).
		OrderBy("b.start_at DESC", "b.id DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ExistsActiveOverlap проверяет, есть ли активное бронирование ресурса,
// строго пересекающееся с интервалом. excludeID исключает бронирование при переносе.
func (r *Repository) ExistsActiveOverlap(ctx context.Context, resourceID int64, rng domain.Interval, excludeID *int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	subquery := psqlbuilder.Select("1").
		From("bookings b").
		Where(squirrel.Eq{"b.resource_id": resourceID}).
		Where(squirrel.Eq{"b.status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.Lt{"b.start_at": rng.End}).
		Where(squirrel.Gt{"b.end_at": rng.Start})

	if excludeID != nil {
		subquery = subquery.Where(squirrel.NotEq{"b.id": *excludeID})
	}

	query, args, err := subquery.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveOverlap - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsActiveOverlap - scan: %w", ErrScanRow, err)
	}

	return exists, nil
}

// UpdateStatus обновляет статус бронирования
// cancelledAt проставляется только при отмене
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, cancelledAt *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if cancelledAt != nil {
		updateBuilder = updateBuilder.Set("cancelled_at", *cancelledAt)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args)
}

// Reschedule переносит бронирование на новый интервал с новой ценой
func (r *Repository) Reschedule(ctx context.Context, id int64, rng domain.Interval, totalPrice decimal.Decimal) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("start_at", rng.Start).
		Set("end_at", rng.End).
		Set("total_price", totalPrice).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	err = r.execAffectingOne(ctx, executor, "Reschedule", query, args)
	if pgerr.IsExclusionViolation(err) {
		return fmt.Errorf("%w: %w", domain.ErrOverlappingBooking, err)
	}
	return err
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("resources r ON r.id = b.resource_id")
}

func applyFilter(selectBuilder squirrel.SelectBuilder, filter domain.BookingsFilter) squirrel.SelectBuilder {
	if filter.ResourceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.resource_id": *filter.ResourceID})
	}
	if filter.OwnerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.owner_id": *filter.OwnerID})
	}
	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.customer_id": *filter.CustomerID})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	} else if filter.ActiveOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": statusStrings(domain.ActiveStatuses)})
	}

	if filter.Overlaps != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Lt{"b.start_at": filter.Overlaps.End}).
			Where(squirrel.Gt{"b.end_at": filter.Overlaps.Start})
	}
	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"b.id": *filter.ExcludeID})
	}

	return selectBuilder
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var cancelledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ResourceID,
		&booking.ResourceKind,
		&booking.CustomerID,
		&booking.Range.Start,
		&booking.Range.End,
		&booking.TotalPrice,
		&booking.Status,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Range.Start = booking.Range.Start.UTC()
	booking.Range.End = booking.Range.End.UTC()
	if cancelledAt.Valid {
		t := cancelledAt.Time.UTC()
		booking.CancelledAt = &t
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
