package resource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

var resourceColumns = []string{
	"id",
	"owner_id",
	"kind",
	"rate",
	"is_active",
	"description",
	"make",
	"model",
	"year",
	"image_front",
	"image_rear",
	"image_interior",
	"registration_document",
	"name",
	"address",
	"image",
	"created_at",
	"updated_at",
}

// Repository репозиторий ресурсов (автомобили и парковки в одной таблице)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресурсов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает ресурс
func (r *Repository) Create(ctx context.Context, res *domain.Resource) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	values := detailValues(res)
	query, args, err := psqlbuilder.Insert("resources").
		SetMap(map[string]interface{}{
			"owner_id":              res.OwnerID,
			"kind":                  res.Kind,
			"rate":                  res.Rate,
			"is_active":             true,
			"description":           res.Description,
			"make":                  values.make,
			"model":                 values.model,
			"year":                  values.year,
			"image_front":           values.imageFront,
			"image_rear":            values.imageRear,
			"image_interior":        values.imageInterior,
			"registration_document": values.registrationDocument,
			"name":                  values.name,
			"address":               values.address,
			"image":                 values.image,
		}).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	res.IsActive = true
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает ресурс по ID, включая деактивированные
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	return r.getOne(ctx, "GetByID", id, false)
}

// LockForBooking получает ресурс и блокирует его строку до конца транзакции (FOR UPDATE)
// Все операции записи над ресурсом сериализуются на этой блокировке.
func (r *Repository) LockForBooking(ctx context.Context, id int64) (*domain.Resource, error) {
	return r.getOne(ctx, "LockForBooking", id, true)
}

// List получает ресурсы по фильтру
func (r *Repository) List(ctx context.Context, filter domain.ResourcesFilter) ([]*domain.Resource, error) {
	return r.list(ctx, "List", applyFilter(r.selectResources(), filter))
}

// ListAvailable получает активные ресурсы, у которых есть окно доступности, заканчивающееся после now
func (r *Repository) ListAvailable(ctx context.Context, kind *domain.ResourceKind, now time.Time) ([]*domain.Resource, error) {
	filter := domain.ResourcesFilter{Kind: kind, ActiveOnly: true}

	selectBuilder := applyFilter(r.selectResources(), filter).
		Where(squirrel.Expr("EXISTS (SELECT 1 FROM availability_windows w WHERE w.resource_id = resources.id AND w.end_at > ?)", now))

	return r.list(ctx, "ListAvailable", selectBuilder)
}

// Update обновляет ставку, описание и атрибуты ресурса
func (r *Repository) Update(ctx context.Context, res *domain.Resource) error {
	values := detailValues(res)
	query, args, err := psqlbuilder.Update("resources").
		SetMap(map[string]interface{}{
			"rate":                  res.Rate,
			"description":           res.Description,
			"make":                  values.make,
			"model":                 values.model,
			"year":                  values.year,
			"image_front":           values.imageFront,
			"image_rear":            values.imageRear,
			"image_interior":        values.imageInterior,
			"registration_document": values.registrationDocument,
			"name":                  values.name,
			"address":               values.address,
			"image":                 values.image,
			"updated_at":            squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": res.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "Update", query, args)
}

// Deactivate мягко удаляет ресурс (is_active = false)
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Update("resources").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "Deactivate", query, args)
}

func (r *Repository) getOne(ctx context.Context, op string, id int64, lock bool) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.selectResources().Where(squirrel.Eq{"id": id})
	if lock && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	res, err := scanResource(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan resource: %w", ErrScanRow, op, err)
	}

	return res, nil
}

func (r *Repository) list(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	resources := make([]*domain.Resource, 0)
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		resources = append(resources, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return resources, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, op, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrResourceNotFound
	}

	return nil
}

func (r *Repository) selectResources() squirrel.SelectBuilder {
	return psqlbuilder.Select(resourceColumns...).From("resources")
}

func applyFilter(selectBuilder squirrel.SelectBuilder, filter domain.ResourcesFilter) squirrel.SelectBuilder {
	if filter.Kind != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"kind": *filter.Kind})
	}
	if filter.OwnerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"owner_id": *filter.OwnerID})
	}
	if filter.ActiveOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}
	return selectBuilder
}

// resourceDetails колонки, специфичные для типа ресурса
// Для другого типа остаются NULL
type resourceDetails struct {
	make                 *string
	model                *string
	year                 *int
	imageFront           *string
	imageRear            *string
	imageInterior        *string
	registrationDocument *string
	name                 *string
	address              *string
	image                *string
}

func detailValues(res *domain.Resource) resourceDetails {
	var d resourceDetails
	if res.Car != nil {
		d.make = &res.Car.Make
		d.model = &res.Car.Model
		d.year = &res.Car.Year
		d.imageFront = res.Car.ImageFront
		d.imageRear = res.Car.ImageRear
		d.imageInterior = res.Car.ImageInterior
		d.registrationDocument = res.Car.RegistrationDocument
	}
	if res.Parking != nil {
		d.name = &res.Parking.Name
		d.address = &res.Parking.Address
		d.image = res.Parking.Image
	}
	return d
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanResource(row rowScanner) (*domain.Resource, error) {
	var (
		res                                                domain.Resource
		description, carMake, carModel                     sql.NullString
		imageFront, imageRear, imageInterior, registration sql.NullString
		name, address, image                               sql.NullString
		year                                               sql.NullInt64
		createdAt, updatedAt                               sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.OwnerID,
		&res.Kind,
		&res.Rate,
		&res.IsActive,
		&description,
		&carMake,
		&carModel,
		&year,
		&imageFront,
		&imageRear,
		&imageInterior,
		&registration,
		&name,
		&address,
		&image,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Description = nullString(description)
	switch res.Kind {
	case domain.KindCar:
		res.Car = &domain.CarDetails{
			Make:                 carMake.String,
			Model:                carModel.String,
			Year:                 int(year.Int64),
			ImageFront:           nullString(imageFront),
			ImageRear:            nullString(imageRear),
			ImageInterior:        nullString(imageInterior),
			RegistrationDocument: nullString(registration),
		}
	case domain.KindParking:
		res.Parking = &domain.ParkingDetails{
			Name:    name.String,
			Address: address.String,
			Image:   nullString(image),
		}
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
