package renter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/pgerr"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

// Repository репозиторий профилей арендодателей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория профилей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает профиль пользователя
func (r *Repository) Create(ctx context.Context, profile *domain.RenterProfile) (*domain.RenterProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("renter_profiles").
		Columns("user_id", "driver_license_image", "photo_id_image").
		Values(profile.UserID, profile.DriverLicenseImage, profile.PhotoIDImage).
		Suffix("RETURNING id, is_verified, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&profile.ID, &profile.IsVerified, &createdAt, &updatedAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrProfileExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	profile.CreatedAt = createdAt.Time
	profile.UpdatedAt = updatedAt.Time

	return profile, nil
}

// FindByUserID получает профиль пользователя
// Отсутствие профиля не ошибка: возвращается (nil, nil)
func (r *Repository) FindByUserID(ctx context.Context, userID int64) (*domain.RenterProfile, error) {
	profile, err := r.getOne(ctx, "FindByUserID", squirrel.Eq{"user_id": userID})
	if errors.Is(err, ErrProfileNotFound) {
		return nil, nil
	}
	return profile, err
}

// GetByID получает профиль по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RenterProfile, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// UpdateDocuments обновляет ссылки на документы
// Поле is_verified здесь не меняется
func (r *Repository) UpdateDocuments(ctx context.Context, profile *domain.RenterProfile) error {
	query, args, err := psqlbuilder.Update("renter_profiles").
		Set("driver_license_image", profile.DriverLicenseImage).
		Set("photo_id_image", profile.PhotoIDImage).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": profile.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDocuments - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "UpdateDocuments", query, args)
}

// MarkVerified проставляет is_verified и verified_at
func (r *Repository) MarkVerified(ctx context.Context, id int64, verifiedAt time.Time) error {
	query, args, err := psqlbuilder.Update("renter_profiles").
		Set("is_verified", true).
		Set("verified_at", verifiedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkVerified - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "MarkVerified", query, args)
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.RenterProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"driver_license_image",
		"photo_id_image",
		"is_verified",
		"verified_at",
		"created_at",
		"updated_at",
	).
		From("renter_profiles").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var (
		profile                domain.RenterProfile
		driverLicense, photoID sql.NullString
		verifiedAt             sql.NullTime
		createdAt, updatedAt   sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&profile.ID,
		&profile.UserID,
		&driverLicense,
		&photoID,
		&profile.IsVerified,
		&verifiedAt,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan profile: %w", ErrScanRow, op, err)
	}

	if driverLicense.Valid {
		profile.DriverLicenseImage = &driverLicense.String
	}
	if photoID.Valid {
		profile.PhotoIDImage = &photoID.String
	}
	if verifiedAt.Valid {
		t := verifiedAt.Time.UTC()
		profile.VerifiedAt = &t
	}
	profile.CreatedAt = createdAt.Time
	profile.UpdatedAt = updatedAt.Time

	return &profile, nil
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
		return ErrProfileNotFound
	}

	return nil
}
