package insurance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/pgerr"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

// Имена ограничений уникальности из миграции
const (
	constraintPolicyNumber = "insurance_policies_policy_number_key"
	constraintBookingID    = "insurance_policies_booking_id_key"
)

var policyColumns = []string{
	"p.id",
	"p.booking_id",
	"r.kind",
	"p.policy_number",
	"p.provider_name",
	"p.coverage_details",
	"p.premium",
	"p.created_at",
	"p.updated_at",
}

// Repository репозиторий страховых полисов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория полисов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет полис
func (r *Repository) Create(ctx context.Context, policy *domain.InsurancePolicy) (*domain.InsurancePolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("insurance_policies").
		Columns("booking_id", "policy_number", "provider_name", "coverage_details", "premium").
		Values(policy.BookingID, policy.PolicyNumber, policy.ProviderName, policy.CoverageDetails, policy.Premium).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&policy.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, mapWriteError("Create", err)
	}

	policy.CreatedAt = createdAt.Time
	policy.UpdatedAt = updatedAt.Time

	return policy, nil
}

// GetByID получает полис по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.InsurancePolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectPolicies().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	policy, err := scanPolicy(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan policy: %w", ErrScanRow, err)
	}

	return policy, nil
}

// ListByCustomer получает полисы по бронированиям пользователя
func (r *Repository) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.InsurancePolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectPolicies().
		Where(squirrel.Eq{"b.customer_id": customerID}).
		OrderBy("p.created_at DESC", "p.id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCustomer - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	policies := make([]*domain.InsurancePolicy, 0)
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByCustomer - scan row: %w", ErrScanRow, err)
		}
		policies = append(policies, policy)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByCustomer - rows error: %w", ErrScanRow, err)
	}

	return policies, nil
}

// Update обновляет реквизиты полиса
func (r *Repository) Update(ctx context.Context, policy *domain.InsurancePolicy) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("insurance_policies").
		Set("policy_number", policy.PolicyNumber).
		Set("provider_name", policy.ProviderName).
		Set("coverage_details", policy.CoverageDetails).
		Set("premium", policy.Premium).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": policy.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError("Update", err)
	}

	return checkAffected("Update", result)
}

// Delete удаляет полис
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("insurance_policies").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	return checkAffected("Delete", result)
}

func (r *Repository) selectPolicies() squirrel.SelectBuilder {
	return psqlbuilder.Select(policyColumns...).
		From("insurance_policies p").
		Join("bookings b ON b.id = p.booking_id").
		Join("resources r ON r.id = b.resource_id")
}

func mapWriteError(op string, err error) error {
	if pgerr.IsUniqueViolation(err) {
		switch pgerr.Constraint(err) {
		case constraintBookingID:
			return ErrBookingAlreadyInsured
		default:
			return ErrDuplicatePolicyNumber
		}
	}
	return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
}

func checkAffected(op string, result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrPolicyNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPolicy(row rowScanner) (*domain.InsurancePolicy, error) {
	var policy domain.InsurancePolicy
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&policy.ID,
		&policy.BookingID,
		&policy.BookingKind,
		&policy.PolicyNumber,
		&policy.ProviderName,
		&policy.CoverageDetails,
		&policy.Premium,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	policy.CreatedAt = createdAt.Time
	policy.UpdatedAt = updatedAt.Time

	return &policy, nil
}
