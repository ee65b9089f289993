package insurance

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	policy := func() *domain.InsurancePolicy {
		return &domain.InsurancePolicy{BookingID: 4, PolicyNumber: "POL-1", ProviderName: "Acme", Premium: decimal.NewFromInt(15)}
	}

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("INSERT INTO insurance_policies").
			WithArgs(int64(4), "POL-1", "Acme", "", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))

		p, err := repo.Create(ctx, policy())
		require.NoError(t, err)
		assert.Equal(t, int64(1), p.ID)
	})

	t.Run("Duplicate policy number", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO insurance_policies").
			WillReturnError(&pq.Error{Code: "23505", Constraint: constraintPolicyNumber})

		_, err := repo.Create(ctx, policy())
		assert.ErrorIs(t, err, ErrDuplicatePolicyNumber)
	})

	t.Run("Booking already insured", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO insurance_policies").
			WillReturnError(&pq.Error{Code: "23505", Constraint: constraintBookingID})

		_, err := repo.Create(ctx, policy())
		assert.ErrorIs(t, err, ErrBookingAlreadyInsured)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByCustomer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM insurance_policies p JOIN bookings b ON b.id = p.booking_id JOIN resources r ON r.id = b.resource_id WHERE b.customer_id = \\$1").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "kind", "policy_number", "provider_name", "coverage_details", "premium", "created_at", "updated_at"}).
			AddRow(1, 4, "parking", "POL-1", "Acme", "", "15.00", now, now))

	list, err := NewRepository(db).ListByCustomer(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.KindParking, list[0].BookingKind)
	assert.True(t, decimal.NewFromInt(15).Equal(list[0].Premium))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM insurance_policies WHERE id = \\$1").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, NewRepository(db).Delete(context.Background(), 5), ErrPolicyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
