package renter

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

func profileRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "driver_license_image", "photo_id_image", "is_verified", "verified_at", "created_at", "updated_at"})
}

func TestRepository_FindByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		verifiedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery("SELECT (.+) FROM renter_profiles WHERE user_id = \\$1").
			WithArgs(int64(7)).
			WillReturnRows(profileRows().AddRow(1, 7, "dl.png", "id.png", true, verifiedAt, verifiedAt, verifiedAt))

		p, err := repo.FindByUserID(ctx, 7)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.True(t, p.IsVerified)
		assert.True(t, p.HasDocuments())
		require.NotNil(t, p.VerifiedAt)
		assert.True(t, p.VerifiedAt.Equal(verifiedAt))
	})

	t.Run("Absent profile is not an error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM renter_profiles WHERE user_id = \\$1").
			WithArgs(int64(8)).
			WillReturnRows(profileRows())

		p, err := repo.FindByUserID(ctx, 8)
		assert.NoError(t, err)
		assert.Nil(t, p)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("INSERT INTO renter_profiles \\(user_id,driver_license_image,photo_id_image\\)").
			WithArgs(int64(7), "dl.png", nil).
			WillReturnRows(sqlmock.NewRows([]string{"id", "is_verified", "created_at", "updated_at"}).AddRow(3, false, now, now))

		p, err := repo.Create(ctx, &domain.RenterProfile{UserID: 7, DriverLicenseImage: ptr.Ptr("dl.png")})
		require.NoError(t, err)
		assert.Equal(t, int64(3), p.ID)
		assert.False(t, p.IsVerified)
	})

	t.Run("Duplicate", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO renter_profiles").
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Create(ctx, &domain.RenterProfile{UserID: 7})
		assert.ErrorIs(t, err, ErrProfileExists)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkVerified(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE renter_profiles SET is_verified = \\$1, verified_at = \\$2, updated_at = NOW\\(\\) WHERE id = \\$3").
		WithArgs(true, at, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, NewRepository(db).MarkVerified(context.Background(), 3, at))
	assert.NoError(t, mock.ExpectationsWereMet())
}
