package resource

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

func resourceRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "owner_id", "kind", "rate", "is_active", "description",
		"make", "model", "year", "image_front", "image_rear", "image_interior", "registration_document",
		"name", "address", "image", "created_at", "updated_at",
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Car", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT (.+) FROM resources WHERE id = \\$1$").
			WithArgs(int64(1)).
			WillReturnRows(resourceRows().AddRow(1, 2, "car", "50.00", true, nil,
				"Toyota", "Corolla", 2020, "front.png", nil, nil, "reg.pdf",
				nil, nil, nil, now, now))

		res, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, domain.KindCar, res.Kind)
		assert.True(t, decimal.NewFromInt(50).Equal(res.Rate))
		require.NotNil(t, res.Car)
		assert.Nil(t, res.Parking)
		assert.Equal(t, "Toyota", res.Car.Make)
		assert.Equal(t, 2020, res.Car.Year)
		assert.Equal(t, ptr.Ptr("front.png"), res.Car.ImageFront)
		assert.Nil(t, res.Car.ImageRear)
		assert.Nil(t, res.Description)
	})

	t.Run("Parking", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT (.+) FROM resources WHERE id = \\$1$").
			WithArgs(int64(2)).
			WillReturnRows(resourceRows().AddRow(2, 2, "parking", "4", false, "covered",
				nil, nil, nil, nil, nil, nil, nil,
				"P1", "Main st. 1", nil, now, now))

		res, err := repo.GetByID(ctx, 2)
		require.NoError(t, err)
		require.NotNil(t, res.Parking)
		assert.Nil(t, res.Car)
		assert.False(t, res.IsActive)
		assert.Equal(t, "P1", res.Parking.Name)
		assert.Equal(t, ptr.Ptr("covered"), res.Description)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM resources").
			WithArgs(int64(3)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, 3)
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LockForBooking_InTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := dbmetrics.Wrap(db, nil)
	repo := NewRepository(wrapped)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM resources WHERE id = \\$1 FOR UPDATE").
		WithArgs(int64(1)).
		WillReturnRows(resourceRows().AddRow(1, 2, "parking", "4", true, nil,
			nil, nil, nil, nil, nil, nil, nil,
			"P1", "Main st. 1", nil, now, now))
	mock.ExpectCommit()

	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	res, err := repo.LockForBooking(dbmetrics.WithTx(context.Background(), tx), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.KindParking, res.Kind)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListAvailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	kind := domain.KindCar

	mock.ExpectQuery("SELECT (.+) FROM resources WHERE kind = \\$1 AND is_active = \\$2 AND EXISTS \\(SELECT 1 FROM availability_windows w WHERE w.resource_id = resources.id AND w.end_at > \\$3\\) ORDER BY id ASC").
		WithArgs("car", true, now).
		WillReturnRows(resourceRows())

	list, err := NewRepository(db).ListAvailable(context.Background(), &kind, now)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Deactivate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("UPDATE resources SET is_active = \\$1, updated_at = NOW\\(\\) WHERE id = \\$2").
		WithArgs(false, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE resources").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Deactivate(context.Background(), 1))
	assert.ErrorIs(t, repo.Deactivate(context.Background(), 2), ErrResourceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO resources").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(11, now, now))

	res, err := NewRepository(db).Create(context.Background(), &domain.Resource{
		OwnerID: 2,
		Kind:    domain.KindParking,
		Rate:    decimal.NewFromInt(4),
		Parking: &domain.ParkingDetails{Name: "P1", Address: "Main st. 1"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), res.ID)
	assert.True(t, res.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_InTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := dbmetrics.Wrap(db, nil)
	repo := NewRepository(wrapped)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE resources SET (.+) WHERE id = \\$[0-9]+").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE resources").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	res := &domain.Resource{
		ID:          1,
		Kind:        domain.KindCar,
		Rate:        decimal.NewFromInt(50),
		Description: ptr.Ptr("седан"),
		Car:         &domain.CarDetails{Make: "Lada", Model: "Vesta", Year: 2022},
	}
	require.NoError(t, repo.Update(ctx, res))

	res.ID = 2
	assert.ErrorIs(t, repo.Update(ctx, res), ErrResourceNotFound)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
