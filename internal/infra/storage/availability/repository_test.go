package availability

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var (
	t0 = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	t1 = t0.Add(48 * time.Hour)
)

func TestRepository_ListCovering(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	rng := domain.Interval{Start: t0.Add(time.Hour), End: t0.Add(2 * time.Hour)}

	mock.ExpectQuery("SELECT id, resource_id, start_at, end_at, created_at FROM availability_windows WHERE \\(resource_id = \\$1 AND start_at <= \\$2 AND end_at >= \\$3\\) ORDER BY start_at ASC").
		WithArgs(int64(3), rng.Start, rng.End).
		WillReturnRows(sqlmock.NewRows([]string{"id", "resource_id", "start_at", "end_at", "created_at"}).
			AddRow(10, 3, t0, t1, t0))

	windows, err := repo.ListCovering(context.Background(), 3, rng)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, int64(10), windows[0].ID)
	assert.True(t, windows[0].Range.Covers(rng))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("INSERT INTO availability_windows \\(resource_id,start_at,end_at\\) VALUES \\(\\$1,\\$2,\\$3\\) RETURNING id, created_at").
		WithArgs(int64(3), t0, t1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, t0))

	w, err := repo.Create(context.Background(), &domain.AvailabilityWindow{ResourceID: 3, Range: domain.Interval{Start: t0, End: t1}})
	require.NoError(t, err)
	assert.Equal(t, int64(7), w.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Empty list is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.DeleteByIDs(ctx, nil))
	})

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM availability_windows WHERE id IN \\(\\$1,\\$2\\)").
			WithArgs(int64(1), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		assert.NoError(t, repo.DeleteByIDs(ctx, []int64{1, 2}))
	})

	t.Run("Concurrent delete detected", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM availability_windows").
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.ErrorIs(t, repo.DeleteByIDs(ctx, []int64{1, 2}), ErrWindowNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteEndedBefore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM availability_windows WHERE end_at <= \\$1").
		WithArgs(t1).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := NewRepository(db).DeleteEndedBefore(context.Background(), t1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
