package resources

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/eligibility"
	"github.com/m04kA/SMC-RentalService/internal/service/ledger"
	"github.com/m04kA/SMC-RentalService/internal/service/resources/models"
	"github.com/m04kA/SMC-RentalService/internal/testutil/memstore"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

var now = time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

const (
	verifiedUser   = int64(1)
	unverifiedUser = int64(2)
	otherUser      = int64(3)
)

func newService() (*Service, *memstore.Store) {
	store := memstore.New()
	log := logger.NewDiscard()
	store.SeedRenter(verifiedUser, true)
	store.SeedRenter(unverifiedUser, false)
	store.SeedRenter(otherUser, true)

	svc := NewService(store.Resources(), eligibility.NewGate(store.Renters()), ledger.New(store.Windows(), log), log)
	svc.timeProvider = fixedClock{now: now}
	return svc, store
}

func carRequest(userID int64) *models.CreateResourceRequest {
	return &models.CreateResourceRequest{
		UserID: userID,
		Kind:   "car",
		Rate:   decimal.NewFromInt(50),
		Car:    &models.CarAttributes{Make: "Mazda", Model: "3", Year: 2022},
	}
}

func TestService_Create(t *testing.T) {
	t.Run("Verified renter registers a car", func(t *testing.T) {
		svc, _ := newService()
		resp, err := svc.Create(context.Background(), carRequest(verifiedUser))
		require.NoError(t, err)
		assert.Equal(t, "car", resp.Kind)
		assert.True(t, resp.IsActive)
		require.NotNil(t, resp.Car)
		assert.Equal(t, "Mazda", resp.Car.Make)
	})

	t.Run("Unverified renter", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.Create(context.Background(), carRequest(unverifiedUser))
		assert.ErrorIs(t, err, domain.ErrNotVerifiedRenter)
	})

	t.Run("Unknown kind", func(t *testing.T) {
		svc, _ := newService()
		req := carRequest(verifiedUser)
		req.Kind = "boat"
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Parking without address", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.Create(context.Background(), &models.CreateResourceRequest{
			UserID:  verifiedUser,
			Kind:    "parking",
			Rate:    decimal.NewFromInt(4),
			Parking: &models.ParkingAttributes{Name: "P1"},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.ErrorIs(t, err, domain.ErrInvalidResource)
	})
}

func TestService_UpdateAndDeactivate(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, carRequest(verifiedUser))
	require.NoError(t, err)

	rate := decimal.NewFromInt(65)
	updated, err := svc.Update(ctx, &models.UpdateResourceRequest{UserID: verifiedUser, ResourceID: created.ID, Rate: &rate})
	require.NoError(t, err)
	assert.True(t, rate.Equal(updated.Rate))

	_, err = svc.Update(ctx, &models.UpdateResourceRequest{UserID: otherUser, ResourceID: created.ID, Rate: &rate})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Update(ctx, &models.UpdateResourceRequest{
		UserID:     verifiedUser,
		ResourceID: created.ID,
		Parking:    &models.ParkingAttributes{Name: "P", Address: "A"},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.ErrorIs(t, svc.Deactivate(ctx, otherUser, created.ID), ErrAccessDenied)
	require.NoError(t, svc.Deactivate(ctx, verifiedUser, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestService_ListAndAvailability(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	car, err := svc.Create(ctx, carRequest(verifiedUser))
	require.NoError(t, err)
	parking, err := svc.Create(ctx, &models.CreateResourceRequest{
		UserID:  verifiedUser,
		Kind:    "parking",
		Rate:    decimal.NewFromInt(4),
		Parking: &models.ParkingAttributes{Name: "P1", Address: "Main st. 1"},
	})
	require.NoError(t, err)

	all, err := svc.List(ctx, &models.ListResourcesRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Resources, 2)

	cars, err := svc.List(ctx, &models.ListResourcesRequest{Kind: ptr.Ptr("car")})
	require.NoError(t, err)
	require.Len(t, cars.Resources, 1)
	assert.Equal(t, car.ID, cars.Resources[0].ID)

	_, err = svc.List(ctx, &models.ListResourcesRequest{Kind: ptr.Ptr("boat")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// у парковки окно в прошлом, у автомобиля в будущем
	store.SeedWindow(parking.ID, domain.Interval{Start: now.Add(-48 * time.Hour), End: now.Add(-24 * time.Hour)})
	store.SeedWindow(car.ID, domain.Interval{Start: now.Add(24 * time.Hour), End: now.Add(72 * time.Hour)})
	store.SeedWindow(car.ID, domain.Interval{Start: now, End: now.Add(2 * time.Hour)})

	available, err := svc.ListAvailable(ctx, &models.ListResourcesRequest{})
	require.NoError(t, err)
	require.Len(t, available.Resources, 1)
	assert.Equal(t, car.ID, available.Resources[0].ID)

	windows, err := svc.ListAvailability(ctx, car.ID)
	require.NoError(t, err)
	require.Len(t, windows.Windows, 2)
	assert.Equal(t, now, windows.Windows[0].StartAt)
	assert.Equal(t, now.Add(24*time.Hour), windows.Windows[1].StartAt)
}
