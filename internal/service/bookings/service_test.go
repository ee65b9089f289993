package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/events"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RentalService/internal/service/eligibility"
	"github.com/m04kA/SMC-RentalService/internal/service/ledger"
	"github.com/m04kA/SMC-RentalService/internal/testutil/memstore"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

var base = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

func iv(startHour, endHour int) domain.Interval {
	return domain.Interval{
		Start: base.Add(time.Duration(startHour) * time.Hour),
		End:   base.Add(time.Duration(endHour) * time.Hour),
	}
}

const (
	ownerUserID    = int64(1)
	customerUserID = int64(2)
	strangerUserID = int64(3)
)

type publisherStub struct {
	events []events.Event
}

func (p *publisherStub) Publish(_ context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return nil
}

type clock struct{ now time.Time }

func (c clock) Now() time.Time { return c.now }

type fixture struct {
	svc       *Service
	store     *memstore.Store
	resource  domain.Resource
	booking   domain.Booking
	publisher *publisherStub
}

// newFixture ресурс с окнами [0,2) и [5,10) и бронированием клиента [2,5)
func newFixture(t *testing.T, status domain.BookingStatus) *fixture {
	t.Helper()

	store := memstore.New()
	log := logger.NewDiscard()
	publisher := &publisherStub{}

	owner := store.SeedRenter(ownerUserID, true)
	store.SeedRenter(customerUserID, true)
	res := store.SeedResource(owner.ID, domain.KindCar, decimal.NewFromInt(50))
	store.SeedWindow(res.ID, iv(0, 2))
	store.SeedWindow(res.ID, iv(5, 10))
	booking := store.SeedBooking(domain.Booking{
		ResourceID: res.ID,
		CustomerID: customerUserID,
		Range:      iv(2, 5),
		TotalPrice: decimal.NewFromInt(50),
		Status:     status,
	})

	svc := NewService(
		store.Bookings(),
		store.Resources(),
		ledger.New(store.Windows(), log),
		eligibility.NewGate(store.Renters()),
		store.TxManager(),
		publisher,
		log,
	)
	svc.timeProvider = clock{now: base}

	return &fixture{svc: svc, store: store, resource: res, booking: booking, publisher: publisher}
}

func TestService_GetByID(t *testing.T) {
	f := newFixture(t, domain.StatusPending)
	ctx := context.Background()

	resp, err := f.svc.GetByID(ctx, f.booking.ID, customerUserID)
	require.NoError(t, err)
	assert.Equal(t, f.booking.ID, resp.ID)
	assert.Equal(t, "car", resp.ResourceKind)

	_, err = f.svc.GetByID(ctx, f.booking.ID, ownerUserID)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(ctx, f.booking.ID, strangerUserID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(ctx, 9999, customerUserID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetUserBookings(t *testing.T) {
	f := newFixture(t, domain.StatusPending)
	ctx := context.Background()

	resp, err := f.svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: customerUserID})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	resp, err = f.svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: customerUserID, Status: ptr.Ptr("completed")})
	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)

	_, err = f.svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: customerUserID, Status: ptr.Ptr("unknown")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetResourceBookings(t *testing.T) {
	f := newFixture(t, domain.StatusPending)
	ctx := context.Background()

	resp, err := f.svc.GetResourceBookings(ctx, &models.GetResourceBookingsRequest{UserID: ownerUserID, ResourceID: f.resource.ID})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = f.svc.GetResourceBookings(ctx, &models.GetResourceBookingsRequest{UserID: customerUserID, ResourceID: f.resource.ID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetResourceBookings(ctx, &models.GetResourceBookingsRequest{UserID: ownerUserID, ResourceID: 9999})
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestService_Cancel(t *testing.T) {
	t.Run("Cancel returns range to the ledger", func(t *testing.T) {
		f := newFixture(t, domain.StatusConfirmed)

		resp, err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelBookingRequest{UserID: customerUserID})
		require.NoError(t, err)

		assert.Equal(t, "cancelled", resp.Status)
		require.NotNil(t, resp.CancelledAt)
		assert.Equal(t, base.Format(domain.TimeFormat), *resp.CancelledAt)
		assert.Equal(t, []domain.Interval{iv(0, 10)}, f.store.Windows().Intervals(f.resource.ID))
		assert.Equal(t, 0, f.store.CountActiveBookings(f.resource.ID))

		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, events.BookingCancelled, f.publisher.events[0].Type)
		payload := f.publisher.events[0].Payload.(events.BookingPayload)
		assert.Equal(t, "confirmed", payload.PreviousStatus)
	})

	t.Run("Only the customer can cancel", func(t *testing.T) {
		f := newFixture(t, domain.StatusPending)

		_, err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelBookingRequest{UserID: ownerUserID})
		assert.ErrorIs(t, err, ErrBookingNotFound)
		assert.Equal(t, 1, f.store.CountActiveBookings(f.resource.ID))
	})

	t.Run("In progress booking cannot be cancelled", func(t *testing.T) {
		f := newFixture(t, domain.StatusInProgress)

		_, err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelBookingRequest{UserID: customerUserID})
		assert.ErrorIs(t, err, ErrCannotCancel)
		assert.Equal(t, []domain.Interval{iv(0, 2), iv(5, 10)}, f.store.Windows().Intervals(f.resource.ID))
	})
}

func TestService_UpdateStatus(t *testing.T) {
	t.Run("Owner walks the lifecycle", func(t *testing.T) {
		f := newFixture(t, domain.StatusPending)
		ctx := context.Background()

		for _, status := range []string{"confirmed", "in_progress", "completed"} {
			resp, err := f.svc.UpdateStatus(ctx, f.booking.ID, &models.UpdateStatusRequest{UserID: ownerUserID, Status: status})
			require.NoError(t, err, status)
			assert.Equal(t, status, resp.Status)
		}

		assert.Len(t, f.publisher.events, 3)
		assert.Equal(t, events.BookingStatusChanged, f.publisher.events[2].Type)
	})

	t.Run("Invalid transition", func(t *testing.T) {
		f := newFixture(t, domain.StatusPending)

		_, err := f.svc.UpdateStatus(context.Background(), f.booking.ID, &models.UpdateStatusRequest{UserID: ownerUserID, Status: "completed"})
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	})

	t.Run("Customer cannot change status", func(t *testing.T) {
		f := newFixture(t, domain.StatusPending)

		_, err := f.svc.UpdateStatus(context.Background(), f.booking.ID, &models.UpdateStatusRequest{UserID: customerUserID, Status: "confirmed"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("Unknown status", func(t *testing.T) {
		f := newFixture(t, domain.StatusPending)

		_, err := f.svc.UpdateStatus(context.Background(), f.booking.ID, &models.UpdateStatusRequest{UserID: ownerUserID, Status: "no_show"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Owner cancellation frees the range", func(t *testing.T) {
		f := newFixture(t, domain.StatusPending)

		_, err := f.svc.UpdateStatus(context.Background(), f.booking.ID, &models.UpdateStatusRequest{UserID: ownerUserID, Status: "cancelled"})
		require.NoError(t, err)
		assert.Equal(t, []domain.Interval{iv(0, 10)}, f.store.Windows().Intervals(f.resource.ID))
	})
}
