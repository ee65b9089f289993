package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

type mockProducer struct {
	mock.Mock
}

func (m *mockProducer) Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error {
	args := m.Called(ctx, topic, key, payload, headers)
	return args.Error(0)
}

func TestBrokerPublisher_Publish(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	b := &domain.Booking{
		ID:           3,
		ResourceID:   5,
		ResourceKind: domain.KindCar,
		CustomerID:   9,
		Range:        domain.Interval{Start: now, End: now.Add(48 * time.Hour)},
		TotalPrice:   decimal.NewFromInt(100),
		Status:       domain.StatusCancelled,
	}
	event := NewBookingEvent(BookingCancelled, b, domain.StatusConfirmed, now)

	producer := new(mockProducer)
	producer.On("Publish", mock.Anything, "rental.events", "resource-5",
		mock.MatchedBy(func(payload []byte) bool {
			var decoded struct {
				Type    string `json:"type"`
				Payload struct {
					BookingID      int64  `json:"bookingId"`
					TotalPrice     string `json:"totalPrice"`
					Status         string `json:"status"`
					PreviousStatus string `json:"previousStatus"`
				} `json:"payload"`
			}
			if err := json.Unmarshal(payload, &decoded); err != nil {
				return false
			}
			return decoded.Type == "booking.cancelled" &&
				decoded.Payload.BookingID == 3 &&
				decoded.Payload.TotalPrice == "100" &&
				decoded.Payload.Status == "cancelled" &&
				decoded.Payload.PreviousStatus == "confirmed"
		}),
		map[string]string{"event-id": event.ID, "event-type": "booking.cancelled"},
	).Return(nil)

	err := NewBrokerPublisher(producer, "rental.events").Publish(context.Background(), event)
	require.NoError(t, err)
	producer.AssertExpectations(t)
}

func TestNewBookingEvent_SameStatusHasNoPrevious(t *testing.T) {
	b := &domain.Booking{ResourceID: 1, Status: domain.StatusPending}
	event := NewBookingEvent(BookingCreated, b, domain.StatusPending, time.Now())
	payload, ok := event.Payload.(BookingPayload)
	require.True(t, ok)
	assert.Empty(t, payload.PreviousStatus)
	assert.NotEmpty(t, event.ID)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), Event{}))
}
