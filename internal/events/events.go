package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Type тип события
type Type string

const (
	BookingCreated       Type = "booking.created"
	BookingCancelled     Type = "booking.cancelled"
	BookingRescheduled   Type = "booking.rescheduled"
	BookingStatusChanged Type = "booking.status_changed"
	AvailabilityAdded    Type = "availability.added"
)

// Event событие интеграционной ленты
type Event struct {
	ID         string      `json:"id"`
	Type       Type        `json:"type"`
	Key        string      `json:"-"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

// Publisher публикует события после фиксации транзакции
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// BookingPayload данные события о бронировании
type BookingPayload struct {
	BookingID      int64           `json:"bookingId"`
	ResourceID     int64           `json:"resourceId"`
	ResourceKind   string          `json:"resourceKind"`
	CustomerID     int64           `json:"customerId"`
	StartAt        time.Time       `json:"startAt"`
	EndAt          time.Time       `json:"endAt"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	Status         string          `json:"status"`
	PreviousStatus string          `json:"previousStatus,omitempty"`
}

// AvailabilityPayload данные события о добавлении окна доступности
type AvailabilityPayload struct {
	ResourceID int64     `json:"resourceId"`
	WindowID   int64     `json:"windowId"`
	StartAt    time.Time `json:"startAt"`
	EndAt      time.Time `json:"endAt"`
	Absorbed   int       `json:"absorbed"`
}

// NewBookingEvent собирает событие по бронированию
// Ключ сообщения: ID ресурса, чтобы события одного ресурса шли в одну партицию
func NewBookingEvent(t Type, b *domain.Booking, previous domain.BookingStatus, now time.Time) Event {
	payload := BookingPayload{
		BookingID:    b.ID,
		ResourceID:   b.ResourceID,
		ResourceKind: b.ResourceKind.String(),
		CustomerID:   b.CustomerID,
		StartAt:      b.Range.Start,
		EndAt:        b.Range.End,
		TotalPrice:   b.TotalPrice,
		Status:       b.Status.String(),
	}
	if previous != "" && previous != b.Status {
		payload.PreviousStatus = previous.String()
	}
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		Key:        resourceKey(b.ResourceID),
		OccurredAt: now.UTC(),
		Payload:    payload,
	}
}

// NewAvailabilityEvent собирает событие по окну доступности
func NewAvailabilityEvent(w *domain.AvailabilityWindow, absorbed int, now time.Time) Event {
	return Event{
		ID:   uuid.NewString(),
		Type: AvailabilityAdded,
		Key:  resourceKey(w.ResourceID),
		Payload: AvailabilityPayload{
			ResourceID: w.ResourceID,
			WindowID:   w.ID,
			StartAt:    w.Range.Start,
			EndAt:      w.Range.End,
			Absorbed:   absorbed,
		},
		OccurredAt: now.UTC(),
	}
}
