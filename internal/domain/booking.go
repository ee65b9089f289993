package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// validTransitions допустимые переходы статусов бронирования
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ParseBookingStatus парсит статус из строки запроса
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidBookingStatus, s)
	}
	return status, nil
}

// IsValid returns true for a known status
func (s BookingStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo checks the transition table
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true when no transitions are left
func (s BookingStatus) IsTerminal() bool {
	return s.IsValid() && len(validTransitions[s]) == 0
}

// IsActive returns true if the status blocks the resource time range
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusInProgress
}

// AllowsModification returns true if dates and dependent data may still be changed
func (s BookingStatus) AllowsModification() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s BookingStatus) String() string {
	return string(s)
}

// Booking represents a reservation of a resource for a time range
type Booking struct {
	ID           int64
	ResourceID   int64
	ResourceKind ResourceKind
	CustomerID   int64 // ID пользователя, сделавшего бронирование
	Range        Interval
	TotalPrice   decimal.Decimal
	Status       BookingStatus

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking is in an active state
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// CanBeModified returns true if the booking can be rescheduled
func (b *Booking) CanBeModified() bool {
	return b.Status.AllowsModification()
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// TransitionTo переводит бронирование в новый статус
// При отмене проставляет CancelledAt
func (b *Booking) TransitionTo(target BookingStatus, now time.Time) error {
	if !b.Status.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, b.Status, target)
	}
	b.Status = target
	if target == StatusCancelled {
		cancelledAt := now.UTC()
		b.CancelledAt = &cancelledAt
	}
	return nil
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	ResourceID *int64         // Бронирования конкретного ресурса
	OwnerID    *int64         // Бронирования ресурсов владельца (ID профиля)
	CustomerID *int64         // Бронирования пользователя
	Status     *BookingStatus // Фильтр по статусу (опционально)
	ActiveOnly bool           // Только pending/confirmed/in_progress
	Overlaps   *Interval      // Только пересекающиеся с интервалом
	ExcludeID  *int64         // Исключить бронирование (при переносе)
}
