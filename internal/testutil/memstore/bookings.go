package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
)

type BookingRepository struct {
	s *Store
}

func (r *BookingRepository) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// аналог exclusion constraint
	if booking.Status.IsActive() && r.overlapsLocked(booking.ResourceID, booking.Range, nil) {
		return nil, domain.ErrOverlappingBooking
	}

	now := time.Now()
	booking.ID = r.s.nextID()
	booking.ResourceKind = r.s.resources[booking.ResourceID].Kind
	booking.CreatedAt = now
	booking.UpdatedAt = now
	r.s.bookings[booking.ID] = *booking
	return booking, nil
}

func (r *BookingRepository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingRepository) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if !r.matchesLocked(b, filter) {
			continue
		}
		b := b
		out = append(out, &b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Range.Start.After(out[j].Range.Start)
	})
	return out, nil
}

func (r *BookingRepository) ExistsActiveOverlap(_ context.Context, resourceID int64, rng domain.Interval, excludeID *int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.overlapsLocked(resourceID, rng, excludeID), nil
}

func (r *BookingRepository) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus, cancelledAt *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	if cancelledAt != nil {
		t := *cancelledAt
		b.CancelledAt = &t
	}
	b.UpdatedAt = time.Now()
	r.s.bookings[id] = b
	return nil
}

func (r *BookingRepository) Reschedule(_ context.Context, id int64, rng domain.Interval, totalPrice decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status.IsActive() && r.overlapsLocked(b.ResourceID, rng, &id) {
		return domain.ErrOverlappingBooking
	}
	b.Range = rng
	b.TotalPrice = totalPrice
	b.UpdatedAt = time.Now()
	r.s.bookings[id] = b
	return nil
}

func (r *BookingRepository) overlapsLocked(resourceID int64, rng domain.Interval, excludeID *int64) bool {
	for _, b := range r.s.bookings {
		if b.ResourceID != resourceID || !b.Status.IsActive() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if b.Range.Overlaps(rng) {
			return true
		}
	}
	return false
}

func (r *BookingRepository) matchesLocked(b domain.Booking, f domain.BookingsFilter) bool {
	if f.ResourceID != nil && b.ResourceID != *f.ResourceID {
		return false
	}
	if f.OwnerID != nil && r.s.resources[b.ResourceID].OwnerID != *f.OwnerID {
		return false
	}
	if f.CustomerID != nil && b.CustomerID != *f.CustomerID {
		return false
	}
	if f.Status != nil {
		if b.Status != *f.Status {
			return false
		}
	} else if f.ActiveOnly && !b.Status.IsActive() {
		return false
	}
	if f.Overlaps != nil && !b.Range.Overlaps(*f.Overlaps) {
		return false
	}
	if f.ExcludeID != nil && b.ID == *f.ExcludeID {
		return false
	}
	return true
}
