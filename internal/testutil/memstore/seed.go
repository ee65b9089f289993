package memstore

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// SeedRenter создает профиль пользователя
func (s *Store) SeedRenter(userID int64, verified bool) domain.RenterProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	dl, photo := "license.png", "photo-id.png"
	p := domain.RenterProfile{
		ID:                 s.nextID(),
		UserID:             userID,
		DriverLicenseImage: &dl,
		PhotoIDImage:       &photo,
		IsVerified:         verified,
	}
	if verified {
		now := time.Now().UTC()
		p.VerifiedAt = &now
	}
	s.profiles[p.ID] = p
	return p
}

// SeedResource создает активный ресурс владельца с минимальными атрибутами
func (s *Store) SeedResource(ownerProfileID int64, kind domain.ResourceKind, rate decimal.Decimal) domain.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := domain.Resource{
		ID:       s.nextID(),
		OwnerID:  ownerProfileID,
		Kind:     kind,
		Rate:     rate,
		IsActive: true,
	}
	switch kind {
	case domain.KindCar:
		res.Car = &domain.CarDetails{Make: "Toyota", Model: "Corolla", Year: 2020}
	case domain.KindParking:
		res.Parking = &domain.ParkingDetails{Name: "P1", Address: "Main st. 1"}
	}
	s.resources[res.ID] = res
	return res
}

// SeedWindow добавляет окно без слияния
func (s *Store) SeedWindow(resourceID int64, rng domain.Interval) domain.AvailabilityWindow {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := domain.AvailabilityWindow{ID: s.nextID(), ResourceID: resourceID, Range: rng}
	s.windows[w.ID] = w
	return w
}

// SeedBooking сохраняет бронирование как есть
func (s *Store) SeedBooking(b domain.Booking) domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = s.nextID()
	b.ResourceKind = s.resources[b.ResourceID].Kind
	s.bookings[b.ID] = b
	return b
}

// CountActiveBookings количество бронирований ресурса в активных статусах
func (s *Store) CountActiveBookings(resourceID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, b := range s.bookings {
		if b.ResourceID == resourceID && b.Status.IsActive() {
			n++
		}
	}
	return n
}
