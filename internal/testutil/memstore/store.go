// Package memstore хранилище в памяти с семантикой репозиториев Postgres.
// Используется в тестах сервисов и usecase.
package memstore

import (
	"sync"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Store общее состояние всех репозиториев
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	seq  int64

	profiles  map[int64]domain.RenterProfile
	resources map[int64]domain.Resource
	windows   map[int64]domain.AvailabilityWindow
	bookings  map[int64]domain.Booking
	policies  map[int64]domain.InsurancePolicy
}

func New() *Store {
	return &Store{
		profiles:  make(map[int64]domain.RenterProfile),
		resources: make(map[int64]domain.Resource),
		windows:   make(map[int64]domain.AvailabilityWindow),
		bookings:  make(map[int64]domain.Booking),
		policies:  make(map[int64]domain.InsurancePolicy),
	}
}

func (s *Store) Windows() *WindowRepository {
	return &WindowRepository{s: s}
}

func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{s: s}
}

func (s *Store) Resources() *ResourceRepository {
	return &ResourceRepository{s: s}
}

func (s *Store) Renters() *RenterRepository {
	return &RenterRepository{s: s}
}

func (s *Store) Policies() *PolicyRepository {
	return &PolicyRepository{s: s}
}

func (s *Store) TxManager() *TxManager {
	return &TxManager{s: s}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

type snapshot struct {
	seq       int64
	profiles  map[int64]domain.RenterProfile
	resources map[int64]domain.Resource
	windows   map[int64]domain.AvailabilityWindow
	bookings  map[int64]domain.Booking
	policies  map[int64]domain.InsurancePolicy
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		seq:       s.seq,
		profiles:  copyMap(s.profiles),
		resources: copyMap(s.resources),
		windows:   copyMap(s.windows),
		bookings:  copyMap(s.bookings),
		policies:  copyMap(s.policies),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = snap.seq
	s.profiles = snap.profiles
	s.resources = snap.resources
	s.windows = snap.windows
	s.bookings = snap.bookings
	s.policies = snap.policies
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
