package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/availability"
)

type WindowRepository struct {
	s *Store
}

func (r *WindowRepository) Create(_ context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	window.ID = r.s.nextID()
	window.CreatedAt = time.Now()
	r.s.windows[window.ID] = *window
	return window, nil
}

func (r *WindowRepository) ListByResource(_ context.Context, resourceID int64) ([]domain.AvailabilityWindow, error) {
	return r.filter(func(w domain.AvailabilityWindow) bool {
		return w.ResourceID == resourceID
	}), nil
}

func (r *WindowRepository) ListTouching(_ context.Context, resourceID int64, rng domain.Interval) ([]domain.AvailabilityWindow, error) {
	return r.filter(func(w domain.AvailabilityWindow) bool {
		return w.ResourceID == resourceID && w.Range.AdjacentOrOverlapping(rng)
	}), nil
}

func (r *WindowRepository) ListCovering(_ context.Context, resourceID int64, rng domain.Interval) ([]domain.AvailabilityWindow, error) {
	return r.filter(func(w domain.AvailabilityWindow) bool {
		return w.ResourceID == resourceID && w.Range.Covers(rng)
	}), nil
}

func (r *WindowRepository) DeleteByIDs(_ context.Context, ids []int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, id := range ids {
		if _, ok := r.s.windows[id]; !ok {
			return fmt.Errorf("%w: id=%d", availabilityRepo.ErrWindowNotFound, id)
		}
	}
	for _, id := range ids {
		delete(r.s.windows, id)
	}
	return nil
}

func (r *WindowRepository) DeleteEndedBefore(_ context.Context, t time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, w := range r.s.windows {
		if !w.Range.End.After(t) {
			delete(r.s.windows, id)
			n++
		}
	}
	return n, nil
}

// Intervals возвращает интервалы окон ресурса, отсортированные по началу
func (r *WindowRepository) Intervals(resourceID int64) []domain.Interval {
	windows, _ := r.ListByResource(context.Background(), resourceID)
	out := make([]domain.Interval, 0, len(windows))
	for _, w := range windows {
		out = append(out, w.Range)
	}
	return out
}

func (r *WindowRepository) filter(keep func(domain.AvailabilityWindow) bool) []domain.AvailabilityWindow {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.AvailabilityWindow, 0)
	for _, w := range r.s.windows {
		if keep(w) {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Range.Start.Before(out[j].Range.Start)
	})
	return out
}
