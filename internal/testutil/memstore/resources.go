package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	resourceRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/resource"
)

type ResourceRepository struct {
	s *Store
}

func (r *ResourceRepository) Create(_ context.Context, res *domain.Resource) (*domain.Resource, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	res.ID = r.s.nextID()
	res.IsActive = true
	res.CreatedAt = now
	res.UpdatedAt = now
	r.s.resources[res.ID] = *res
	return res, nil
}

func (r *ResourceRepository) GetByID(_ context.Context, id int64) (*domain.Resource, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	res, ok := r.s.resources[id]
	if !ok {
		return nil, resourceRepo.ErrResourceNotFound
	}
	return &res, nil
}

// LockForBooking блокировку обеспечивает TxManager, сериализующий транзакции
func (r *ResourceRepository) LockForBooking(ctx context.Context, id int64) (*domain.Resource, error) {
	return r.GetByID(ctx, id)
}

func (r *ResourceRepository) List(_ context.Context, filter domain.ResourcesFilter) ([]*domain.Resource, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.listLocked(filter, func(domain.Resource) bool { return true }), nil
}

func (r *ResourceRepository) ListAvailable(_ context.Context, kind *domain.ResourceKind, now time.Time) ([]*domain.Resource, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	filter := domain.ResourcesFilter{Kind: kind, ActiveOnly: true}
	return r.listLocked(filter, func(res domain.Resource) bool {
		for _, w := range r.s.windows {
			if w.ResourceID == res.ID && w.Range.End.After(now) {
				return true
			}
		}
		return false
	}), nil
}

func (r *ResourceRepository) Update(_ context.Context, res *domain.Resource) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.resources[res.ID]
	if !ok {
		return resourceRepo.ErrResourceNotFound
	}
	current.Rate = res.Rate
	current.Description = res.Description
	current.Car = res.Car
	current.Parking = res.Parking
	current.UpdatedAt = time.Now()
	r.s.resources[res.ID] = current
	return nil
}

func (r *ResourceRepository) Deactivate(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.resources[id]
	if !ok {
		return resourceRepo.ErrResourceNotFound
	}
	current.IsActive = false
	r.s.resources[id] = current
	return nil
}

func (r *ResourceRepository) listLocked(filter domain.ResourcesFilter, keep func(domain.Resource) bool) []*domain.Resource {
	out := make([]*domain.Resource, 0)
	for _, res := range r.s.resources {
		if filter.Kind != nil && res.Kind != *filter.Kind {
			continue
		}
		if filter.OwnerID != nil && res.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.ActiveOnly && !res.IsActive {
			continue
		}
		if !keep(res) {
			continue
		}
		res := res
		out = append(out, &res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
