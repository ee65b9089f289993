package memstore

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	renterRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/renter"
)

type RenterRepository struct {
	s *Store
}

func (r *RenterRepository) Create(_ context.Context, profile *domain.RenterProfile) (*domain.RenterProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.profiles {
		if p.UserID == profile.UserID {
			return nil, renterRepo.ErrProfileExists
		}
	}

	now := time.Now()
	profile.ID = r.s.nextID()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	r.s.profiles[profile.ID] = *profile
	return profile, nil
}

func (r *RenterRepository) FindByUserID(_ context.Context, userID int64) (*domain.RenterProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.profiles {
		if p.UserID == userID {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *RenterRepository) GetByID(_ context.Context, id int64) (*domain.RenterProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.profiles[id]
	if !ok {
		return nil, renterRepo.ErrProfileNotFound
	}
	return &p, nil
}

func (r *RenterRepository) UpdateDocuments(_ context.Context, profile *domain.RenterProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.profiles[profile.ID]
	if !ok {
		return renterRepo.ErrProfileNotFound
	}
	p.DriverLicenseImage = profile.DriverLicenseImage
	p.PhotoIDImage = profile.PhotoIDImage
	p.UpdatedAt = time.Now()
	r.s.profiles[p.ID] = p
	return nil
}

func (r *RenterRepository) MarkVerified(_ context.Context, id int64, verifiedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.profiles[id]
	if !ok {
		return renterRepo.ErrProfileNotFound
	}
	p.IsVerified = true
	p.VerifiedAt = &verifiedAt
	r.s.profiles[id] = p
	return nil
}
