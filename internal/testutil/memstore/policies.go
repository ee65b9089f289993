package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	insuranceRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/insurance"
)

type PolicyRepository struct {
	s *Store
}

func (r *PolicyRepository) Create(_ context.Context, policy *domain.InsurancePolicy) (*domain.InsurancePolicy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.policies {
		if p.PolicyNumber == policy.PolicyNumber {
			return nil, insuranceRepo.ErrDuplicatePolicyNumber
		}
		if p.BookingID == policy.BookingID {
			return nil, insuranceRepo.ErrBookingAlreadyInsured
		}
	}

	now := time.Now()
	policy.ID = r.s.nextID()
	policy.BookingKind = r.s.resources[r.s.bookings[policy.BookingID].ResourceID].Kind
	policy.CreatedAt = now
	policy.UpdatedAt = now
	r.s.policies[policy.ID] = *policy
	return policy, nil
}

func (r *PolicyRepository) GetByID(_ context.Context, id int64) (*domain.InsurancePolicy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.policies[id]
	if !ok {
		return nil, insuranceRepo.ErrPolicyNotFound
	}
	return &p, nil
}

func (r *PolicyRepository) ListByCustomer(_ context.Context, customerID int64) ([]*domain.InsurancePolicy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.InsurancePolicy, 0)
	for _, p := range r.s.policies {
		if r.s.bookings[p.BookingID].CustomerID != customerID {
			continue
		}
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *PolicyRepository) Update(_ context.Context, policy *domain.InsurancePolicy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.policies[policy.ID]
	if !ok {
		return insuranceRepo.ErrPolicyNotFound
	}
	for _, p := range r.s.policies {
		if p.ID != policy.ID && p.PolicyNumber == policy.PolicyNumber {
			return insuranceRepo.ErrDuplicatePolicyNumber
		}
	}
	current.PolicyNumber = policy.PolicyNumber
	current.ProviderName = policy.ProviderName
	current.CoverageDetails = policy.CoverageDetails
	current.Premium = policy.Premium
	current.UpdatedAt = time.Now()
	r.s.policies[policy.ID] = current
	return nil
}

func (r *PolicyRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.policies[id]; !ok {
		return insuranceRepo.ErrPolicyNotFound
	}
	delete(r.s.policies, id)
	return nil
}
