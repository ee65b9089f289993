package eligibility

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Gate проверяет право пользователя выполнять действия арендодателя
type Gate struct {
	profiles ProfileRepository
}

func NewGate(profiles ProfileRepository) *Gate {
	return &Gate{profiles: profiles}
}

// IsVerifiedRenter true, если у пользователя есть верифицированный профиль
func (g *Gate) IsVerifiedRenter(ctx context.Context, userID int64) (bool, error) {
	profile, err := g.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("%w: IsVerifiedRenter - find profile: %w", ErrInternal, err)
	}
	return profile != nil && profile.IsVerified, nil
}

// RequireVerifiedRenter возвращает профиль или domain.ErrNotVerifiedRenter
func (g *Gate) RequireVerifiedRenter(ctx context.Context, userID int64) (*domain.RenterProfile, error) {
	profile, err := g.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: RequireVerifiedRenter - find profile: %w", ErrInternal, err)
	}
	if profile == nil || !profile.IsVerified {
		return nil, domain.ErrNotVerifiedRenter
	}
	return profile, nil
}

// RequireOwner проверяет, что пользователь верифицирован и владеет ресурсом
func (g *Gate) RequireOwner(ctx context.Context, userID int64, resource *domain.Resource) (*domain.RenterProfile, error) {
	profile, err := g.RequireVerifiedRenter(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !resource.IsOwnedBy(profile.ID) {
		return nil, domain.ErrOwnership
	}
	return profile, nil
}

// IsOwner true, если ресурс принадлежит профилю пользователя
// Верификация не требуется: владелец видит свои ресурсы и после отзыва статуса
func (g *Gate) IsOwner(ctx context.Context, userID int64, resource *domain.Resource) (bool, error) {
	profile, err := g.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("%w: IsOwner - find profile: %w", ErrInternal, err)
	}
	return profile != nil && resource.IsOwnedBy(profile.ID), nil
}
