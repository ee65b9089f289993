package eligibility

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// ProfileRepository поиск профиля арендодателя
// Отсутствие профиля возвращается как (nil, nil)
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID int64) (*domain.RenterProfile, error)
}
