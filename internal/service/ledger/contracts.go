package ledger

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// WindowRepository интерфейс репозитория окон доступности
type WindowRepository interface {
	Create(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	ListByResource(ctx context.Context, resourceID int64) ([]domain.AvailabilityWindow, error)
	ListTouching(ctx context.Context, resourceID int64, rng domain.Interval) ([]domain.AvailabilityWindow, error)
	ListCovering(ctx context.Context, resourceID int64, rng domain.Interval) ([]domain.AvailabilityWindow, error)
	DeleteByIDs(ctx context.Context, ids []int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
