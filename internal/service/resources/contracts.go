package resources

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	Create(ctx context.Context, res *domain.Resource) (*domain.Resource, error)
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
	List(ctx context.Context, filter domain.ResourcesFilter) ([]*domain.Resource, error)
	ListAvailable(ctx context.Context, kind *domain.ResourceKind, now time.Time) ([]*domain.Resource, error)
	Update(ctx context.Context, res *domain.Resource) error
	Deactivate(ctx context.Context, id int64) error
}

// EligibilityGate проверки арендодателя и владельца
type EligibilityGate interface {
	RequireVerifiedRenter(ctx context.Context, userID int64) (*domain.RenterProfile, error)
	IsOwner(ctx context.Context, userID int64, resource *domain.Resource) (bool, error)
}

// AvailabilityLedger чтение окон доступности
type AvailabilityLedger interface {
	List(ctx context.Context, resourceID int64) ([]domain.AvailabilityWindow, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
