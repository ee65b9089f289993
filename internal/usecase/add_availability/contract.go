package add_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/events"
	"github.com/m04kA/SMC-RentalService/internal/service/ledger"
)

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	LockForBooking(ctx context.Context, id int64) (*domain.Resource, error)
}

// AvailabilityLedger журнал окон доступности
type AvailabilityLedger interface {
	Insert(ctx context.Context, resourceID int64, rng domain.Interval) (*ledger.InsertResult, error)
}

// EligibilityGate проверка владельца ресурса
type EligibilityGate interface {
	RequireOwner(ctx context.Context, userID int64, resource *domain.Resource) (*domain.RenterProfile, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий после фиксации
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Metrics метрики слияния окон
type Metrics interface {
	AddAvailabilityMerges(kind string, absorbed int)
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
