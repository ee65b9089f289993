package reschedule_booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/events"
	"github.com/m04kA/SMC-RentalService/internal/service/ledger"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ExistsActiveOverlap(ctx context.Context, resourceID int64, rng domain.Interval, excludeID *int64) (bool, error)
	Reschedule(ctx context.Context, id int64, rng domain.Interval, totalPrice decimal.Decimal) error
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	LockForBooking(ctx context.Context, id int64) (*domain.Resource, error)
}

// AvailabilityLedger журнал окон доступности
type AvailabilityLedger interface {
	Insert(ctx context.Context, resourceID int64, rng domain.Interval) (*ledger.InsertResult, error)
	FindSoleCovering(ctx context.Context, resourceID int64, rng domain.Interval) (*domain.AvailabilityWindow, error)
	Consume(ctx context.Context, window *domain.AvailabilityWindow, rng domain.Interval) ([]domain.AvailabilityWindow, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий после фиксации
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
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
