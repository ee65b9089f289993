package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/events"
)

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	// LockForBooking читает ресурс с блокировкой строки до конца транзакции
	LockForBooking(ctx context.Context, id int64) (*domain.Resource, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ExistsActiveOverlap(ctx context.Context, resourceID int64, rng domain.Interval, excludeID *int64) (bool, error)
}

// AvailabilityLedger журнал окон доступности
type AvailabilityLedger interface {
	FindSoleCovering(ctx context.Context, resourceID int64, rng domain.Interval) (*domain.AvailabilityWindow, error)
	Consume(ctx context.Context, window *domain.AvailabilityWindow, rng domain.Interval) ([]domain.AvailabilityWindow, error)
}

// EligibilityGate проверка права бронировать
type EligibilityGate interface {
	RequireVerifiedRenter(ctx context.Context, userID int64) (*domain.RenterProfile, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий после фиксации
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Metrics доменные метрики бронирований
type Metrics interface {
	IncBookingCreated(kind string)
	IncBookingRejected(reason string)
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
