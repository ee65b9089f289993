package renters

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// ProfileRepository интерфейс репозитория профилей арендодателей
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.RenterProfile) (*domain.RenterProfile, error)
	FindByUserID(ctx context.Context, userID int64) (*domain.RenterProfile, error)
	UpdateDocuments(ctx context.Context, profile *domain.RenterProfile) error
	MarkVerified(ctx context.Context, id int64, verifiedAt time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
