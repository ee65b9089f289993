package insurance

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// PolicyRepository интерфейс репозитория страховых полисов
type PolicyRepository interface {
	Create(ctx context.Context, policy *domain.InsurancePolicy) (*domain.InsurancePolicy, error)
	GetByID(ctx context.Context, id int64) (*domain.InsurancePolicy, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.InsurancePolicy, error)
	Update(ctx context.Context, policy *domain.InsurancePolicy) error
	Delete(ctx context.Context, id int64) error
}

// BookingRepository чтение бронирования, к которому привязан полис
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
