package add_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/events"
	resourceRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-RentalService/internal/service/ledger"
)

// UseCase добавление окна доступности владельцем ресурса
type UseCase struct {
	resourceRepo ResourceRepository
	ledger       AvailabilityLedger
	gate         EligibilityGate
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(
	resourceRepo ResourceRepository,
	ledger AvailabilityLedger,
	gate EligibilityGate,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		resourceRepo: resourceRepo,
		ledger:       ledger,
		gate:         gate,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute добавляет окно и сливает его с пересекающимися и смежными окнами ресурса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AddAvailability: user=%d, resource=%d", req.UserID, req.ResourceID)

	if req.UserID <= 0 || req.ResourceID <= 0 {
		return nil, fmt.Errorf("%w: userID and resourceID must be positive", ErrInvalidInput)
	}

	// 1. Проверяем интервал до любых записей
	rng, err := domain.NewInterval(req.Start, req.End)
	if err != nil {
		uc.logger.Warn("AddAvailability: invalid range: %v", err)
		return nil, err
	}

	var (
		result *ledger.InsertResult
		kind   domain.ResourceKind
	)

	// 2. Блокируем ресурс и вставляем окно в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		resource, err := uc.resourceRepo.LockForBooking(txCtx, req.ResourceID)
		if err != nil {
			if errors.Is(err, resourceRepo.ErrResourceNotFound) {
				return fmt.Errorf("%w: id=%d", ErrResourceNotFound, req.ResourceID)
			}
			return fmt.Errorf("%w: failed to lock resource: %w", ErrInternal, err)
		}
		if !resource.IsActive {
			return fmt.Errorf("%w: id=%d is inactive", ErrResourceNotFound, req.ResourceID)
		}

		// 2.1. Только верифицированный владелец
		if _, err := uc.gate.RequireOwner(txCtx, req.UserID, resource); err != nil {
			return err
		}

		// 2.2. Вставка со слиянием
		inserted, err := uc.ledger.Insert(txCtx, resource.ID, rng)
		if err != nil {
			return fmt.Errorf("%w: failed to insert window: %w", ErrInternal, err)
		}

		result = inserted
		kind = resource.Kind
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotVerifiedRenter) || errors.Is(err, domain.ErrOwnership) || errors.Is(err, ErrResourceNotFound) {
			uc.logger.Warn("AddAvailability: rejected for user=%d, resource=%d: %v", req.UserID, req.ResourceID, err)
		} else {
			uc.logger.Error("AddAvailability: failed for resource=%d: %v", req.ResourceID, err)
		}
		return nil, err
	}

	uc.logger.Info("AddAvailability: resource=%d window id=%d %s, absorbed=%d",
		req.ResourceID, result.Window.ID, result.Window.Range, result.Absorbed)
	uc.metrics.AddAvailabilityMerges(kind.String(), result.Absorbed)

	event := events.NewAvailabilityEvent(&result.Window, result.Absorbed, uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("AddAvailability: failed to publish event for window id=%d: %v", result.Window.ID, err)
	}

	return &Response{
		ID:         result.Window.ID,
		ResourceID: result.Window.ResourceID,
		Start:      result.Window.Range.Start,
		End:        result.Window.Range.End,
		Absorbed:   result.Absorbed,
	}, nil
}
