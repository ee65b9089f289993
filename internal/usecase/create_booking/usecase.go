package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/events"
	resourceRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

// Причины отказа для метрик
const (
	rejectInvalid       = "invalid_input"
	rejectNotVerified   = "not_verified"
	rejectInvalidRange  = "invalid_range"
	rejectNotFound      = "resource_not_found"
	rejectNoAvailable   = "no_availability"
	rejectOverlap       = "overlap"
	rejectConflict      = "conflict"
	rejectInternalError = "internal"
)

// UseCase use case для создания бронирования
type UseCase struct {
	resourceRepo ResourceRepository
	bookingRepo  BookingRepository
	ledger       AvailabilityLedger
	gate         EligibilityGate
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resourceRepo ResourceRepository,
	bookingRepo BookingRepository,
	ledger AvailabilityLedger,
	gate EligibilityGate,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		resourceRepo: resourceRepo,
		bookingRepo:  bookingRepo,
		ledger:       ledger,
		gate:         gate,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Шаги 3-6 выполняются в одной сериализуемой транзакции под блокировкой строки ресурса,
// поэтому два конкурентных запроса на пересекающиеся интервалы не могут оба завершиться успешно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, resource=%d, range=[%s, %s)",
		req.UserID, req.ResourceID, req.Start.Format(domain.TimeFormat), req.End.Format(domain.TimeFormat))

	// 0. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.IncBookingRejected(rejectInvalid)
		return nil, err
	}

	// 1. Проверяем, что пользователь верифицированный арендодатель
	if _, err := uc.gate.RequireVerifiedRenter(ctx, req.UserID); err != nil {
		if errors.Is(err, domain.ErrNotVerifiedRenter) {
			uc.logger.Warn("CreateBooking: user=%d is not a verified renter", req.UserID)
			uc.metrics.IncBookingRejected(rejectNotVerified)
			return nil, err
		}
		uc.logger.Error("CreateBooking: eligibility check failed for user=%d: %v", req.UserID, err)
		uc.metrics.IncBookingRejected(rejectInternalError)
		return nil, fmt.Errorf("%w: eligibility check: %w", ErrInternal, err)
	}

	// 2. Проверяем корректность интервала
	rng, err := domain.NewInterval(req.Start, req.End)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid range: %v", err)
		uc.metrics.IncBookingRejected(rejectInvalidRange)
		return nil, err
	}

	var result *domain.Booking

	// 3-6. Операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем ресурс (FOR UPDATE)
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

		// 3.2. Ищем единственное покрывающее окно доступности
		window, err := uc.ledger.FindSoleCovering(txCtx, resource.ID, rng)
		if err != nil {
			if errors.Is(err, domain.ErrAmbiguousAvailability) {
				return fmt.Errorf("%w: %s", domain.ErrNoAvailability, rng)
			}
			return fmt.Errorf("%w: failed to find covering window: %w", ErrInternal, err)
		}

		// 4. Проверяем пересечение с активными бронированиями
		overlaps, err := uc.bookingRepo.ExistsActiveOverlap(txCtx, resource.ID, rng, nil)
		if err != nil {
			return fmt.Errorf("%w: failed to check overlaps: %w", ErrInternal, err)
		}
		if overlaps {
			return fmt.Errorf("%w: %s", domain.ErrOverlappingBooking, rng)
		}

		// 5. Считаем цену
		price, err := uc.price(resource, rng, req.ExplicitPrice)
		if err != nil {
			return fmt.Errorf("%w: failed to compute price: %w", ErrInternal, err)
		}

		// 6.1. Создаем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			ResourceID:   resource.ID,
			ResourceKind: resource.Kind,
			CustomerID:   req.UserID,
			Range:        rng,
			TotalPrice:   price,
			Status:       domain.StatusPending,
		})
		if err != nil {
			if errors.Is(err, domain.ErrOverlappingBooking) {
				return err
			}
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		// 6.2. Вырезаем интервал из окна доступности
		remainders, err := uc.ledger.Consume(txCtx, window, rng)
		if err != nil {
			return fmt.Errorf("%w: failed to consume window: %w", ErrInternal, err)
		}

		uc.logger.Info("CreateBooking: window id=%d split into %d remainders", window.ID, len(remainders))

		created.ResourceKind = resource.Kind
		result = created
		return nil
	})

	if err != nil {
		uc.logRejection(req, err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, price=%s", result.ID, result.TotalPrice)
	uc.metrics.IncBookingCreated(result.ResourceKind.String())

	event := events.NewBookingEvent(events.BookingCreated, result, "", uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	return &Response{
		ID:           result.ID,
		ResourceID:   result.ResourceID,
		ResourceKind: result.ResourceKind.String(),
		CustomerID:   result.CustomerID,
		Start:        result.Range.Start,
		End:          result.Range.End,
		TotalPrice:   result.TotalPrice,
		Status:       string(result.Status),
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}

// price явная цена, если она больше нуля, иначе по стратегии тарификации ресурса
func (uc *UseCase) price(resource *domain.Resource, rng domain.Interval, explicit *decimal.Decimal) (decimal.Decimal, error) {
	if explicit != nil && explicit.IsPositive() {
		return *explicit, nil
	}
	pricing, err := resource.Pricing()
	if err != nil {
		return decimal.Zero, err
	}
	return pricing.Price(resource.Rate, rng), nil
}

func (uc *UseCase) logRejection(req *Request, err error) {
	switch {
	case errors.Is(err, ErrResourceNotFound):
		uc.logger.Warn("CreateBooking: resource id=%d not found", req.ResourceID)
		uc.metrics.IncBookingRejected(rejectNotFound)
	case errors.Is(err, domain.ErrNoAvailability):
		uc.logger.Warn("CreateBooking: resource id=%d not available: %v", req.ResourceID, err)
		uc.metrics.IncBookingRejected(rejectNoAvailable)
	case errors.Is(err, domain.ErrOverlappingBooking):
		uc.logger.Warn("CreateBooking: resource id=%d overlap: %v", req.ResourceID, err)
		uc.metrics.IncBookingRejected(rejectOverlap)
	case errors.Is(err, txmanager.ErrConflict):
		uc.logger.Warn("CreateBooking: resource id=%d transaction conflict: %v", req.ResourceID, err)
		uc.metrics.IncBookingRejected(rejectConflict)
	default:
		uc.logger.Error("CreateBooking: failed for resource id=%d: %v", req.ResourceID, err)
		uc.metrics.IncBookingRejected(rejectInternalError)
	}
}
