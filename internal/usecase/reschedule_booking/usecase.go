package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/events"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	resourceRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/resource"
)

// UseCase перенос бронирования клиентом
type UseCase struct {
	bookingRepo  BookingRepository
	resourceRepo ResourceRepository
	ledger       AvailabilityLedger
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	resourceRepo ResourceRepository,
	ledger AvailabilityLedger,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		resourceRepo: resourceRepo,
		ledger:       ledger,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переносит бронирование
// Старый интервал возвращается в журнал доступности, новый проверяется и вырезается
// так же, как при создании. Все шаги выполняются в одной транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: user=%d, booking=%d", req.UserID, req.BookingID)

	if req.UserID <= 0 || req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: userID and bookingID must be positive", ErrInvalidInput)
	}
	if req.ExplicitPrice != nil && req.ExplicitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	rng, err := domain.NewInterval(req.Start, req.End)
	if err != nil {
		uc.logger.Warn("RescheduleBooking: invalid range: %v", err)
		return nil, err
	}

	var result *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем бронирование
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return fmt.Errorf("%w: id=%d", ErrBookingNotFound, req.BookingID)
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}
		if booking.CustomerID != req.UserID {
			return fmt.Errorf("%w: id=%d", ErrBookingNotFound, req.BookingID)
		}

		// 2. Переносить можно только pending и confirmed
		if !booking.CanBeModified() {
			return fmt.Errorf("%w: booking id=%d is %s", domain.ErrInvalidStateTransition, booking.ID, booking.Status)
		}

		// 3. Блокируем ресурс
		resource, err := uc.resourceRepo.LockForBooking(txCtx, booking.ResourceID)
		if err != nil {
			if errors.Is(err, resourceRepo.ErrResourceNotFound) {
				return fmt.Errorf("%w: id=%d", ErrResourceNotFound, booking.ResourceID)
			}
			return fmt.Errorf("%w: failed to lock resource: %w", ErrInternal, err)
		}
		if !resource.IsActive {
			return fmt.Errorf("%w: id=%d is inactive", ErrResourceNotFound, resource.ID)
		}

		// 4. Возвращаем старый интервал в журнал
		if _, err := uc.ledger.Insert(txCtx, resource.ID, booking.Range); err != nil {
			return fmt.Errorf("%w: failed to release old range: %w", ErrInternal, err)
		}

		// 5. Ищем покрывающее окно для нового интервала
		window, err := uc.ledger.FindSoleCovering(txCtx, resource.ID, rng)
		if err != nil {
			if errors.Is(err, domain.ErrAmbiguousAvailability) {
				return fmt.Errorf("%w: %s", domain.ErrNoAvailability, rng)
			}
			return fmt.Errorf("%w: failed to find covering window: %w", ErrInternal, err)
		}

		// 6. Пересечения с другими активными бронированиями
		overlaps, err := uc.bookingRepo.ExistsActiveOverlap(txCtx, resource.ID, rng, &booking.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to check overlaps: %w", ErrInternal, err)
		}
		if overlaps {
			return fmt.Errorf("%w: %s", domain.ErrOverlappingBooking, rng)
		}

		// 7. Пересчитываем цену
		price := decimal.Zero
		if req.ExplicitPrice != nil && req.ExplicitPrice.IsPositive() {
			price = *req.ExplicitPrice
		} else {
			pricing, err := resource.Pricing()
			if err != nil {
				return fmt.Errorf("%w: failed to compute price: %w", ErrInternal, err)
			}
			price = pricing.Price(resource.Rate, rng)
		}

		// 8. Сохраняем и вырезаем новый интервал
		if err := uc.bookingRepo.Reschedule(txCtx, booking.ID, rng, price); err != nil {
			if errors.Is(err, domain.ErrOverlappingBooking) {
				return err
			}
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}
		if _, err := uc.ledger.Consume(txCtx, window, rng); err != nil {
			return fmt.Errorf("%w: failed to consume window: %w", ErrInternal, err)
		}

		booking.Range = rng
		booking.TotalPrice = price
		booking.UpdatedAt = uc.timeProvider.Now().UTC()
		result = booking
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInternal):
			uc.logger.Error("RescheduleBooking: failed for booking=%d: %v", req.BookingID, err)
		default:
			uc.logger.Warn("RescheduleBooking: rejected for booking=%d: %v", req.BookingID, err)
		}
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to %s, price=%s", result.ID, result.Range, result.TotalPrice)

	event := events.NewBookingEvent(events.BookingRescheduled, result, "", uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("RescheduleBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	return &Response{
		ID:           result.ID,
		ResourceID:   result.ResourceID,
		ResourceKind: result.ResourceKind.String(),
		CustomerID:   result.CustomerID,
		Start:        result.Range.Start,
		End:          result.Range.End,
		TotalPrice:   result.TotalPrice,
		Status:       result.Status.String(),
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}
