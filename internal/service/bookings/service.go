package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/events"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	resourceRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	resourceRepo ResourceRepository
	ledger       AvailabilityLedger
	owners       OwnershipChecker
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	resourceRepo ResourceRepository,
	ledger AvailabilityLedger,
	owners OwnershipChecker,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		resourceRepo: resourceRepo,
		ledger:       ledger,
		owners:       owners,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Бронирование видят клиент, который его сделал, и владелец ресурса
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	filter := domain.BookingsFilter{CustomerID: &req.UserID}
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetResourceBookings получает бронирования ресурса
// Доступно только владельцу ресурса
func (s *Service) GetResourceBookings(ctx context.Context, req *models.GetResourceBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetResourceBookings: fetching bookings for resource=%d, user=%d", req.ResourceID, req.UserID)

	resource, err := s.resourceRepo.GetByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("GetResourceBookings: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("GetResourceBookings: repository error for resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: GetResourceBookings - repository error: %w", ErrInternal, err)
	}

	if err := s.checkOwnerAccess(ctx, resource, req.UserID); err != nil {
		return nil, err
	}

	filter := domain.BookingsFilter{ResourceID: &resource.ID, ActiveOnly: req.ActiveOnly}
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetResourceBookings: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetResourceBookings: repository error for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: GetResourceBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetResourceBookings: successfully fetched %d bookings for resource=%d", len(bookings), req.ResourceID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование клиентом
// Отменить можно только своё бронирование в статусе pending или confirmed.
// Интервал бронирования возвращается в журнал доступности в той же транзакции.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	var previous domain.BookingStatus
	booking, err := s.changeStatus(ctx, bookingID, domain.StatusCancelled, func(ctx context.Context, b *domain.Booking) error {
		if b.CustomerID != req.UserID {
			return ErrBookingNotFound
		}
		if !b.CanBeCancelled() {
			return fmt.Errorf("%w: status=%s", ErrCannotCancel, b.Status)
		}
		previous = b.Status
		return nil
	})
	if err != nil {
		s.logFailure("Cancel", bookingID, err)
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	s.publish(ctx, events.NewBookingEvent(events.BookingCancelled, booking, previous, s.timeProvider.Now()))
	return models.FromDomainBooking(booking), nil
}

// UpdateStatus переводит бронирование в новый статус по таблице переходов
// Доступно только владельцу ресурса
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d", bookingID, req.Status, req.UserID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	var previous domain.BookingStatus
	booking, err := s.changeStatus(ctx, bookingID, newStatus, func(ctx context.Context, b *domain.Booking) error {
		resource, err := s.resourceRepo.GetByID(ctx, b.ResourceID)
		if err != nil {
			return fmt.Errorf("%w: UpdateStatus - get resource: %w", ErrInternal, err)
		}
		if err := s.checkOwnerAccess(ctx, resource, req.UserID); err != nil {
			return err
		}
		previous = b.Status
		return nil
	})
	if err != nil {
		s.logFailure("UpdateStatus", bookingID, err)
		return nil, err
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d: %s -> %s", bookingID, previous, newStatus)

	eventType := events.BookingStatusChanged
	if newStatus == domain.StatusCancelled {
		eventType = events.BookingCancelled
	}
	s.publish(ctx, events.NewBookingEvent(eventType, booking, previous, s.timeProvider.Now()))
	return models.FromDomainBooking(booking), nil
}

// changeStatus общий путь смены статуса: блокировка, проверка прав, переход, возврат интервала при отмене
func (s *Service) changeStatus(
	ctx context.Context,
	bookingID int64,
	target domain.BookingStatus,
	authorize func(ctx context.Context, b *domain.Booking) error,
) (*domain.Booking, error) {
	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: get booking: %w", ErrInternal, err)
		}

		if err := authorize(txCtx, booking); err != nil {
			return err
		}

		now := s.timeProvider.Now()
		if err := booking.TransitionTo(target, now); err != nil {
			return err
		}

		if target == domain.StatusCancelled {
			if _, err := s.resourceRepo.LockForBooking(txCtx, booking.ResourceID); err != nil {
				return fmt.Errorf("%w: lock resource: %w", ErrInternal, err)
			}
			if _, err := s.ledger.Insert(txCtx, booking.ResourceID, booking.Range); err != nil {
				return fmt.Errorf("%w: release range: %w", ErrInternal, err)
			}
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, booking.ID, booking.Status, booking.CancelledAt); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: update status: %w", ErrInternal, err)
		}

		booking.UpdatedAt = now.UTC()
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Вспомогательные методы

// checkUserAccess клиент бронирования или владелец ресурса
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.CustomerID == userID {
		return nil
	}

	resource, err := s.resourceRepo.GetByID(ctx, booking.ResourceID)
	if err != nil {
		s.logger.Error("checkUserAccess: failed to get resource id=%d: %v", booking.ResourceID, err)
		return fmt.Errorf("%w: checkUserAccess - get resource: %w", ErrInternal, err)
	}

	return s.checkOwnerAccess(ctx, resource, userID)
}

// checkOwnerAccess проверяет, что пользователь владелец ресурса
func (s *Service) checkOwnerAccess(ctx context.Context, resource *domain.Resource, userID int64) error {
	isOwner, err := s.owners.IsOwner(ctx, userID, resource)
	if err != nil {
		s.logger.Error("checkOwnerAccess: failed to check owner of resource id=%d: %v", resource.ID, err)
		return fmt.Errorf("%w: checkOwnerAccess: %w", ErrInternal, err)
	}
	if !isOwner {
		s.logger.Warn("checkOwnerAccess: user=%d is not an owner of resource=%d", userID, resource.ID)
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish: failed to publish %s: %v", event.Type, err)
	}
}

func (s *Service) logFailure(op string, bookingID int64, err error) {
	if errors.Is(err, ErrInternal) {
		s.logger.Error("%s: failed for booking id=%d: %v", op, bookingID, err)
		return
	}
	s.logger.Warn("%s: rejected for booking id=%d: %v", op, bookingID, err)
}
