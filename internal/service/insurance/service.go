package insurance

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	insuranceRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/insurance"
	"github.com/m04kA/SMC-RentalService/internal/service/insurance/models"
)

// Service страховые полисы клиентов
type Service struct {
	policyRepo  PolicyRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

func NewService(policyRepo PolicyRepository, bookingRepo BookingRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		policyRepo:  policyRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Purchase оформляет полис на активное бронирование клиента
func (s *Service) Purchase(ctx context.Context, req *models.PurchaseRequest) (*models.PolicyResponse, error) {
	s.logger.Info("Purchase: user=%d, policy=%s", req.UserID, req.PolicyNumber)

	bookingID, kind, err := domain.BookingRef{
		CarBookingID:     req.CarBookingID,
		ParkingBookingID: req.ParkingBookingID,
	}.Resolve()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	policy := &domain.InsurancePolicy{
		BookingID:       bookingID,
		BookingKind:     kind,
		PolicyNumber:    req.PolicyNumber,
		ProviderName:    req.ProviderName,
		CoverageDetails: req.CoverageDetails,
		Premium:         req.Premium,
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var created *domain.InsurancePolicy
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return fmt.Errorf("%w: id=%d", ErrBookingNotFound, bookingID)
			}
			return fmt.Errorf("%w: Purchase - get booking: %w", ErrInternal, err)
		}
		if booking.ResourceKind != kind {
			return fmt.Errorf("%w: id=%d is not a %s booking", ErrBookingNotFound, bookingID, kind)
		}
		if booking.CustomerID != req.UserID {
			return ErrAccessDenied
		}
		if !booking.IsActive() {
			return fmt.Errorf("%w: status=%s", ErrBookingNotActive, booking.Status)
		}

		created, err = s.policyRepo.Create(txCtx, policy)
		if err != nil {
			return mapWriteError("Purchase", err)
		}
		return nil
	})
	if err != nil {
		s.logFailure("Purchase", err)
		return nil, err
	}

	s.logger.Info("Purchase: created policy id=%d for booking=%d", created.ID, bookingID)
	return models.FromDomainPolicy(created), nil
}

// List полисы по бронированиям пользователя, новые первыми
func (s *Service) List(ctx context.Context, userID int64) (*models.PolicyListResponse, error) {
	policies, err := s.policyRepo.ListByCustomer(ctx, userID)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}
	return models.FromDomainPolicyList(policies), nil
}

// Update меняет реквизиты полиса, пока бронирование активно
func (s *Service) Update(ctx context.Context, req *models.UpdateRequest) (*models.PolicyResponse, error) {
	s.logger.Info("Update: user=%d, policy id=%d", req.UserID, req.PolicyID)

	var result *domain.InsurancePolicy
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		policy, err := s.getMutable(txCtx, req.UserID, req.PolicyID)
		if err != nil {
			return err
		}

		policy.PolicyNumber = req.PolicyNumber
		policy.ProviderName = req.ProviderName
		policy.CoverageDetails = req.CoverageDetails
		policy.Premium = req.Premium
		if err := policy.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}

		if err := s.policyRepo.Update(txCtx, policy); err != nil {
			return mapWriteError("Update", err)
		}
		result = policy
		return nil
	})
	if err != nil {
		s.logFailure("Update", err)
		return nil, err
	}

	return models.FromDomainPolicy(result), nil
}

// Delete удаляет полис, пока бронирование активно
func (s *Service) Delete(ctx context.Context, userID, policyID int64) error {
	s.logger.Info("Delete: user=%d, policy id=%d", userID, policyID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		policy, err := s.getMutable(txCtx, userID, policyID)
		if err != nil {
			return err
		}
		if err := s.policyRepo.Delete(txCtx, policy.ID); err != nil {
			return mapWriteError("Delete", err)
		}
		return nil
	})
	if err != nil {
		s.logFailure("Delete", err)
		return err
	}

	s.logger.Info("Delete: policy id=%d deleted", policyID)
	return nil
}

// getMutable полис клиента, чье бронирование еще активно
func (s *Service) getMutable(ctx context.Context, userID, policyID int64) (*domain.InsurancePolicy, error) {
	policy, err := s.policyRepo.GetByID(ctx, policyID)
	if err != nil {
		if errors.Is(err, insuranceRepo.ErrPolicyNotFound) {
			return nil, ErrPolicyNotFound
		}
		return nil, fmt.Errorf("%w: get policy: %w", ErrInternal, err)
	}

	booking, err := s.bookingRepo.GetByID(ctx, policy.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrPolicyNotFound
		}
		return nil, fmt.Errorf("%w: get booking: %w", ErrInternal, err)
	}
	if booking.CustomerID != userID {
		return nil, ErrPolicyNotFound
	}
	if !booking.IsActive() {
		return nil, fmt.Errorf("%w: status=%s", ErrBookingNotActive, booking.Status)
	}

	return policy, nil
}

func mapWriteError(op string, err error) error {
	switch {
	case errors.Is(err, insuranceRepo.ErrDuplicatePolicyNumber):
		return ErrDuplicatePolicyNumber
	case errors.Is(err, insuranceRepo.ErrBookingAlreadyInsured):
		return ErrBookingAlreadyInsured
	case errors.Is(err, insuranceRepo.ErrPolicyNotFound):
		return ErrPolicyNotFound
	default:
		return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
}

func (s *Service) logFailure(op string, err error) {
	if errors.Is(err, ErrInternal) {
		s.logger.Error("%s: %v", op, err)
		return
	}
	s.logger.Warn("%s: rejected: %v", op, err)
}
