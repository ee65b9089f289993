package renters

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	renterRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/renter"
	"github.com/m04kA/SMC-RentalService/internal/service/renters/models"
)

// Service профили арендодателей и их верификация
type Service struct {
	profileRepo  ProfileRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

func NewService(profileRepo ProfileRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		profileRepo:  profileRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetMine возвращает профиль текущего пользователя
func (s *Service) GetMine(ctx context.Context, userID int64) (*models.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetMine: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetMine - repository error: %w", ErrInternal, err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return models.FromDomainProfile(profile), nil
}

// Create создает неверифицированный профиль
func (s *Service) Create(ctx context.Context, req *models.CreateProfileRequest) (*models.ProfileResponse, error) {
	s.logger.Info("Create: creating renter profile for user=%d", req.UserID)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	created, err := s.profileRepo.Create(ctx, &domain.RenterProfile{
		UserID:             req.UserID,
		DriverLicenseImage: req.DriverLicenseImage,
		PhotoIDImage:       req.PhotoIDImage,
	})
	if err != nil {
		if errors.Is(err, renterRepo.ErrProfileExists) {
			s.logger.Warn("Create: profile for user=%d already exists", req.UserID)
			return nil, ErrProfileExists
		}
		s.logger.Error("Create: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: created renter profile id=%d for user=%d", created.ID, req.UserID)
	return models.FromDomainProfile(created), nil
}

// UpdateDocuments заменяет переданные документы
// Статус верификации этим методом не меняется
func (s *Service) UpdateDocuments(ctx context.Context, req *models.UpdateDocumentsRequest) (*models.ProfileResponse, error) {
	s.logger.Info("UpdateDocuments: user=%d", req.UserID)

	var result *domain.RenterProfile
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		profile, err := s.profileRepo.FindByUserID(txCtx, req.UserID)
		if err != nil {
			return fmt.Errorf("%w: UpdateDocuments - find profile: %w", ErrInternal, err)
		}
		if profile == nil {
			return ErrProfileNotFound
		}

		if req.DriverLicenseImage != nil {
			profile.DriverLicenseImage = req.DriverLicenseImage
		}
		if req.PhotoIDImage != nil {
			profile.PhotoIDImage = req.PhotoIDImage
		}

		if err := s.profileRepo.UpdateDocuments(txCtx, profile); err != nil {
			return fmt.Errorf("%w: UpdateDocuments - update: %w", ErrInternal, err)
		}
		result = profile
		return nil
	})
	if err != nil {
		s.logger.Warn("UpdateDocuments: failed for user=%d: %v", req.UserID, err)
		return nil, err
	}

	return models.FromDomainProfile(result), nil
}

// Verify помечает профиль пользователя верифицированным
// Доступно администратору; нужны оба документа, повторная верификация запрещена
func (s *Service) Verify(ctx context.Context, req *models.VerifyRequest) (*models.ProfileResponse, error) {
	s.logger.Info("Verify: verifying renter profile of user=%d", req.TargetUserID)

	if !req.IsAdmin {
		s.logger.Warn("Verify: non-admin attempted to verify user=%d", req.TargetUserID)
		return nil, ErrAccessDenied
	}

	var result *domain.RenterProfile
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		profile, err := s.profileRepo.FindByUserID(txCtx, req.TargetUserID)
		if err != nil {
			return fmt.Errorf("%w: Verify - find profile: %w", ErrInternal, err)
		}
		if profile == nil {
			return ErrProfileNotFound
		}

		if err := profile.Verify(s.timeProvider.Now()); err != nil {
			return err
		}

		if err := s.profileRepo.MarkVerified(txCtx, profile.ID, *profile.VerifiedAt); err != nil {
			if errors.Is(err, renterRepo.ErrProfileNotFound) {
				return ErrProfileNotFound
			}
			return fmt.Errorf("%w: Verify - mark verified: %w", ErrInternal, err)
		}
		result = profile
		return nil
	})
	if err != nil {
		s.logger.Warn("Verify: failed for user=%d: %v", req.TargetUserID, err)
		return nil, err
	}

	s.logger.Info("Verify: renter profile id=%d verified", result.ID)
	return models.FromDomainProfile(result), nil
}
