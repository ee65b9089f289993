package resources

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	resourceRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-RentalService/internal/service/resources/models"
)

// Service автомобили и парковочные места арендодателей
type Service struct {
	resourceRepo ResourceRepository
	gate         EligibilityGate
	ledger       AvailabilityLedger
	timeProvider TimeProvider
	logger       Logger
}

func NewService(resourceRepo ResourceRepository, gate EligibilityGate, ledger AvailabilityLedger, logger Logger) *Service {
	return &Service{
		resourceRepo: resourceRepo,
		gate:         gate,
		ledger:       ledger,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create регистрирует ресурс от имени верифицированного арендодателя
func (s *Service) Create(ctx context.Context, req *models.CreateResourceRequest) (*models.ResourceResponse, error) {
	s.logger.Info("Create: user=%d registers %s", req.UserID, req.Kind)

	kind, err := domain.ParseResourceKind(req.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	profile, err := s.gate.RequireVerifiedRenter(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotVerifiedRenter) {
			s.logger.Warn("Create: user=%d is not a verified renter", req.UserID)
			return nil, err
		}
		return nil, fmt.Errorf("%w: Create - eligibility: %w", ErrInternal, err)
	}

	resource := &domain.Resource{
		OwnerID:     profile.ID,
		Kind:        kind,
		Rate:        req.Rate,
		Description: req.Description,
		Car:         req.Car.ToDomainCar(),
		Parking:     req.Parking.ToDomainParking(),
	}
	if err := resource.Validate(s.timeProvider.Now()); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	created, err := s.resourceRepo.Create(ctx, resource)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: created %s id=%d for profile=%d", created.Kind, created.ID, profile.ID)
	return models.FromDomainResource(created), nil
}

// Get возвращает активный ресурс
func (s *Service) Get(ctx context.Context, id int64) (*models.ResourceResponse, error) {
	resource, err := s.getActive(ctx, "Get", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainResource(resource), nil
}

// List возвращает активные ресурсы, опционально одного типа
func (s *Service) List(ctx context.Context, req *models.ListResourcesRequest) (*models.ResourceListResponse, error) {
	kind, err := parseKind(req.Kind)
	if err != nil {
		return nil, err
	}

	resources, err := s.resourceRepo.List(ctx, domain.ResourcesFilter{Kind: kind, ActiveOnly: true})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainResourceList(resources), nil
}

// ListAvailable активные ресурсы, у которых есть окно доступности, заканчивающееся в будущем
func (s *Service) ListAvailable(ctx context.Context, req *models.ListResourcesRequest) (*models.ResourceListResponse, error) {
	kind, err := parseKind(req.Kind)
	if err != nil {
		return nil, err
	}

	resources, err := s.resourceRepo.ListAvailable(ctx, kind, s.timeProvider.Now().UTC())
	if err != nil {
		s.logger.Error("ListAvailable: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAvailable - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainResourceList(resources), nil
}

// Update меняет ставку, описание и атрибуты ресурса владельцем
func (s *Service) Update(ctx context.Context, req *models.UpdateResourceRequest) (*models.ResourceResponse, error) {
	s.logger.Info("Update: user=%d updates resource=%d", req.UserID, req.ResourceID)

	resource, err := s.getOwned(ctx, "Update", req.UserID, req.ResourceID)
	if err != nil {
		return nil, err
	}

	if req.Rate != nil {
		resource.Rate = *req.Rate
	}
	if req.Description != nil {
		resource.Description = req.Description
	}
	if req.Car != nil {
		resource.Car = req.Car.ToDomainCar()
	}
	if req.Parking != nil {
		resource.Parking = req.Parking.ToDomainParking()
	}

	if err := resource.Validate(s.timeProvider.Now()); err != nil {
		s.logger.Warn("Update: validation failed for resource=%d: %v", resource.ID, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.resourceRepo.Update(ctx, resource); err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		s.logger.Error("Update: repository error for resource=%d: %v", resource.ID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
	}

	resource.UpdatedAt = s.timeProvider.Now().UTC()
	return models.FromDomainResource(resource), nil
}

// Deactivate мягко удаляет ресурс владельцем
// Существующие бронирования не затрагиваются, новые невозможны
func (s *Service) Deactivate(ctx context.Context, userID, resourceID int64) error {
	s.logger.Info("Deactivate: user=%d deactivates resource=%d", userID, resourceID)

	resource, err := s.getOwned(ctx, "Deactivate", userID, resourceID)
	if err != nil {
		return err
	}

	if err := s.resourceRepo.Deactivate(ctx, resource.ID); err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		s.logger.Error("Deactivate: repository error for resource=%d: %v", resource.ID, err)
		return fmt.Errorf("%w: Deactivate - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Deactivate: resource=%d deactivated", resource.ID)
	return nil
}

// ListAvailability окна доступности активного ресурса по возрастанию начала
func (s *Service) ListAvailability(ctx context.Context, resourceID int64) (*models.WindowListResponse, error) {
	resource, err := s.getActive(ctx, "ListAvailability", resourceID)
	if err != nil {
		return nil, err
	}

	windows, err := s.ledger.List(ctx, resource.ID)
	if err != nil {
		s.logger.Error("ListAvailability: ledger error for resource=%d: %v", resource.ID, err)
		return nil, fmt.Errorf("%w: ListAvailability - ledger error: %w", ErrInternal, err)
	}

	return models.FromDomainWindows(windows), nil
}

func (s *Service) getActive(ctx context.Context, op string, id int64) (*domain.Resource, error) {
	resource, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("%s: resource id=%d not found", op, id)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("%s: repository error for resource id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	if !resource.IsActive {
		s.logger.Warn("%s: resource id=%d is inactive", op, id)
		return nil, ErrResourceNotFound
	}
	return resource, nil
}

func (s *Service) getOwned(ctx context.Context, op string, userID, id int64) (*domain.Resource, error) {
	resource, err := s.getActive(ctx, op, id)
	if err != nil {
		return nil, err
	}

	isOwner, err := s.gate.IsOwner(ctx, userID, resource)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - owner check: %w", ErrInternal, op, err)
	}
	if !isOwner {
		s.logger.Warn("%s: user=%d is not an owner of resource=%d", op, userID, id)
		return nil, ErrAccessDenied
	}
	return resource, nil
}

func parseKind(raw *string) (*domain.ResourceKind, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	kind, err := domain.ParseResourceKind(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return &kind, nil
}
