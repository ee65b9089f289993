package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// CarAttributes атрибуты автомобиля
type CarAttributes struct {
	Make                 string  `json:"make"`
	Model                string  `json:"model"`
	Year                 int     `json:"year"`
	ImageFront           *string `json:"imageFront,omitempty"`
	ImageRear            *string `json:"imageRear,omitempty"`
	ImageInterior        *string `json:"imageInterior,omitempty"`
	RegistrationDocument *string `json:"registrationDocument,omitempty"`
}

// ParkingAttributes атрибуты парковочного места
type ParkingAttributes struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Image   *string `json:"image,omitempty"`
}

// CreateResourceRequest запрос на регистрацию автомобиля или парковки
type CreateResourceRequest struct {
	UserID      int64              `json:"-"`
	Kind        string             `json:"kind"`
	Rate        decimal.Decimal    `json:"rate"` // за сутки для автомобиля, за час для парковки
	Description *string            `json:"description,omitempty"`
	Car         *CarAttributes     `json:"car,omitempty"`
	Parking     *ParkingAttributes `json:"parking,omitempty"`
}

// UpdateResourceRequest запрос на изменение ресурса
// Тип ресурса и владелец не меняются
type UpdateResourceRequest struct {
	UserID      int64              `json:"-"`
	ResourceID  int64              `json:"-"`
	Rate        *decimal.Decimal   `json:"rate,omitempty"`
	Description *string            `json:"description,omitempty"`
	Car         *CarAttributes     `json:"car,omitempty"`
	Parking     *ParkingAttributes `json:"parking,omitempty"`
}

// ListResourcesRequest фильтр списка ресурсов
type ListResourcesRequest struct {
	Kind *string
}

// ResourceResponse ответ с данными ресурса
type ResourceResponse struct {
	ID          int64              `json:"id"`
	OwnerID     int64              `json:"ownerId"`
	Kind        string             `json:"kind"`
	Rate        decimal.Decimal    `json:"rate"`
	IsActive    bool               `json:"isActive"`
	Description *string            `json:"description,omitempty"`
	Car         *CarAttributes     `json:"car,omitempty"`
	Parking     *ParkingAttributes `json:"parking,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// ResourceListResponse ответ со списком ресурсов
type ResourceListResponse struct {
	Resources []ResourceResponse `json:"resources"`
}

// WindowResponse окно доступности
type WindowResponse struct {
	ID         int64     `json:"id"`
	ResourceID int64     `json:"resourceId"`
	StartAt    time.Time `json:"startAt"`
	EndAt      time.Time `json:"endAt"`
}

// WindowListResponse окна ресурса, упорядоченные по началу
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// ToDomainCar конвертирует DTO в domain модель
func (a *CarAttributes) ToDomainCar() *domain.CarDetails {
	if a == nil {
		return nil
	}
	return &domain.CarDetails{
		Make:                 a.Make,
		Model:                a.Model,
		Year:                 a.Year,
		ImageFront:           a.ImageFront,
		ImageRear:            a.ImageRear,
		ImageInterior:        a.ImageInterior,
		RegistrationDocument: a.RegistrationDocument,
	}
}

// ToDomainParking конвертирует DTO в domain модель
func (a *ParkingAttributes) ToDomainParking() *domain.ParkingDetails {
	if a == nil {
		return nil
	}
	return &domain.ParkingDetails{Name: a.Name, Address: a.Address, Image: a.Image}
}

// FromDomainResource конвертирует domain модель в DTO
func FromDomainResource(r *domain.Resource) *ResourceResponse {
	if r == nil {
		return nil
	}

	resp := &ResourceResponse{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Kind:        r.Kind.String(),
		Rate:        r.Rate,
		IsActive:    r.IsActive,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}

	if r.Car != nil {
		resp.Car = &CarAttributes{
			Make:                 r.Car.Make,
			Model:                r.Car.Model,
			Year:                 r.Car.Year,
			ImageFront:           r.Car.ImageFront,
			ImageRear:            r.Car.ImageRear,
			ImageInterior:        r.Car.ImageInterior,
			RegistrationDocument: r.Car.RegistrationDocument,
		}
	}
	if r.Parking != nil {
		resp.Parking = &ParkingAttributes{Name: r.Parking.Name, Address: r.Parking.Address, Image: r.Parking.Image}
	}

	return resp
}

// FromDomainResourceList конвертирует список domain моделей в DTO
func FromDomainResourceList(resources []*domain.Resource) *ResourceListResponse {
	resp := &ResourceListResponse{Resources: make([]ResourceResponse, 0, len(resources))}
	for _, r := range resources {
		if item := FromDomainResource(r); item != nil {
			resp.Resources = append(resp.Resources, *item)
		}
	}
	return resp
}

// FromDomainWindows конвертирует окна доступности в DTO
func FromDomainWindows(windows []domain.AvailabilityWindow) *WindowListResponse {
	resp := &WindowListResponse{Windows: make([]WindowResponse, 0, len(windows))}
	for _, w := range windows {
		resp.Windows = append(resp.Windows, WindowResponse{
			ID:         w.ID,
			ResourceID: w.ResourceID,
			StartAt:    w.Range.Start,
			EndAt:      w.Range.End,
		})
	}
	return resp
}
