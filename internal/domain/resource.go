package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ResourceKind тип бронируемого ресурса
type ResourceKind string

const (
	KindCar     ResourceKind = "car"
	KindParking ResourceKind = "parking"
)

// ParseResourceKind парсит тип ресурса из строки запроса
func ParseResourceKind(s string) (ResourceKind, error) {
	kind := ResourceKind(strings.ToLower(strings.TrimSpace(s)))
	if !kind.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidResourceKind, s)
	}
	return kind, nil
}

func (k ResourceKind) IsValid() bool {
	return k == KindCar || k == KindParking
}

func (k ResourceKind) String() string {
	return string(k)
}

// CarDetails атрибуты автомобиля
type CarDetails struct {
	Make                 string
	Model                string
	Year                 int
	ImageFront           *string
	ImageRear            *string
	ImageInterior        *string
	RegistrationDocument *string
}

// ParkingDetails атрибуты парковочного места
type ParkingDetails struct {
	Name    string
	Address string
	Image   *string
}

// Resource бронируемый ресурс (автомобиль или парковочное место)
// Rate: суточная ставка для автомобиля, часовая для парковки
type Resource struct {
	ID          int64
	OwnerID     int64 // ID профиля арендодателя
	Kind        ResourceKind
	Rate        decimal.Decimal
	IsActive    bool
	Description *string

	Car     *CarDetails
	Parking *ParkingDetails

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Pricing возвращает стратегию тарификации ресурса
func (r *Resource) Pricing() (PricingStrategy, error) {
	return PricingFor(r.Kind)
}

// IsOwnedBy проверяет владельца ресурса по ID профиля
func (r *Resource) IsOwnedBy(profileID int64) bool {
	return r.OwnerID == profileID
}

// Validate проверяет обязательные поля в зависимости от типа
func (r *Resource) Validate(now time.Time) error {
	if !r.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidResourceKind, r.Kind)
	}
	if !r.Rate.IsPositive() {
		return fmt.Errorf("%w: rate must be positive", ErrInvalidResource)
	}
	if r.Description != nil && len(*r.Description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description too long", ErrInvalidResource)
	}

	switch r.Kind {
	case KindCar:
		if r.Car == nil || r.Parking != nil {
			return fmt.Errorf("%w: car details are required", ErrInvalidResource)
		}
		if strings.TrimSpace(r.Car.Make) == "" || strings.TrimSpace(r.Car.Model) == "" {
			return fmt.Errorf("%w: make and model are required", ErrInvalidResource)
		}
		if r.Car.Year < MinCarYear || r.Car.Year > now.Year()+MaxCarYearAhead {
			return fmt.Errorf("%w: year %d out of range", ErrInvalidResource, r.Car.Year)
		}
	case KindParking:
		if r.Parking == nil || r.Car != nil {
			return fmt.Errorf("%w: parking details are required", ErrInvalidResource)
		}
		if strings.TrimSpace(r.Parking.Name) == "" || len(r.Parking.Name) > MaxParkingNameLength {
			return fmt.Errorf("%w: invalid parking name", ErrInvalidResource)
		}
		if strings.TrimSpace(r.Parking.Address) == "" || len(r.Parking.Address) > MaxParkingAddressLength {
			return fmt.Errorf("%w: invalid parking address", ErrInvalidResource)
		}
	}

	return nil
}

// ResourcesFilter фильтр для выборки ресурсов
type ResourcesFilter struct {
	Kind       *ResourceKind
	OwnerID    *int64
	ActiveOnly bool
}
