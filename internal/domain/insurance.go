package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InsurancePolicy страховой полис, привязанный к одному бронированию
type InsurancePolicy struct {
	ID              int64
	BookingID       int64
	BookingKind     ResourceKind
	PolicyNumber    string
	ProviderName    string
	CoverageDetails string
	Premium         decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate проверяет обязательные поля полиса
func (p *InsurancePolicy) Validate() error {
	number := strings.TrimSpace(p.PolicyNumber)
	if number == "" || len(number) > MaxPolicyNumberLength {
		return fmt.Errorf("%w: invalid policy number", ErrInvalidPolicy)
	}
	provider := strings.TrimSpace(p.ProviderName)
	if provider == "" || len(provider) > MaxProviderNameLength {
		return fmt.Errorf("%w: invalid provider name", ErrInvalidPolicy)
	}
	if len(p.CoverageDetails) > MaxCoverageLength {
		return fmt.Errorf("%w: coverage details too long", ErrInvalidPolicy)
	}
	if p.Premium.IsNegative() {
		return fmt.Errorf("%w: premium must not be negative", ErrInvalidPolicy)
	}
	return nil
}

// BookingRef ссылка страховки на бронирование автомобиля или парковки
type BookingRef struct {
	CarBookingID     *int64
	ParkingBookingID *int64
}

// Resolve возвращает ID бронирования и ожидаемый тип ресурса
// Должна быть заполнена ровно одна ссылка
func (r BookingRef) Resolve() (int64, ResourceKind, error) {
	switch {
	case r.CarBookingID != nil && r.ParkingBookingID == nil:
		return *r.CarBookingID, KindCar, nil
	case r.ParkingBookingID != nil && r.CarBookingID == nil:
		return *r.ParkingBookingID, KindParking, nil
	default:
		return 0, "", ErrInvalidBookingReference
	}
}
