package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricingStrategy считает стоимость интервала по ставке ресурса
type PricingStrategy interface {
	// Units количество тарифицируемых единиц, всегда >= 1
	Units(r Interval) int64
	// Price ставка * Units
	Price(rate decimal.Decimal, r Interval) decimal.Decimal
}

// DailyPricing посуточная тарификация (автомобили)
// Неполные сутки отбрасываются, минимум одни сутки.
type DailyPricing struct{}

func (DailyPricing) Units(r Interval) int64 {
	days := int64(r.Duration() / Day)
	if days < 1 {
		return 1
	}
	return days
}

func (p DailyPricing) Price(rate decimal.Decimal, r Interval) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(p.Units(r)))
}

// HourlyPricing почасовая тарификация (парковки)
// Неполный час округляется вверх, минимум один час.
type HourlyPricing struct{}

func (HourlyPricing) Units(r Interval) int64 {
	d := r.Duration()
	hours := int64(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	if hours < 1 {
		return 1
	}
	return hours
}

func (p HourlyPricing) Price(rate decimal.Decimal, r Interval) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(p.Units(r)))
}

// PricingFor возвращает стратегию тарификации для типа ресурса
func PricingFor(kind ResourceKind) (PricingStrategy, error) {
	switch kind {
	case KindCar:
		return DailyPricing{}, nil
	case KindParking:
		return HourlyPricing{}, nil
	default:
		return nil, ErrInvalidResourceKind
	}
}
