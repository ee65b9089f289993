package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// PurchaseRequest покупка страховки для бронирования
// Заполняется ровно одна из ссылок CarBookingID / ParkingBookingID
type PurchaseRequest struct {
	UserID           int64           `json:"-"`
	CarBookingID     *int64          `json:"carBookingId,omitempty"`
	ParkingBookingID *int64          `json:"parkingBookingId,omitempty"`
	PolicyNumber     string          `json:"policyNumber"`
	ProviderName     string          `json:"providerName"`
	CoverageDetails  string          `json:"coverageDetails,omitempty"`
	Premium          decimal.Decimal `json:"premium"`
}

// UpdateRequest замена реквизитов полиса
type UpdateRequest struct {
	UserID          int64           `json:"-"`
	PolicyID        int64           `json:"-"`
	PolicyNumber    string          `json:"policyNumber"`
	ProviderName    string          `json:"providerName"`
	CoverageDetails string          `json:"coverageDetails,omitempty"`
	Premium         decimal.Decimal `json:"premium"`
}

// PolicyResponse ответ с данными полиса
type PolicyResponse struct {
	ID               int64           `json:"id"`
	CarBookingID     *int64          `json:"carBookingId,omitempty"`
	ParkingBookingID *int64          `json:"parkingBookingId,omitempty"`
	PolicyNumber     string          `json:"policyNumber"`
	ProviderName     string          `json:"providerName"`
	CoverageDetails  string          `json:"coverageDetails,omitempty"`
	Premium          decimal.Decimal `json:"premium"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// PolicyListResponse ответ со списком полисов
type PolicyListResponse struct {
	Policies []PolicyResponse `json:"policies"`
}

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p *domain.InsurancePolicy) *PolicyResponse {
	if p == nil {
		return nil
	}

	resp := &PolicyResponse{
		ID:              p.ID,
		PolicyNumber:    p.PolicyNumber,
		ProviderName:    p.ProviderName,
		CoverageDetails: p.CoverageDetails,
		Premium:         p.Premium,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}

	bookingID := p.BookingID
	switch p.BookingKind {
	case domain.KindCar:
		resp.CarBookingID = &bookingID
	case domain.KindParking:
		resp.ParkingBookingID = &bookingID
	}

	return resp
}

// FromDomainPolicyList конвертирует список domain моделей в DTO
func FromDomainPolicyList(policies []*domain.InsurancePolicy) *PolicyListResponse {
	resp := &PolicyListResponse{Policies: make([]PolicyResponse, 0, len(policies))}
	for _, p := range policies {
		if item := FromDomainPolicy(p); item != nil {
			resp.Policies = append(resp.Policies, *item)
		}
	}
	return resp
}
