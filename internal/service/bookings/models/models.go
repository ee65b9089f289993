package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID int64 `json:"userId"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования владельцем ресурса
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetResourceBookingsRequest запрос владельца на получение бронирований ресурса
type GetResourceBookingsRequest struct {
	UserID     int64   `json:"userId"`
	ResourceID int64   `json:"resourceId"`
	Status     *string `json:"status,omitempty"`
	ActiveOnly bool    `json:"activeOnly,omitempty"` // Только pending/confirmed/in_progress
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64           `json:"id"`
	ResourceID   int64           `json:"resourceId"`
	ResourceKind string          `json:"resourceKind"`
	CustomerID   int64           `json:"customerId"`
	StartAt      time.Time       `json:"startAt"`
	EndAt        time.Time       `json:"endAt"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	Status       string          `json:"status"`
	CancelledAt  *string         `json:"cancelledAt,omitempty"` // ISO 8601 format
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:           b.ID,
		ResourceID:   b.ResourceID,
		ResourceKind: b.ResourceKind.String(),
		CustomerID:   b.CustomerID,
		StartAt:      b.Range.Start,
		EndAt:        b.Range.End,
		TotalPrice:   b.TotalPrice,
		Status:       b.Status.String(),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(domain.TimeFormat)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	return domain.ParseBookingStatus(status)
}
