package create_booking

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ResourceID int64            `json:"resourceId"`
	StartAt    string           `json:"startAt"` // RFC 3339
	EndAt      string           `json:"endAt"`
	TotalPrice *decimal.Decimal `json:"totalPrice,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64           `json:"id"`
	ResourceID   int64           `json:"resourceId"`
	ResourceKind string          `json:"resourceKind"`
	CustomerID   int64           `json:"customerId"`
	StartAt      string          `json:"startAt"`
	EndAt        string          `json:"endAt"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	Status       string          `json:"status"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	start, err := handlers.ParseTime(r.StartAt)
	if err != nil {
		return nil, fmt.Errorf("startAt: %w", err)
	}
	end, err := handlers.ParseTime(r.EndAt)
	if err != nil {
		return nil, fmt.Errorf("endAt: %w", err)
	}

	return &createBooking.Request{
		UserID:        userID,
		ResourceID:    r.ResourceID,
		Start:         start,
		End:           end,
		ExplicitPrice: r.TotalPrice,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		ResourceID:   resp.ResourceID,
		ResourceKind: resp.ResourceKind,
		CustomerID:   resp.CustomerID,
		StartAt:      handlers.FormatTime(resp.Start),
		EndAt:        handlers.FormatTime(resp.End),
		TotalPrice:   resp.TotalPrice,
		Status:       resp.Status,
		CreatedAt:    handlers.FormatTime(resp.CreatedAt),
		UpdatedAt:    handlers.FormatTime(resp.UpdatedAt),
	}
}
