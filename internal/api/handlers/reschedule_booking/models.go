package reschedule_booking

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	rescheduleBooking "github.com/m04kA/SMC-RentalService/internal/usecase/reschedule_booking"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	StartAt    string           `json:"startAt"`
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

func (r *RescheduleRequest) ToUseCaseRequest(userID, bookingID int64) (*rescheduleBooking.Request, error) {
	start, err := handlers.ParseTime(r.StartAt)
	if err != nil {
		return nil, fmt.Errorf("startAt: %w", err)
	}
	end, err := handlers.ParseTime(r.EndAt)
	if err != nil {
		return nil, fmt.Errorf("endAt: %w", err)
	}

	return &rescheduleBooking.Request{
		UserID:        userID,
		BookingID:     bookingID,
		Start:         start,
		End:           end,
		ExplicitPrice: r.TotalPrice,
	}, nil
}

func FromUseCaseResponse(resp *rescheduleBooking.Response) *BookingResponse {
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
