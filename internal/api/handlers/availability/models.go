package availability

import (
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	addAvailability "github.com/m04kA/SMC-RentalService/internal/usecase/add_availability"
)

// AddWindowRequest HTTP request model
type AddWindowRequest struct {
	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`
}

// WindowResponse окно после слияния
type WindowResponse struct {
	ID         int64  `json:"id"`
	ResourceID int64  `json:"resourceId"`
	StartAt    string `json:"startAt"`
	EndAt      string `json:"endAt"`
	Absorbed   int    `json:"absorbed"`
}

func (r *AddWindowRequest) ToUseCaseRequest(userID, resourceID int64) (*addAvailability.Request, error) {
	start, err := handlers.ParseTime(r.StartAt)
	if err != nil {
		return nil, fmt.Errorf("startAt: %w", err)
	}
	end, err := handlers.ParseTime(r.EndAt)
	if err != nil {
		return nil, fmt.Errorf("endAt: %w", err)
	}

	return &addAvailability.Request{
		UserID:     userID,
		ResourceID: resourceID,
		Start:      start,
		End:        end,
	}, nil
}

func FromUseCaseResponse(resp *addAvailability.Response) *WindowResponse {
	return &WindowResponse{
		ID:         resp.ID,
		ResourceID: resp.ResourceID,
		StartAt:    handlers.FormatTime(resp.Start),
		EndAt:      handlers.FormatTime(resp.End),
		Absorbed:   resp.Absorbed,
	}
}
