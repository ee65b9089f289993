package get_resource_bookings

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(resourceID, userID int64, statusStr, activeOnlyStr string) (*models.GetResourceBookingsRequest, error) {
	req := &models.GetResourceBookingsRequest{
		UserID:     userID,
		ResourceID: resourceID,
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if activeOnlyStr != "" {
		activeOnly, err := strconv.ParseBool(activeOnlyStr)
		if err != nil {
			return nil, fmt.Errorf("invalid activeOnly value: %w", err)
		}
		req.ActiveOnly = activeOnly
	}

	return req, nil
}
