package availability

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/resources/models"
	addAvailability "github.com/m04kA/SMC-RentalService/internal/usecase/add_availability"
)

type AddAvailabilityUseCase interface {
	Execute(ctx context.Context, req *addAvailability.Request) (*addAvailability.Response, error)
}

type ResourceService interface {
	ListAvailability(ctx context.Context, resourceID int64) (*models.WindowListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
