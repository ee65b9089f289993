package resources

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/resources/models"
)

type ResourceService interface {
	Create(ctx context.Context, req *models.CreateResourceRequest) (*models.ResourceResponse, error)
	Get(ctx context.Context, id int64) (*models.ResourceResponse, error)
	List(ctx context.Context, req *models.ListResourcesRequest) (*models.ResourceListResponse, error)
	ListAvailable(ctx context.Context, req *models.ListResourcesRequest) (*models.ResourceListResponse, error)
	Update(ctx context.Context, req *models.UpdateResourceRequest) (*models.ResourceResponse, error)
	Deactivate(ctx context.Context, userID, resourceID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
