package renters

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/renters/models"
)

type RenterService interface {
	GetMine(ctx context.Context, userID int64) (*models.ProfileResponse, error)
	Create(ctx context.Context, req *models.CreateProfileRequest) (*models.ProfileResponse, error)
	UpdateDocuments(ctx context.Context, req *models.UpdateDocumentsRequest) (*models.ProfileResponse, error)
	Verify(ctx context.Context, req *models.VerifyRequest) (*models.ProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
