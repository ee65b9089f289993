package insurance

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/insurance/models"
)

type InsuranceService interface {
	Purchase(ctx context.Context, req *models.PurchaseRequest) (*models.PolicyResponse, error)
	List(ctx context.Context, userID int64) (*models.PolicyListResponse, error)
	Update(ctx context.Context, req *models.UpdateRequest) (*models.PolicyResponse, error)
	Delete(ctx context.Context, userID, policyID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
