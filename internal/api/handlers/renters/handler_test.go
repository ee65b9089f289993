package renters

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	rentersService "github.com/m04kA/SMC-RentalService/internal/service/renters"
	"github.com/m04kA/SMC-RentalService/internal/service/renters/models"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetMine(ctx context.Context, userID int64) (*models.ProfileResponse, error) {
	args := m.Called(ctx, userID)
	resp, _ := args.Get(0).(*models.ProfileResponse)
	return resp, args.Error(1)
}

func (m *mockService) Create(ctx context.Context, req *models.CreateProfileRequest) (*models.ProfileResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.ProfileResponse)
	return resp, args.Error(1)
}

func (m *mockService) UpdateDocuments(ctx context.Context, req *models.UpdateDocumentsRequest) (*models.ProfileResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.ProfileResponse)
	return resp, args.Error(1)
}

func (m *mockService) Verify(ctx context.Context, req *models.VerifyRequest) (*models.ProfileResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.ProfileResponse)
	return resp, args.Error(1)
}

func verifyRequest(userID string, isAdmin bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/renters/"+userID+"/verify", nil)
	req = mux.SetURLVars(req, map[string]string{"userId": userID})
	return req.WithContext(middleware.WithUser(req.Context(), 1, isAdmin))
}

func TestHandler_Create(t *testing.T) {
	svc := &mockService{}
	svc.On("Create", mock.Anything, mock.MatchedBy(func(req *models.CreateProfileRequest) bool {
		return req.UserID == 100 && req.DriverLicenseImage != nil && *req.DriverLicenseImage == "dl.png" &&
			req.PhotoIDImage == nil
	})).Return(&models.ProfileResponse{ID: 4, UserID: 100}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/renters/me", strings.NewReader(`{"driverLicenseImage":"dl.png"}`))
	req = req.WithContext(middleware.WithUser(req.Context(), 100, false))

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewDiscard()).Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_GetMine_MissingUser(t *testing.T) {
	svc := &mockService{}

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewDiscard()).GetMine(rec, httptest.NewRequest(http.MethodGet, "/api/v1/renters/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "GetMine", mock.Anything, mock.Anything)
}

func TestHandler_Verify(t *testing.T) {
	t.Run("Admin flag passed through", func(t *testing.T) {
		svc := &mockService{}
		svc.On("Verify", mock.Anything, &models.VerifyRequest{TargetUserID: 100, IsAdmin: true}).
			Return(&models.ProfileResponse{ID: 4, UserID: 100, IsVerified: true}, nil)

		rec := httptest.NewRecorder()
		NewHandler(svc, logger.NewDiscard()).Verify(rec, verifyRequest("100", true))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Invalid user ID", func(t *testing.T) {
		svc := &mockService{}

		rec := httptest.NewRecorder()
		NewHandler(svc, logger.NewDiscard()).Verify(rec, verifyRequest("-1", true))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("%w: empty image", rentersService.ErrInvalidInput), want: http.StatusBadRequest},
		{err: domain.ErrAlreadyVerified, want: http.StatusBadRequest},
		{err: domain.ErrMissingDocuments, want: http.StatusBadRequest},
		{err: rentersService.ErrAccessDenied, want: http.StatusForbidden},
		{err: rentersService.ErrProfileNotFound, want: http.StatusNotFound},
		{err: rentersService.ErrProfileExists, want: http.StatusConflict},
		{err: fmt.Errorf("%w: boom", rentersService.ErrInternal), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc := &mockService{}
			svc.On("Verify", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(svc, logger.NewDiscard()).Verify(rec, verifyRequest("100", false))

			assert.Equal(t, tt.want, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
