package resources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	resourcesService "github.com/m04kA/SMC-RentalService/internal/service/resources"
	"github.com/m04kA/SMC-RentalService/internal/service/resources/models"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, req *models.CreateResourceRequest) (*models.ResourceResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.ResourceResponse)
	return resp, args.Error(1)
}

func (m *mockService) Get(ctx context.Context, id int64) (*models.ResourceResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*models.ResourceResponse)
	return resp, args.Error(1)
}

func (m *mockService) List(ctx context.Context, req *models.ListResourcesRequest) (*models.ResourceListResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.ResourceListResponse)
	return resp, args.Error(1)
}

func (m *mockService) ListAvailable(ctx context.Context, req *models.ListResourcesRequest) (*models.ResourceListResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.ResourceListResponse)
	return resp, args.Error(1)
}

func (m *mockService) Update(ctx context.Context, req *models.UpdateResourceRequest) (*models.ResourceResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.ResourceResponse)
	return resp, args.Error(1)
}

func (m *mockService) Deactivate(ctx context.Context, userID, resourceID int64) error {
	args := m.Called(ctx, userID, resourceID)
	return args.Error(0)
}

const createBody = `{"kind":"parking","rate":"3.50","parking":{"name":"A-12","address":"Lenina 1"}}`

func newRequest(method, target, body string, vars map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req.WithContext(middleware.WithUser(req.Context(), 100, false))
}

func TestHandler_Create(t *testing.T) {
	svc := &mockService{}
	svc.On("Create", mock.Anything, mock.MatchedBy(func(req *models.CreateResourceRequest) bool {
		return req.UserID == 100 && req.Kind == "parking" && req.Rate.Equal(decimal.RequireFromString("3.50"))
	})).Return(&models.ResourceResponse{ID: 5, OwnerID: 100, Kind: "parking", IsActive: true}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewDiscard()).Create(rec, newRequest(http.MethodPost, "/api/v1/resources", createBody, nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"parking"`)
	svc.AssertExpectations(t)
}

func TestHandler_Create_MissingUser(t *testing.T) {
	svc := &mockService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resources", strings.NewReader(createBody))

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewDiscard()).Create(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandler_List_KindFilter(t *testing.T) {
	svc := &mockService{}
	svc.On("List", mock.Anything, mock.MatchedBy(func(req *models.ListResourcesRequest) bool {
		return req.Kind != nil && *req.Kind == "car"
	})).Return(&models.ResourceListResponse{Resources: []models.ResourceResponse{{ID: 1, Kind: "car"}}}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewDiscard()).List(rec, newRequest(http.MethodGet, "/api/v1/resources?kind=car", "", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "["))
	svc.AssertExpectations(t)
}

func TestHandler_ListAvailable_NoFilter(t *testing.T) {
	svc := &mockService{}
	svc.On("ListAvailable", mock.Anything, &models.ListResourcesRequest{}).
		Return(&models.ResourceListResponse{Resources: []models.ResourceResponse{}}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewDiscard()).ListAvailable(rec, newRequest(http.MethodGet, "/api/v1/resources/available", "", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_Deactivate(t *testing.T) {
	svc := &mockService{}
	svc.On("Deactivate", mock.Anything, int64(100), int64(5)).Return(nil)

	rec := httptest.NewRecorder()
	req := newRequest(http.MethodDelete, "/api/v1/resources/5", "", map[string]string{"resourceId": "5"})
	NewHandler(svc, logger.NewDiscard()).Deactivate(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_InvalidResourceID(t *testing.T) {
	svc := &mockService{}
	h := NewHandler(svc, logger.NewDiscard())
	vars := map[string]string{"resourceId": "five"}

	rec := httptest.NewRecorder()
	h.Get(rec, newRequest(http.MethodGet, "/api/v1/resources/five", "", vars))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Update(rec, newRequest(http.MethodPut, "/api/v1/resources/five", `{}`, vars))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("%w: rate must be positive", resourcesService.ErrInvalidInput), want: http.StatusBadRequest},
		{err: domain.ErrNotVerifiedRenter, want: http.StatusForbidden},
		{err: resourcesService.ErrAccessDenied, want: http.StatusForbidden},
		{err: resourcesService.ErrResourceNotFound, want: http.StatusNotFound},
		{err: fmt.Errorf("%w: boom", resourcesService.ErrInternal), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run("Create "+tt.err.Error(), func(t *testing.T) {
			svc := &mockService{}
			svc.On("Create", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(svc, logger.NewDiscard()).Create(rec, newRequest(http.MethodPost, "/api/v1/resources", createBody, nil))

			assert.Equal(t, tt.want, rec.Code)
		})

		t.Run("Update "+tt.err.Error(), func(t *testing.T) {
			svc := &mockService{}
			svc.On("Update", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			req := newRequest(http.MethodPut, "/api/v1/resources/5", `{"rate":"4.00"}`, map[string]string{"resourceId": "5"})
			NewHandler(svc, logger.NewDiscard()).Update(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})

		t.Run("Deactivate "+tt.err.Error(), func(t *testing.T) {
			svc := &mockService{}
			svc.On("Deactivate", mock.Anything, int64(100), int64(5)).Return(tt.err)

			rec := httptest.NewRecorder()
			req := newRequest(http.MethodDelete, "/api/v1/resources/5", "", map[string]string{"resourceId": "5"})
			NewHandler(svc, logger.NewDiscard()).Deactivate(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
