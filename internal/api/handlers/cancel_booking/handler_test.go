package cancel_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, bookingID, req)
	resp, _ := args.Get(0).(*models.BookingResponse)
	return resp, args.Error(1)
}

func serve(svc BookingService, bookingID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/"+bookingID, nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	req = req.WithContext(middleware.WithUser(req.Context(), 100, false))

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewDiscard()).Handle(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	t.Run("Cancelled", func(t *testing.T) {
		svc := &mockService{}
		svc.On("Cancel", mock.Anything, int64(7), &models.CancelBookingRequest{UserID: 100}).
			Return(&models.BookingResponse{ID: 7, Status: "cancelled"}, nil)

		rec := serve(svc, "7")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
		svc.AssertExpectations(t)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		svc := &mockService{}
		assert.Equal(t, http.StatusBadRequest, serve(svc, "abc").Code)
		svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
	})

	errorCases := []struct {
		err  error
		want int
	}{
		{err: bookings.ErrBookingNotFound, want: http.StatusNotFound},
		{err: fmt.Errorf("%w: status=in_progress", bookings.ErrCannotCancel), want: http.StatusBadRequest},
		{err: fmt.Errorf("%w: boom", bookings.ErrInternal), want: http.StatusInternalServerError},
	}
	for _, tc := range errorCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			svc := &mockService{}
			svc.On("Cancel", mock.Anything, int64(7), mock.Anything).Return(nil, tc.err)
			assert.Equal(t, tc.want, serve(svc, "7").Code)
		})
	}
}
