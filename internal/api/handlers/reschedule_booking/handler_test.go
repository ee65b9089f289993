package reschedule_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-RentalService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *rescheduleBooking.Request) (*rescheduleBooking.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*rescheduleBooking.Response)
	return resp, args.Error(1)
}

const validBody = `{"startAt":"2026-06-01T10:00:00Z","endAt":"2026-06-01T12:00:00Z"}`

func newRequest(bookingID, body string, withUser bool) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/bookings/"+bookingID, strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	if withUser {
		req = req.WithContext(middleware.WithUser(req.Context(), 100, false))
	}
	return req
}

func serve(uc RescheduleBookingUseCase, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewDiscard()).Handle(rec, req)
	return rec
}

func TestHandler_Success(t *testing.T) {
	uc := &mockUseCase{}
	start := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *rescheduleBooking.Request) bool {
		return req.UserID == 100 && req.BookingID == 7 &&
			req.Start.Equal(start) && req.End.Equal(end) && req.ExplicitPrice == nil
	})).Return(&rescheduleBooking.Response{
		ID:           7,
		ResourceID:   3,
		ResourceKind: "car",
		CustomerID:   100,
		Start:        start,
		End:          end,
		TotalPrice:   decimal.NewFromInt(200),
		Status:       "pending",
		CreatedAt:    start.Add(-24 * time.Hour),
		UpdatedAt:    start.Add(-time.Hour),
	}, nil)

	rec := serve(uc, newRequest("7", validBody, true))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"startAt":"2026-06-01T10:00:00Z"`)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)
	uc.AssertExpectations(t)
}

func TestHandler_ExplicitPrice(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *rescheduleBooking.Request) bool {
		return req.ExplicitPrice != nil && req.ExplicitPrice.Equal(decimal.RequireFromString("150.50"))
	})).Return(&rescheduleBooking.Response{ID: 7, Status: "pending"}, nil)

	body := `{"startAt":"2026-06-01T10:00:00Z","endAt":"2026-06-01T12:00:00Z","totalPrice":"150.50"}`
	rec := serve(uc, newRequest("7", body, true))

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandler_RejectedBeforeUseCase(t *testing.T) {
	tests := []struct {
		name string
		req  *http.Request
		want int
	}{
		{name: "Invalid booking ID", req: newRequest("abc", validBody, true), want: http.StatusBadRequest},
		{name: "Missing user", req: newRequest("7", validBody, false), want: http.StatusUnauthorized},
		{name: "Malformed JSON", req: newRequest("7", `{"startAt":`, true), want: http.StatusBadRequest},
		{name: "Unknown field", req: newRequest("7", `{"startAt":"2026-06-01T10:00:00Z","foo":1}`, true), want: http.StatusBadRequest},
		{name: "Invalid time", req: newRequest("7", `{"startAt":"01.06.2026","endAt":"2026-06-01T12:00:00Z"}`, true), want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}

			rec := serve(uc, tt.req)

			assert.Equal(t, tt.want, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: domain.ErrInvalidRange, want: http.StatusBadRequest},
		{err: fmt.Errorf("%w: totalPrice is negative", rescheduleBooking.ErrInvalidInput), want: http.StatusBadRequest},
		{err: fmt.Errorf("%w: completed", domain.ErrInvalidStateTransition), want: http.StatusBadRequest},
		{err: rescheduleBooking.ErrBookingNotFound, want: http.StatusNotFound},
		{err: rescheduleBooking.ErrResourceNotFound, want: http.StatusNotFound},
		{err: domain.ErrNoAvailability, want: http.StatusConflict},
		{err: fmt.Errorf("insert: %w", domain.ErrOverlappingBooking), want: http.StatusConflict},
		{err: txmanager.ErrConflict, want: http.StatusConflict},
		{err: fmt.Errorf("%w: boom", rescheduleBooking.ErrInternal), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(uc, newRequest("7", validBody, true))

			assert.Equal(t, tt.want, rec.Code)
			uc.AssertExpectations(t)
		})
	}
}
