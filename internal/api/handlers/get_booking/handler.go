package get_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings"
)

const route = "GET /bookings/{id}"

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "бронирование доступно только клиенту и владельцу ресурса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle GET /api/v1/bookings/{bookingId}
// Бронирование видят клиент и владелец ресурса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, userID)
	if err != nil {
		h.respondError(w, bookingID, userID, err)
		return
	}

	h.logger.Info("%s - Booking retrieved: booking_id=%d, user_id=%d, status=%s",
		route, bookingID, userID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

func (h *Handler) respondError(w http.ResponseWriter, bookingID, userID int64, err error) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("%s - Not found: booking_id=%d", route, bookingID)
		handlers.RespondNotFound(w, msgNotFound)
	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: booking_id=%d, user_id=%d", route, bookingID, userID)
		handlers.RespondForbidden(w, msgForbidden)
	default:
		h.logger.Error("%s - Internal error: booking_id=%d, error=%v", route, bookingID, err)
		handlers.RespondInternalError(w)
	}
}
