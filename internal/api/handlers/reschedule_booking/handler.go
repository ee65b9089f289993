package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-RentalService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidTime      = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidInput     = "некорректные параметры бронирования"
	msgInvalidRange     = "окончание бронирования должно быть позже начала"
	msgNotModifiable    = "перенести можно только бронирование в статусе pending или confirmed"
	msgNotFound         = "бронирование не найдено"
	msgResourceNotFound = "ресурс не найден"
	msgNoAvailability   = "ресурс недоступен в выбранный период"
	msgOverlapping      = "выбранный период пересекается с другим бронированием"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, bookingID)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, domain.ErrInvalidStateTransition):
			handlers.RespondBadRequest(w, msgNotModifiable)

		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrResourceNotFound):
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, domain.ErrNoAvailability):
			handlers.RespondConflict(w, msgNoAvailability)

		case errors.Is(err, domain.ErrOverlappingBooking):
			handlers.RespondConflict(w, msgOverlapping)

		case errors.Is(err, txmanager.ErrConflict):
			handlers.RespondConflict(w, handlers.MsgConflictRetry)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to reschedule booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
			return
		}
		h.logger.Warn("PUT /bookings/{id} - Rejected: booking_id=%d, user_id=%d, error=%v", bookingID, userID, err)
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking rescheduled successfully: booking_id=%d, user_id=%d",
		bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
