package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	createBooking "github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

const (
	msgInvalidTime      = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidInput     = "некорректные параметры бронирования"
	msgInvalidRange     = "окончание бронирования должно быть позже начала"
	msgNotVerified      = "бронировать может только верифицированный арендатор"
	msgResourceNotFound = "ресурс не найден"
	msgNoAvailability   = "ресурс недоступен в выбранный период"
	msgOverlapping      = "выбранный период пересекается с другим бронированием"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRange):
			h.logger.Warn("POST /bookings - Invalid range: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, domain.ErrNotVerifiedRenter):
			h.logger.Warn("POST /bookings - Not a verified renter: user_id=%d", userID)
			handlers.RespondForbidden(w, msgNotVerified)

		case errors.Is(err, createBooking.ErrResourceNotFound):
			h.logger.Warn("POST /bookings - Resource not found: resource_id=%d", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, domain.ErrNoAvailability):
			h.logger.Warn("POST /bookings - No availability: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondConflict(w, msgNoAvailability)

		case errors.Is(err, domain.ErrOverlappingBooking):
			h.logger.Warn("POST /bookings - Overlapping booking: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondConflict(w, msgOverlapping)

		case errors.Is(err, txmanager.ErrConflict):
			h.logger.Warn("POST /bookings - Transaction conflict: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondConflict(w, handlers.MsgConflictRetry)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, resource_id=%d, error=%v",
				userID, req.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, resource_id=%d",
		result.ID, userID, req.ResourceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
