package availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/resources"
	addAvailability "github.com/m04kA/SMC-RentalService/internal/usecase/add_availability"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidTime       = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidRange      = "окончание окна должно быть позже начала"
	msgInvalidInput      = "некорректные параметры окна доступности"
	msgNotVerified       = "добавлять окна может только верифицированный арендатор"
	msgNotOwner          = "добавлять окна может только владелец ресурса"
	msgResourceNotFound  = "ресурс не найден"
)

// Handler окна доступности ресурса
type Handler struct {
	useCase AddAvailabilityUseCase
	service ResourceService
	logger  Logger
}

func NewHandler(useCase AddAvailabilityUseCase, service ResourceService, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		service: service,
		logger:  logger,
	}
}

// Add POST /api/v1/resources/{resourceId}/availability
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	resourceID, err := handlers.PathID(r, "resourceId")
	if err != nil {
		h.logger.Warn("POST /resources/{id}/availability - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	var req AddWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /resources/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, resourceID)
	if err != nil {
		h.logger.Warn("POST /resources/{id}/availability - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)
		case errors.Is(err, addAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, domain.ErrNotVerifiedRenter):
			handlers.RespondForbidden(w, msgNotVerified)
		case errors.Is(err, domain.ErrOwnership):
			handlers.RespondForbidden(w, msgNotOwner)
		case errors.Is(err, addAvailability.ErrResourceNotFound):
			handlers.RespondNotFound(w, msgResourceNotFound)
		case errors.Is(err, txmanager.ErrConflict):
			handlers.RespondConflict(w, handlers.MsgConflictRetry)
		default:
			h.logger.Error("POST /resources/{id}/availability - Failed to add window: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
			return
		}
		h.logger.Warn("POST /resources/{id}/availability - Rejected: resource_id=%d, user_id=%d, error=%v",
			resourceID, userID, err)
		return
	}

	h.logger.Info("POST /resources/{id}/availability - Window added: resource_id=%d, window_id=%d, absorbed=%d",
		resourceID, result.ID, result.Absorbed)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// List GET /api/v1/resources/{resourceId}/availability
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	resourceID, err := handlers.PathID(r, "resourceId")
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	result, err := h.service.ListAvailability(r.Context(), resourceID)
	if err != nil {
		if errors.Is(err, resources.ErrResourceNotFound) {
			handlers.RespondNotFound(w, msgResourceNotFound)
			return
		}
		h.logger.Error("GET /resources/{id}/availability - Failed to list windows: resource_id=%d, error=%v",
			resourceID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result.Windows)
}
