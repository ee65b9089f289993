package resources

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	resourcesService "github.com/m04kA/SMC-RentalService/internal/service/resources"
	"github.com/m04kA/SMC-RentalService/internal/service/resources/models"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidInput      = "некорректные данные ресурса"
	msgNotVerified       = "размещать ресурсы может только верифицированный арендатор"
	msgForbidden         = "изменять ресурс может только владелец"
	msgNotFound          = "ресурс не найден"
)

// Handler автомобили и парковочные места
type Handler struct {
	service ResourceService
	logger  Logger
}

func NewHandler(service ResourceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/resources
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	var req models.CreateResourceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /resources - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /resources", err)
		return
	}

	h.logger.Info("POST /resources - Resource created: resource_id=%d, kind=%s, user_id=%d",
		result.ID, result.Kind, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Get GET /api/v1/resources/{resourceId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	resourceID, err := handlers.PathID(r, "resourceId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	result, err := h.service.Get(r.Context(), resourceID)
	if err != nil {
		h.respondError(w, "GET /resources/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// List GET /api/v1/resources?kind=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), listRequest(r))
	if err != nil {
		h.respondError(w, "GET /resources", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result.Resources)
}

// ListAvailable GET /api/v1/resources/available?kind=
// Активные ресурсы, у которых есть окно, заканчивающееся в будущем
func (h *Handler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListAvailable(r.Context(), listRequest(r))
	if err != nil {
		h.respondError(w, "GET /resources/available", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result.Resources)
}

// Update PUT /api/v1/resources/{resourceId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	resourceID, err := handlers.PathID(r, "resourceId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	var req models.UpdateResourceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /resources/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.ResourceID = resourceID

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		h.respondError(w, "PUT /resources/{id}", err)
		return
	}

	h.logger.Info("PUT /resources/{id} - Resource updated: resource_id=%d, user_id=%d", resourceID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Deactivate DELETE /api/v1/resources/{resourceId}
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	resourceID, err := handlers.PathID(r, "resourceId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	if err := h.service.Deactivate(r.Context(), userID, resourceID); err != nil {
		h.respondError(w, "DELETE /resources/{id}", err)
		return
	}

	h.logger.Info("DELETE /resources/{id} - Resource deactivated: resource_id=%d, user_id=%d", resourceID, userID)
	w.WriteHeader(http.StatusNoContent)
}

func listRequest(r *http.Request) *models.ListResourcesRequest {
	req := &models.ListResourcesRequest{}
	if kind := r.URL.Query().Get("kind"); kind != "" {
		req.Kind = &kind
	}
	return req
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, resourcesService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, domain.ErrNotVerifiedRenter):
		h.logger.Warn("%s - Not a verified renter", route)
		handlers.RespondForbidden(w, msgNotVerified)

	case errors.Is(err, resourcesService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, resourcesService.ErrResourceNotFound):
		h.logger.Warn("%s - Resource not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
