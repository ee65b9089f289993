package renters

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	rentersService "github.com/m04kA/SMC-RentalService/internal/service/renters"
	"github.com/m04kA/SMC-RentalService/internal/service/renters/models"
)

const (
	msgInvalidUserID    = "некорректный ID пользователя"
	msgInvalidInput     = "некорректные данные профиля"
	msgNotFound         = "профиль арендатора не найден"
	msgExists           = "профиль арендатора уже существует"
	msgAdminOnly        = "верификация доступна только администратору"
	msgAlreadyVerified  = "профиль уже верифицирован"
	msgMissingDocuments = "для верификации нужны водительское удостоверение и удостоверение личности"
)

// Handler профили арендаторов
type Handler struct {
	service RenterService
	logger  Logger
}

func NewHandler(service RenterService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// GetMine GET /api/v1/renters/me
func (h *Handler) GetMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	profile, err := h.service.GetMine(r.Context(), userID)
	if err != nil {
		h.respondError(w, "GET /renters/me", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, profile)
}

// Create POST /api/v1/renters/me
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	var req models.CreateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /renters/me - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}
	req.UserID = userID

	profile, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /renters/me", err)
		return
	}

	h.logger.Info("POST /renters/me - Profile created: profile_id=%d, user_id=%d", profile.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, profile)
}

// UpdateDocuments PUT /api/v1/renters/me
// Флаг верификации через этот метод не меняется
func (h *Handler) UpdateDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	var req models.UpdateDocumentsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /renters/me - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}
	req.UserID = userID

	profile, err := h.service.UpdateDocuments(r.Context(), &req)
	if err != nil {
		h.respondError(w, "PUT /renters/me", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, profile)
}

// Verify POST /api/v1/renters/{userId}/verify
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	targetUserID, err := handlers.PathID(r, "userId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	profile, err := h.service.Verify(r.Context(), &models.VerifyRequest{
		TargetUserID: targetUserID,
		IsAdmin:      middleware.IsAdmin(r.Context()),
	})
	if err != nil {
		h.respondError(w, "POST /renters/{userId}/verify", err)
		return
	}

	h.logger.Info("POST /renters/{userId}/verify - Profile verified: user_id=%d, admin_id=%d", targetUserID, adminID)
	handlers.RespondJSON(w, http.StatusOK, profile)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, rentersService.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)
	case errors.Is(err, domain.ErrAlreadyVerified):
		handlers.RespondBadRequest(w, msgAlreadyVerified)
	case errors.Is(err, domain.ErrMissingDocuments):
		handlers.RespondBadRequest(w, msgMissingDocuments)
	case errors.Is(err, rentersService.ErrAccessDenied):
		handlers.RespondForbidden(w, msgAdminOnly)
	case errors.Is(err, rentersService.ErrProfileNotFound):
		handlers.RespondNotFound(w, msgNotFound)
	case errors.Is(err, rentersService.ErrProfileExists):
		handlers.RespondConflict(w, msgExists)
	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
		return
	}
	h.logger.Warn("%s - Rejected: %v", route, err)
}
