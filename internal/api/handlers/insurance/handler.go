package insurance

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	insuranceService "github.com/m04kA/SMC-RentalService/internal/service/insurance"
	"github.com/m04kA/SMC-RentalService/internal/service/insurance/models"
)

const (
	msgInvalidPolicyID  = "некорректный ID страховки"
	msgInvalidInput     = "некорректные данные страховки"
	msgBookingNotFound  = "бронирование не найдено"
	msgPolicyNotFound   = "страховка не найдена"
	msgForbidden        = "можно застраховать только свое бронирование"
	msgBookingNotActive = "бронирование завершено или отменено"
	msgDuplicateNumber  = "страховка с таким номером уже существует"
	msgAlreadyInsured   = "бронирование уже застраховано"
)

// Handler страховки бронирований
type Handler struct {
	service InsuranceService
	logger  Logger
}

func NewHandler(service InsuranceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Purchase POST /api/v1/insurances
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	var req models.PurchaseRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /insurances - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}
	req.UserID = userID

	policy, err := h.service.Purchase(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /insurances", err)
		return
	}

	h.logger.Info("POST /insurances - Policy purchased: policy_id=%d, user_id=%d", policy.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, policy)
}

// List GET /api/v1/insurances
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	result, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.respondError(w, "GET /insurances", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result.Policies)
}

// Update PUT /api/v1/insurances/{insuranceId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	policyID, err := handlers.PathID(r, "insuranceId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPolicyID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	var req models.UpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /insurances/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.PolicyID = policyID

	policy, err := h.service.Update(r.Context(), &req)
	if err != nil {
		h.respondError(w, "PUT /insurances/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, policy)
}

// Delete DELETE /api/v1/insurances/{insuranceId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	policyID, err := handlers.PathID(r, "insuranceId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPolicyID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), userID, policyID); err != nil {
		h.respondError(w, "DELETE /insurances/{id}", err)
		return
	}

	h.logger.Info("DELETE /insurances/{id} - Policy deleted: policy_id=%d, user_id=%d", policyID, userID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, insuranceService.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)
	case errors.Is(err, insuranceService.ErrBookingNotActive):
		handlers.RespondBadRequest(w, msgBookingNotActive)
	case errors.Is(err, insuranceService.ErrAccessDenied):
		handlers.RespondForbidden(w, msgForbidden)
	case errors.Is(err, insuranceService.ErrBookingNotFound):
		handlers.RespondNotFound(w, msgBookingNotFound)
	case errors.Is(err, insuranceService.ErrPolicyNotFound):
		handlers.RespondNotFound(w, msgPolicyNotFound)
	case errors.Is(err, insuranceService.ErrDuplicatePolicyNumber):
		handlers.RespondConflict(w, msgDuplicateNumber)
	case errors.Is(err, insuranceService.ErrBookingAlreadyInsured):
		handlers.RespondConflict(w, msgAlreadyInsured)
	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
		return
	}
	h.logger.Warn("%s - Rejected: %v", route, err)
}
