package get_services_without_providers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/agentsalud/availability-service/internal/api/handlers"
	auditAssociations "github.com/agentsalud/availability-service/internal/usecase/audit_associations"
)

const msgInvalidOrganizationID = "invalid organizationId, expected UUID"

type Handler struct {
	useCase AuditAssociationsUseCase
	logger  Logger
}

func NewHandler(useCase AuditAssociationsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/organizations/{organizationId}/services/without-providers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	organizationID, err := uuid.Parse(mux.Vars(r)["organizationId"])
	if err != nil {
		h.logger.Warn("GET /organizations/{id}/services/without-providers - Invalid organization ID: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidOrganizationID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), organizationID)
	if err != nil {
		if errors.Is(err, auditAssociations.ErrInvalidInput) {
			h.logger.Warn("GET /organizations/{id}/services/without-providers - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidOrganizationID)
			return
		}
		h.logger.Error("GET /organizations/{id}/services/without-providers - Failed to audit: org=%s, error=%v",
			organizationID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /organizations/{id}/services/without-providers - Audit completed: org=%s, count=%d",
		organizationID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
