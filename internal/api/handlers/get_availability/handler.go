package get_availability

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/agentsalud/availability-service/internal/api/handlers"
	"github.com/agentsalud/availability-service/internal/availability"
	getAvailability "github.com/agentsalud/availability-service/internal/usecase/get_availability"
)

const (
	codeInvalidDate     = handlers.CodeInvalidDate
	codeInvalidDuration = handlers.CodeInvalidDuration
	codeInvalidInput    = handlers.CodeInvalidInput
	codeUnknownRole     = handlers.CodeUnknownRole
)

const (
	msgInvalidOrganizationID = "invalid organizationId, expected UUID"
	msgMissingServiceID      = "serviceId is required"
	msgInvalidServiceID      = "invalid serviceId, expected UUID"
	msgInvalidLocationID     = "invalid locationId, expected UUID"
	msgMissingDate           = "date is required"
	msgInvalidDate           = "invalid date, expected an existing calendar date in YYYY-MM-DD format"
	msgMissingDuration       = "durationMinutes is required"
	msgInvalidDuration       = "durationMinutes must be a positive integer not exceeding the maximum appointment length"
	msgUnknownRole           = "unknown role, expected one of patient, admin, staff, doctor, superadmin"
	msgInvalidUseStandard    = "useStandardRules must be true or false"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/organizations/{organizationId}/availability
// Query params: serviceId, date (YYYY-MM-DD), durationMinutes, role (required); locationId, useStandardRules (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	organizationID, err := uuid.Parse(mux.Vars(r)["organizationId"])
	if err != nil {
		h.logger.Warn("GET /organizations/{id}/availability - Invalid organization ID: %v", err)
		handlers.RespondBadRequest(w, codeInvalidInput, msgInvalidOrganizationID)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(organizationID, queryParams{
		serviceID:        query.Get("serviceId"),
		locationID:       query.Get("locationId"),
		date:             query.Get("date"),
		durationMinutes:  query.Get("durationMinutes"),
		role:             query.Get("role"),
		useStandardRules: query.Get("useStandardRules"),
	})
	if err != nil {
		var pErr *paramError
		if errors.As(err, &pErr) {
			h.logger.Warn("GET /organizations/{id}/availability - Invalid query: org=%s, %v", organizationID, err)
			handlers.RespondBadRequest(w, pErr.code, pErr.message)
			return
		}
		handlers.RespondBadRequest(w, codeInvalidInput, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidDate):
			h.logger.Warn("GET /organizations/{id}/availability - Invalid date: org=%s, %v", organizationID, err)
			handlers.RespondBadRequest(w, codeInvalidDate, msgInvalidDate)

		case errors.Is(err, availability.ErrInvalidDuration):
			h.logger.Warn("GET /organizations/{id}/availability - Invalid duration: org=%s, %v", organizationID, err)
			handlers.RespondBadRequest(w, codeInvalidDuration, msgInvalidDuration)

		case errors.Is(err, availability.ErrUnknownRole):
			h.logger.Warn("GET /organizations/{id}/availability - Unknown role: org=%s, %v", organizationID, err)
			handlers.RespondBadRequest(w, codeUnknownRole, msgUnknownRole)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /organizations/{id}/availability - Invalid input: org=%s, %v", organizationID, err)
			handlers.RespondBadRequest(w, codeInvalidInput, err.Error())

		default:
			h.logger.Error("GET /organizations/{id}/availability - Failed to compute availability: org=%s, service=%s, error=%v",
				organizationID, useCaseReq.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /organizations/{id}/availability - Availability computed: org=%s, service=%s, slots_count=%d, rule=%s, no_providers=%t",
		organizationID, result.ServiceID, len(result.Slots), result.AppliedRule, result.NoProvidersAssociated)
	handlers.RespondJSON(w, http.StatusOK, response)
}
