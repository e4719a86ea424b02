package get_availability

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/agentsalud/availability-service/internal/domain"
	getAvailability "github.com/agentsalud/availability-service/internal/usecase/get_availability"
	"github.com/agentsalud/availability-service/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date                  string            `json:"date"`
	OrganizationID        string            `json:"organizationId"`
	ServiceID             string            `json:"serviceId"`
	LocationID            *string           `json:"locationId,omitempty"`
	Slots                 []Slot            `json:"slots"`
	AppliedRule           string            `json:"appliedRule"`
	NoProvidersAssociated bool              `json:"noProvidersAssociated"`
	Providers             []ProviderSummary `json:"providers"`
}

// Slot модель временного слота
type Slot struct {
	ProviderID string  `json:"providerId"`
	LocationID *string `json:"locationId,omitempty"`
	Date       string  `json:"date"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Available  bool    `json:"available"`
}

// ProviderSummary сводка по врачу
type ProviderSummary struct {
	ProviderID     string `json:"providerId"`
	TotalSlots     int    `json:"totalSlots"`
	AvailableSlots int    `json:"availableSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			ProviderID: slot.ProviderID.String(),
			LocationID: idString(slot.LocationID),
			Date:       slot.Date.String(),
			StartTime:  slot.StartTime.String(),
			EndTime:    slot.EndTime.String(),
			Available:  slot.Available,
		}
	}

	providers := make([]ProviderSummary, len(resp.Providers))
	for i, p := range resp.Providers {
		providers[i] = ProviderSummary{
			ProviderID:     p.ProviderID.String(),
			TotalSlots:     p.TotalSlots,
			AvailableSlots: p.AvailableSlots,
		}
	}

	return &AvailabilityResponse{
		Date:                  resp.Date.String(),
		OrganizationID:        resp.OrganizationID.String(),
		ServiceID:             resp.ServiceID.String(),
		LocationID:            idString(resp.LocationID),
		Slots:                 slots,
		AppliedRule:           string(resp.AppliedRule),
		NoProvidersAssociated: resp.NoProvidersAssociated,
		Providers:             providers,
	}
}

func idString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// queryParams сырые query параметры запроса
type queryParams struct {
	serviceID        string
	locationID       string
	date             string
	durationMinutes  string
	role             string
	useStandardRules string
}

// paramError ошибка разбора параметра с кодом для ответа
type paramError struct {
	code    string
	message string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

// ToUseCaseRequest создает запрос use case из path и query параметров.
// Разбирает только формат; бизнес-валидация остается за use case.
func ToUseCaseRequest(organizationID uuid.UUID, params queryParams) (*getAvailability.Request, error) {
	if params.serviceID == "" {
		return nil, &paramError{code: codeInvalidInput, message: msgMissingServiceID}
	}
	serviceID, err := uuid.Parse(params.serviceID)
	if err != nil {
		return nil, &paramError{code: codeInvalidInput, message: msgInvalidServiceID}
	}

	var locationID *uuid.UUID
	if params.locationID != "" {
		id, err := uuid.Parse(params.locationID)
		if err != nil {
			return nil, &paramError{code: codeInvalidInput, message: msgInvalidLocationID}
		}
		locationID = &id
	}

	if params.date == "" {
		return nil, &paramError{code: codeInvalidDate, message: msgMissingDate}
	}
	date, err := types.ParseDate(params.date)
	if err != nil {
		return nil, &paramError{code: codeInvalidDate, message: msgInvalidDate}
	}

	if params.durationMinutes == "" {
		return nil, &paramError{code: codeInvalidDuration, message: msgMissingDuration}
	}
	duration, err := strconv.Atoi(params.durationMinutes)
	if err != nil {
		return nil, &paramError{code: codeInvalidDuration, message: msgInvalidDuration}
	}

	useStandardRules := false
	if params.useStandardRules != "" {
		useStandardRules, err = strconv.ParseBool(params.useStandardRules)
		if err != nil {
			return nil, &paramError{code: codeInvalidInput, message: msgInvalidUseStandard}
		}
	}

	return &getAvailability.Request{
		OrganizationID:   organizationID,
		ServiceID:        serviceID,
		LocationID:       locationID,
		Date:             date,
		DurationMinutes:  duration,
		Role:             domain.Role(params.role),
		UseStandardRules: useStandardRules,
	}, nil
}
