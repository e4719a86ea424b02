package get_availability

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/agentsalud/availability-service/internal/availability"
	"github.com/agentsalud/availability-service/internal/domain"
)

// validateRequest валидирует запрос до любых обращений к хранилищу.
// Ошибки даты, длительности и роли возвращаются как сентинелы пакета availability.
func validateRequest(req *Request) error {
	if req.OrganizationID == uuid.Nil {
		return fmt.Errorf("%w: organizationId is required", ErrInvalidInput)
	}

	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	if req.LocationID != nil && *req.LocationID == uuid.Nil {
		return fmt.Errorf("%w: locationId must not be nil uuid", ErrInvalidInput)
	}

	return availability.ValidateQuery(toQuery(req))
}

func toQuery(req *Request) domain.AvailabilityQuery {
	return domain.AvailabilityQuery{
		Date:                    req.Date,
		DurationMinutes:         req.DurationMinutes,
		Role:                    req.Role,
		LocationID:              req.LocationID,
		OverrideToStandardRules: req.UseStandardRules,
	}
}
