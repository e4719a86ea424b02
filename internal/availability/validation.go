package availability

import (
	"fmt"

	"github.com/agentsalud/availability-service/internal/domain"
)

// ValidateQuery проверяет запрос целиком до начала любых вычислений.
// Порядок проверок: дата, длительность, роль.
func ValidateQuery(query domain.AvailabilityQuery) error {
	if err := validateDate(query); err != nil {
		return err
	}

	if err := validateDuration(query.DurationMinutes); err != nil {
		return err
	}

	if !query.Role.IsKnown() {
		return fmt.Errorf("%w: %q", ErrUnknownRole, query.Role)
	}

	return nil
}

func validateDate(query domain.AvailabilityQuery) error {
	if query.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	if err := query.Date.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return nil
}

func validateDuration(durationMinutes int) error {
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: must be positive, got %d", ErrInvalidDuration, durationMinutes)
	}
	if durationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: must not exceed %d minutes, got %d",
			ErrInvalidDuration, domain.MaxDurationMinutes, durationMinutes)
	}
	return nil
}
