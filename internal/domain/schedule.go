package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/agentsalud/availability-service/pkg/types"
)

// WorkingHours is one recurring weekly working-hours entry of a provider
type WorkingHours struct {
	DayOfWeek  time.Weekday
	StartTime  types.TimeString
	EndTime    types.TimeString
	LocationID *uuid.UUID // nil = any location
}

// MatchesLocation returns true if the entry applies to the requested location.
// A nil request location matches every entry.
func (w *WorkingHours) MatchesLocation(locationID *uuid.UUID) bool {
	if locationID == nil || w.LocationID == nil {
		return true
	}
	return *w.LocationID == *locationID
}

// BookedInterval is an existing appointment occupying a provider's time on a date
type BookedInterval struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// ProviderSchedule is the pre-fetched input for one provider on the requested date
type ProviderSchedule struct {
	ProviderID  uuid.UUID
	WeeklyHours []WorkingHours
	Booked      []BookedInterval
}

// ServiceRef identifies a medical service of an organization
type ServiceRef struct {
	ID   uuid.UUID
	Name string
}
