package domain

import (
	"github.com/google/uuid"

	"github.com/agentsalud/availability-service/pkg/types"
)

// AppliedRule records which lead-time policy produced the availability flags
type AppliedRule string

const (
	RuleStandard   AppliedRule = "standard"
	RulePrivileged AppliedRule = "privileged"
)

// Moment is the current civil date and time of day in the organization's timezone
type Moment struct {
	Date types.Date
	Time types.TimeString
}

// AvailabilityQuery is an immutable per-request availability question
type AvailabilityQuery struct {
	Date                    types.Date
	DurationMinutes         int
	Role                    Role
	LocationID              *uuid.UUID
	OverrideToStandardRules bool // privileged actor opts into patient restrictions
}

// ProviderSummary counts generated and bookable slots of one provider
type ProviderSummary struct {
	ProviderID     uuid.UUID
	TotalSlots     int
	AvailableSlots int
}

// HasAvailability returns true if the provider has at least one bookable slot
func (p *ProviderSummary) HasAvailability() bool {
	return p.AvailableSlots > 0
}

// AvailabilityResult is the computed answer to an AvailabilityQuery
type AvailabilityResult struct {
	Slots                 []Slot
	AppliedRule           AppliedRule
	NoProvidersAssociated bool
	Providers             []ProviderSummary
}

// AvailableCount returns the number of bookable slots
func (r *AvailabilityResult) AvailableCount() int {
	count := 0
	for i := range r.Slots {
		if r.Slots[i].Available {
			count++
		}
	}
	return count
}
