package domain

import (
	"github.com/google/uuid"

	"github.com/agentsalud/availability-service/pkg/types"
)

// Slot represents one duration-sized bookable time window of one provider
type Slot struct {
	ProviderID uuid.UUID
	LocationID *uuid.UUID
	Date       types.Date
	StartTime  types.TimeString
	EndTime    types.TimeString
	Available  bool
}

// DurationMinutes returns the slot length in minutes
func (s *Slot) DurationMinutes() int {
	return s.EndTime.Minutes() - s.StartTime.Minutes()
}

// Overlaps reports whether the slot intersects [start, end).
// Touching intervals do not overlap.
func (s *Slot) Overlaps(start, end types.TimeString) bool {
	return Overlaps(s.StartTime, s.EndTime, start, end)
}

// Overlaps reports whether [start1, end1) and [start2, end2) intersect
func Overlaps(start1, end1, start2, end2 types.TimeString) bool {
	return start1.IsBefore(end2) && start2.IsBefore(end1)
}
