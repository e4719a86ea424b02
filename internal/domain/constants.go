package domain

// Default configuration values
const (
	DefaultMinLeadTimeMinutes = 24 * 60 // standard rule: 24 hours
	DefaultTimezone           = "America/Bogota"
)

// Business validation constants
const (
	MaxDurationMinutes = 480 // 8 hours
	MaxLeadTimeMinutes = 10080
	MinutesPerDay      = 24 * 60
)

// InactiveStatuses appointment statuses that do not occupy a slot
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
}
