package get_availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/agentsalud/availability-service/internal/domain"
	"github.com/agentsalud/availability-service/pkg/types"
)

// AssociationRepository интерфейс репозитория связей услуга-врач
type AssociationRepository interface {
	// GetProvidersForService получает врачей организации, оказывающих услугу
	GetProvidersForService(ctx context.Context, organizationID, serviceID uuid.UUID) ([]uuid.UUID, error)
}

// ScheduleRepository интерфейс репозитория недельного расписания
type ScheduleRepository interface {
	GetWeeklyHours(ctx context.Context, organizationID, providerID uuid.UUID) ([]domain.WorkingHours, error)
}

// BookingRepository интерфейс репозитория записей на прием
type BookingRepository interface {
	// GetBookedIntervals получает занятые интервалы врача на дату (без отмененных)
	GetBookedIntervals(ctx context.Context, organizationID, providerID uuid.UUID, date types.Date) ([]domain.BookedInterval, error)
}

// Assembler расчет доступности по загруженным расписаниям (реализуется *availability.Assembler)
type Assembler interface {
	Compute(query domain.AvailabilityQuery, providers []domain.ProviderSchedule) (*domain.AvailabilityResult, error)
}

// Metrics получатель метрик расчета
type Metrics interface {
	RecordComputation(appliedRule, outcome string, slots int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
