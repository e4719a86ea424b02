package audit_associations

import (
	"context"

	"github.com/google/uuid"

	"github.com/agentsalud/availability-service/internal/domain"
)

// AssociationRepository интерфейс репозитория связей услуга-врач
type AssociationRepository interface {
	// ListServicesWithoutProviders получает активные услуги без врачей
	ListServicesWithoutProviders(ctx context.Context, organizationID uuid.UUID) ([]domain.ServiceRef, error)
}

// Metrics получатель метрики аудита
type Metrics interface {
	SetServicesWithoutProviders(organizationID string, count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
