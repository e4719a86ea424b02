package jobs

import (
	"context"

	"github.com/google/uuid"

	"github.com/agentsalud/availability-service/internal/usecase/audit_associations"
)

// AuditUseCase аудит связей услуга-врач одной организации
type AuditUseCase interface {
	Execute(ctx context.Context, organizationID uuid.UUID) (*audit_associations.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
	Printf(format string, v ...interface{})
}
