package get_services_without_providers

import (
	"context"

	"github.com/google/uuid"

	auditAssociations "github.com/agentsalud/availability-service/internal/usecase/audit_associations"
)

type AuditAssociationsUseCase interface {
	Execute(ctx context.Context, organizationID uuid.UUID) (*auditAssociations.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
