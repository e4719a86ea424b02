package audit_associations

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// UseCase аудит услуг, к которым не привязан ни один врач.
// Такая услуга всегда дает "0 врачей доступно" при расчете слотов.
type UseCase struct {
	associationRepo AssociationRepository
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(associationRepo AssociationRepository, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		associationRepo: associationRepo,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет аудит одной организации
func (uc *UseCase) Execute(ctx context.Context, organizationID uuid.UUID) (*Response, error) {
	if organizationID == uuid.Nil {
		return nil, fmt.Errorf("%w: organizationId is required", ErrInvalidInput)
	}

	services, err := uc.associationRepo.ListServicesWithoutProviders(ctx, organizationID)
	if err != nil {
		uc.logger.Error("AuditAssociations: failed to list services for org=%s: %v", organizationID, err)
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}

	for _, service := range services {
		uc.logger.Warn("AuditAssociations: org=%s service=%s (%s) has no associated doctors",
			organizationID, service.ID, service.Name)
	}

	if uc.metrics != nil {
		uc.metrics.SetServicesWithoutProviders(organizationID.String(), len(services))
	}

	uc.logger.Info("AuditAssociations: org=%s, services without doctors=%d", organizationID, len(services))

	return &Response{
		OrganizationID: organizationID,
		Services:       services,
	}, nil
}
