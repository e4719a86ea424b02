package audit_associations

import (
	"github.com/google/uuid"

	"github.com/agentsalud/availability-service/internal/domain"
)

// Response результат аудита организации
type Response struct {
	OrganizationID uuid.UUID
	Services       []domain.ServiceRef // Активные услуги без единого врача
}
