package get_services_without_providers

import auditAssociations "github.com/agentsalud/availability-service/internal/usecase/audit_associations"

// ServicesWithoutProvidersResponse HTTP response model
type ServicesWithoutProvidersResponse struct {
	OrganizationID string    `json:"organizationId"`
	Count          int       `json:"count"`
	Services       []Service `json:"services"`
}

// Service услуга без врачей
type Service struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *auditAssociations.Response) *ServicesWithoutProvidersResponse {
	services := make([]Service, len(resp.Services))
	for i, s := range resp.Services {
		services[i] = Service{
			ID:   s.ID.String(),
			Name: s.Name,
		}
	}

	return &ServicesWithoutProvidersResponse{
		OrganizationID: resp.OrganizationID.String(),
		Count:          len(services),
		Services:       services,
	}
}
