package get_availability

import (
	"github.com/google/uuid"

	"github.com/agentsalud/availability-service/internal/domain"
	"github.com/agentsalud/availability-service/pkg/types"
)

// Request модель запроса доступности
type Request struct {
	OrganizationID   uuid.UUID   // Организация (тенант), всегда явно
	ServiceID        uuid.UUID   // Услуга, по которой ищутся врачи
	LocationID       *uuid.UUID  // Филиал, nil - любой
	Date             types.Date  // Гражданская дата в часовом поясе организации
	DurationMinutes  int         // Длительность приема
	Role             domain.Role // Роль пользователя, запрашивающего слоты
	UseStandardRules bool        // Принудительно применить правило для пациентов
}

// Response модель ответа с доступностью
type Response struct {
	Date                  types.Date
	OrganizationID        uuid.UUID
	ServiceID             uuid.UUID
	LocationID            *uuid.UUID
	Slots                 []domain.Slot
	AppliedRule           domain.AppliedRule
	NoProvidersAssociated bool
	Providers             []domain.ProviderSummary
}
