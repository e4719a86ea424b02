package availability

import (
	"fmt"

	"github.com/agentsalud/availability-service/internal/domain"
	"github.com/agentsalud/availability-service/pkg/types"
)

// Policy правило окна бронирования в зависимости от роли.
//
// standard (пациент или явный override): слот на текущую дату недоступен всегда,
// иначе до начала слота должно оставаться не меньше minLeadTime (граница включительно).
//
// privileged (admin, staff, doctor, superadmin): доступен любой слот строго в будущем.
type Policy struct {
	minLeadTimeMinutes int
}

// NewPolicy создает политику с минимальным временем до записи для стандартного правила
func NewPolicy(minLeadTimeMinutes int) *Policy {
	if minLeadTimeMinutes < 0 {
		minLeadTimeMinutes = 0
	}
	return &Policy{minLeadTimeMinutes: minLeadTimeMinutes}
}

// MinLeadTimeMinutes возвращает минимальное время до записи
func (p *Policy) MinLeadTimeMinutes() int {
	return p.minLeadTimeMinutes
}

// ResolveRule выбирает правило для роли. Неизвестная роль - ошибка, без fallback на разрешающее правило.
func (p *Policy) ResolveRule(role domain.Role, overrideToStandardRules bool) (domain.AppliedRule, error) {
	if !role.IsKnown() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	if !role.IsPrivileged() || overrideToStandardRules {
		return domain.RuleStandard, nil
	}

	return domain.RulePrivileged, nil
}

// IsBookable решает, можно ли записаться на слот, начинающийся в (date, start), в момент now
func (p *Policy) IsBookable(rule domain.AppliedRule, date types.Date, start types.TimeString, now domain.Moment) bool {
	leadMinutes := minutesUntil(now, date, start)

	switch rule {
	case domain.RuleStandard:
		// Запись пациента на сегодня запрещена вне зависимости от времени
		if date.Equal(now.Date) {
			return false
		}
		return leadMinutes >= p.minLeadTimeMinutes

	case domain.RulePrivileged:
		return leadMinutes > 0

	default:
		return false
	}
}

// Apply применяет правило к слотам на месте: Available = свободен И разрешен правилом
func (p *Policy) Apply(rule domain.AppliedRule, slots []domain.Slot, now domain.Moment) {
	for i := range slots {
		slots[i].Available = slots[i].Available && p.IsBookable(rule, slots[i].Date, slots[i].StartTime, now)
	}
}

// minutesUntil количество минут от now до (date, start) в целых гражданских минутах
func minutesUntil(now domain.Moment, date types.Date, start types.TimeString) int {
	return now.Date.DaysUntil(date)*domain.MinutesPerDay + start.Minutes() - now.Time.Minutes()
}
