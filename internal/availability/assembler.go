package availability

import (
	"bytes"
	"sort"

	"github.com/google/uuid"

	"github.com/agentsalud/availability-service/internal/domain"
)

// Assembler собирает итоговую доступность: генерация слотов + правило окна бронирования.
// Чистая функция от входных данных и часов, без I/O.
type Assembler struct {
	clock  Clock
	policy *Policy
}

// NewAssembler создает сборщик доступности
func NewAssembler(clock Clock, policy *Policy) *Assembler {
	return &Assembler{
		clock:  clock,
		policy: policy,
	}
}

// Compute рассчитывает доступность для заранее загруженных расписаний врачей.
// Запрос валидируется целиком до начала расчета.
// Пустой список врачей дает NoProvidersAssociated=true, а не просто пустой список слотов.
func (a *Assembler) Compute(query domain.AvailabilityQuery, providers []domain.ProviderSchedule) (*domain.AvailabilityResult, error) {
	if err := ValidateQuery(query); err != nil {
		return nil, err
	}

	rule, err := a.policy.ResolveRule(query.Role, query.OverrideToStandardRules)
	if err != nil {
		return nil, err
	}

	if len(providers) == 0 {
		return &domain.AvailabilityResult{
			Slots:                 []domain.Slot{},
			AppliedRule:           rule,
			NoProvidersAssociated: true,
			Providers:             []domain.ProviderSummary{},
		}, nil
	}

	now := a.clock.Now()
	seen := make(map[uuid.UUID]struct{}, len(providers))
	slots := make([]domain.Slot, 0)
	summaries := make([]domain.ProviderSummary, 0, len(providers))

	for _, provider := range providers {
		if _, ok := seen[provider.ProviderID]; ok {
			continue
		}
		seen[provider.ProviderID] = struct{}{}

		generated, err := GenerateSlots(
			provider.ProviderID,
			query.LocationID,
			query.Date,
			query.DurationMinutes,
			provider.WeeklyHours,
			provider.Booked,
		)
		if err != nil {
			return nil, err
		}

		a.policy.Apply(rule, generated, now)

		summary := domain.ProviderSummary{
			ProviderID: provider.ProviderID,
			TotalSlots: len(generated),
		}
		for i := range generated {
			if generated[i].Available {
				summary.AvailableSlots++
			}
		}

		summaries = append(summaries, summary)
		slots = append(slots, generated...)
	}

	sortSlots(slots)
	sort.SliceStable(summaries, func(i, j int) bool {
		return compareIDs(summaries[i].ProviderID, summaries[j].ProviderID) < 0
	})

	return &domain.AvailabilityResult{
		Slots:                 slots,
		AppliedRule:           rule,
		NoProvidersAssociated: false,
		Providers:             summaries,
	}, nil
}

// sortSlots стабильная сортировка по (providerId, date, startTime)
func sortSlots(slots []domain.Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if c := compareIDs(slots[i].ProviderID, slots[j].ProviderID); c != 0 {
			return c < 0
		}
		if c := slots[i].Date.Compare(slots[j].Date); c != 0 {
			return c < 0
		}
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})
}

func compareIDs(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}
