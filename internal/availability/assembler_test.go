package availability

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentsalud/availability-service/internal/domain"
	"github.com/agentsalud/availability-service/pkg/types"
)

func newTestAssembler(now domain.Moment) *Assembler {
	return NewAssembler(FixedClock{Moment: now}, NewPolicy(domain.DefaultMinLeadTimeMinutes))
}

func fullWeek(start, end string) []domain.WorkingHours {
	weekly := make([]domain.WorkingHours, 0, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		weekly = append(weekly, hours(day, start, end))
	}
	return weekly
}

func TestAssembler_PatientSameDayAlwaysBlocked(t *testing.T) {
	assembler := newTestAssembler(at(friday, "10:00"))
	providers := []domain.ProviderSchedule{{ProviderID: doctorA, WeeklyHours: fullWeek("09:00", "17:00")}}

	result, err := assembler.Compute(domain.AvailabilityQuery{
		Date:            friday,
		DurationMinutes: 30,
		Role:            domain.RolePatient,
	}, providers)
	require.NoError(t, err)

	assert.Equal(t, domain.RuleStandard, result.AppliedRule)
	assert.False(t, result.NoProvidersAssociated)
	require.Len(t, result.Slots, 16)
	for _, s := range result.Slots {
		assert.False(t, s.Available, s.StartTime.String())
	}
	assert.Equal(t, []domain.ProviderSummary{{ProviderID: doctorA, TotalSlots: 16, AvailableSlots: 0}}, result.Providers)
}

func TestAssembler_PatientNextDayUses24HourRule(t *testing.T) {
	assembler := newTestAssembler(at(friday, "10:00"))
	providers := []domain.ProviderSchedule{{ProviderID: doctorA, WeeklyHours: fullWeek("09:00", "17:00")}}

	result, err := assembler.Compute(domain.AvailabilityQuery{
		Date:            saturday,
		DurationMinutes: 30,
		Role:            domain.RolePatient,
	}, providers)
	require.NoError(t, err)

	unavailable := make([]string, 0)
	for _, s := range result.Slots {
		if !s.Available {
			unavailable = append(unavailable, s.StartTime.String())
		}
	}
	// 10:00 субботы ровно через 24 часа - граница включительно
	assert.Equal(t, []string{"09:00", "09:30"}, unavailable)
	assert.Equal(t, 14, result.AvailableCount())
}

func TestAssembler_AdminSameDayStrictlyFuture(t *testing.T) {
	assembler := newTestAssembler(at(friday, "10:00"))
	providers := []domain.ProviderSchedule{{ProviderID: doctorA, WeeklyHours: fullWeek("09:00", "17:00")}}

	result, err := assembler.Compute(domain.AvailabilityQuery{
		Date:            friday,
		DurationMinutes: 30,
		Role:            domain.RoleAdmin,
	}, providers)
	require.NoError(t, err)

	assert.Equal(t, domain.RulePrivileged, result.AppliedRule)
	for _, s := range result.Slots {
		want := s.StartTime.IsAfter(types.MustTimeString("10:00"))
		assert.Equal(t, want, s.Available, s.StartTime.String())
	}
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, unavailableStarts(result.Slots))
	assert.Contains(t, availableStartTimes(result.Slots), "11:00")
}

func TestAssembler_OverrideAppliesStandardRuleToPrivilegedRole(t *testing.T) {
	assembler := newTestAssembler(at(friday, "10:00"))
	providers := []domain.ProviderSchedule{{ProviderID: doctorA, WeeklyHours: fullWeek("09:00", "17:00")}}

	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleStaff, domain.RoleDoctor, domain.RoleSuperAdmin} {
		result, err := assembler.Compute(domain.AvailabilityQuery{
			Date:                    friday,
			DurationMinutes:         30,
			Role:                    role,
			OverrideToStandardRules: true,
		}, providers)
		require.NoError(t, err)

		assert.Equal(t, domain.RuleStandard, result.AppliedRule, role)
		assert.Zero(t, result.AvailableCount(), role)
	}
}

func TestAssembler_NoProvidersIsDistinctFromNoHours(t *testing.T) {
	assembler := newTestAssembler(at(friday, "10:00"))
	query := domain.AvailabilityQuery{Date: saturday, DurationMinutes: 30, Role: domain.RolePatient}

	none, err := assembler.Compute(query, nil)
	require.NoError(t, err)
	assert.True(t, none.NoProvidersAssociated)
	assert.NotNil(t, none.Slots)
	assert.Empty(t, none.Slots)
	assert.Equal(t, domain.RuleStandard, none.AppliedRule)

	weekdaysOnly := []domain.WorkingHours{hours(time.Monday, "09:00", "17:00")}
	noHours, err := assembler.Compute(query, []domain.ProviderSchedule{{ProviderID: doctorA, WeeklyHours: weekdaysOnly}})
	require.NoError(t, err)
	assert.False(t, noHours.NoProvidersAssociated)
	assert.Empty(t, noHours.Slots)
	assert.Equal(t, []domain.ProviderSummary{{ProviderID: doctorA}}, noHours.Providers)
}

func TestAssembler_ValidationFailsFastInOrder(t *testing.T) {
	assembler := newTestAssembler(at(friday, "10:00"))

	cases := []struct {
		name  string
		query domain.AvailabilityQuery
		want  error
	}{
		{"missing date", domain.AvailabilityQuery{DurationMinutes: 30, Role: domain.RolePatient}, ErrInvalidDate},
		{"date before duration", domain.AvailabilityQuery{DurationMinutes: 0, Role: "nobody"}, ErrInvalidDate},
		{"zero duration", domain.AvailabilityQuery{Date: friday, Role: domain.RolePatient}, ErrInvalidDuration},
		{"negative duration", domain.AvailabilityQuery{Date: friday, DurationMinutes: -30, Role: domain.RoleAdmin}, ErrInvalidDuration},
		{"duration before role", domain.AvailabilityQuery{Date: friday, Role: "nobody"}, ErrInvalidDuration},
		{"unknown role", domain.AvailabilityQuery{Date: friday, DurationMinutes: 30, Role: "nobody"}, ErrUnknownRole},
		{"unknown role with override", domain.AvailabilityQuery{Date: friday, DurationMinutes: 30, Role: "nobody", OverrideToStandardRules: true}, ErrUnknownRole},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Ошибка валидации даже при пустом списке врачей
			result, err := assembler.Compute(tc.query, nil)
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, result)
		})
	}
}

func TestAssembler_OrdersByProviderThenStart(t *testing.T) {
	assembler := newTestAssembler(at(friday, "10:00"))
	providers := []domain.ProviderSchedule{
		{ProviderID: doctorC, WeeklyHours: []domain.WorkingHours{hours(time.Saturday, "08:00", "09:00")}},
		{ProviderID: doctorA, WeeklyHours: []domain.WorkingHours{
			hours(time.Saturday, "15:00", "16:00"),
			hours(time.Saturday, "11:00", "12:00"),
		}},
		{ProviderID: doctorB, WeeklyHours: []domain.WorkingHours{hours(time.Saturday, "09:00", "09:30")}},
	}

	result, err := assembler.Compute(domain.AvailabilityQuery{Date: saturday, DurationMinutes: 30, Role: domain.RoleStaff}, providers)
	require.NoError(t, err)

	got := make([]string, len(result.Slots))
	for i, s := range result.Slots {
		got[i] = s.ProviderID.String()[34:] + "@" + s.StartTime.String()
	}
	assert.Equal(t, []string{
		"0a@11:00", "0a@11:30", "0a@15:00", "0a@15:30",
		"0b@09:00",
		"0c@08:00", "0c@08:30",
	}, got)

	require.Len(t, result.Providers, 3)
	assert.Equal(t, doctorA, result.Providers[0].ProviderID)
	assert.Equal(t, doctorB, result.Providers[1].ProviderID)
	assert.Equal(t, doctorC, result.Providers[2].ProviderID)
}

func TestAssembler_DuplicateProviderCountedOnce(t *testing.T) {
	assembler := newTestAssembler(at(friday, "10:00"))
	schedule := domain.ProviderSchedule{ProviderID: doctorA, WeeklyHours: fullWeek("09:00", "10:00")}

	result, err := assembler.Compute(domain.AvailabilityQuery{Date: saturday, DurationMinutes: 30, Role: domain.RoleAdmin},
		[]domain.ProviderSchedule{schedule, schedule})
	require.NoError(t, err)

	assert.Len(t, result.Slots, 2)
	assert.Len(t, result.Providers, 1)
}

func TestAssembler_BookedSlotsStayUnavailableForPrivilegedRoles(t *testing.T) {
	assembler := newTestAssembler(at(friday, "10:00"))
	providers := []domain.ProviderSchedule{{
		ProviderID:  doctorA,
		WeeklyHours: fullWeek("09:00", "11:00"),
		Booked:      []domain.BookedInterval{booked("09:30", "10:00")},
	}}

	result, err := assembler.Compute(domain.AvailabilityQuery{Date: saturday, DurationMinutes: 30, Role: domain.RoleSuperAdmin}, providers)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "10:30"}, availableStartTimes(result.Slots))
}

func TestAssembler_IsIdempotent(t *testing.T) {
	assembler := newTestAssembler(at(friday, "10:00"))
	providers := []domain.ProviderSchedule{
		{ProviderID: doctorB, WeeklyHours: fullWeek("08:00", "12:00"), Booked: []domain.BookedInterval{booked("09:00", "09:45")}},
		{ProviderID: doctorA, WeeklyHours: fullWeek("13:00", "18:00")},
	}
	query := domain.AvailabilityQuery{Date: saturday, DurationMinutes: 45, Role: domain.RolePatient}

	first, err := assembler.Compute(query, providers)
	require.NoError(t, err)
	second, err := assembler.Compute(query, providers)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestAssembler_DoesNotMutateInput(t *testing.T) {
	assembler := newTestAssembler(at(friday, "10:00"))
	weekly := []domain.WorkingHours{
		hours(time.Saturday, "15:00", "16:00"),
		hours(time.Saturday, "09:00", "10:00"),
	}
	providers := []domain.ProviderSchedule{{ProviderID: doctorA, WeeklyHours: weekly}}

	_, err := assembler.Compute(domain.AvailabilityQuery{Date: saturday, DurationMinutes: 30, Role: domain.RoleAdmin}, providers)
	require.NoError(t, err)
	assert.Equal(t, "15:00", weekly[0].StartTime.String())
}

func unavailableStarts(slots []domain.Slot) []string {
	result := make([]string, 0)
	for _, s := range slots {
		if !s.Available {
			result = append(result, s.StartTime.String())
		}
	}
	return result
}
