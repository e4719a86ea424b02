package availability

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentsalud/availability-service/internal/domain"
	"github.com/agentsalud/availability-service/pkg/types"
)

func TestGenerateSlots_WalksWorkingHoursInDurationSteps(t *testing.T) {
	weekly := []domain.WorkingHours{hours(time.Friday, "09:00", "11:00")}

	slots, err := GenerateSlots(doctorA, nil, friday, 30, weekly, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, startTimes(slots))
	for _, s := range slots {
		assert.Equal(t, 30, s.DurationMinutes())
		assert.Equal(t, doctorA, s.ProviderID)
		assert.Equal(t, friday, s.Date)
		assert.True(t, s.Available)
	}
}

func TestGenerateSlots_DropsTailThatExceedsInterval(t *testing.T) {
	weekly := []domain.WorkingHours{hours(time.Friday, "09:00", "10:10")}

	slots, err := GenerateSlots(doctorA, nil, friday, 30, weekly, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30"}, startTimes(slots))
	assert.Equal(t, "10:00", slots[len(slots)-1].EndTime.String())
}

func TestGenerateSlots_NoEntryForWeekdayIsEmptyNotError(t *testing.T) {
	weekly := []domain.WorkingHours{hours(time.Monday, "09:00", "17:00")}

	slots, err := GenerateSlots(doctorA, nil, friday, 30, weekly, nil)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGenerateSlots_BookedOverlapMarksUnavailable(t *testing.T) {
	weekly := []domain.WorkingHours{hours(time.Friday, "10:00", "12:00")}
	bookings := []domain.BookedInterval{
		booked("10:15", "10:45"), // задевает 10:00 и 10:30
		booked("11:00", "11:30"), // ровно совпадает с 11:00
	}

	slots, err := GenerateSlots(doctorA, nil, friday, 30, weekly, bookings)
	require.NoError(t, err)

	assert.Equal(t, []string{"10:00", "10:30", "11:00", "11:30"}, startTimes(slots))
	assert.Equal(t, []string{"11:30"}, availableStartTimes(slots))
}

func TestGenerateSlots_TouchingBookingIsNotOverlap(t *testing.T) {
	weekly := []domain.WorkingHours{hours(time.Friday, "11:30", "12:00")}

	for _, b := range []domain.BookedInterval{booked("11:00", "11:30"), booked("12:00", "12:30")} {
		slots, err := GenerateSlots(doctorA, nil, friday, 30, weekly, []domain.BookedInterval{b})
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.True(t, slots[0].Available, "booking %s-%s", b.StartTime, b.EndTime)
	}
}

func TestGenerateSlots_MultipleIntervalsAndDuplicates(t *testing.T) {
	weekly := []domain.WorkingHours{
		hours(time.Friday, "14:00", "15:00"),
		hours(time.Friday, "08:00", "09:00"),
		hours(time.Friday, "08:00", "09:00"), // дубль
		hours(time.Friday, "08:15", "08:45"), // вложенный
	}

	slots, err := GenerateSlots(doctorA, nil, friday, 30, weekly, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"08:00", "08:30", "14:00", "14:30"}, startTimes(slots))
	assertNoOverlaps(t, slots)
}

func TestGenerateSlots_SkipsMalformedEntries(t *testing.T) {
	weekly := []domain.WorkingHours{
		hours(time.Friday, "12:00", "09:00"),
		hours(time.Friday, "13:00", "13:00"),
	}

	slots, err := GenerateSlots(doctorA, nil, friday, 30, weekly, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_EndOfDay(t *testing.T) {
	weekly := []domain.WorkingHours{hours(time.Friday, "23:00", "24:00")}

	slots, err := GenerateSlots(doctorA, nil, friday, 30, weekly, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"23:00", "23:30"}, startTimes(slots))
	assert.Equal(t, "24:00", slots[1].EndTime.String())
}

func TestGenerateSlots_FiltersByLocation(t *testing.T) {
	north := uuid.MustParse("10000000-0000-0000-0000-000000000001")
	south := uuid.MustParse("10000000-0000-0000-0000-000000000002")

	northHours := hours(time.Friday, "09:00", "10:00")
	northHours.LocationID = &north
	southHours := hours(time.Friday, "15:00", "16:00")
	southHours.LocationID = &south
	anywhere := hours(time.Friday, "12:00", "12:30")

	weekly := []domain.WorkingHours{northHours, southHours, anywhere}

	slots, err := GenerateSlots(doctorA, &north, friday, 30, weekly, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "12:00"}, startTimes(slots))
	for _, s := range slots {
		require.NotNil(t, s.LocationID)
		assert.Equal(t, north, *s.LocationID)
	}

	all, err := GenerateSlots(doctorA, nil, friday, 30, weekly, nil)
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Nil(t, all[2].LocationID) // 12:00 без локации
}

func TestGenerateSlots_InvalidInput(t *testing.T) {
	weekly := []domain.WorkingHours{hours(time.Friday, "09:00", "17:00")}

	_, err := GenerateSlots(doctorA, nil, types.Date{}, 30, weekly, nil)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = GenerateSlots(doctorA, nil, friday, 0, weekly, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = GenerateSlots(doctorA, nil, friday, -15, weekly, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = GenerateSlots(doctorA, nil, friday, domain.MaxDurationMinutes+1, weekly, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestGenerateSlots_PropertiesAcrossDurations(t *testing.T) {
	weekly := []domain.WorkingHours{
		hours(time.Friday, "07:00", "12:10"),
		hours(time.Friday, "11:00", "13:00"),
		hours(time.Friday, "15:05", "19:40"),
	}
	bookings := []domain.BookedInterval{
		booked("08:10", "08:50"),
		booked("12:00", "12:20"),
		booked("16:00", "17:15"),
	}

	for _, duration := range []int{5, 10, 15, 20, 25, 30, 45, 60, 90, 120} {
		slots, err := GenerateSlots(doctorA, nil, friday, duration, weekly, bookings)
		require.NoError(t, err)

		for _, s := range slots {
			assert.Equal(t, duration, s.DurationMinutes(), "duration %d", duration)
			assert.True(t, s.StartTime.IsBefore(s.EndTime))
			if s.Available {
				for _, b := range bookings {
					assert.False(t, s.Overlaps(b.StartTime, b.EndTime),
						"slot %s overlaps booking %s-%s", s.StartTime, b.StartTime, b.EndTime)
				}
			}
		}
		assertNoOverlaps(t, slots)
	}
}

func assertNoOverlaps(t *testing.T, slots []domain.Slot) {
	t.Helper()
	for i := range slots {
		for j := i + 1; j < len(slots); j++ {
			if slots[i].ProviderID != slots[j].ProviderID || slots[i].Date != slots[j].Date {
				continue
			}
			assert.False(t, slots[i].Overlaps(slots[j].StartTime, slots[j].EndTime),
				"slots %s and %s overlap", slots[i].StartTime, slots[j].StartTime)
		}
	}
}
