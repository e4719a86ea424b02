package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/agentsalud/availability-service/internal/domain"
	"github.com/agentsalud/availability-service/pkg/types"
)

// GenerateSlots генерирует все слоты врача на дату.
// Для каждого интервала рабочего времени, совпадающего по дню недели (и локации),
// слоты идут с начала интервала с шагом durationMinutes, пока конец слота не выходит за конец интервала.
// Слот, пересекающийся с существующей записью, возвращается с Available=false.
// Если на этот день недели нет рабочего времени, возвращается пустой список без ошибки.
func GenerateSlots(
	providerID uuid.UUID,
	locationID *uuid.UUID,
	date types.Date,
	durationMinutes int,
	weeklyHours []domain.WorkingHours,
	booked []domain.BookedInterval,
) ([]domain.Slot, error) {
	if err := date.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	if err := validateDuration(durationMinutes); err != nil {
		return nil, err
	}

	intervals := workingHoursForDay(weeklyHours, date.Weekday(), locationID)
	slots := make([]domain.Slot, 0)

	for _, wh := range intervals {
		// Битые записи расписания (start >= end) пропускаем
		if !wh.StartTime.IsBefore(wh.EndTime) {
			continue
		}

		current := wh.StartTime
		for {
			slotEnd, err := current.AddMinutes(durationMinutes)
			if err != nil || slotEnd.IsAfter(wh.EndTime) {
				break
			}

			// Дублирующиеся или пересекающиеся записи расписания не должны давать пересекающиеся слоты
			if !overlapsEmitted(slots, current, slotEnd) {
				slots = append(slots, domain.Slot{
					ProviderID: providerID,
					LocationID: slotLocation(wh.LocationID, locationID),
					Date:       date,
					StartTime:  current,
					EndTime:    slotEnd,
					Available:  !overlapsBooked(current, slotEnd, booked),
				})
			}

			current = slotEnd
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})

	return slots, nil
}

// workingHoursForDay отбирает записи на день недели, отсортированные по началу интервала
func workingHoursForDay(weeklyHours []domain.WorkingHours, weekday time.Weekday, locationID *uuid.UUID) []domain.WorkingHours {
	result := make([]domain.WorkingHours, 0, len(weeklyHours))
	for _, wh := range weeklyHours {
		if wh.DayOfWeek == weekday && wh.MatchesLocation(locationID) {
			result = append(result, wh)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].StartTime.Equal(result[j].StartTime) {
			return result[i].StartTime.IsBefore(result[j].StartTime)
		}
		return result[i].EndTime.IsBefore(result[j].EndTime)
	})

	return result
}

// overlapsBooked проверяет пересечение слота с существующими записями.
// Граничащие интервалы НЕ пересекаются:
// - Слот 11:30-12:00, запись 11:20-11:40 → ЕСТЬ пересечение (11:30-11:40)
// - Слот 11:30-12:00, запись 11:00-11:30 → НЕТ пересечения
// - Слот 11:30-12:00, запись 12:00-12:30 → НЕТ пересечения
func overlapsBooked(start, end types.TimeString, booked []domain.BookedInterval) bool {
	for _, b := range booked {
		if !b.StartTime.IsBefore(b.EndTime) {
			continue
		}
		if domain.Overlaps(start, end, b.StartTime, b.EndTime) {
			return true
		}
	}
	return false
}

func overlapsEmitted(slots []domain.Slot, start, end types.TimeString) bool {
	for i := range slots {
		if slots[i].Overlaps(start, end) {
			return true
		}
	}
	return false
}

// slotLocation локация слота: из записи расписания, иначе запрошенная
func slotLocation(entry, requested *uuid.UUID) *uuid.UUID {
	if entry != nil {
		id := *entry
		return &id
	}
	if requested != nil {
		id := *requested
		return &id
	}
	return nil
}
