package availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/agentsalud/availability-service/internal/domain"
	"github.com/agentsalud/availability-service/pkg/types"
)

var (
	doctorA = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	doctorB = uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	doctorC = uuid.MustParse("00000000-0000-0000-0000-00000000000c")

	// 2025-05-30 пятница
	friday   = types.MustDate(2025, time.May, 30)
	saturday = types.MustDate(2025, time.May, 31)
)

func at(date types.Date, hhmm string) domain.Moment {
	return domain.Moment{Date: date, Time: types.MustTimeString(hhmm)}
}

func hours(day time.Weekday, start, end string) domain.WorkingHours {
	return domain.WorkingHours{
		DayOfWeek: day,
		StartTime: types.MustTimeString(start),
		EndTime:   types.MustTimeString(end),
	}
}

func booked(start, end string) domain.BookedInterval {
	return domain.BookedInterval{
		StartTime: types.MustTimeString(start),
		EndTime:   types.MustTimeString(end),
	}
}

func startTimes(slots []domain.Slot) []string {
	result := make([]string, len(slots))
	for i, s := range slots {
		result[i] = s.StartTime.String()
	}
	return result
}

func availableStartTimes(slots []domain.Slot) []string {
	result := make([]string, 0)
	for _, s := range slots {
		if s.Available {
			result = append(result, s.StartTime.String())
		}
	}
	return result
}
