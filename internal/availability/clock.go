package availability

import (
	"fmt"
	"time"
	_ "time/tzdata" // образы без системной zoneinfo

	"github.com/agentsalud/availability-service/internal/domain"
	"github.com/agentsalud/availability-service/pkg/types"
)

// Clock единственный источник "сейчас" для расчета доступности
type Clock interface {
	Now() domain.Moment
}

// SystemClock системные часы, приведенные к часовому поясу организации.
// Перевод в пояс делается один раз, дальше используются только гражданские значения.
type SystemClock struct {
	location *time.Location
	now      func() time.Time
}

// NewSystemClock создает часы для часового пояса IANA (например, America/Bogota)
func NewSystemClock(timezone string) (*SystemClock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("availability: load timezone %q: %w", timezone, err)
	}
	return &SystemClock{location: loc, now: time.Now}, nil
}

// Now возвращает текущую гражданскую дату и время суток организации
func (c *SystemClock) Now() domain.Moment {
	local := c.now().In(c.location)
	return domain.Moment{
		Date: types.DateFromTime(local),
		Time: types.NewTimeString(local),
	}
}

// FixedClock часы с фиксированным моментом (для тестов и воспроизведения)
type FixedClock struct {
	Moment domain.Moment
}

// Now возвращает зафиксированный момент
func (c FixedClock) Now() domain.Moment {
	return c.Moment
}
