package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agentsalud/availability-service/internal/domain"
	"github.com/agentsalud/availability-service/pkg/types"
)

const cacheName = "weekly_hours"

// CachedRepository read-through кэш недельного расписания поверх WeeklyHoursReader.
// Ошибки кэша не ломают запрос: логируем и идем в БД.
type CachedRepository struct {
	next    WeeklyHoursReader
	cache   Cache
	ttl     time.Duration
	metrics CacheMetrics
	logger  Logger
}

// NewCachedRepository создает кэширующий декоратор. metrics может быть nil.
func NewCachedRepository(next WeeklyHoursReader, cache Cache, ttl time.Duration, metrics CacheMetrics, logger Logger) *CachedRepository {
	return &CachedRepository{
		next:    next,
		cache:   cache,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

// cachedWorkingHours формат записи расписания в кэше
type cachedWorkingHours struct {
	DayOfWeek  int              `json:"dayOfWeek"`
	StartTime  types.TimeString `json:"startTime"`
	EndTime    types.TimeString `json:"endTime"`
	LocationID *uuid.UUID       `json:"locationId,omitempty"`
}

// CacheKey ключ кэша расписания врача в организации
func CacheKey(organizationID, providerID uuid.UUID) string {
	return fmt.Sprintf("availability:weekly_hours:%s:%s", organizationID, providerID)
}

// GetWeeklyHours отдает расписание из кэша, при промахе читает из БД и кладет в кэш
func (r *CachedRepository) GetWeeklyHours(ctx context.Context, organizationID, providerID uuid.UUID) ([]domain.WorkingHours, error) {
	key := CacheKey(organizationID, providerID)

	data, found, err := r.cache.Get(ctx, key)
	switch {
	case err != nil:
		r.record("error")
		r.logger.Warn("GetWeeklyHours: cache unavailable for key=%s, falling back to database: %v", key, err)
		return r.next.GetWeeklyHours(ctx, organizationID, providerID)

	case found:
		weekly, decodeErr := decodeWeeklyHours(data)
		if decodeErr == nil {
			r.record("hit")
			return weekly, nil
		}
		r.logger.Warn("GetWeeklyHours: corrupted cache entry key=%s: %v", key, decodeErr)
	}

	r.record("miss")

	weekly, err := r.next.GetWeeklyHours(ctx, organizationID, providerID)
	if err != nil {
		return nil, err
	}

	encoded, err := encodeWeeklyHours(weekly)
	if err != nil {
		r.logger.Error("GetWeeklyHours: failed to encode weekly hours for key=%s: %v", key, err)
		return weekly, nil
	}

	if err := r.cache.Set(ctx, key, encoded, r.ttl); err != nil {
		r.logger.Warn("GetWeeklyHours: failed to store key=%s in cache: %v", key, err)
	}

	return weekly, nil
}

func (r *CachedRepository) record(result string) {
	if r.metrics != nil {
		r.metrics.RecordCacheRequest(cacheName, result)
	}
}

func encodeWeeklyHours(weekly []domain.WorkingHours) ([]byte, error) {
	entries := make([]cachedWorkingHours, len(weekly))
	for i, wh := range weekly {
		entries[i] = cachedWorkingHours{
			DayOfWeek:  int(wh.DayOfWeek),
			StartTime:  wh.StartTime,
			EndTime:    wh.EndTime,
			LocationID: wh.LocationID,
		}
	}
	return json.Marshal(entries)
}

func decodeWeeklyHours(data []byte) ([]domain.WorkingHours, error) {
	var entries []cachedWorkingHours
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	weekly := make([]domain.WorkingHours, len(entries))
	for i, e := range entries {
		if e.DayOfWeek < int(time.Sunday) || e.DayOfWeek > int(time.Saturday) {
			return nil, fmt.Errorf("%w: %d", ErrInvalidDayOfWeek, e.DayOfWeek)
		}
		weekly[i] = domain.WorkingHours{
			DayOfWeek:  time.Weekday(e.DayOfWeek),
			StartTime:  e.StartTime,
			EndTime:    e.EndTime,
			LocationID: e.LocationID,
		}
	}
	return weekly, nil
}
