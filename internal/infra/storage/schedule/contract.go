package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agentsalud/availability-service/internal/domain"
	"github.com/agentsalud/availability-service/pkg/dbmetrics"
)

// DBExecutor переиспользуем интерфейс из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

// WeeklyHoursReader источник недельного расписания (Repository или CachedRepository)
type WeeklyHoursReader interface {
	GetWeeklyHours(ctx context.Context, organizationID, providerID uuid.UUID) ([]domain.WorkingHours, error)
}

// Cache key-value кэш с TTL (реализуется cache.RedisCache).
// Промах возвращается как found=false без ошибки.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CacheMetrics получатель метрик кэша
type CacheMetrics interface {
	RecordCacheRequest(cache, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
