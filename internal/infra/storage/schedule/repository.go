package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/agentsalud/availability-service/internal/domain"
	"github.com/agentsalud/availability-service/pkg/dbmetrics"
	"github.com/agentsalud/availability-service/pkg/psqlbuilder"
)

// Repository репозиторий недельного расписания врачей (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeeklyHours получает активные записи недельного расписания врача.
// day_of_week хранится как в Postgres EXTRACT(DOW): 0 = воскресенье.
func (r *Repository) GetWeeklyHours(ctx context.Context, organizationID, providerID uuid.UUID) ([]domain.WorkingHours, error) {
	ctx = dbmetrics.WithOperation(ctx, "schedule.GetWeeklyHours")

	query, args, err := psqlbuilder.Select(
		"day_of_week",
		"start_time",
		"end_time",
		"location_id",
	).
		From("doctor_schedules").
		Where(squirrel.Eq{"organization_id": organizationID.String()}).
		Where(squirrel.Eq{"doctor_id": providerID.String()}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	weekly := make([]domain.WorkingHours, 0)

	for rows.Next() {
		var (
			wh         domain.WorkingHours
			dayOfWeek  int
			locationID uuid.NullUUID
		)

		if err := rows.Scan(&dayOfWeek, &wh.StartTime, &wh.EndTime, &locationID); err != nil {
			return nil, fmt.Errorf("%w: GetWeeklyHours - scan row: %v", ErrScanRow, err)
		}

		if dayOfWeek < int(time.Sunday) || dayOfWeek > int(time.Saturday) {
			return nil, fmt.Errorf("%w: GetWeeklyHours - doctor=%s day_of_week=%d",
				ErrInvalidDayOfWeek, providerID, dayOfWeek)
		}
		wh.DayOfWeek = time.Weekday(dayOfWeek)

		if locationID.Valid {
			id := locationID.UUID
			wh.LocationID = &id
		}

		weekly = append(weekly, wh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyHours - rows error: %v", ErrScanRow, err)
	}

	return weekly, nil
}
