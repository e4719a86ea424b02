package booking

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/agentsalud/availability-service/internal/domain"
	"github.com/agentsalud/availability-service/pkg/dbmetrics"
	"github.com/agentsalud/availability-service/pkg/psqlbuilder"
	"github.com/agentsalud/availability-service/pkg/types"
)

// Repository репозиторий записей на прием (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBookedIntervals получает интервалы активных записей врача на дату.
// Отмененные записи и неявки (domain.InactiveStatuses) время не занимают.
// Консистентность "занятости" при конкурентной записи - ответственность БД, здесь только чтение.
func (r *Repository) GetBookedIntervals(ctx context.Context, organizationID, providerID uuid.UUID, date types.Date) ([]domain.BookedInterval, error) {
	ctx = dbmetrics.WithOperation(ctx, "booking.GetBookedIntervals")

	inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
	for i, status := range domain.InactiveStatuses {
		inactiveStatusStrings[i] = string(status)
	}

	query, args, err := psqlbuilder.Select(
		"start_time",
		"end_time",
	).
		From("appointments").
		Where(squirrel.Eq{"organization_id": organizationID.String()}).
		Where(squirrel.Eq{"doctor_id": providerID.String()}).
		Where(squirrel.Eq{"appointment_date": date.String()}).
		Where(squirrel.NotEq{"status": inactiveStatusStrings}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedIntervals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.BookedInterval, 0)

	for rows.Next() {
		var interval domain.BookedInterval

		if err := rows.Scan(&interval.StartTime, &interval.EndTime); err != nil {
			return nil, fmt.Errorf("%w: GetBookedIntervals - scan row: %v", ErrScanRow, err)
		}

		intervals = append(intervals, interval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedIntervals - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}
