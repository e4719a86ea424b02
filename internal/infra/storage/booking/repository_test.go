package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentsalud/availability-service/pkg/types"
)

var (
	orgID    = uuid.MustParse("0f0e0d0c-0000-4000-8000-000000000001")
	doctorID = uuid.MustParse("0f0e0d0c-0000-4000-8000-0000000000d1")
	date     = types.MustDate(2025, time.May, 30)
)

const bookedQuery = `SELECT start_time, end_time FROM appointments WHERE organization_id = \$1 AND doctor_id = \$2 AND appointment_date = \$3 AND status NOT IN \(\$4,\$5\) ORDER BY start_time ASC`

func TestRepository_GetBookedIntervals(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(bookedQuery).
		WithArgs(orgID.String(), doctorID.String(), "2025-05-30", "cancelled", "no_show").
		WillReturnRows(sqlmock.NewRows([]string{"start_time", "end_time"}).
			AddRow("09:00:00", "09:30:00").
			AddRow([]byte("11:15:00"), []byte("12:00:00")))

	repo := NewRepository(db)
	intervals, err := repo.GetBookedIntervals(context.Background(), orgID, doctorID, date)
	require.NoError(t, err)

	require.Len(t, intervals, 2)
	assert.Equal(t, "09:00", intervals[0].StartTime.String())
	assert.Equal(t, "09:30", intervals[0].EndTime.String())
	assert.Equal(t, "11:15", intervals[1].StartTime.String())
	assert.Equal(t, "12:00", intervals[1].EndTime.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetBookedIntervals_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(bookedQuery).
		WillReturnRows(sqlmock.NewRows([]string{"start_time", "end_time"}))

	intervals, err := NewRepository(db).GetBookedIntervals(context.Background(), orgID, doctorID, date)
	require.NoError(t, err)
	assert.NotNil(t, intervals)
	assert.Empty(t, intervals)
}

func TestRepository_GetBookedIntervals_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(bookedQuery).WillReturnError(errors.New("connection reset"))

	_, err = NewRepository(db).GetBookedIntervals(context.Background(), orgID, doctorID, date)
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestRepository_GetBookedIntervals_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(bookedQuery).
		WillReturnRows(sqlmock.NewRows([]string{"start_time", "end_time"}).AddRow("not-a-time", "10:00:00"))

	_, err = NewRepository(db).GetBookedIntervals(context.Background(), orgID, doctorID, date)
	assert.ErrorIs(t, err, ErrScanRow)
}
