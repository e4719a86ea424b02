package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/agentsalud/availability-service/internal/domain"
	"github.com/agentsalud/availability-service/internal/usecase/audit_associations"
)

var (
	orgA = uuid.MustParse("0f0e0d0c-0000-4000-8000-0000000000a1")
	orgB = uuid.MustParse("0f0e0d0c-0000-4000-8000-0000000000b1")
)

type mockAudit struct{ mock.Mock }

func (m *mockAudit) Execute(ctx context.Context, organizationID uuid.UUID) (*audit_associations.Response, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit_associations.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})   {}
func (nopLogger) Warn(string, ...interface{})   {}
func (nopLogger) Error(string, ...interface{})  {}
func (nopLogger) Printf(string, ...interface{}) {}

func TestAuditJob_ContinuesAfterFailedOrganization(t *testing.T) {
	audit := &mockAudit{}
	audit.On("Execute", mock.Anything, orgA).Return(nil, errors.New("db down"))
	audit.On("Execute", mock.Anything, orgB).Return(&audit_associations.Response{
		OrganizationID: orgB,
		Services:       []domain.ServiceRef{{ID: uuid.New(), Name: "Pediatría"}},
	}, nil)

	job := &AuditJob{
		organizationIDs: []uuid.UUID{orgA, orgB},
		audit:           audit,
		logger:          nopLogger{},
		timeout:         time.Second,
	}

	assert.Equal(t, 1, job.RunContext(context.Background()))
	audit.AssertExpectations(t)
}

func TestAuditJob_StopsOnCancelledContext(t *testing.T) {
	audit := &mockAudit{}
	job := &AuditJob{
		organizationIDs: []uuid.UUID{orgA},
		audit:           audit,
		logger:          nopLogger{},
		timeout:         time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Zero(t, job.RunContext(ctx))
	audit.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestScheduler_AddAudit(t *testing.T) {
	s := NewScheduler(nopLogger{})

	require.NoError(t, s.AddAudit("@every 1h", []uuid.UUID{orgA}, &mockAudit{}))
	require.NoError(t, s.AddAudit("*/15 * * * *", []uuid.UUID{orgA}, &mockAudit{}))
	assert.Error(t, s.AddAudit("every hour", []uuid.UUID{orgA}, &mockAudit{}))

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
