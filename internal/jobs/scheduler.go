package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// DefaultAuditTimeout ограничение на один прогон аудита всех организаций
const DefaultAuditTimeout = 2 * time.Minute

// Scheduler периодические фоновые задачи сервиса
type Scheduler struct {
	cron   *cron.Cron
	logger Logger
}

// NewScheduler создает планировщик. Паника внутри задачи логируется и не роняет процесс.
func NewScheduler(logger Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(logger)

	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger),
			cron.SkipIfStillRunning(cronLogger),
		)),
		logger: logger,
	}
}

// AddAudit регистрирует аудит связей для перечисленных организаций по расписанию schedule
// (cron-выражение или дескриптор вида "@every 1h")
func (s *Scheduler) AddAudit(schedule string, organizationIDs []uuid.UUID, audit AuditUseCase) error {
	job := &AuditJob{
		organizationIDs: organizationIDs,
		audit:           audit,
		logger:          s.logger,
		timeout:         DefaultAuditTimeout,
	}

	if _, err := s.cron.AddJob(schedule, job); err != nil {
		return fmt.Errorf("jobs: invalid audit schedule %q: %w", schedule, err)
	}

	s.logger.Info("Scheduler: audit job registered, schedule=%s, organizations=%d", schedule, len(organizationIDs))
	return nil
}

// Start запускает планировщик в отдельной горутине
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop останавливает планировщик и ждет завершения запущенных задач или отмены ctx
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("Scheduler: stop timed out, running jobs abandoned")
	}
}

// AuditJob прогон аудита по списку организаций. Ошибки логируются, задача не падает.
type AuditJob struct {
	organizationIDs []uuid.UUID
	audit           AuditUseCase
	logger          Logger
	timeout         time.Duration
}

// Run реализует cron.Job
func (j *AuditJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	j.RunContext(ctx)
}

// RunContext выполняет аудит всех организаций, возвращает количество найденных услуг без врачей
func (j *AuditJob) RunContext(ctx context.Context) int {
	j.logger.Info("AuditJob: checking %d organizations for services without doctors", len(j.organizationIDs))

	total := 0
	for _, orgID := range j.organizationIDs {
		if ctx.Err() != nil {
			j.logger.Warn("AuditJob: stopped before org=%s: %v", orgID, ctx.Err())
			break
		}

		resp, err := j.audit.Execute(ctx, orgID)
		if err != nil {
			j.logger.Error("AuditJob: audit failed for org=%s: %v", orgID, err)
			continue
		}
		total += len(resp.Services)
	}

	j.logger.Info("AuditJob: finished, services without doctors=%d", total)
	return total
}
