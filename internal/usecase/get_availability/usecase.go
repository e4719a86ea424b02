package get_availability

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agentsalud/availability-service/internal/domain"
)

// DefaultConcurrency максимум одновременных загрузок расписаний врачей
const DefaultConcurrency = 8

const (
	outcomeOK          = "ok"
	outcomeNoProviders = "no_providers"
)

// UseCase use case расчета доступности слотов по услуге
type UseCase struct {
	associationRepo AssociationRepository
	scheduleRepo    ScheduleRepository
	bookingRepo     BookingRepository
	assembler       Assembler
	metrics         Metrics
	logger          Logger
	concurrency     int
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(
	associationRepo AssociationRepository,
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	assembler Assembler,
	metrics Metrics,
	logger Logger,
	concurrency int,
) *UseCase {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	return &UseCase{
		associationRepo: associationRepo,
		scheduleRepo:    scheduleRepo,
		bookingRepo:     bookingRepo,
		assembler:       assembler,
		metrics:         metrics,
		logger:          logger,
		concurrency:     concurrency,
	}
}

// Execute выполняет use case расчета доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: org=%s, service=%s, date=%s, duration=%d, role=%s, standardRules=%t",
		req.OrganizationID, req.ServiceID, req.Date, req.DurationMinutes, req.Role, req.UseStandardRules)

	// 1. Валидация до любых запросов в БД
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Врачи, оказывающие услугу
	providerIDs, err := uc.associationRepo.GetProvidersForService(ctx, req.OrganizationID, req.ServiceID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get providers for service=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get providers: %v", ErrInternal, err)
	}

	if len(providerIDs) == 0 {
		uc.logger.Warn("GetAvailability: service=%s has no associated doctors in org=%s",
			req.ServiceID, req.OrganizationID)
	}

	// 3. Расписания и записи врачей
	schedules, err := uc.loadSchedules(ctx, req, providerIDs)
	if err != nil {
		return nil, err
	}

	// 4. Расчет
	result, err := uc.assembler.Compute(toQuery(req), schedules)
	if err != nil {
		uc.logger.Warn("GetAvailability: compute failed: %v", err)
		return nil, err
	}

	uc.record(result)

	for _, summary := range result.Providers {
		if !summary.HasAvailability() {
			uc.logger.Info("GetAvailability: doctor=%s has no bookable slots on %s (total=%d, rule=%s)",
				summary.ProviderID, req.Date, summary.TotalSlots, result.AppliedRule)
		}
	}

	uc.logger.Info("GetAvailability: computed %d slots (%d available) for org=%s, service=%s, date=%s, rule=%s",
		len(result.Slots), result.AvailableCount(), req.OrganizationID, req.ServiceID, req.Date, result.AppliedRule)

	return &Response{
		Date:                  req.Date,
		OrganizationID:        req.OrganizationID,
		ServiceID:             req.ServiceID,
		LocationID:            req.LocationID,
		Slots:                 result.Slots,
		AppliedRule:           result.AppliedRule,
		NoProvidersAssociated: result.NoProvidersAssociated,
		Providers:             result.Providers,
	}, nil
}

// loadSchedules параллельно загружает расписание и записи каждого врача.
// Порядок результата совпадает с порядком providerIDs.
func (uc *UseCase) loadSchedules(ctx context.Context, req *Request, providerIDs []uuid.UUID) ([]domain.ProviderSchedule, error) {
	schedules := make([]domain.ProviderSchedule, len(providerIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for i, providerID := range providerIDs {
		i, providerID := i, providerID
		g.Go(func() error {
			weekly, err := uc.scheduleRepo.GetWeeklyHours(gctx, req.OrganizationID, providerID)
			if err != nil {
				uc.logger.Error("GetAvailability: failed to get weekly hours for doctor=%s: %v", providerID, err)
				return fmt.Errorf("%w: failed to get weekly hours: %v", ErrInternal, err)
			}

			booked, err := uc.bookingRepo.GetBookedIntervals(gctx, req.OrganizationID, providerID, req.Date)
			if err != nil {
				uc.logger.Error("GetAvailability: failed to get bookings for doctor=%s: %v", providerID, err)
				return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
			}

			schedules[i] = domain.ProviderSchedule{
				ProviderID:  providerID,
				WeeklyHours: weekly,
				Booked:      booked,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return schedules, nil
}

func (uc *UseCase) record(result *domain.AvailabilityResult) {
	if uc.metrics == nil {
		return
	}

	outcome := outcomeOK
	if result.NoProvidersAssociated {
		outcome = outcomeNoProviders
	}
	uc.metrics.RecordComputation(string(result.AppliedRule), outcome, len(result.Slots))
}
