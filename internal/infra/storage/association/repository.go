package association

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/agentsalud/availability-service/internal/domain"
	"github.com/agentsalud/availability-service/pkg/dbmetrics"
	"github.com/agentsalud/availability-service/pkg/psqlbuilder"
)

// Repository репозиторий связей услуга-врач (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория связей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetProvidersForService возвращает врачей организации, оказывающих услугу.
// Пустой результат - не ошибка: это штатный случай "у услуги нет врачей".
func (r *Repository) GetProvidersForService(ctx context.Context, organizationID, serviceID uuid.UUID) ([]uuid.UUID, error) {
	ctx = dbmetrics.WithOperation(ctx, "association.GetProvidersForService")

	query, args, err := psqlbuilder.Select("DISTINCT doctor_id").
		From("doctor_services").
		Where(squirrel.Eq{"organization_id": organizationID.String()}).
		Where(squirrel.Eq{"service_id": serviceID.String()}).
		OrderBy("doctor_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProvidersForService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetProvidersForService - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	providers := make([]uuid.UUID, 0)

	for rows.Next() {
		var providerID uuid.UUID

		if err := rows.Scan(&providerID); err != nil {
			return nil, fmt.Errorf("%w: GetProvidersForService - scan row: %v", ErrScanRow, err)
		}

		providers = append(providers, providerID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetProvidersForService - rows error: %v", ErrScanRow, err)
	}

	return providers, nil
}

// ListServicesWithoutProviders возвращает активные услуги организации без единого врача
func (r *Repository) ListServicesWithoutProviders(ctx context.Context, organizationID uuid.UUID) ([]domain.ServiceRef, error) {
	ctx = dbmetrics.WithOperation(ctx, "association.ListServicesWithoutProviders")

	query, args, err := psqlbuilder.Select("s.id", "s.name").
		From("services s").
		Where(squirrel.Eq{"s.organization_id": organizationID.String()}).
		Where(squirrel.Eq{"s.is_active": true}).
		Where("NOT EXISTS (SELECT 1 FROM doctor_services ds WHERE ds.service_id = s.id AND ds.organization_id = s.organization_id)").
		OrderBy("s.name ASC", "s.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListServicesWithoutProviders - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServicesWithoutProviders - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]domain.ServiceRef, 0)

	for rows.Next() {
		var service domain.ServiceRef

		if err := rows.Scan(&service.ID, &service.Name); err != nil {
			return nil, fmt.Errorf("%w: ListServicesWithoutProviders - scan row: %v", ErrScanRow, err)
		}

		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServicesWithoutProviders - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}
