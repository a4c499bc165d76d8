package schedconfig

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с конфигурацией расписания ресурсов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByResource получает конфигурацию расписания ресурса
func (r *Repository) GetByResource(ctx context.Context, resourceID int64) (*domain.ResourceScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"resource_id",
		"work_start",
		"work_end",
		"slot_granularity_minutes",
		"default_duration_minutes",
		"max_recurrence_occurrences",
		"created_at",
		"updated_at",
	).
		From("resource_schedule_config").
		Where(squirrel.Eq{"resource_id": resourceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByResource - build select query: %v", ErrBuildQuery, err)
	}

	var config domain.ResourceScheduleConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&config.ResourceID,
		&config.WorkStart,
		&config.WorkEnd,
		&config.SlotGranularityMinutes,
		&config.DefaultDurationMinutes,
		&config.MaxRecurrenceOccurrences,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByResource - scan config: %v", ErrScanRow, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// Upsert создает или обновляет конфигурацию расписания ресурса
// Одна конфигурация на ресурс (уникальный индекс по resource_id)
func (r *Repository) Upsert(ctx context.Context, config *domain.ResourceScheduleConfig) (*domain.ResourceScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("resource_schedule_config").
		Columns(
			"resource_id",
			"work_start",
			"work_end",
			"slot_granularity_minutes",
			"default_duration_minutes",
			"max_recurrence_occurrences",
		).
		Values(
			config.ResourceID,
			config.WorkStart,
			config.WorkEnd,
			config.SlotGranularityMinutes,
			config.DefaultDurationMinutes,
			config.MaxRecurrenceOccurrences,
		).
		Suffix(`ON CONFLICT (resource_id) DO UPDATE SET
			work_start = EXCLUDED.work_start,
			work_end = EXCLUDED.work_end,
			slot_granularity_minutes = EXCLUDED.slot_granularity_minutes,
			default_duration_minutes = EXCLUDED.default_duration_minutes,
			max_recurrence_occurrences = EXCLUDED.max_recurrence_occurrences,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}
