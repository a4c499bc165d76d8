package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var (
	// ErrInvalidConfig возвращается при некорректных параметрах конфигурации
	ErrInvalidConfig = errors.New("invalid schedule config")
)

// Request модели

// UpsertConfigRequest запрос на создание или обновление конфигурации расписания
type UpsertConfigRequest struct {
	UserID                   int64  `json:"userId"`
	ResourceID               int64  `json:"resourceId"`
	WorkStart                string `json:"workStart"` // "HH:MM"
	WorkEnd                  string `json:"workEnd"`   // "HH:MM"
	SlotGranularityMinutes   int    `json:"slotGranularityMinutes"`
	DefaultDurationMinutes   int    `json:"defaultDurationMinutes"`
	MaxRecurrenceOccurrences int    `json:"maxRecurrenceOccurrences"`
}

// Validate проверяет параметры конфигурации
func (r *UpsertConfigRequest) Validate() error {
	if r.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceId must be positive", ErrInvalidConfig)
	}

	workStart := types.TimeString(r.WorkStart)
	if err := workStart.Validate(); err != nil {
		return fmt.Errorf("%w: workStart: %v", ErrInvalidConfig, err)
	}

	workEnd := types.TimeString(r.WorkEnd)
	if err := workEnd.Validate(); err != nil {
		return fmt.Errorf("%w: workEnd: %v", ErrInvalidConfig, err)
	}

	if !workStart.IsBefore(workEnd) {
		return fmt.Errorf("%w: workEnd %s must be after workStart %s", ErrInvalidConfig, r.WorkEnd, r.WorkStart)
	}

	if r.SlotGranularityMinutes < domain.MinGranularityMinutes || r.SlotGranularityMinutes > domain.MaxGranularityMinutes {
		return fmt.Errorf("%w: slotGranularityMinutes must be between %d and %d",
			ErrInvalidConfig, domain.MinGranularityMinutes, domain.MaxGranularityMinutes)
	}

	if r.DefaultDurationMinutes < domain.MinDurationMinutes || r.DefaultDurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: defaultDurationMinutes must be between %d and %d",
			ErrInvalidConfig, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if r.MaxRecurrenceOccurrences <= 0 || r.MaxRecurrenceOccurrences > domain.MaxGeneratedCandidates {
		return fmt.Errorf("%w: maxRecurrenceOccurrences must be between 1 and %d",
			ErrInvalidConfig, domain.MaxGeneratedCandidates)
	}

	// Шаг сетки должен нацело укладываться в рабочее окно
	startMinutes, _ := workStart.Minutes()
	endMinutes, _ := workEnd.Minutes()
	if (endMinutes-startMinutes)%r.SlotGranularityMinutes != 0 {
		return fmt.Errorf("%w: slotGranularityMinutes %d does not evenly divide work window of %d minutes",
			ErrInvalidConfig, r.SlotGranularityMinutes, endMinutes-startMinutes)
	}

	return nil
}

// ToDomain конвертирует request в domain модель
func (r *UpsertConfigRequest) ToDomain() *domain.ResourceScheduleConfig {
	return &domain.ResourceScheduleConfig{
		ResourceID:               r.ResourceID,
		WorkStart:                types.TimeString(r.WorkStart),
		WorkEnd:                  types.TimeString(r.WorkEnd),
		SlotGranularityMinutes:   r.SlotGranularityMinutes,
		DefaultDurationMinutes:   r.DefaultDurationMinutes,
		MaxRecurrenceOccurrences: r.MaxRecurrenceOccurrences,
	}
}

// Response модели

// ConfigResponse ответ с конфигурацией расписания ресурса
type ConfigResponse struct {
	ID                       int64     `json:"id"`
	ResourceID               int64     `json:"resourceId"`
	WorkStart                string    `json:"workStart"`
	WorkEnd                  string    `json:"workEnd"`
	SlotGranularityMinutes   int       `json:"slotGranularityMinutes"`
	DefaultDurationMinutes   int       `json:"defaultDurationMinutes"`
	MaxRecurrenceOccurrences int       `json:"maxRecurrenceOccurrences"`
	CreatedAt                time.Time `json:"createdAt"`
	UpdatedAt                time.Time `json:"updatedAt"`
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ResourceScheduleConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		ID:                       c.ID,
		ResourceID:               c.ResourceID,
		WorkStart:                c.WorkStart.String(),
		WorkEnd:                  c.WorkEnd.String(),
		SlotGranularityMinutes:   c.SlotGranularityMinutes,
		DefaultDurationMinutes:   c.DefaultDurationMinutes,
		MaxRecurrenceOccurrences: c.MaxRecurrenceOccurrences,
		CreatedAt:                c.CreatedAt,
		UpdatedAt:                c.UpdatedAt,
	}
}
