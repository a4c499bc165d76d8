package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// ResourceScheduleConfig represents the scheduling configuration for a resource (employee)
// Если конфигурация для ресурса не задана, используются дефолтные значения
type ResourceScheduleConfig struct {
	ID                       int64
	ResourceID               int64
	WorkStart                types.TimeString // Начало рабочего дня, например "09:00"
	WorkEnd                  types.TimeString // Конец рабочего дня, например "18:00"
	SlotGranularityMinutes   int              // Шаг перебора кандидатов при подборе слотов
	DefaultDurationMinutes   int              // Длительность бронирования по умолчанию
	MaxRecurrenceOccurrences int              // Максимум вхождений в серии, 0 = глобальный лимит
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// HasRecurrenceLimit returns true if the config overrides the global occurrence cap
func (c *ResourceScheduleConfig) HasRecurrenceLimit() bool {
	return c.MaxRecurrenceOccurrences > 0
}

// WorkWindowOnDay возвращает рабочие часы как конкретное окно указанного дня
func (c *ResourceScheduleConfig) WorkWindowOnDay(day time.Time) (TimeWindow, error) {
	start, err := c.WorkStart.OnDate(day)
	if err != nil {
		return TimeWindow{}, err
	}
	end, err := c.WorkEnd.OnDate(day)
	if err != nil {
		return TimeWindow{}, err
	}
	return NewTimeWindow(start, end)
}
