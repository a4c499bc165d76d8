package suggest_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.DurationMinutes != nil {
		if *req.DurationMinutes < domain.MinDurationMinutes || *req.DurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: durationMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}

	if req.GranularityMinutes != nil {
		if *req.GranularityMinutes < domain.MinGranularityMinutes || *req.GranularityMinutes > domain.MaxGranularityMinutes {
			return fmt.Errorf("%w: granularityMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinGranularityMinutes, domain.MaxGranularityMinutes)
		}
	}

	if req.WorkStart != nil {
		if err := types.TimeString(*req.WorkStart).Validate(); err != nil {
			return fmt.Errorf("%w: invalid workStart: %v", ErrInvalidInput, err)
		}
	}

	if req.WorkEnd != nil {
		if err := types.TimeString(*req.WorkEnd).Validate(); err != nil {
			return fmt.Errorf("%w: invalid workEnd: %v", ErrInvalidInput, err)
		}
	}

	if req.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}

	return nil
}

// scheduleParams параметры подбора после разрешения всех источников
type scheduleParams struct {
	workStart          types.TimeString
	workEnd            types.TimeString
	granularityMinutes int
}

// resolveScheduleParams определяет рабочее окно и шаг сетки.
// Приоритет каждого параметра: запрос -> конфигурация ресурса -> дефолт.
func resolveScheduleParams(req *Request, config *domain.ResourceScheduleConfig) scheduleParams {
	params := scheduleParams{
		workStart:          types.TimeString(domain.DefaultWorkStart),
		workEnd:            types.TimeString(domain.DefaultWorkEnd),
		granularityMinutes: domain.DefaultSlotGranularityMinutes,
	}

	if config != nil {
		if !config.WorkStart.IsZero() {
			params.workStart = config.WorkStart
		}
		if !config.WorkEnd.IsZero() {
			params.workEnd = config.WorkEnd
		}
		if config.SlotGranularityMinutes > 0 {
			params.granularityMinutes = config.SlotGranularityMinutes
		}
	}

	if req.WorkStart != nil {
		params.workStart = types.TimeString(*req.WorkStart)
	}
	if req.WorkEnd != nil {
		params.workEnd = types.TimeString(*req.WorkEnd)
	}
	if req.GranularityMinutes != nil {
		params.granularityMinutes = *req.GranularityMinutes
	}

	return params
}

// resolveDuration определяет длительность слота в минутах.
// Приоритет: запрос -> услуга -> конфигурация ресурса -> дефолт.
func resolveDuration(req *Request, serviceDuration int, config *domain.ResourceScheduleConfig) int {
	if req.DurationMinutes != nil {
		return *req.DurationMinutes
	}

	if serviceDuration > 0 {
		return serviceDuration
	}

	if config != nil && config.DefaultDurationMinutes > 0 {
		return config.DefaultDurationMinutes
	}

	return domain.DefaultDurationMinutes
}
