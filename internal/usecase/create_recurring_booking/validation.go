package create_recurring_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.StartsAt.IsZero() {
		return fmt.Errorf("%w: startsAt is required", ErrInvalidInput)
	}

	if req.DurationMinutes != nil {
		if *req.DurationMinutes < domain.MinDurationMinutes || *req.DurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: durationMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if !domain.Frequency(req.Frequency).IsValid() {
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, req.Frequency)
	}

	if req.Interval < domain.MinRecurrenceInterval || req.Interval > domain.MaxRecurrenceInterval {
		return fmt.Errorf("%w: interval must be between %d and %d",
			ErrInvalidInput, domain.MinRecurrenceInterval, domain.MaxRecurrenceInterval)
	}

	hasCount := req.Count > 0
	hasUntil := req.Until != nil
	if hasCount == hasUntil {
		return fmt.Errorf("%w: exactly one of count or until must be set", ErrInvalidInput)
	}

	return nil
}

// toRecurrenceRule строит доменное правило повторения из запроса
func toRecurrenceRule(req *Request) domain.RecurrenceRule {
	return domain.RecurrenceRule{
		Frequency:     domain.Frequency(req.Frequency),
		Interval:      req.Interval,
		Count:         req.Count,
		Until:         req.Until,
		ExcludedDates: req.ExcludedDates,
	}
}

// resolveDuration определяет длительность вхождений серии в минутах.
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

// maxOccurrences возвращает лимит числа вхождений серии для ресурса
func maxOccurrences(config *domain.ResourceScheduleConfig) int {
	if config != nil && config.MaxRecurrenceOccurrences > 0 {
		return config.MaxRecurrenceOccurrences
	}
	return domain.DefaultMaxRecurrenceOccurrences
}

// minutes конвертирует количество минут в time.Duration
func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

// fetchBounds вычисляет диапазон первичной выборки бронирований для одного
// вхождения. Занятость вокруг альтернатив проверяется повторной выборкой
// по conflictBounds.
func fetchBounds(window domain.TimeWindow) (time.Time, time.Time) {
	dur := window.Duration()
	return window.Start.Add(-2 * dur), window.End.Add(2 * dur)
}

// conflictBounds вычисляет диапазон повторной выборки вокруг конфликтующего
// бронирования: покрывает оба альтернативных окна целиком независимо от
// длины бронирования
func conflictBounds(conflicting *domain.Booking, dur time.Duration) (time.Time, time.Time) {
	return conflicting.StartsAt.Add(-dur), conflicting.EndsAt.Add(dur)
}

// scheduleHours возвращает рабочие часы ресурса из конфигурации или дефолты
func scheduleHours(config *domain.ResourceScheduleConfig) (types.TimeString, types.TimeString) {
	if config != nil && !config.WorkStart.IsZero() && !config.WorkEnd.IsZero() {
		return config.WorkStart, config.WorkEnd
	}
	return types.TimeString(domain.DefaultWorkStart), types.TimeString(domain.DefaultWorkEnd)
}
