package domain

import "time"

// Frequency частота повторения в правиле рекуррентности
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// IsValid проверяет, что частота поддерживается
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	default:
		return false
	}
}

// RecurrenceRule правило повторения бронирования
// Политика завершения: либо Count (N непропущенных вхождений),
// либо Until (последняя допустимая дата начала, включительно).
// Должна быть задана ровно одна из двух.
type RecurrenceRule struct {
	Frequency     Frequency
	Interval      int         // Шаг повторения в единицах Frequency, >= 1
	Count         int         // > 0 - политика "N вхождений"
	Until         *time.Time  // Политика "до даты" (включительно)
	ExcludedDates []time.Time // Календарные даты, вхождения на которые пропускаются
}

// HasCountPolicy возвращает true, если задана политика "N вхождений"
func (r RecurrenceRule) HasCountPolicy() bool {
	return r.Count > 0
}

// HasUntilPolicy возвращает true, если задана политика "до даты"
func (r RecurrenceRule) HasUntilPolicy() bool {
	return r.Until != nil
}

// IsExcluded проверяет, попадает ли дата в список исключённых
// Сравнение только по календарной дате, время игнорируется
func (r RecurrenceRule) IsExcluded(date time.Time) bool {
	y, m, d := date.Date()
	for _, excluded := range r.ExcludedDates {
		ey, em, ed := excluded.Date()
		if y == ey && m == em && d == ed {
			return true
		}
	}
	return false
}
