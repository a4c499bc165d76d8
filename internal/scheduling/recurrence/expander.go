// Package recurrence разворачивает правило повторения в конечную
// последовательность конкретных временных окон.
// Чистые функции без состояния и I/O - безопасны для конкурентного вызова.
package recurrence

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Expand разворачивает правило в упорядоченную последовательность окон.
//
// Якорное окно всегда является первым вхождением. Вхождение i начинается
// в момент "якорь + i*Interval единиц Frequency" с сохранением исходной
// длительности. Шаг для месяцев и лет считается от исходного дня месяца якоря,
// поэтому серия с якорем 31 января даёт 28 февраля (клэмп к последнему дню
// месяца), но 31 марта - а не 28 марта.
//
// Исключённые даты пропускаются: они не идут в счёт Count и не сдвигают
// каденцию - следующий кандидат по-прежнему отстоит на Interval единиц
// от пропущенного.
//
// Завершение:
//   - Count(n): после n непропущенных вхождений;
//   - Until(date): на первом кандидате, чья календарная дата позже date
//     (кандидат не включается);
//   - жёсткий потолок domain.MaxGeneratedCandidates (пропущенные считаются) -
//     возвращается частичная последовательность и ErrGenerationLimitExceeded.
func Expand(anchor domain.TimeWindow, rule domain.RecurrenceRule) ([]domain.TimeWindow, error) {
	if err := validate(anchor, rule); err != nil {
		return nil, err
	}

	duration := anchor.Duration()
	occurrences := make([]domain.TimeWindow, 0)

	for i := 0; ; i++ {
		if i >= domain.MaxGeneratedCandidates {
			return occurrences, fmt.Errorf("%w: more than %d candidates generated",
				ErrGenerationLimitExceeded, domain.MaxGeneratedCandidates)
		}

		start := advance(anchor.Start, rule.Frequency, rule.Interval*i)

		if rule.HasUntilPolicy() && dateExceeds(start, *rule.Until) {
			return occurrences, nil
		}

		if rule.IsExcluded(start) {
			continue
		}

		occurrences = append(occurrences, domain.TimeWindow{Start: start, End: start.Add(duration)})

		if rule.HasCountPolicy() && len(occurrences) == rule.Count {
			return occurrences, nil
		}
	}
}

// Expander обёртка над Expand для внедрения в use cases как зависимость
type Expander struct{}

// NewExpander создает новый экземпляр Expander
func NewExpander() *Expander {
	return &Expander{}
}

// Expand разворачивает правило в последовательность окон, см. Expand
func (e *Expander) Expand(anchor domain.TimeWindow, rule domain.RecurrenceRule) ([]domain.TimeWindow, error) {
	return Expand(anchor, rule)
}

// validate проверяет правило и якорь до начала генерации
func validate(anchor domain.TimeWindow, rule domain.RecurrenceRule) error {
	if err := anchor.Validate(); err != nil {
		return fmt.Errorf("%w: anchor: %v", ErrInvalidRule, err)
	}

	if !rule.Frequency.IsValid() {
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidRule, rule.Frequency)
	}

	if rule.Interval < 1 {
		return fmt.Errorf("%w: interval must be >= 1, got %d", ErrInvalidRule, rule.Interval)
	}

	if rule.HasCountPolicy() == rule.HasUntilPolicy() {
		return fmt.Errorf("%w: exactly one of count or until must be set", ErrInvalidRule)
	}

	if rule.HasCountPolicy() && rule.Count < 1 {
		return fmt.Errorf("%w: count must be >= 1, got %d", ErrInvalidRule, rule.Count)
	}

	return nil
}

// advance возвращает момент "anchor + units единиц frequency"
// Шаг всегда считается от якоря, а не от предыдущего вхождения,
// чтобы клэмп дня месяца не накапливался по серии
func advance(anchorStart time.Time, frequency domain.Frequency, units int) time.Time {
	switch frequency {
	case domain.FrequencyDaily:
		return anchorStart.AddDate(0, 0, units)
	case domain.FrequencyWeekly:
		return anchorStart.AddDate(0, 0, 7*units)
	case domain.FrequencyMonthly:
		return addMonthsClamped(anchorStart, units)
	case domain.FrequencyYearly:
		return addMonthsClamped(anchorStart, 12*units)
	default:
		// Невозможно после validate
		return anchorStart
	}
}

// addMonthsClamped прибавляет months месяцев, прижимая день месяца
// к последнему существующему дню целевого месяца:
// 31 января + 1 месяц = 28 февраля (29 в високосный год), а не 2-3 марта
func addMonthsClamped(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month(), 1,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()).AddDate(0, months, 0)

	day := t.Day()
	if last := lastDayOfMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// lastDayOfMonth возвращает число дней в месяце
func lastDayOfMonth(year int, month time.Month) int {
	// Нулевой день следующего месяца - последний день текущего
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dateExceeds проверяет, что календарная дата start позже календарной даты until
// Время суток игнорируется: политика Until задаётся с точностью до дня
func dateExceeds(start, until time.Time) bool {
	startDate := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	untilDate := time.Date(until.Year(), until.Month(), until.Day(), 0, 0, 0, 0, start.Location())
	return startDate.After(untilDate)
}
