package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

func window(t *testing.T, start, end string) domain.TimeWindow {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	require.NoError(t, err)
	e, err := time.Parse(time.RFC3339, end)
	require.NoError(t, err)
	return domain.TimeWindow{Start: s, End: e}
}

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateFormat, value)
	require.NoError(t, err)
	return d
}

func TestExpand_WeeklyCount(t *testing.T) {
	// Сценарий: якорь 2024-01-01 09:00-10:00, еженедельно, 4 вхождения
	anchor := window(t, "2024-01-01T09:00:00Z", "2024-01-01T10:00:00Z")
	rule := domain.RecurrenceRule{
		Frequency: domain.FrequencyWeekly,
		Interval:  1,
		Count:     4,
	}

	occurrences, err := Expand(anchor, rule)
	require.NoError(t, err)
	require.Len(t, occurrences, 4)

	expectedStarts := []string{
		"2024-01-01T09:00:00Z",
		"2024-01-08T09:00:00Z",
		"2024-01-15T09:00:00Z",
		"2024-01-22T09:00:00Z",
	}
	for i, occ := range occurrences {
		assert.Equal(t, expectedStarts[i], occ.Start.Format(time.RFC3339), "occurrence %d", i)
		assert.Equal(t, time.Hour, occ.Duration(), "occurrence %d keeps anchor duration", i)
	}
}

func TestExpand_CountInvariant(t *testing.T) {
	// Для любой политики Count(n) без исключений возвращается ровно n вхождений
	// с шагом ровно interval единиц frequency
	tests := []struct {
		name      string
		frequency domain.Frequency
		interval  int
		count     int
		step      func(time.Time, int) time.Time
	}{
		{"daily every 2 days", domain.FrequencyDaily, 2, 7, func(t time.Time, i int) time.Time { return t.AddDate(0, 0, 2*i) }},
		{"weekly every 3 weeks", domain.FrequencyWeekly, 3, 5, func(t time.Time, i int) time.Time { return t.AddDate(0, 0, 21*i) }},
		{"monthly", domain.FrequencyMonthly, 1, 6, func(t time.Time, i int) time.Time { return t.AddDate(0, i, 0) }},
		{"yearly", domain.FrequencyYearly, 1, 3, func(t time.Time, i int) time.Time { return t.AddDate(i, 0, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anchor := window(t, "2024-03-15T10:00:00Z", "2024-03-15T10:45:00Z")
			rule := domain.RecurrenceRule{Frequency: tt.frequency, Interval: tt.interval, Count: tt.count}

			occurrences, err := Expand(anchor, rule)
			require.NoError(t, err)
			require.Len(t, occurrences, tt.count)

			for i, occ := range occurrences {
				assert.True(t, occ.Start.Equal(tt.step(anchor.Start, i)), "occurrence %d start", i)
				assert.Equal(t, anchor.Duration(), occ.Duration())
			}
		})
	}
}

func TestExpand_ExcludedDatesDoNotCount(t *testing.T) {
	// Исключённая дата пропускается, не идёт в счёт Count
	// и не сдвигает каденцию - серия добирает недостающее вхождение в конце
	anchor := window(t, "2024-01-01T09:00:00Z", "2024-01-01T10:00:00Z")
	rule := domain.RecurrenceRule{
		Frequency:     domain.FrequencyWeekly,
		Interval:      1,
		Count:         4,
		ExcludedDates: []time.Time{date(t, "2024-01-08")},
	}

	occurrences, err := Expand(anchor, rule)
	require.NoError(t, err)
	require.Len(t, occurrences, 4)

	expectedStarts := []string{
		"2024-01-01T09:00:00Z",
		"2024-01-15T09:00:00Z", // 8 января пропущено, каденция не сдвинута
		"2024-01-22T09:00:00Z",
		"2024-01-29T09:00:00Z", // компенсирующее вхождение
	}
	for i, occ := range occurrences {
		assert.Equal(t, expectedStarts[i], occ.Start.Format(time.RFC3339), "occurrence %d", i)
	}
}

func TestExpand_MonthlyClampJan31(t *testing.T) {
	// Якорь 31 января: февральское вхождение прижимается к последнему дню месяца,
	// мартовское возвращается на 31-е число
	anchor := window(t, "2024-01-31T14:00:00Z", "2024-01-31T15:00:00Z")
	rule := domain.RecurrenceRule{Frequency: domain.FrequencyMonthly, Interval: 1, Count: 3}

	occurrences, err := Expand(anchor, rule)
	require.NoError(t, err)
	require.Len(t, occurrences, 3)

	// 2024 - високосный год
	assert.Equal(t, "2024-02-29T14:00:00Z", occurrences[1].Start.Format(time.RFC3339))
	assert.Equal(t, "2024-03-31T14:00:00Z", occurrences[2].Start.Format(time.RFC3339))
}

func TestExpand_MonthlyClampNonLeapYear(t *testing.T) {
	anchor := window(t, "2023-01-31T14:00:00Z", "2023-01-31T15:00:00Z")
	rule := domain.RecurrenceRule{Frequency: domain.FrequencyMonthly, Interval: 1, Count: 2}

	occurrences, err := Expand(anchor, rule)
	require.NoError(t, err)
	require.Len(t, occurrences, 2)
	assert.Equal(t, "2023-02-28T14:00:00Z", occurrences[1].Start.Format(time.RFC3339))
}

func TestExpand_YearlyClampFeb29(t *testing.T) {
	// 29 февраля високосного года в невисокосном прижимается к 28-му
	anchor := window(t, "2024-02-29T09:00:00Z", "2024-02-29T09:30:00Z")
	rule := domain.RecurrenceRule{Frequency: domain.FrequencyYearly, Interval: 1, Count: 2}

	occurrences, err := Expand(anchor, rule)
	require.NoError(t, err)
	require.Len(t, occurrences, 2)
	assert.Equal(t, "2025-02-28T09:00:00Z", occurrences[1].Start.Format(time.RFC3339))
}

func TestExpand_UntilPolicy(t *testing.T) {
	// Разворачивание останавливается на первом кандидате позже даты Until,
	// сам кандидат не включается; дата Until включительна
	anchor := window(t, "2024-01-01T09:00:00Z", "2024-01-01T10:00:00Z")
	rule := domain.RecurrenceRule{
		Frequency: domain.FrequencyWeekly,
		Interval:  1,
		Until:     ptr.Ptr(date(t, "2024-01-15")),
	}

	occurrences, err := Expand(anchor, rule)
	require.NoError(t, err)
	require.Len(t, occurrences, 3)
	assert.Equal(t, "2024-01-15T09:00:00Z", occurrences[2].Start.Format(time.RFC3339))
}

func TestExpand_GenerationLimit(t *testing.T) {
	// Политика Until в далёком будущем упирается в жёсткий потолок:
	// возвращается частичная последовательность и отличимая ошибка
	anchor := window(t, "2024-01-01T09:00:00Z", "2024-01-01T10:00:00Z")
	rule := domain.RecurrenceRule{
		Frequency: domain.FrequencyDaily,
		Interval:  1,
		Until:     ptr.Ptr(date(t, "2100-01-01")),
	}

	occurrences, err := Expand(anchor, rule)
	require.ErrorIs(t, err, ErrGenerationLimitExceeded)
	assert.Len(t, occurrences, domain.MaxGeneratedCandidates)
}

func TestExpand_GenerationLimitCountsExcluded(t *testing.T) {
	// Пропущенные кандидаты тоже считаются в потолке генерации
	anchor := window(t, "2024-01-01T09:00:00Z", "2024-01-01T10:00:00Z")

	// Исключаем каждый день на годы вперёд - полезных вхождений почти нет
	excluded := make([]time.Time, 0, domain.MaxGeneratedCandidates)
	for i := 1; i <= domain.MaxGeneratedCandidates; i++ {
		excluded = append(excluded, anchor.Start.AddDate(0, 0, i))
	}

	rule := domain.RecurrenceRule{
		Frequency:     domain.FrequencyDaily,
		Interval:      1,
		Count:         10,
		ExcludedDates: excluded,
	}

	occurrences, err := Expand(anchor, rule)
	require.ErrorIs(t, err, ErrGenerationLimitExceeded)
	// Только якорь успел попасть в результат
	assert.Len(t, occurrences, 1)
}

func TestExpand_InvalidRule(t *testing.T) {
	validAnchor := window(t, "2024-01-01T09:00:00Z", "2024-01-01T10:00:00Z")

	tests := []struct {
		name   string
		anchor domain.TimeWindow
		rule   domain.RecurrenceRule
	}{
		{
			name:   "zero interval",
			anchor: validAnchor,
			rule:   domain.RecurrenceRule{Frequency: domain.FrequencyDaily, Interval: 0, Count: 3},
		},
		{
			name:   "negative interval",
			anchor: validAnchor,
			rule:   domain.RecurrenceRule{Frequency: domain.FrequencyDaily, Interval: -1, Count: 3},
		},
		{
			name:   "malformed anchor",
			anchor: domain.TimeWindow{Start: validAnchor.End, End: validAnchor.Start},
			rule:   domain.RecurrenceRule{Frequency: domain.FrequencyDaily, Interval: 1, Count: 3},
		},
		{
			name:   "unknown frequency",
			anchor: validAnchor,
			rule:   domain.RecurrenceRule{Frequency: "hourly", Interval: 1, Count: 3},
		},
		{
			name:   "no end policy",
			anchor: validAnchor,
			rule:   domain.RecurrenceRule{Frequency: domain.FrequencyDaily, Interval: 1},
		},
		{
			name:   "both end policies",
			anchor: validAnchor,
			rule: domain.RecurrenceRule{
				Frequency: domain.FrequencyDaily,
				Interval:  1,
				Count:     3,
				Until:     ptr.Ptr(time.Now()),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occurrences, err := Expand(tt.anchor, tt.rule)
			require.ErrorIs(t, err, ErrInvalidRule)
			assert.Nil(t, occurrences, "no partial sequence on invalid rule")
		})
	}
}
