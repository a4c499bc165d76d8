package slotquality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const testResourceID = int64(3)

var testDay = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2024, 5, 10, hour, minute, 0, 0, time.UTC)
}

func busy(id int64, startHour, startMinute, endHour, endMinute int) *domain.Booking {
	return &domain.Booking{
		ID:         id,
		ResourceID: testResourceID,
		StartsAt:   at(startHour, startMinute),
		EndsAt:     at(endHour, endMinute),
		Status:     domain.StatusConfirmed,
	}
}

func TestSuggest_EmptyCalendarFullDay(t *testing.T) {
	// Рабочий день 08:00-18:00, длительность 30 мин, шаг 30 мин,
	// пустой календарь -> 20 кандидатов
	scorer := NewScorer(DefaultWeights())

	slots, err := scorer.Suggest(testResourceID, nil, testDay, 30, "08:00", "18:00", 30, 100)
	require.NoError(t, err)
	require.Len(t, slots, 20)

	// Утренние слоты ранжируются выше вечерних
	byStart := make(map[time.Time]float64, len(slots))
	for _, slot := range slots {
		byStart[slot.Window.Start] = slot.Quality
	}
	assert.Greater(t, byStart[at(9, 0)], byStart[at(17, 30)])
	assert.Greater(t, byStart[at(9, 30)], byStart[at(17, 30)])
}

func TestSuggest_QualityBoundedAndOrdered(t *testing.T) {
	scorer := NewScorer(DefaultWeights())

	slots, err := scorer.Suggest(testResourceID, nil, testDay, 45, "08:00", "17:00", 15, 50)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for i, slot := range slots {
		assert.GreaterOrEqual(t, slot.Quality, 0.0)
		assert.LessOrEqual(t, slot.Quality, 1.0)
		if i > 0 {
			assert.LessOrEqual(t, slot.Quality, slots[i-1].Quality, "ordering must be non-increasing")
			if slot.Quality == slots[i-1].Quality {
				assert.True(t, slots[i-1].Window.Start.Before(slot.Window.Start),
					"ties must be broken by earlier start")
			}
		}
	}
}

func TestSuggest_ScoringBonuses(t *testing.T) {
	// Проверяем состав оценки на дефолтных весах:
	// 09:00, 30 мин = база 0.5 + утро 0.15 + час 0.1 + короткая 0.15 = 0.9
	scorer := NewScorer(DefaultWeights())

	slots, err := scorer.Suggest(testResourceID, nil, testDay, 30, "08:00", "18:00", 30, 100)
	require.NoError(t, err)

	byStart := make(map[time.Time]domain.ScoredSlot, len(slots))
	for _, slot := range slots {
		byStart[slot.Window.Start] = slot
	}

	nineAM := byStart[at(9, 0)]
	assert.InDelta(t, 0.9, nineAM.Quality, 1e-9)
	assert.Equal(t, domain.TierExcellent, nineAM.Tier)

	// 09:30 = 0.5 + 0.15 + 0.05 + 0.15 = 0.85
	assert.InDelta(t, 0.85, byStart[at(9, 30)].Quality, 1e-9)

	// 14:00 = 0.5 + день 0.1 + час 0.1 + короткая 0.15 = 0.85
	assert.InDelta(t, 0.85, byStart[at(14, 0)].Quality, 1e-9)

	// 17:30 = 0.5 + 0.05 + 0.15 = 0.7 -> good
	seventeenThirty := byStart[at(17, 30)]
	assert.InDelta(t, 0.7, seventeenThirty.Quality, 1e-9)
	assert.Equal(t, domain.TierGood, seventeenThirty.Tier)

	// 08:00 = 0.5 + 0.1 + 0.15 = 0.75 -> good (до утреннего диапазона)
	assert.InDelta(t, 0.75, byStart[at(8, 0)].Quality, 1e-9)
}

func TestSuggest_DurationBonuses(t *testing.T) {
	scorer := NewScorer(DefaultWeights())

	// 60 минут - средний бонус: 13:00 = 0.5 + 0.1 + 0.1 = 0.7
	slots, err := scorer.Suggest(testResourceID, nil, testDay, 60, "13:00", "17:00", 60, 10)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	for _, slot := range slots {
		if slot.Window.Start.Equal(at(13, 0)) {
			assert.InDelta(t, 0.7, slot.Quality, 1e-9)
		}
	}

	// 90 минут - без бонуса за длительность: 13:00 = 0.5 + 0.1 = 0.6
	slots, err = scorer.Suggest(testResourceID, nil, testDay, 90, "13:00", "17:30", 90, 10)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.InDelta(t, 0.6, slots[len(slots)-1].Quality, 1e-9)
}

func TestSuggest_SkipsConflictingCandidates(t *testing.T) {
	bookings := []*domain.Booking{
		busy(1, 9, 0, 12, 0),
		busy(2, 14, 0, 15, 30),
	}
	scorer := NewScorer(DefaultWeights())

	slots, err := scorer.Suggest(testResourceID, bookings, testDay, 60, "09:00", "17:00", 30, 100)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for _, slot := range slots {
		for _, b := range bookings {
			assert.False(t, slot.Window.Overlaps(b.Window()),
				"slot %v must not overlap booking %d", slot.Window, b.ID)
		}
	}

	// Слот, заканчивающийся ровно в начале бронирования, допустим
	starts := make(map[time.Time]bool, len(slots))
	for _, slot := range slots {
		starts[slot.Window.Start] = true
	}
	assert.True(t, starts[at(13, 0)], "13:00-14:00 borders the 14:00 booking and must be offered")
}

func TestSuggest_FullyBookedDayReturnsEmpty(t *testing.T) {
	// Плотно занятый день: пустой список - корректный результат, не ошибка
	bookings := []*domain.Booking{busy(1, 9, 0, 18, 0)}
	scorer := NewScorer(DefaultWeights())

	slots, err := scorer.Suggest(testResourceID, bookings, testDay, 30, "09:00", "18:00", 30, 10)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestSuggest_LimitApplied(t *testing.T) {
	scorer := NewScorer(DefaultWeights())

	slots, err := scorer.Suggest(testResourceID, nil, testDay, 30, "08:00", "18:00", 30, 5)
	require.NoError(t, err)
	assert.Len(t, slots, 5)

	// Нулевой limit заменяется дефолтным
	slots, err = scorer.Suggest(testResourceID, nil, testDay, 30, "08:00", "18:00", 30, 0)
	require.NoError(t, err)
	assert.Len(t, slots, domain.DefaultSuggestionLimit)
}

func TestSuggest_IgnoresCancelledAndForeign(t *testing.T) {
	cancelled := busy(1, 9, 0, 18, 0)
	cancelled.Status = domain.StatusCancelledByStaff

	foreign := busy(2, 9, 0, 18, 0)
	foreign.ResourceID = testResourceID + 1

	scorer := NewScorer(DefaultWeights())

	slots, err := scorer.Suggest(testResourceID, []*domain.Booking{cancelled, foreign},
		testDay, 30, "09:00", "18:00", 30, 100)
	require.NoError(t, err)
	assert.Len(t, slots, 18)
}

func TestSuggest_InvalidInput(t *testing.T) {
	scorer := NewScorer(DefaultWeights())

	tests := []struct {
		name        string
		duration    int
		workStart   string
		workEnd     string
		granularity int
	}{
		{"zero duration", 0, "09:00", "18:00", 30},
		{"negative duration", -30, "09:00", "18:00", 30},
		{"zero granularity", 30, "09:00", "18:00", 0},
		{"granularity does not divide window", 30, "09:00", "18:00", 25},
		{"work end before start", 30, "18:00", "09:00", 30},
		{"malformed work start", 30, "9 am", "18:00", 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := scorer.Suggest(testResourceID, nil, testDay, tt.duration,
				types.TimeString(tt.workStart), types.TimeString(tt.workEnd), tt.granularity, 10)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, slots)
		})
	}
}

func TestSuggest_CustomWeights(t *testing.T) {
	// Политика оценки переопределяется независимо от алгоритма
	weights := DefaultWeights()
	weights.MorningBonus = 0
	weights.AfternoonBonus = 0.4

	scorer := NewScorer(weights)

	slots, err := scorer.Suggest(testResourceID, nil, testDay, 30, "08:00", "18:00", 30, 1)
	require.NoError(t, err)
	require.Len(t, slots, 1)

	// Теперь лучший слот - дневной, а не утренний
	assert.Equal(t, 14, slots[0].Window.Start.Hour())
}
