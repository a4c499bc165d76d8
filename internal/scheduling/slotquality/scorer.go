// Package slotquality перебирает свободные слоты дня и ранжирует их
// по детерминированной, объяснимой эвристике качества.
// Чистые функции без состояния и I/O - безопасны для конкурентного вызова.
package slotquality

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Scorer ранжирует свободные слоты по настраиваемым весам
type Scorer struct {
	weights Weights
}

// NewScorer создает Scorer с указанными весами
func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights}
}

// Suggest перебирает кандидатов с шагом granularityMinutes по рабочим часам
// указанного дня, отбрасывает занятые и выходящие за конец рабочего дня,
// оценивает оставшиеся и возвращает лучшие, не более limit штук.
//
// Сортировка: по убыванию оценки, при равенстве - раньше начало.
// Пустой результат (плотно занятый день) - корректный исход, не ошибка.
func (s *Scorer) Suggest(
	resourceID int64,
	bookings []*domain.Booking,
	day time.Time,
	durationMinutes int,
	workStart types.TimeString,
	workEnd types.TimeString,
	granularityMinutes int,
	limit int,
) ([]domain.ScoredSlot, error) {
	if err := validateParams(durationMinutes, workStart, workEnd, granularityMinutes); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = domain.DefaultSuggestionLimit
	}

	windowStart, err := workStart.OnDate(day)
	if err != nil {
		return nil, fmt.Errorf("%w: workStart: %v", ErrInvalidInput, err)
	}
	windowEnd, err := workEnd.OnDate(day)
	if err != nil {
		return nil, fmt.Errorf("%w: workEnd: %v", ErrInvalidInput, err)
	}

	blocking := blockingForResource(resourceID, bookings)
	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(granularityMinutes) * time.Minute

	slots := make([]domain.ScoredSlot, 0)

	for cursor := windowStart; !cursor.Add(duration).After(windowEnd); cursor = cursor.Add(step) {
		candidate := domain.TimeWindow{Start: cursor, End: cursor.Add(duration)}

		if overlapsAny(candidate, blocking) {
			continue
		}

		quality := s.score(candidate, durationMinutes)
		slots = append(slots, domain.ScoredSlot{
			Window:  candidate,
			Quality: quality,
			Tier:    s.tier(quality),
		})
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Quality != slots[j].Quality {
			return slots[i].Quality > slots[j].Quality
		}
		return slots[i].Window.Start.Before(slots[j].Window.Start)
	})

	if len(slots) > limit {
		slots = slots[:limit]
	}

	return slots, nil
}

// validateParams проверяет параметры до начала перебора
func validateParams(durationMinutes int, workStart, workEnd types.TimeString, granularityMinutes int) error {
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidInput, durationMinutes)
	}

	if granularityMinutes <= 0 {
		return fmt.Errorf("%w: granularity must be positive, got %d", ErrInvalidInput, granularityMinutes)
	}

	startMinutes, err := workStart.Minutes()
	if err != nil {
		return fmt.Errorf("%w: workStart: %v", ErrInvalidInput, err)
	}
	endMinutes, err := workEnd.Minutes()
	if err != nil {
		return fmt.Errorf("%w: workEnd: %v", ErrInvalidInput, err)
	}

	if endMinutes <= startMinutes {
		return fmt.Errorf("%w: work window end %s must be after start %s", ErrInvalidInput, workEnd, workStart)
	}

	// Шаг должен нацело укладываться в рабочее окно,
	// иначе сетка кандидатов не выровнена с окном
	if (endMinutes-startMinutes)%granularityMinutes != 0 {
		return fmt.Errorf("%w: granularity %d does not evenly divide work window of %d minutes",
			ErrInvalidInput, granularityMinutes, endMinutes-startMinutes)
	}

	return nil
}

// score вычисляет оценку слота: база плюс фиксированные бонусы,
// результат прижимается к [0, 1]
func (s *Scorer) score(window domain.TimeWindow, durationMinutes int) float64 {
	w := s.weights
	quality := w.Base

	hour := window.Start.Hour()
	if hour >= w.MorningStartHour && hour < w.MorningEndHour {
		quality += w.MorningBonus
	}
	if hour >= w.AfternoonStartHour && hour < w.AfternoonEndHour {
		quality += w.AfternoonBonus
	}

	switch window.Start.Minute() {
	case 0:
		quality += w.HourBoundaryBonus
	case 30:
		quality += w.HalfHourBoundaryBonus
	}

	if durationMinutes <= w.ShortDurationMaxMinutes {
		quality += w.ShortDurationBonus
	} else if durationMinutes <= w.MediumDurationMaxMinutes {
		quality += w.MediumDurationBonus
	}

	if quality < 0 {
		return 0
	}
	if quality > 1 {
		return 1
	}
	return quality
}

// tier определяет категорию качества по порогам
func (s *Scorer) tier(quality float64) domain.SlotTier {
	switch {
	case quality > s.weights.ExcellentThreshold:
		return domain.TierExcellent
	case quality > s.weights.GoodThreshold:
		return domain.TierGood
	default:
		return domain.TierAvailable
	}
}

// blockingForResource отбирает блокирующие бронирования ресурса
func blockingForResource(resourceID int64, bookings []*domain.Booking) []*domain.Booking {
	blocking := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ResourceID != resourceID || !b.IsBlocking() {
			continue
		}
		blocking = append(blocking, b)
	}
	return blocking
}

// overlapsAny проверяет пересечение кандидата хотя бы с одним бронированием
func overlapsAny(candidate domain.TimeWindow, blocking []*domain.Booking) bool {
	for _, b := range blocking {
		if candidate.Overlaps(b.Window()) {
			return true
		}
	}
	return false
}
