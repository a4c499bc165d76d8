// Package conflict проверяет кандидата на пересечение с существующими
// бронированиями ресурса и подбирает ближайшие свободные окна вокруг конфликта.
// Чистые функции без состояния и I/O - безопасны для конкурентного вызова.
package conflict

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Check проверяет окно-кандидат против набора бронирований.
//
// Возвращает (nil, nil), если окно свободно. При конфликте возвращает отчёт
// с первым конфликтующим бронированием (бронирования перебираются в
// хронологическом порядке начала; при равенстве сохраняется порядок подачи)
// и альтернативами той же длительности:
//   - "до": заканчивается ровно в момент начала конфликтующего бронирования;
//   - "после": начинается ровно в момент его окончания.
//
// Альтернатива предлагается, только если сама не пересекается ни с одним
// бронированием набора. Выполняется ровно один уровень поиска - при плотной
// записи альтернатива опускается, а не подбирается рекурсивно
// (для исследовательских запросов есть подбор слотов).
//
// Учитываются только бронирования того же ресурса с блокирующим статусом.
func Check(candidate domain.TimeWindow, resourceID int64, bookings []*domain.Booking) (*domain.ConflictReport, error) {
	if err := candidate.Validate(); err != nil {
		return nil, fmt.Errorf("%w: candidate: %v", ErrInvalidCandidate, err)
	}

	blocking := blockingForResource(resourceID, bookings)

	for _, booking := range blocking {
		if candidate.Overlaps(booking.Window()) {
			return &domain.ConflictReport{
				Conflicting:  booking,
				Requested:    candidate,
				Alternatives: alternatives(candidate, booking, blocking),
			}, nil
		}
	}

	return nil, nil
}

// Resolver обёртка над Check для внедрения в use cases как зависимость
type Resolver struct{}

// NewResolver создает новый экземпляр Resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// Check проверяет окно-кандидат против набора бронирований, см. Check
func (r *Resolver) Check(candidate domain.TimeWindow, resourceID int64, bookings []*domain.Booking) (*domain.ConflictReport, error) {
	return Check(candidate, resourceID, bookings)
}

// Overlaps проверяет пересечение двух окон (полуоткрытые интервалы)
// Симметрична: Overlaps(a, b) == Overlaps(b, a)
func Overlaps(a, b domain.TimeWindow) bool {
	return a.Overlaps(b)
}

// blockingForResource отбирает блокирующие бронирования ресурса
// и сортирует их по времени начала (стабильно - порядок подачи
// сохраняется при одинаковом начале)
func blockingForResource(resourceID int64, bookings []*domain.Booking) []*domain.Booking {
	blocking := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ResourceID != resourceID || !b.IsBlocking() {
			continue
		}
		blocking = append(blocking, b)
	}

	sort.SliceStable(blocking, func(i, j int) bool {
		return blocking[i].StartsAt.Before(blocking[j].StartsAt)
	})

	return blocking
}

// alternatives подбирает до двух свободных окон вокруг конфликтующего
// бронирования: одно непосредственно перед ним, одно сразу после
func alternatives(candidate domain.TimeWindow, conflicting *domain.Booking, blocking []*domain.Booking) []domain.TimeWindow {
	duration := candidate.Duration()
	alts := make([]domain.TimeWindow, 0, 2)

	before := domain.TimeWindow{
		Start: conflicting.StartsAt.Add(-duration),
		End:   conflicting.StartsAt,
	}
	if isFree(before, blocking) {
		alts = append(alts, before)
	}

	after := domain.TimeWindow{
		Start: conflicting.EndsAt,
		End:   conflicting.EndsAt.Add(duration),
	}
	if isFree(after, blocking) {
		alts = append(alts, after)
	}

	return alts
}

// WithinWorkHours отбирает окна, целиком лежащие в рабочих часах своего дня.
// Используется для фильтрации альтернатив: окно вплотную к раннему
// бронированию может начинаться до открытия ресурса
func WithinWorkHours(windows []domain.TimeWindow, workStart, workEnd types.TimeString) ([]domain.TimeWindow, error) {
	filtered := make([]domain.TimeWindow, 0, len(windows))

	for _, w := range windows {
		dayStart, err := workStart.OnDate(w.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: workStart: %v", ErrInvalidCandidate, err)
		}
		dayEnd, err := workEnd.OnDate(w.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: workEnd: %v", ErrInvalidCandidate, err)
		}

		if w.Start.Before(dayStart) || w.End.After(dayEnd) {
			continue
		}
		filtered = append(filtered, w)
	}

	return filtered, nil
}

// isFree проверяет, что окно не пересекается ни с одним бронированием набора
func isFree(window domain.TimeWindow, blocking []*domain.Booking) bool {
	for _, b := range blocking {
		if window.Overlaps(b.Window()) {
			return false
		}
	}
	return true
}
