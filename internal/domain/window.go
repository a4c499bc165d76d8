package domain

import (
	"errors"
	"time"
)

// ErrInvalidWindow возвращается, когда начало окна не раньше его конца
var ErrInvalidWindow = errors.New("domain: time window start must be before end")

// TimeWindow временное окно [Start, End)
// Полуоткрытый интервал: момент End окну не принадлежит, поэтому окна,
// граничащие друг с другом, не пересекаются
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// NewTimeWindow создает окно с проверкой инварианта Start < End
func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	w := TimeWindow{Start: start, End: end}
	if err := w.Validate(); err != nil {
		return TimeWindow{}, err
	}
	return w, nil
}

// Validate проверяет инвариант Start < End
func (w TimeWindow) Validate() error {
	if !w.Start.Before(w.End) {
		return ErrInvalidWindow
	}
	return nil
}

// IsZero возвращает true, если окно не задано
func (w TimeWindow) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// Duration возвращает длительность окна
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов
// Пересечение есть, только если интервалы действительно накладываются:
// окно, заканчивающееся ровно в момент начала другого, НЕ пересекается с ним
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// Shift возвращает окно той же длительности, сдвинутое так,
// чтобы оно начиналось в start
func (w TimeWindow) Shift(start time.Time) TimeWindow {
	return TimeWindow{Start: start, End: start.Add(w.Duration())}
}
