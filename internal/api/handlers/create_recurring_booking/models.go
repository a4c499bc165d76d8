package create_recurring_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	createRecurring "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_recurring_booking"
)

// RecurrenceRuleRequest правило повторения в HTTP запросе
type RecurrenceRuleRequest struct {
	Frequency     string   `json:"frequency"` // daily | weekly | monthly | yearly
	Interval      int      `json:"interval"`
	Count         int      `json:"count,omitempty"`
	Until         *string  `json:"until,omitempty"`         // "2025-12-31"
	ExcludedDates []string `json:"excludedDates,omitempty"` // ["2025-11-03", ...]
}

// CreateRecurringBookingRequest HTTP request model
type CreateRecurringBookingRequest struct {
	ResourceID      int64                 `json:"resourceId"`
	ServiceID       int64                 `json:"serviceId"`
	StartsAt        string                `json:"startsAt"` // RFC 3339
	DurationMinutes *int                  `json:"durationMinutes,omitempty"`
	Notes           *string               `json:"notes,omitempty"`
	Recurrence      RecurrenceRuleRequest `json:"recurrence"`
}

// TimeWindowResponse временное окно в HTTP ответе
type TimeWindowResponse struct {
	StartsAt string `json:"startsAt"`
	EndsAt   string `json:"endsAt"`
}

// ConflictDetails детали конфликта одного вхождения
type ConflictDetails struct {
	ConflictingBookingID *int64               `json:"conflictingBookingId,omitempty"`
	ConflictingWindow    *TimeWindowResponse  `json:"conflictingWindow,omitempty"`
	Alternatives         []TimeWindowResponse `json:"alternatives"`
}

// OccurrenceResponse результат одного вхождения серии
type OccurrenceResponse struct {
	Index     int              `json:"index"`
	StartsAt  string           `json:"startsAt"`
	EndsAt    string           `json:"endsAt"`
	Status    string           `json:"status"` // booked | conflict
	BookingID *int64           `json:"bookingId,omitempty"`
	Conflict  *ConflictDetails `json:"conflict,omitempty"`
}

// RecurringBookingResponse HTTP response model
type RecurringBookingResponse struct {
	ResourceID  int64                `json:"resourceId"`
	ServiceID   int64                `json:"serviceId"`
	CustomerID  int64                `json:"customerId"`
	BookedCount int                  `json:"bookedCount"`
	Occurrences []OccurrenceResponse `json:"occurrences"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateRecurringBookingRequest) ToUseCaseRequest(customerID int64) (*createRecurring.Request, error) {
	startsAt, err := time.Parse(time.RFC3339, r.StartsAt)
	if err != nil {
		return nil, err
	}

	req := &createRecurring.Request{
		ResourceID:      r.ResourceID,
		ServiceID:       r.ServiceID,
		CustomerID:      customerID,
		StartsAt:        startsAt,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
		Frequency:       r.Recurrence.Frequency,
		Interval:        r.Recurrence.Interval,
		Count:           r.Recurrence.Count,
	}

	if r.Recurrence.Until != nil {
		until, err := time.Parse(domain.DateFormat, *r.Recurrence.Until)
		if err != nil {
			return nil, err
		}
		req.Until = &until
	}

	for _, dateStr := range r.Recurrence.ExcludedDates {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.ExcludedDates = append(req.ExcludedDates, date)
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createRecurring.Response) *RecurringBookingResponse {
	out := &RecurringBookingResponse{
		ResourceID:  resp.ResourceID,
		ServiceID:   resp.ServiceID,
		CustomerID:  resp.CustomerID,
		BookedCount: resp.BookedCount,
		Occurrences: make([]OccurrenceResponse, 0, len(resp.Occurrences)),
	}

	for _, occ := range resp.Occurrences {
		item := OccurrenceResponse{
			Index:    occ.Index,
			StartsAt: occ.StartsAt.Format(time.RFC3339),
			EndsAt:   occ.EndsAt.Format(time.RFC3339),
			Status:   occ.Status,
		}

		if occ.Booking != nil {
			item.BookingID = &occ.Booking.ID
		}

		if occ.Conflict != nil {
			item.Conflict = fromConflictReport(occ.Conflict)
		}

		out.Occurrences = append(out.Occurrences, item)
	}

	return out
}

// fromConflictReport конвертирует отчёт о конфликте вхождения
func fromConflictReport(report *domain.ConflictReport) *ConflictDetails {
	details := &ConflictDetails{
		Alternatives: make([]TimeWindowResponse, 0, len(report.Alternatives)),
	}

	if report.Conflicting != nil {
		details.ConflictingBookingID = &report.Conflicting.ID
		details.ConflictingWindow = &TimeWindowResponse{
			StartsAt: report.Conflicting.StartsAt.Format(time.RFC3339),
			EndsAt:   report.Conflicting.EndsAt.Format(time.RFC3339),
		}
	}

	for _, alt := range report.Alternatives {
		details.Alternatives = append(details.Alternatives, TimeWindowResponse{
			StartsAt: alt.Start.Format(time.RFC3339),
			EndsAt:   alt.End.Format(time.RFC3339),
		})
	}

	return details
}
