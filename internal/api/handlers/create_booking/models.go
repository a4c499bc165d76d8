package create_booking

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ResourceID      int64   `json:"resourceId"`
	ServiceID       int64   `json:"serviceId"`
	StartsAt        string  `json:"startsAt"` // RFC 3339, например "2025-10-15T10:00:00Z"
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64   `json:"id"`
	ResourceID   int64   `json:"resourceId"`
	ServiceID    int64   `json:"serviceId"`
	CustomerID   int64   `json:"customerId"`
	StartsAt     string  `json:"startsAt"`
	EndsAt       string  `json:"endsAt"`
	Status       string  `json:"status"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	Notes        *string `json:"notes,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// TimeWindowResponse временное окно в HTTP ответе
type TimeWindowResponse struct {
	StartsAt string `json:"startsAt"`
	EndsAt   string `json:"endsAt"`
}

// ConflictDetails детали конфликта расписания
type ConflictDetails struct {
	Requested            TimeWindowResponse   `json:"requested"`
	ConflictingBookingID *int64               `json:"conflictingBookingId,omitempty"`
	ConflictingWindow    *TimeWindowResponse  `json:"conflictingWindow,omitempty"`
	Alternatives         []TimeWindowResponse `json:"alternatives"`
}

// ConflictResponse HTTP ответ 409 с деталями конфликта и альтернативами
type ConflictResponse struct {
	Code     int             `json:"code"`
	Message  string          `json:"message"`
	Conflict ConflictDetails `json:"conflict"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	startsAt, err := time.Parse(time.RFC3339, r.StartsAt)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ResourceID:      r.ResourceID,
		ServiceID:       r.ServiceID,
		CustomerID:      customerID,
		StartsAt:        startsAt,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		ResourceID:   resp.ResourceID,
		ServiceID:    resp.ServiceID,
		CustomerID:   resp.CustomerID,
		StartsAt:     resp.StartsAt.Format(time.RFC3339),
		EndsAt:       resp.EndsAt.Format(time.RFC3339),
		Status:       resp.Status,
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		Notes:        resp.Notes,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}

// FromConflictReport конвертирует отчёт о конфликте в HTTP response
func FromConflictReport(report *domain.ConflictReport, message string) *ConflictResponse {
	resp := &ConflictResponse{
		Code:    http.StatusConflict,
		Message: message,
		Conflict: ConflictDetails{
			Requested: TimeWindowResponse{
				StartsAt: report.Requested.Start.Format(time.RFC3339),
				EndsAt:   report.Requested.End.Format(time.RFC3339),
			},
			Alternatives: make([]TimeWindowResponse, 0, len(report.Alternatives)),
		},
	}

	if report.Conflicting != nil {
		resp.Conflict.ConflictingBookingID = &report.Conflicting.ID
		resp.Conflict.ConflictingWindow = &TimeWindowResponse{
			StartsAt: report.Conflicting.StartsAt.Format(time.RFC3339),
			EndsAt:   report.Conflicting.EndsAt.Format(time.RFC3339),
		}
	}

	for _, alt := range report.Alternatives {
		resp.Conflict.Alternatives = append(resp.Conflict.Alternatives, TimeWindowResponse{
			StartsAt: alt.Start.Format(time.RFC3339),
			EndsAt:   alt.End.Format(time.RFC3339),
		})
	}

	return resp
}
