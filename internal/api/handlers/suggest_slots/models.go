package suggest_slots

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	suggestSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/suggest_slots"
)

// SlotResponse одно предложение слота
type SlotResponse struct {
	StartsAt string  `json:"startsAt"`
	EndsAt   string  `json:"endsAt"`
	Quality  float64 `json:"quality"`
	Tier     string  `json:"tier"`
}

// SuggestionsResponse HTTP response model
type SuggestionsResponse struct {
	ResourceID      int64          `json:"resourceId"`
	Date            string         `json:"date"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// ToUseCaseRequest строит модель use case из path и query параметров.
// Query: date (обязателен, YYYY-MM-DD), serviceId, durationMinutes,
// workStart, workEnd, granularityMinutes, limit - опциональны.
func ToUseCaseRequest(resourceID int64, query url.Values) (*suggestSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		return nil, err
	}

	req := &suggestSlots.Request{
		ResourceID: resourceID,
		Date:       date,
	}

	if v := query.Get("serviceId"); v != "" {
		serviceID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ServiceID = &serviceID
	}

	if v := query.Get("durationMinutes"); v != "" {
		duration, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		req.DurationMinutes = &duration
	}

	if v := query.Get("workStart"); v != "" {
		req.WorkStart = &v
	}

	if v := query.Get("workEnd"); v != "" {
		req.WorkEnd = &v
	}

	if v := query.Get("granularityMinutes"); v != "" {
		granularity, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		req.GranularityMinutes = &granularity
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		req.Limit = limit
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *suggestSlots.Response) *SuggestionsResponse {
	out := &SuggestionsResponse{
		ResourceID:      resp.ResourceID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			StartsAt: slot.StartsAt.Format(time.RFC3339),
			EndsAt:   slot.EndsAt.Format(time.RFC3339),
			Quality:  slot.Quality,
			Tier:     slot.Tier,
		})
	}

	return out
}
