package get_resource_bookings

import (
	"net/url"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// ToServiceRequest строит модель сервиса из path и query параметров.
// Query: from, to (YYYY-MM-DD), status, includeInactive - опциональны.
func ToServiceRequest(resourceID, userID int64, query url.Values) (*models.GetResourceBookingsRequest, error) {
	req := &models.GetResourceBookingsRequest{
		UserID:     userID,
		ResourceID: resourceID,
	}

	if v := query.Get("from"); v != "" {
		from, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if v := query.Get("to"); v != "" {
		to, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		// Конец периода - конец указанного дня
		endOfDay := to.AddDate(0, 0, 1)
		req.To = &endOfDay
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	return req, nil
}
