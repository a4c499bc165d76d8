package update_resource_config

import (
	"github.com/m04kA/SMC-SchedulingService/internal/service/config/models"
)

// UpdateConfigRequest HTTP request model
type UpdateConfigRequest struct {
	WorkStart                string `json:"workStart"` // "HH:MM"
	WorkEnd                  string `json:"workEnd"`   // "HH:MM"
	SlotGranularityMinutes   int    `json:"slotGranularityMinutes"`
	DefaultDurationMinutes   int    `json:"defaultDurationMinutes"`
	MaxRecurrenceOccurrences int    `json:"maxRecurrenceOccurrences"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateConfigRequest) ToServiceRequest(resourceID, userID int64) *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		UserID:                   userID,
		ResourceID:               resourceID,
		WorkStart:                r.WorkStart,
		WorkEnd:                  r.WorkEnd,
		SlotGranularityMinutes:   r.SlotGranularityMinutes,
		DefaultDurationMinutes:   r.DefaultDurationMinutes,
		MaxRecurrenceOccurrences: r.MaxRecurrenceOccurrences,
	}
}
