package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

func validRequest() *UpsertConfigRequest {
	return &UpsertConfigRequest{
		UserID:                   42,
		ResourceID:               42,
		WorkStart:                "09:00",
		WorkEnd:                  "18:00",
		SlotGranularityMinutes:   30,
		DefaultDurationMinutes:   60,
		MaxRecurrenceOccurrences: 52,
	}
}

func TestUpsertConfigRequest_Validate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		require.NoError(t, validRequest().Validate())
	})

	tests := []struct {
		name   string
		mutate func(r *UpsertConfigRequest)
	}{
		{
			name:   "zero resource id",
			mutate: func(r *UpsertConfigRequest) { r.ResourceID = 0 },
		},
		{
			name:   "malformed work start",
			mutate: func(r *UpsertConfigRequest) { r.WorkStart = "9am" },
		},
		{
			name:   "malformed work end",
			mutate: func(r *UpsertConfigRequest) { r.WorkEnd = "25:00" },
		},
		{
			name: "work end before work start",
			mutate: func(r *UpsertConfigRequest) {
				r.WorkStart = "18:00"
				r.WorkEnd = "09:00"
			},
		},
		{
			name: "work end equals work start",
			mutate: func(r *UpsertConfigRequest) {
				r.WorkStart = "09:00"
				r.WorkEnd = "09:00"
			},
		},
		{
			name:   "granularity below minimum",
			mutate: func(r *UpsertConfigRequest) { r.SlotGranularityMinutes = domain.MinGranularityMinutes - 1 },
		},
		{
			name:   "granularity above maximum",
			mutate: func(r *UpsertConfigRequest) { r.SlotGranularityMinutes = domain.MaxGranularityMinutes + 1 },
		},
		{
			name:   "duration below minimum",
			mutate: func(r *UpsertConfigRequest) { r.DefaultDurationMinutes = domain.MinDurationMinutes - 1 },
		},
		{
			name:   "duration above maximum",
			mutate: func(r *UpsertConfigRequest) { r.DefaultDurationMinutes = domain.MaxDurationMinutes + 1 },
		},
		{
			name:   "zero recurrence limit",
			mutate: func(r *UpsertConfigRequest) { r.MaxRecurrenceOccurrences = 0 },
		},
		{
			name:   "recurrence limit above hard cap",
			mutate: func(r *UpsertConfigRequest) { r.MaxRecurrenceOccurrences = domain.MaxGeneratedCandidates + 1 },
		},
		{
			// Окно 09:00-18:00 это 540 минут, шаг 50 не делит его нацело
			name:   "granularity does not divide work window",
			mutate: func(r *UpsertConfigRequest) { r.SlotGranularityMinutes = 50 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := req.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestUpsertConfigRequest_ToDomain(t *testing.T) {
	config := validRequest().ToDomain()

	assert.Equal(t, int64(42), config.ResourceID)
	assert.Equal(t, "09:00", config.WorkStart.String())
	assert.Equal(t, "18:00", config.WorkEnd.String())
	assert.Equal(t, 30, config.SlotGranularityMinutes)
	assert.Equal(t, 60, config.DefaultDurationMinutes)
	assert.Equal(t, 52, config.MaxRecurrenceOccurrences)
}
