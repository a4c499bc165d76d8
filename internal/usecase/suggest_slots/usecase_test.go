package suggest_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedconfig"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling/slotquality"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetActiveByResourceAndRange(_ context.Context, resourceID int64, from, to time.Time) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.ResourceID == resourceID && b.StartsAt.Before(to) && b.EndsAt.After(from) {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeConfigRepo struct {
	config *domain.ResourceScheduleConfig
}

func (f *fakeConfigRepo) GetByResource(_ context.Context, _ int64) (*domain.ResourceScheduleConfig, error) {
	if f.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return f.config, nil
}

type fakeDirectoryClient struct {
	service    *directoryservice.Service
	serviceErr error
}

func (f *fakeDirectoryClient) GetService(_ context.Context, _ int64) (*directoryservice.Service, error) {
	if f.serviceErr != nil {
		return nil, f.serviceErr
	}
	return f.service, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeBookingRepo, cfg *fakeConfigRepo, dir *fakeDirectoryClient) *UseCase {
	scorer := slotquality.NewScorer(slotquality.DefaultWeights())
	return NewUseCase(repo, cfg, dir, scorer, nopLogger{})
}

func TestExecute_DefaultsWhenNoConfig(t *testing.T) {
	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{}, &fakeDirectoryClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID: 1,
		Date:       day,
	})

	require.NoError(t, err)
	// Дефолты: 09:00-18:00, длительность 60, шаг 30, лимит 10
	assert.Equal(t, domain.DefaultDurationMinutes, resp.DurationMinutes)
	require.Len(t, resp.Slots, domain.DefaultSuggestionLimit)

	// Лучший слот - утро, начало часа
	best := resp.Slots[0]
	assert.Equal(t, day.Add(9*time.Hour), best.StartsAt)
	assert.InDelta(t, 0.85, best.Quality, 1e-9)
	assert.Equal(t, string(domain.TierExcellent), best.Tier)
}

func TestExecute_ConfigAndRequestOverrides(t *testing.T) {
	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

	cfg := &fakeConfigRepo{
		config: &domain.ResourceScheduleConfig{
			ResourceID:             1,
			WorkStart:              types.TimeString("10:00"),
			WorkEnd:                types.TimeString("16:00"),
			SlotGranularityMinutes: 60,
			DefaultDurationMinutes: 30,
		},
	}
	uc := newTestUseCase(&fakeBookingRepo{}, cfg, &fakeDirectoryClient{})

	// Запрос переопределяет конец рабочего окна из конфигурации
	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID: 1,
		Date:       day,
		WorkEnd:    ptr.Ptr("14:00"),
		Limit:      100,
	})

	require.NoError(t, err)
	assert.Equal(t, 30, resp.DurationMinutes)
	// Окно 10:00-14:00, шаг 60, длительность 30: кандидаты 10, 11, 12, 13
	require.Len(t, resp.Slots, 4)
	for _, slot := range resp.Slots {
		assert.False(t, slot.StartsAt.Before(day.Add(10*time.Hour)))
		assert.False(t, slot.EndsAt.After(day.Add(14*time.Hour)))
	}
}

func TestExecute_DurationFromService(t *testing.T) {
	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

	dir := &fakeDirectoryClient{
		service: &directoryservice.Service{ID: 7, DurationMinutes: 45, IsActive: true},
	}
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{}, dir)

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID: 1,
		Date:       day,
		ServiceID:  ptr.Ptr(int64(7)),
	})

	require.NoError(t, err)
	assert.Equal(t, 45, resp.DurationMinutes)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

	dir := &fakeDirectoryClient{serviceErr: directoryservice.ErrServiceNotFound}
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{}, dir)

	_, err := uc.Execute(context.Background(), &Request{
		ResourceID: 1,
		Date:       day,
		ServiceID:  ptr.Ptr(int64(7)),
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_FullyBookedDayReturnsEmptySlots(t *testing.T) {
	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{
				ID:         1,
				ResourceID: 1,
				StartsAt:   day.Add(9 * time.Hour),
				EndsAt:     day.Add(18 * time.Hour),
				Status:     domain.StatusConfirmed,
			},
		},
	}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeDirectoryClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID: 1,
		Date:       day,
	})

	// Плотно занятый день - корректный ответ с пустым списком, не ошибка
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_BookedWindowsExcluded(t *testing.T) {
	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{
				ID:         1,
				ResourceID: 1,
				StartsAt:   day.Add(9 * time.Hour),
				EndsAt:     day.Add(12 * time.Hour),
				Status:     domain.StatusConfirmed,
			},
		},
	}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeDirectoryClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID: 1,
		Date:       day,
		Limit:      100,
	})

	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	for _, slot := range resp.Slots {
		assert.False(t, slot.StartsAt.Before(day.Add(12*time.Hour)),
			"slot at %s overlaps booked morning", slot.StartsAt)
	}
}

func TestExecute_ValidationErrors(t *testing.T) {
	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{}, &fakeDirectoryClient{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero resource id", &Request{Date: day}},
		{"zero date", &Request{ResourceID: 1}},
		{"bad workStart format", &Request{ResourceID: 1, Date: day, WorkStart: ptr.Ptr("9am")}},
		{"duration out of range", &Request{ResourceID: 1, Date: day, DurationMinutes: ptr.Ptr(1000)}},
		{"granularity out of range", &Request{ResourceID: 1, Date: day, GranularityMinutes: ptr.Ptr(1)}},
		{"negative limit", &Request{ResourceID: 1, Date: day, Limit: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
