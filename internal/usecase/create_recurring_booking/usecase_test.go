package create_recurring_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedconfig"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling/conflict"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling/recurrence"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	out := *b
	out.ID = f.nextID
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	// Созданные бронирования видны последующим вхождениям серии
	f.bookings = append(f.bookings, &out)
	return &out, nil
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
	employee *directoryservice.Employee
	service  *directoryservice.Service
}

func (f *fakeDirectoryClient) GetEmployee(_ context.Context, _ int64) (*directoryservice.Employee, error) {
	return f.employee, nil
}

func (f *fakeDirectoryClient) GetService(_ context.Context, _ int64) (*directoryservice.Service, error) {
	return f.service, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

func newTestUseCase(repo *fakeBookingRepo, cfg *fakeConfigRepo, now time.Time) *UseCase {
	dir := &fakeDirectoryClient{
		employee: &directoryservice.Employee{ID: 1, IsBookable: true},
		service: &directoryservice.Service{
			ID:              2,
			Name:            "Массаж",
			Price:           ptr.Ptr(2000.0),
			DurationMinutes: 60,
			IsActive:        true,
		},
	}
	uc := NewUseCase(repo, cfg, dir, recurrence.NewExpander(), conflict.NewResolver(), &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func baseRequest(startsAt time.Time) *Request {
	return &Request{
		ResourceID: 1,
		ServiceID:  2,
		CustomerID: 3,
		StartsAt:   startsAt,
		Frequency:  string(domain.FrequencyWeekly),
		Interval:   1,
		Count:      4,
	}
}

func TestExecute_WeeklySeriesAllBooked(t *testing.T) {
	now := time.Date(2025, time.May, 1, 8, 0, 0, 0, time.UTC)
	startsAt := time.Date(2025, time.May, 5, 9, 0, 0, 0, time.UTC)

	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, now)

	resp, err := uc.Execute(context.Background(), baseRequest(startsAt))

	require.NoError(t, err)
	require.Len(t, resp.Occurrences, 4)
	assert.Equal(t, 4, resp.BookedCount)

	for i, occ := range resp.Occurrences {
		assert.Equal(t, i, occ.Index)
		assert.Equal(t, OccurrenceStatusBooked, occ.Status)
		require.NotNil(t, occ.Booking)
		assert.Nil(t, occ.Conflict)
		// Недельный шаг от якоря
		assert.Equal(t, startsAt.AddDate(0, 0, 7*i), occ.StartsAt)
		assert.Equal(t, occ.StartsAt.Add(60*time.Minute), occ.EndsAt)
	}

	assert.Len(t, repo.bookings, 4)
}

func TestExecute_PartialSuccessOnConflict(t *testing.T) {
	now := time.Date(2025, time.May, 1, 8, 0, 0, 0, time.UTC)
	startsAt := time.Date(2025, time.May, 5, 9, 0, 0, 0, time.UTC)

	// Второе вхождение (12 мая) уже занято
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{
				ID:         100,
				ResourceID: 1,
				StartsAt:   time.Date(2025, time.May, 12, 9, 0, 0, 0, time.UTC),
				EndsAt:     time.Date(2025, time.May, 12, 10, 0, 0, 0, time.UTC),
				Status:     domain.StatusConfirmed,
			},
		},
		nextID: 100,
	}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, now)

	resp, err := uc.Execute(context.Background(), baseRequest(startsAt))

	require.NoError(t, err)
	require.Len(t, resp.Occurrences, 4)
	assert.Equal(t, 3, resp.BookedCount)

	assert.Equal(t, OccurrenceStatusBooked, resp.Occurrences[0].Status)
	assert.Equal(t, OccurrenceStatusConflict, resp.Occurrences[1].Status)
	assert.Equal(t, OccurrenceStatusBooked, resp.Occurrences[2].Status)
	assert.Equal(t, OccurrenceStatusBooked, resp.Occurrences[3].Status)

	// Отчёт о конфликте указывает на занявшее окно бронирование
	require.NotNil(t, resp.Occurrences[1].Conflict)
	assert.Equal(t, int64(100), resp.Occurrences[1].Conflict.Conflicting.ID)
}

func TestExecute_ConflictAlternativeNearLongBookingIsRevalidated(t *testing.T) {
	now := time.Date(2025, time.May, 1, 8, 0, 0, 0, time.UTC)
	day := time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC)

	// Длинное бронирование 12:00 - 15:00 и короткое 11:00 - 12:00 перед ним.
	// Вхождение 14:30 - 15:00 конфликтует с длинным; окно "до" (11:30 - 12:00)
	// занято коротким - в отчёте только альтернатива "после"
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{
				ID:         100,
				ResourceID: 1,
				StartsAt:   day.Add(12 * time.Hour),
				EndsAt:     day.Add(15 * time.Hour),
				Status:     domain.StatusConfirmed,
			},
			{
				ID:         101,
				ResourceID: 1,
				StartsAt:   day.Add(11 * time.Hour),
				EndsAt:     day.Add(12 * time.Hour),
				Status:     domain.StatusConfirmed,
			},
		},
		nextID: 101,
	}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, now)

	req := baseRequest(day.Add(14*time.Hour + 30*time.Minute))
	req.Count = 1
	req.DurationMinutes = ptr.Ptr(30)

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, resp.Occurrences, 1)
	assert.Equal(t, OccurrenceStatusConflict, resp.Occurrences[0].Status)

	report := resp.Occurrences[0].Conflict
	require.NotNil(t, report)
	assert.Equal(t, int64(100), report.Conflicting.ID)

	require.Len(t, report.Alternatives, 1)
	assert.Equal(t, day.Add(15*time.Hour), report.Alternatives[0].Start)
	assert.Equal(t, day.Add(15*time.Hour+30*time.Minute), report.Alternatives[0].End)
}

func TestExecute_ExcludedDateSkippedWithoutShift(t *testing.T) {
	now := time.Date(2025, time.May, 1, 8, 0, 0, 0, time.UTC)
	startsAt := time.Date(2025, time.May, 5, 9, 0, 0, 0, time.UTC)

	req := baseRequest(startsAt)
	req.Count = 3
	req.ExcludedDates = []time.Time{time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC)}

	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, now)

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, resp.Occurrences, 3)

	// 12 мая пропущено, каденция не сдвинулась: 5, 19, 26 мая
	assert.Equal(t, time.Date(2025, time.May, 5, 9, 0, 0, 0, time.UTC), resp.Occurrences[0].StartsAt)
	assert.Equal(t, time.Date(2025, time.May, 19, 9, 0, 0, 0, time.UTC), resp.Occurrences[1].StartsAt)
	assert.Equal(t, time.Date(2025, time.May, 26, 9, 0, 0, 0, time.UTC), resp.Occurrences[2].StartsAt)
}

func TestExecute_OccurrenceLimitFromConfig(t *testing.T) {
	now := time.Date(2025, time.May, 1, 8, 0, 0, 0, time.UTC)
	startsAt := time.Date(2025, time.May, 5, 9, 0, 0, 0, time.UTC)

	req := baseRequest(startsAt)
	req.Count = 10

	cfg := &fakeConfigRepo{
		config: &domain.ResourceScheduleConfig{
			ResourceID:               1,
			MaxRecurrenceOccurrences: 5,
		},
	}
	uc := newTestUseCase(&fakeBookingRepo{}, cfg, now)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrTooManyOccurrences)
}

func TestExecute_GenerationLimitExceeded(t *testing.T) {
	now := time.Date(2025, time.May, 1, 8, 0, 0, 0, time.UTC)
	startsAt := time.Date(2025, time.May, 5, 9, 0, 0, 0, time.UTC)

	// Until далеко в будущем: ежедневная серия упирается в потолок генерации
	req := baseRequest(startsAt)
	req.Frequency = string(domain.FrequencyDaily)
	req.Count = 0
	req.Until = ptr.Ptr(time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC))

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{}, now)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrGenerationLimitExceeded)
}

func TestExecute_ValidationErrors(t *testing.T) {
	now := time.Date(2025, time.May, 1, 8, 0, 0, 0, time.UTC)
	startsAt := time.Date(2025, time.May, 5, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{}, now)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"unknown frequency", func(r *Request) { r.Frequency = "fortnightly" }},
		{"zero interval", func(r *Request) { r.Interval = 0 }},
		{"interval too large", func(r *Request) { r.Interval = 100 }},
		{"both policies set", func(r *Request) { r.Until = ptr.Ptr(startsAt.AddDate(0, 1, 0)) }},
		{"no policy set", func(r *Request) { r.Count = 0 }},
		{"zero customer", func(r *Request) { r.CustomerID = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest(startsAt)
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_SeriesInPast(t *testing.T) {
	now := time.Date(2025, time.May, 10, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{}, now)

	req := baseRequest(time.Date(2025, time.May, 5, 9, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBookingInPast)
}
