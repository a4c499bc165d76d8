package conflict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const testResourceID = int64(7)

func window(t *testing.T, start, end string) domain.TimeWindow {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	require.NoError(t, err)
	e, err := time.Parse(time.RFC3339, end)
	require.NoError(t, err)
	return domain.TimeWindow{Start: s, End: e}
}

func booking(t *testing.T, id int64, start, end string) *domain.Booking {
	t.Helper()
	w := window(t, start, end)
	return &domain.Booking{
		ID:         id,
		ResourceID: testResourceID,
		StartsAt:   w.Start,
		EndsAt:     w.End,
		Status:     domain.StatusConfirmed,
	}
}

func TestCheck_NoBookings(t *testing.T) {
	candidate := window(t, "2024-05-10T10:00:00Z", "2024-05-10T11:00:00Z")

	report, err := Check(candidate, testResourceID, nil)
	require.NoError(t, err)
	assert.Nil(t, report)
}

func TestCheck_ConflictWithAlternatives(t *testing.T) {
	// Занято 14:00-15:00, кандидат 14:30-15:30 ->
	// конфликт с альтернативами 13:00-14:00 и 15:00-16:00
	existing := booking(t, 1, "2024-05-10T14:00:00Z", "2024-05-10T15:00:00Z")
	candidate := window(t, "2024-05-10T14:30:00Z", "2024-05-10T15:30:00Z")

	report, err := Check(candidate, testResourceID, []*domain.Booking{existing})
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, existing.ID, report.Conflicting.ID)
	assert.Equal(t, candidate, report.Requested)

	require.Len(t, report.Alternatives, 2)
	assert.Equal(t, window(t, "2024-05-10T13:00:00Z", "2024-05-10T14:00:00Z"), report.Alternatives[0])
	assert.Equal(t, window(t, "2024-05-10T15:00:00Z", "2024-05-10T16:00:00Z"), report.Alternatives[1])
}

func TestCheck_AdjacentWindowsDoNotConflict(t *testing.T) {
	// Полуоткрытые интервалы: бронирование, заканчивающееся ровно в момент
	// начала кандидата (и наоборот), конфликтом не является
	existing := booking(t, 1, "2024-05-10T14:00:00Z", "2024-05-10T15:00:00Z")

	endsAtStart := window(t, "2024-05-10T13:00:00Z", "2024-05-10T14:00:00Z")
	startsAtEnd := window(t, "2024-05-10T15:00:00Z", "2024-05-10T16:00:00Z")

	for _, candidate := range []domain.TimeWindow{endsAtStart, startsAtEnd} {
		report, err := Check(candidate, testResourceID, []*domain.Booking{existing})
		require.NoError(t, err)
		assert.Nil(t, report)
	}
}

func TestCheck_OverlapSymmetry(t *testing.T) {
	tests := []struct {
		name     string
		a, b     domain.TimeWindow
		overlaps bool
	}{
		{
			name:     "partial overlap",
			a:        window(t, "2024-05-10T10:00:00Z", "2024-05-10T11:00:00Z"),
			b:        window(t, "2024-05-10T10:30:00Z", "2024-05-10T11:30:00Z"),
			overlaps: true,
		},
		{
			name:     "containment",
			a:        window(t, "2024-05-10T10:00:00Z", "2024-05-10T12:00:00Z"),
			b:        window(t, "2024-05-10T10:30:00Z", "2024-05-10T11:00:00Z"),
			overlaps: true,
		},
		{
			name:     "adjacent",
			a:        window(t, "2024-05-10T10:00:00Z", "2024-05-10T11:00:00Z"),
			b:        window(t, "2024-05-10T11:00:00Z", "2024-05-10T12:00:00Z"),
			overlaps: false,
		},
		{
			name:     "disjoint",
			a:        window(t, "2024-05-10T10:00:00Z", "2024-05-10T11:00:00Z"),
			b:        window(t, "2024-05-10T12:00:00Z", "2024-05-10T13:00:00Z"),
			overlaps: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, Overlaps(tt.a, tt.b))
			assert.Equal(t, Overlaps(tt.a, tt.b), Overlaps(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}

func TestCheck_FirstConflictChronological(t *testing.T) {
	// Бронирования подаются не по порядку - в отчёте первое по времени начала
	later := booking(t, 1, "2024-05-10T11:00:00Z", "2024-05-10T12:00:00Z")
	earlier := booking(t, 2, "2024-05-10T09:30:00Z", "2024-05-10T10:30:00Z")
	candidate := window(t, "2024-05-10T10:00:00Z", "2024-05-10T11:30:00Z")

	report, err := Check(candidate, testResourceID, []*domain.Booking{later, earlier})
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, earlier.ID, report.Conflicting.ID)
}

func TestCheck_AlternativeOmittedWhenBusy(t *testing.T) {
	// Плотная запись: окно "до" занято третьим бронированием - предлагается
	// только альтернатива "после", без рекурсивного поиска
	existing := booking(t, 1, "2024-05-10T14:00:00Z", "2024-05-10T15:00:00Z")
	beforeTaken := booking(t, 2, "2024-05-10T13:00:00Z", "2024-05-10T13:30:00Z")
	candidate := window(t, "2024-05-10T14:30:00Z", "2024-05-10T15:30:00Z")

	report, err := Check(candidate, testResourceID, []*domain.Booking{existing, beforeTaken})
	require.NoError(t, err)
	require.NotNil(t, report)

	require.Len(t, report.Alternatives, 1)
	assert.Equal(t, window(t, "2024-05-10T15:00:00Z", "2024-05-10T16:00:00Z"), report.Alternatives[0])
}

func TestCheck_AlternativesAreConflictFree(t *testing.T) {
	// Инвариант: любая альтернатива из отчёта при повторной проверке
	// против того же набора бронирований возвращается свободной
	bookings := []*domain.Booking{
		booking(t, 1, "2024-05-10T09:00:00Z", "2024-05-10T10:00:00Z"),
		booking(t, 2, "2024-05-10T11:00:00Z", "2024-05-10T12:00:00Z"),
		booking(t, 3, "2024-05-10T14:00:00Z", "2024-05-10T15:30:00Z"),
	}

	candidates := []domain.TimeWindow{
		window(t, "2024-05-10T09:30:00Z", "2024-05-10T10:30:00Z"),
		window(t, "2024-05-10T11:30:00Z", "2024-05-10T12:30:00Z"),
		window(t, "2024-05-10T14:00:00Z", "2024-05-10T15:00:00Z"),
	}

	for _, candidate := range candidates {
		report, err := Check(candidate, testResourceID, bookings)
		require.NoError(t, err)
		require.NotNil(t, report)

		for _, alt := range report.Alternatives {
			recheck, err := Check(alt, testResourceID, bookings)
			require.NoError(t, err)
			assert.Nil(t, recheck, "alternative %v must be conflict-free", alt)
		}
	}
}

func TestCheck_IgnoresCancelledAndForeignBookings(t *testing.T) {
	cancelled := booking(t, 1, "2024-05-10T10:00:00Z", "2024-05-10T11:00:00Z")
	cancelled.Status = domain.StatusCancelledByCustomer

	noShow := booking(t, 2, "2024-05-10T10:00:00Z", "2024-05-10T11:00:00Z")
	noShow.Status = domain.StatusNoShow

	otherResource := booking(t, 3, "2024-05-10T10:00:00Z", "2024-05-10T11:00:00Z")
	otherResource.ResourceID = testResourceID + 1

	candidate := window(t, "2024-05-10T10:00:00Z", "2024-05-10T11:00:00Z")

	report, err := Check(candidate, testResourceID, []*domain.Booking{cancelled, noShow, otherResource})
	require.NoError(t, err)
	assert.Nil(t, report)
}

func TestWithinWorkHours(t *testing.T) {
	workStart := types.TimeString("09:00")
	workEnd := types.TimeString("18:00")

	inside := window(t, "2024-05-10T10:00:00Z", "2024-05-10T11:00:00Z")
	atOpen := window(t, "2024-05-10T09:00:00Z", "2024-05-10T10:00:00Z")
	atClose := window(t, "2024-05-10T17:00:00Z", "2024-05-10T18:00:00Z")
	beforeOpen := window(t, "2024-05-10T08:00:00Z", "2024-05-10T09:00:00Z")
	pastClose := window(t, "2024-05-10T17:30:00Z", "2024-05-10T18:30:00Z")

	filtered, err := WithinWorkHours(
		[]domain.TimeWindow{inside, atOpen, atClose, beforeOpen, pastClose},
		workStart, workEnd,
	)
	require.NoError(t, err)
	assert.Equal(t, []domain.TimeWindow{inside, atOpen, atClose}, filtered)
}

func TestWithinWorkHours_InvalidBounds(t *testing.T) {
	windows := []domain.TimeWindow{window(t, "2024-05-10T10:00:00Z", "2024-05-10T11:00:00Z")}

	_, err := WithinWorkHours(windows, types.TimeString("9am"), types.TimeString("18:00"))
	assert.ErrorIs(t, err, ErrInvalidCandidate)
}

func TestCheck_InvalidCandidate(t *testing.T) {
	candidate := domain.TimeWindow{
		Start: time.Date(2024, 5, 10, 11, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC),
	}

	report, err := Check(candidate, testResourceID, nil)
	require.ErrorIs(t, err, ErrInvalidCandidate)
	assert.Nil(t, report)
}
