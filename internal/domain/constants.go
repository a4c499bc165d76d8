package domain

// Default configuration values
const (
	DefaultWorkStart                = "09:00"
	DefaultWorkEnd                  = "18:00"
	DefaultSlotGranularityMinutes   = 30
	DefaultDurationMinutes          = 60
	DefaultSuggestionLimit          = 10
	DefaultMaxRecurrenceOccurrences = 52 // Год еженедельных бронирований
)

// MaxGeneratedCandidates жёсткий потолок числа генерируемых кандидатов
// при разворачивании правила рекуррентности (включая пропущенные даты).
// Защищает от зацикливания при некорректной политике завершения
const MaxGeneratedCandidates = 500

// Business validation constants
const (
	MinDurationMinutes          = 5
	MaxDurationMinutes          = 480 // 8 hours
	MinGranularityMinutes       = 5
	MaxGranularityMinutes       = 240
	MinRecurrenceInterval       = 1
	MaxRecurrenceInterval       = 99
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов неактивных бронирований
// Неактивные бронирования не блокируют расписание и не участвуют
// в проверке конфликтов
var InactiveStatuses = []BookingStatus{
	StatusCancelledByCustomer,
	StatusCancelledByStaff,
	StatusNoShow,
}

// ActiveStatuses список статусов активных (блокирующих) бронирований
var ActiveStatuses = []BookingStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
