package create_recurring_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Статусы вхождений серии
const (
	OccurrenceStatusBooked   = "booked"
	OccurrenceStatusConflict = "conflict"
)

// Request модель запроса на создание серии повторяющихся бронирований
type Request struct {
	ResourceID      int64     // ID ресурса (сотрудника)
	ServiceID       int64     // ID услуги
	CustomerID      int64     // ID клиента
	StartsAt        time.Time // Время начала якорного вхождения
	DurationMinutes *int      // Длительность в минутах (опционально)
	Notes           *string   // Заметки (применяются ко всем вхождениям)

	// Правило повторения
	Frequency     string      // daily | weekly | monthly | yearly
	Interval      int         // Шаг повторения в единицах Frequency
	Count         int         // Политика завершения: число вхождений (0 - не задана)
	Until         *time.Time  // Политика завершения: последняя допустимая дата (nil - не задана)
	ExcludedDates []time.Time // Календарные даты, которые пропускаются
}

// OccurrenceResult результат обработки одного вхождения серии.
// Серия создается с частичным успехом: конфликтующие вхождения
// пропускаются, остальные бронируются.
type OccurrenceResult struct {
	Index    int                    // Порядковый номер вхождения (с нуля)
	StartsAt time.Time              // Начало окна вхождения
	EndsAt   time.Time              // Конец окна вхождения
	Status   string                 // booked | conflict
	Booking  *BookedOccurrence      // Данные созданного бронирования (для booked)
	Conflict *domain.ConflictReport // Детали конфликта (для conflict)
}

// BookedOccurrence данные успешно созданного бронирования
type BookedOccurrence struct {
	ID        int64
	Status    string
	CreatedAt time.Time
}

// Response модель ответа с результатами по каждому вхождению
type Response struct {
	ResourceID  int64              // ID ресурса
	ServiceID   int64              // ID услуги
	CustomerID  int64              // ID клиента
	Occurrences []OccurrenceResult // Результаты в порядке вхождений
	BookedCount int                // Число успешно созданных бронирований
}
