package create_booking

import (
	"time"
)

// Request модель запроса на создание бронирования
type Request struct {
	ResourceID      int64     // ID ресурса (сотрудника)
	ServiceID       int64     // ID услуги
	CustomerID      int64     // ID клиента
	StartsAt        time.Time // Время начала бронирования
	DurationMinutes *int      // Длительность в минутах (опционально, иначе из услуги/конфигурации)
	Notes           *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64     // ID созданного бронирования
	ResourceID int64     // ID ресурса
	ServiceID  int64     // ID услуги
	CustomerID int64     // ID клиента
	StartsAt   time.Time // Время начала
	EndsAt     time.Time // Время окончания
	Status     string    // Статус бронирования

	// Денормализованные данные услуги
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги
	Notes        *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
