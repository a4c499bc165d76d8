package suggest_slots

import (
	"time"
)

// Request модель запроса на подбор слотов
type Request struct {
	ResourceID         int64     // ID ресурса (сотрудника)
	Date               time.Time // День, на который подбираются слоты
	ServiceID          *int64    // ID услуги (опционально, для определения длительности)
	DurationMinutes    *int      // Длительность в минутах (опционально)
	WorkStart          *string   // Переопределение начала рабочего окна, "HH:MM" (опционально)
	WorkEnd            *string   // Переопределение конца рабочего окна, "HH:MM" (опционально)
	GranularityMinutes *int      // Переопределение шага сетки слотов (опционально)
	Limit              int       // Максимум предложений (0 - дефолт)
}

// SlotSuggestion одно предложение слота с оценкой качества
type SlotSuggestion struct {
	StartsAt time.Time // Начало слота
	EndsAt   time.Time // Конец слота
	Quality  float64   // Оценка качества в [0, 1]
	Tier     string    // excellent | good | available
}

// Response модель ответа с ранжированными предложениями.
// Пустой список слотов - корректный ответ (день плотно занят).
type Response struct {
	ResourceID      int64            // ID ресурса
	Date            time.Time        // День подбора
	DurationMinutes int              // Использованная длительность
	Slots           []SlotSuggestion // Предложения по убыванию качества
}
