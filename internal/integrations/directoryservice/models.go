package directoryservice

// Employee модель сотрудника из DirectoryService
type Employee struct {
	ID         int64  `json:"id"`
	FullName   string `json:"full_name"`
	Position   string `json:"position"`
	IsBookable bool   `json:"is_bookable"` // Принимает ли сотрудник записи
}

// Service модель услуги из DirectoryService
type Service struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Price           *float64 `json:"price"` // Цена может быть не указана
	DurationMinutes int      `json:"duration_minutes"`
	IsActive        bool     `json:"is_active"`
}

// ErrorResponse модель ошибки от DirectoryService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
