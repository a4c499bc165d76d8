package suggest_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда указанная услуга не найдена
	ErrServiceNotFound = errors.New("suggest_slots: service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("suggest_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("suggest_slots: internal error")
)
