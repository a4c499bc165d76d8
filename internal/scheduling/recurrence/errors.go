package recurrence

import "errors"

var (
	// ErrInvalidRule возвращается при некорректном правиле или якорном окне
	// Проверка выполняется до генерации - частичная последовательность не возвращается
	ErrInvalidRule = errors.New("recurrence: invalid rule")

	// ErrGenerationLimitExceeded возвращается, когда правило порождает больше
	// кандидатов, чем жёсткий потолок генерации. Вместе с ошибкой возвращается
	// частичная последовательность, чтобы вызывающий мог предупредить пользователя,
	// а не молча обрезать серию
	ErrGenerationLimitExceeded = errors.New("recurrence: generation limit exceeded")
)
