package slotquality

import "errors"

// ErrInvalidInput возвращается при некорректных параметрах подбора слотов
// Пустой результат (все кандидаты заняты) ошибкой НЕ является
var ErrInvalidInput = errors.New("slotquality: invalid input")
