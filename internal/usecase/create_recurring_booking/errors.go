package create_recurring_booking

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс (сотрудник) не найден
	ErrResourceNotFound = errors.New("create_recurring_booking: resource not found")

	// ErrResourceNotBookable возвращается, когда сотрудник не принимает записи
	ErrResourceNotBookable = errors.New("create_recurring_booking: resource is not bookable")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_recurring_booking: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена
	ErrServiceInactive = errors.New("create_recurring_booking: service is inactive")

	// ErrBookingInPast возвращается при попытке создать серию, начинающуюся в прошлом
	ErrBookingInPast = errors.New("create_recurring_booking: series starts in the past")

	// ErrGenerationLimitExceeded возвращается, когда правило порождает больше
	// кандидатов, чем допускает жёсткий потолок генерации
	ErrGenerationLimitExceeded = errors.New("create_recurring_booking: generation limit exceeded")

	// ErrTooManyOccurrences возвращается, когда серия превышает лимит вхождений ресурса
	ErrTooManyOccurrences = errors.New("create_recurring_booking: too many occurrences")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_recurring_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_recurring_booking: internal error")
)
