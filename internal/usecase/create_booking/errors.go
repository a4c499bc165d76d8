package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrResourceNotFound возвращается, когда ресурс (сотрудник) не найден
	ErrResourceNotFound = errors.New("create_booking: resource not found")

	// ErrResourceNotBookable возвращается, когда сотрудник не принимает записи
	ErrResourceNotBookable = errors.New("create_booking: resource is not bookable")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена
	ErrServiceInactive = errors.New("create_booking: service is inactive")

	// ErrBookingInPast возвращается при попытке создать бронирование в прошлом
	ErrBookingInPast = errors.New("create_booking: booking starts in the past")

	// ErrSchedulingConflict возвращается, когда запрошенное окно пересекается с существующим бронированием
	ErrSchedulingConflict = errors.New("create_booking: scheduling conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ConflictError ошибка пересечения с деталями конфликта.
// Совместима с errors.Is(err, ErrSchedulingConflict) через Unwrap.
type ConflictError struct {
	Report *domain.ConflictReport
}

// Error реализует интерфейс error
func (e *ConflictError) Error() string {
	if e.Report != nil && e.Report.Conflicting != nil {
		return fmt.Sprintf("%v: overlaps booking id=%d", ErrSchedulingConflict, e.Report.Conflicting.ID)
	}
	return ErrSchedulingConflict.Error()
}

// Unwrap возвращает сентинельную ошибку конфликта
func (e *ConflictError) Unwrap() error {
	return ErrSchedulingConflict
}
