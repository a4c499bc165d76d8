package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusScheduled           BookingStatus = "scheduled"
	StatusConfirmed           BookingStatus = "confirmed"
	StatusInProgress          BookingStatus = "in_progress"
	StatusCompleted           BookingStatus = "completed"
	StatusCancelledByCustomer BookingStatus = "cancelled_by_customer"
	StatusCancelledByStaff    BookingStatus = "cancelled_by_staff"
	StatusNoShow              BookingStatus = "no_show"
)

// Booking represents an appointment booked on a resource's (employee's) calendar
type Booking struct {
	ID         int64
	ResourceID int64 // ID сотрудника, на календаре которого занято время
	ServiceID  int64
	CustomerID int64
	StartsAt   time.Time
	EndsAt     time.Time
	Status     BookingStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window возвращает временное окно бронирования
func (b *Booking) Window() TimeWindow {
	return TimeWindow{Start: b.StartsAt, End: b.EndsAt}
}

// IsBlocking returns true if the booking occupies time on the resource's calendar
// Отменённые бронирования и no-show не блокируют расписание
func (b *Booking) IsBlocking() bool {
	return b.Status != StatusCancelledByCustomer &&
		b.Status != StatusCancelledByStaff &&
		b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusScheduled || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByCustomer || b.Status == StatusCancelledByStaff
}

// ResourceBookingsFilter фильтр для получения бронирований ресурса
type ResourceBookingsFilter struct {
	ResourceID      int64          // Обязательный параметр
	From            *time.Time     // Начало периода (опционально, если nil - без ограничения)
	To              *time.Time     // Конец периода (опционально, если nil - без ограничения)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли неактивные бронирования (отмененные, no-show)
}
