package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByResourceAndRange(ctx context.Context, resourceID int64, from, to time.Time) ([]*domain.Booking, error)
}

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	GetByResource(ctx context.Context, resourceID int64) (*domain.ResourceScheduleConfig, error)
}

// DirectoryServiceClient интерфейс клиента для DirectoryService
type DirectoryServiceClient interface {
	GetEmployee(ctx context.Context, employeeID int64) (*directoryservice.Employee, error)
	GetService(ctx context.Context, serviceID int64) (*directoryservice.Service, error)
}

// ConflictChecker интерфейс проверки пересечений с существующими бронированиями
type ConflictChecker interface {
	Check(candidate domain.TimeWindow, resourceID int64, bookings []*domain.Booking) (*domain.ConflictReport, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
