package suggest_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByResourceAndRange(ctx context.Context, resourceID int64, from, to time.Time) ([]*domain.Booking, error)
}

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	GetByResource(ctx context.Context, resourceID int64) (*domain.ResourceScheduleConfig, error)
}

// DirectoryServiceClient интерфейс клиента для DirectoryService
type DirectoryServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*directoryservice.Service, error)
}

// SlotScorer интерфейс подбора и ранжирования свободных слотов
type SlotScorer interface {
	Suggest(
		resourceID int64,
		bookings []*domain.Booking,
		day time.Time,
		durationMinutes int,
		workStart types.TimeString,
		workEnd types.TimeString,
		granularityMinutes int,
		limit int,
	) ([]domain.ScoredSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
