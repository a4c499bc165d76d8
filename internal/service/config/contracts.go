package config

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
)

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	GetByResource(ctx context.Context, resourceID int64) (*domain.ResourceScheduleConfig, error)
	Upsert(ctx context.Context, config *domain.ResourceScheduleConfig) (*domain.ResourceScheduleConfig, error)
}

// DirectoryServiceClient интерфейс клиента для DirectoryService
type DirectoryServiceClient interface {
	GetEmployee(ctx context.Context, employeeID int64) (*directoryservice.Employee, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
