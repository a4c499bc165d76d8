package config

import (
	"context"
	"errors"
	"fmt"

	configRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedconfig"
	directoryClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-SchedulingService/internal/service/config/models"
)

// Service сервис для работы с конфигурацией расписания ресурсов
type Service struct {
	configRepo      ConfigRepository
	directoryClient DirectoryServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	directoryClient DirectoryServiceClient,
	logger Logger,
) *Service {
	return &Service{
		configRepo:      configRepo,
		directoryClient: directoryClient,
		logger:          logger,
	}
}

// GetByResource получает конфигурацию расписания ресурса
func (s *Service) GetByResource(ctx context.Context, resourceID int64) (*models.ConfigResponse, error) {
	s.logger.Info("GetByResource: fetching schedule config for resource=%d", resourceID)

	config, err := s.configRepo.GetByResource(ctx, resourceID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("GetByResource: config for resource=%d not found", resourceID)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("GetByResource: repository error for resource=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: GetByResource - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByResource: successfully fetched config id=%d for resource=%d", config.ID, resourceID)
	return models.FromDomainConfig(config), nil
}

// Upsert создает или обновляет конфигурацию расписания ресурса
// Доступно только сотруднику-владельцу календаря
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: upserting schedule config for resource=%d by user=%d", req.ResourceID, req.UserID)

	// Валидация параметров конфигурации
	if err := req.Validate(); err != nil {
		s.logger.Warn("Upsert: validation failed for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Проверяем права доступа сотрудника
	if err := s.checkStaffAccess(ctx, req.ResourceID, req.UserID); err != nil {
		return nil, err
	}

	config, err := s.configRepo.Upsert(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("Upsert: repository error for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully upserted config id=%d for resource=%d", config.ID, req.ResourceID)
	return models.FromDomainConfig(config), nil
}

// checkStaffAccess проверяет, что пользователь - сотрудник, владеющий календарём ресурса
func (s *Service) checkStaffAccess(ctx context.Context, resourceID int64, userID int64) error {
	if userID != resourceID {
		s.logger.Warn("checkStaffAccess: user=%d does not own resource=%d calendar", userID, resourceID)
		return ErrAccessDenied
	}

	employee, err := s.directoryClient.GetEmployee(ctx, userID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrEmployeeNotFound) {
			s.logger.Warn("checkStaffAccess: user=%d is not an employee", userID)
			return ErrResourceNotFound
		}
		s.logger.Error("checkStaffAccess: failed to get employee id=%d: %v", userID, err)
		return fmt.Errorf("%w: checkStaffAccess - failed to get employee: %v", ErrInternal, err)
	}

	s.logger.Info("checkStaffAccess: user=%d confirmed as employee %q", userID, employee.FullName)
	return nil
}
