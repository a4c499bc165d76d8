package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	configRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedconfig"
	directoryClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling/conflict"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo     BookingRepository
	configRepo      ConfigRepository
	directoryClient DirectoryServiceClient
	conflictChecker ConflictChecker
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	directoryClient DirectoryServiceClient,
	conflictChecker ConflictChecker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		configRepo:      configRepo,
		directoryClient: directoryClient,
		conflictChecker: conflictChecker,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции,
// чтобы между проверкой и вставкой не появилось конкурирующее бронирование.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, resource=%d, service=%d, startsAt=%s",
		req.CustomerID, req.ResourceID, req.ServiceID, req.StartsAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if req.StartsAt.Before(now) {
		uc.logger.Warn("CreateBooking: startsAt=%s is in the past", req.StartsAt.Format(time.RFC3339))
		return nil, ErrBookingInPast
	}

	// 3. Проверяем ресурс (сотрудника)
	employee, err := uc.directoryClient.GetEmployee(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrEmployeeNotFound) {
			uc.logger.Warn("CreateBooking: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get employee id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	if !employee.IsBookable {
		uc.logger.Warn("CreateBooking: resource id=%d is not bookable", req.ResourceID)
		return nil, ErrResourceNotBookable
	}

	// 4. Получаем услугу
	service, err := uc.directoryClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем конфигурацию расписания ресурса
		config, err := uc.configRepo.GetByResource(txCtx, req.ResourceID)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateBooking: failed to get schedule config: %v", err)
			return fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
		}

		// 5.2. Определяем длительность и запрошенное окно
		duration := resolveDuration(req, service.DurationMinutes, config)

		window, err := domain.NewTimeWindow(req.StartsAt, req.StartsAt.Add(minutes(duration)))
		if err != nil {
			uc.logger.Warn("CreateBooking: invalid requested window: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// 5.3. Получаем активные бронирования ресурса с блокировкой (FOR UPDATE).
		// Диапазон расширен, чтобы альтернативы проверялись по реальной занятости.
		from, to := fetchBounds(window)
		bookings, err := uc.bookingRepo.GetActiveByResourceAndRange(txCtx, req.ResourceID, from, to)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get active bookings: %v", err)
			return fmt.Errorf("%w: failed to get active bookings: %v", ErrInternal, err)
		}

		// 5.4. Проверяем пересечения
		report, err := uc.conflictChecker.Check(window, req.ResourceID, bookings)
		if err != nil {
			uc.logger.Error("CreateBooking: conflict check failed: %v", err)
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}

		if report != nil {
			// 5.4.1. Перепроверяем альтернативы по занятости вокруг конфликта
			report, err = uc.refineReport(txCtx, req.ResourceID, window, report, config)
			if err != nil {
				return err
			}

			uc.logger.Warn("CreateBooking: window %s - %s conflicts with booking id=%d, %d alternatives",
				window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339),
				report.Conflicting.ID, len(report.Alternatives))
			return &ConflictError{Report: report}
		}

		// 5.5. Создаем бронирование с денормализацией данных услуги
		booking := &domain.Booking{
			ResourceID:   req.ResourceID,
			ServiceID:    req.ServiceID,
			CustomerID:   req.CustomerID,
			StartsAt:     window.Start,
			EndsAt:       window.End,
			Status:       domain.StatusScheduled,
			ServiceName:  service.Name,
			ServicePrice: getServicePrice(service),
			Notes:        req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Exclusion constraint в БД - последний рубеж против гонки
			if errors.Is(err, bookingRepo.ErrWindowTaken) {
				uc.logger.Warn("CreateBooking: window taken at insert time for resource id=%d", req.ResourceID)
				return &ConflictError{Report: &domain.ConflictReport{Requested: window}}
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// Конвертируем в response
	return toResponse(result), nil
}

// refineReport перепроверяет отчёт о конфликте по полной занятости.
//
// Первичная выборка гарантирует, что сам конфликт найден верно, но окна
// альтернатив примыкают к границам конфликтующего бронирования и при длинном
// бронировании выходят за её пределы. Повторная выборка вокруг конфликта
// закрывает этот разрыв, после чего альтернативы вне рабочих часов ресурса
// отбрасываются.
func (uc *UseCase) refineReport(
	ctx context.Context,
	resourceID int64,
	window domain.TimeWindow,
	report *domain.ConflictReport,
	config *domain.ResourceScheduleConfig,
) (*domain.ConflictReport, error) {
	from, to := conflictBounds(report.Conflicting, window.Duration())
	bookings, err := uc.bookingRepo.GetActiveByResourceAndRange(ctx, resourceID, from, to)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to refetch bookings around conflict: %v", err)
		return nil, fmt.Errorf("%w: failed to refetch bookings around conflict: %v", ErrInternal, err)
	}

	refined, err := uc.conflictChecker.Check(window, resourceID, bookings)
	if err != nil {
		uc.logger.Error("CreateBooking: conflict recheck failed: %v", err)
		return nil, fmt.Errorf("%w: conflict recheck failed: %v", ErrInternal, err)
	}
	if refined == nil {
		// Повторная выборка шире первичной и конфликт не мог исчезнуть
		return report, nil
	}

	workStart, workEnd := scheduleHours(config)
	alternatives, err := conflict.WithinWorkHours(refined.Alternatives, workStart, workEnd)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to filter alternatives by work hours: %v", err)
		return nil, fmt.Errorf("%w: failed to filter alternatives by work hours: %v", ErrInternal, err)
	}
	refined.Alternatives = alternatives

	return refined, nil
}

// toResponse конвертирует доменную модель в response
func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:           b.ID,
		ResourceID:   b.ResourceID,
		ServiceID:    b.ServiceID,
		CustomerID:   b.CustomerID,
		StartsAt:     b.StartsAt,
		EndsAt:       b.EndsAt,
		Status:       string(b.Status),
		ServiceName:  b.ServiceName,
		ServicePrice: b.ServicePrice,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// getServicePrice извлекает цену из услуги.
// Если цена не указана (nil), возвращает 0.0.
func getServicePrice(service *directoryClient.Service) float64 {
	if service.Price == nil {
		return 0.0
	}
	return *service.Price
}
