package create_recurring_booking

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
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling/recurrence"
)

// UseCase use case для создания серии повторяющихся бронирований
type UseCase struct {
	bookingRepo     BookingRepository
	configRepo      ConfigRepository
	directoryClient DirectoryServiceClient
	expander        RecurrenceExpander
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
	expander RecurrenceExpander,
	conflictChecker ConflictChecker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		configRepo:      configRepo,
		directoryClient: directoryClient,
		expander:        expander,
		conflictChecker: conflictChecker,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания серии.
//
// Серия разворачивается в конкретные окна, затем каждое вхождение
// обрабатывается в собственной сериализуемой транзакции: конфликтующие
// вхождения помечаются как conflict и пропускаются, остальные бронируются.
// Частичный успех - ожидаемый исход, а не ошибка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateRecurringBooking: customer=%d, resource=%d, service=%d, freq=%s, interval=%d",
		req.CustomerID, req.ResourceID, req.ServiceID, req.Frequency, req.Interval)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateRecurringBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if req.StartsAt.Before(now) {
		uc.logger.Warn("CreateRecurringBooking: startsAt=%s is in the past", req.StartsAt.Format(time.RFC3339))
		return nil, ErrBookingInPast
	}

	// 3. Проверяем ресурс (сотрудника)
	employee, err := uc.directoryClient.GetEmployee(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrEmployeeNotFound) {
			uc.logger.Warn("CreateRecurringBooking: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("CreateRecurringBooking: failed to get employee id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	if !employee.IsBookable {
		uc.logger.Warn("CreateRecurringBooking: resource id=%d is not bookable", req.ResourceID)
		return nil, ErrResourceNotBookable
	}

	// 4. Получаем услугу
	service, err := uc.directoryClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateRecurringBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateRecurringBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("CreateRecurringBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 5. Получаем конфигурацию расписания ресурса (вне транзакции - только лимиты)
	config, err := uc.configRepo.GetByResource(ctx, req.ResourceID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("CreateRecurringBooking: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	// 6. Разворачиваем правило в последовательность окон
	duration := resolveDuration(req, service.DurationMinutes, config)

	anchor, err := domain.NewTimeWindow(req.StartsAt, req.StartsAt.Add(minutes(duration)))
	if err != nil {
		uc.logger.Warn("CreateRecurringBooking: invalid anchor window: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	occurrences, err := uc.expander.Expand(anchor, toRecurrenceRule(req))
	if err != nil {
		if errors.Is(err, recurrence.ErrGenerationLimitExceeded) {
			uc.logger.Warn("CreateRecurringBooking: generation limit exceeded, %d occurrences generated", len(occurrences))
			return nil, fmt.Errorf("%w: %v", ErrGenerationLimitExceeded, err)
		}
		uc.logger.Warn("CreateRecurringBooking: rule expansion failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 7. Проверяем лимит числа вхождений для ресурса
	limit := maxOccurrences(config)
	if len(occurrences) > limit {
		uc.logger.Warn("CreateRecurringBooking: %d occurrences exceed resource limit %d", len(occurrences), limit)
		return nil, fmt.Errorf("%w: %d occurrences, limit is %d", ErrTooManyOccurrences, len(occurrences), limit)
	}

	uc.logger.Info("CreateRecurringBooking: expanded to %d occurrences", len(occurrences))

	// 8. Обрабатываем каждое вхождение в собственной транзакции
	results := make([]OccurrenceResult, 0, len(occurrences))
	booked := 0

	for i, window := range occurrences {
		result, err := uc.bookOccurrence(ctx, req, service, config, i, window)
		if err != nil {
			uc.logger.Error("CreateRecurringBooking: occurrence %d failed: %v", i, err)
			return nil, err
		}

		if result.Status == OccurrenceStatusBooked {
			booked++
		}
		results = append(results, *result)
	}

	uc.logger.Info("CreateRecurringBooking: booked %d/%d occurrences for customer=%d",
		booked, len(occurrences), req.CustomerID)

	return &Response{
		ResourceID:  req.ResourceID,
		ServiceID:   req.ServiceID,
		CustomerID:  req.CustomerID,
		Occurrences: results,
		BookedCount: booked,
	}, nil
}

// bookOccurrence проверяет и бронирует одно вхождение серии в сериализуемой транзакции
func (uc *UseCase) bookOccurrence(
	ctx context.Context,
	req *Request,
	service *directoryClient.Service,
	config *domain.ResourceScheduleConfig,
	index int,
	window domain.TimeWindow,
) (*OccurrenceResult, error) {
	result := &OccurrenceResult{
		Index:    index,
		StartsAt: window.Start,
		EndsAt:   window.End,
	}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Активные бронирования ресурса с блокировкой (FOR UPDATE)
		from, to := fetchBounds(window)
		bookings, err := uc.bookingRepo.GetActiveByResourceAndRange(txCtx, req.ResourceID, from, to)
		if err != nil {
			return fmt.Errorf("%w: failed to get active bookings: %v", ErrInternal, err)
		}

		report, err := uc.conflictChecker.Check(window, req.ResourceID, bookings)
		if err != nil {
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}

		if report != nil {
			// Перепроверяем альтернативы по занятости вокруг конфликта
			report, err = uc.refineReport(txCtx, req.ResourceID, window, report, config)
			if err != nil {
				return err
			}

			result.Status = OccurrenceStatusConflict
			result.Conflict = report
			return nil
		}

		booking := &domain.Booking{
			ResourceID:   req.ResourceID,
			ServiceID:    req.ServiceID,
			CustomerID:   req.CustomerID,
			StartsAt:     window.Start,
			EndsAt:       window.End,
			Status:       domain.StatusScheduled,
			ServiceName:  service.Name,
			ServicePrice: servicePrice(service),
			Notes:        req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Exclusion constraint в БД - последний рубеж против гонки
			if errors.Is(err, bookingRepo.ErrWindowTaken) {
				result.Status = OccurrenceStatusConflict
				result.Conflict = &domain.ConflictReport{Requested: window}
				return nil
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result.Status = OccurrenceStatusBooked
		result.Booking = &BookedOccurrence{
			ID:        created.ID,
			Status:    string(created.Status),
			CreatedAt: created.CreatedAt,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

// refineReport перепроверяет отчёт о конфликте вхождения по полной занятости.
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
		return nil, fmt.Errorf("%w: failed to refetch bookings around conflict: %v", ErrInternal, err)
	}

	refined, err := uc.conflictChecker.Check(window, resourceID, bookings)
	if err != nil {
		return nil, fmt.Errorf("%w: conflict recheck failed: %v", ErrInternal, err)
	}
	if refined == nil {
		// Повторная выборка шире первичной и конфликт не мог исчезнуть
		return report, nil
	}

	workStart, workEnd := scheduleHours(config)
	alternatives, err := conflict.WithinWorkHours(refined.Alternatives, workStart, workEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to filter alternatives by work hours: %v", ErrInternal, err)
	}
	refined.Alternatives = alternatives

	return refined, nil
}

// servicePrice извлекает цену из услуги.
// Если цена не указана (nil), возвращает 0.0.
func servicePrice(service *directoryClient.Service) float64 {
	if service.Price == nil {
		return 0.0
	}
	return *service.Price
}
