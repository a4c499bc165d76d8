package suggest_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedconfig"
	directoryClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
)

// UseCase use case для подбора и ранжирования свободных слотов
type UseCase struct {
	bookingRepo     BookingRepository
	configRepo      ConfigRepository
	directoryClient DirectoryServiceClient
	scorer          SlotScorer
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	directoryClient DirectoryServiceClient,
	scorer SlotScorer,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		configRepo:      configRepo,
		directoryClient: directoryClient,
		scorer:          scorer,
		logger:          logger,
	}
}

// Execute выполняет use case подбора слотов.
// Операция read-only: одна выборка занятости ресурса на день,
// дальше работает чистый подбор без обращений к БД.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SuggestSlots: resource=%d, date=%s", req.ResourceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SuggestSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем конфигурацию расписания ресурса
	config, err := uc.configRepo.GetByResource(ctx, req.ResourceID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("SuggestSlots: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	// 3. Определяем длительность: при указанной услуге берём её длительность
	serviceDuration := 0
	if req.ServiceID != nil {
		service, err := uc.directoryClient.GetService(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, directoryClient.ErrServiceNotFound) {
				uc.logger.Warn("SuggestSlots: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("SuggestSlots: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		serviceDuration = service.DurationMinutes
	}

	duration := resolveDuration(req, serviceDuration, config)
	params := resolveScheduleParams(req, config)

	// 4. Одна выборка занятости ресурса на рабочее окно дня
	from, err := params.workStart.OnDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: workStart: %v", ErrInvalidInput, err)
	}
	to, err := params.workEnd.OnDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: workEnd: %v", ErrInvalidInput, err)
	}

	bookings, err := uc.bookingRepo.GetActiveByResourceAndRange(ctx, req.ResourceID, from, to)
	if err != nil {
		uc.logger.Error("SuggestSlots: failed to get active bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get active bookings: %v", ErrInternal, err)
	}

	// 5. Подбор и ранжирование
	slots, err := uc.scorer.Suggest(
		req.ResourceID,
		bookings,
		req.Date,
		duration,
		params.workStart,
		params.workEnd,
		params.granularityMinutes,
		req.Limit,
	)
	if err != nil {
		uc.logger.Warn("SuggestSlots: scoring failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	uc.logger.Info("SuggestSlots: resource=%d, date=%s - %d suggestions",
		req.ResourceID, req.Date.Format(domain.DateFormat), len(slots))

	// Конвертируем в response
	suggestions := make([]SlotSuggestion, 0, len(slots))
	for _, slot := range slots {
		suggestions = append(suggestions, SlotSuggestion{
			StartsAt: slot.Window.Start,
			EndsAt:   slot.Window.End,
			Quality:  slot.Quality,
			Tier:     string(slot.Tier),
		})
	}

	return &Response{
		ResourceID:      req.ResourceID,
		Date:            req.Date,
		DurationMinutes: duration,
		Slots:           suggestions,
	}, nil
}
