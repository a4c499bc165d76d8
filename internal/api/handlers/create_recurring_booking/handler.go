package create_recurring_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	createRecurring "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_recurring_booking"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidDateTime        = "некорректный формат даты или времени"
	msgMissingUserID          = "отсутствует ID пользователя"
	msgResourceNotFound       = "ресурс не найден"
	msgResourceNotBookable    = "сотрудник не принимает записи"
	msgServiceNotFound        = "услуга не найдена"
	msgServiceInactive        = "услуга недоступна"
	msgBookingInPast          = "серия начинается в прошлом"
	msgGenerationLimit        = "правило повторения порождает слишком длинную серию"
	msgTooManyOccurrences     = "серия превышает лимит вхождений для ресурса"
	msgInvalidInput           = "некорректные параметры серии"
)

type Handler struct {
	useCase CreateRecurringBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateRecurringBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/recurring
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateRecurringBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/recurring - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/recurring - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings/recurring - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createRecurring.ErrResourceNotFound):
			h.logger.Warn("POST /bookings/recurring - Resource not found: resource_id=%d", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, createRecurring.ErrResourceNotBookable):
			h.logger.Warn("POST /bookings/recurring - Resource not bookable: resource_id=%d", req.ResourceID)
			handlers.RespondBadRequest(w, msgResourceNotBookable)

		case errors.Is(err, createRecurring.ErrServiceNotFound):
			h.logger.Warn("POST /bookings/recurring - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createRecurring.ErrServiceInactive):
			h.logger.Warn("POST /bookings/recurring - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, createRecurring.ErrBookingInPast):
			h.logger.Warn("POST /bookings/recurring - Series in past: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondBadRequest(w, msgBookingInPast)

		case errors.Is(err, createRecurring.ErrGenerationLimitExceeded):
			h.logger.Warn("POST /bookings/recurring - Generation limit exceeded: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondUnprocessableEntity(w, msgGenerationLimit)

		case errors.Is(err, createRecurring.ErrTooManyOccurrences):
			h.logger.Warn("POST /bookings/recurring - Too many occurrences: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondUnprocessableEntity(w, msgTooManyOccurrences)

		case errors.Is(err, createRecurring.ErrInvalidInput):
			h.logger.Warn("POST /bookings/recurring - Invalid input: user_id=%d, resource_id=%d, error=%v", userID, req.ResourceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/recurring - Failed to create series: user_id=%d, resource_id=%d, error=%v",
				userID, req.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings/recurring - Series processed: user_id=%d, resource_id=%d, booked=%d/%d",
		userID, req.ResourceID, result.BookedCount, len(result.Occurrences))
	handlers.RespondJSON(w, http.StatusCreated, response)
}
