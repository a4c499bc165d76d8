package suggest_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	suggestSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/suggest_slots"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgMissingDate       = "дата обязательна"
	msgInvalidParams     = "некорректные параметры запроса"
	msgServiceNotFound   = "услуга не найдена"
)

type Handler struct {
	useCase SuggestSlotsUseCase
	logger  Logger
}

func NewHandler(useCase SuggestSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/slot-suggestions
// Query params: date (required, YYYY-MM-DD), serviceId, durationMinutes,
// workStart, workEnd, granularityMinutes, limit (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	resourceIDStr := vars["resourceId"]
	resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/slot-suggestions - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	if r.URL.Query().Get("date") == "" {
		h.logger.Warn("GET /resources/{id}/slot-suggestions - Missing date: resource_id=%d", resourceID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом query параметров)
	useCaseReq, err := ToUseCaseRequest(resourceID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /resources/{id}/slot-suggestions - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, suggestSlots.ErrServiceNotFound):
			h.logger.Warn("GET /resources/{id}/slot-suggestions - Service not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, suggestSlots.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/slot-suggestions - Invalid input: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /resources/{id}/slot-suggestions - Failed to suggest slots: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /resources/{id}/slot-suggestions - Suggestions retrieved: resource_id=%d, slots_count=%d",
		resourceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
