package get_resource_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	configService "github.com/m04kA/SMC-SchedulingService/internal/service/config"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgNotFound          = "конфигурация расписания не найдена"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем resourceId из URL
	vars := mux.Vars(r)
	resourceIDStr := vars["resourceId"]

	resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/config - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	config, err := h.service.GetByResource(r.Context(), resourceID)
	if err != nil {
		switch {
		case errors.Is(err, configService.ErrConfigNotFound):
			h.logger.Warn("GET /resources/{id}/config - Config not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /resources/{id}/config - Failed to get config: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/config - Config retrieved: resource_id=%d", resourceID)
	handlers.RespondJSON(w, http.StatusOK, config)
}
