package update_resource_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	configService "github.com/m04kA/SMC-SchedulingService/internal/service/config"
)

const (
	msgInvalidResourceID  = "некорректный ID ресурса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidConfig      = "некорректные параметры конфигурации"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgResourceNotFound   = "ресурс не найден"
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

// Handle PUT /api/v1/resources/{resourceId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем resourceId из URL
	vars := mux.Vars(r)
	resourceIDStr := vars["resourceId"]

	resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /resources/{id}/config - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /resources/{id}/config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /resources/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	config, err := h.service.Upsert(r.Context(), req.ToServiceRequest(resourceID, userID))
	if err != nil {
		switch {
		case errors.Is(err, configService.ErrInvalidInput):
			h.logger.Warn("PUT /resources/{id}/config - Invalid config: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		case errors.Is(err, configService.ErrAccessDenied):
			h.logger.Warn("PUT /resources/{id}/config - Access denied: resource_id=%d, user_id=%d", resourceID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, configService.ErrResourceNotFound):
			h.logger.Warn("PUT /resources/{id}/config - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		default:
			h.logger.Error("PUT /resources/{id}/config - Failed to upsert config: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /resources/{id}/config - Config upserted: resource_id=%d, config_id=%d", resourceID, config.ID)
	handlers.RespondJSON(w, http.StatusOK, config)
}
