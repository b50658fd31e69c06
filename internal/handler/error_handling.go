package handler

import (
	"errors"
	"net/http"

	sharedModels "push-server/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// handleServiceError сопоставляет доменные ошибки с HTTP-статусами.
// Доменные ошибки (неизвестный тип события, пустое хранилище, невалидная подписка)
// - это ошибки клиента и отдаются с конкретным сообщением. Все прочее - 500
// с диагностической строкой в details.
func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp sharedModels.ErrorResponse

	switch {
	case errors.Is(err, sharedModels.ErrInvalidSubscription):
		statusCode = http.StatusBadRequest
		errResp = sharedModels.ErrorResponse{Error: sharedModels.ErrInvalidSubscription.Error()}
	case errors.Is(err, sharedModels.ErrUnknownEventType):
		statusCode = http.StatusBadRequest
		errResp = sharedModels.ErrorResponse{Error: err.Error()}
	case errors.Is(err, sharedModels.ErrNoSubscriptions):
		statusCode = http.StatusBadRequest
		errResp = sharedModels.ErrorResponse{Error: "No subscriptions found"}
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = sharedModels.ErrorResponse{
			Error:   "Failed to send notification",
			Details: err.Error(),
		}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}
