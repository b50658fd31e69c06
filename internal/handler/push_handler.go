package handler

import (
	"fmt"
	"net/http"

	"push-server/internal/service"
	sharedModels "push-server/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PushHandler обслуживает HTTP ingress сервиса push-уведомлений.
type PushHandler struct {
	dispatcher     *service.Dispatcher
	vapidPublicKey string
	logger         *zap.Logger
}

func NewPushHandler(dispatcher *service.Dispatcher, vapidPublicKey string, logger *zap.Logger) *PushHandler {
	return &PushHandler{
		dispatcher:     dispatcher,
		vapidPublicKey: vapidPublicKey,
		logger:         logger.Named("push_handler"),
	}
}

func (h *PushHandler) RegisterRoutes(router *gin.Engine) {
	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/notify", h.notify)
		apiGroup.GET("/push-status", h.pushStatus)
		apiGroup.GET("/vapid-public-key", h.vapidKey)
	}
}

// notify - единый ingress: регистрация подписки и/или рассылка уведомления.
func (h *PushHandler) notify(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, sharedModels.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %v", err),
		})
		return
	}

	// Только подписка, без типа события - чистая регистрация.
	if req.Type == "" {
		if req.Subscription == nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, sharedModels.ErrorResponse{
				Error: "Request must include a subscription or a notification type",
			})
			return
		}

		count, err := h.dispatcher.RegisterSubscription(*req.Subscription)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, sharedModels.SubscribeResponse{
			Message:            "Subscription registered",
			SubscriptionsCount: count,
		})
		return
	}

	// Рассылка. Если хранилище пустое, а подписка приложена - оппортунистически
	// регистрируем ее перед отправкой (клиент мог подписаться и сразу дернуть рассылку).
	if h.dispatcher.SubscriptionCount() == 0 && req.Subscription != nil {
		if _, err := h.dispatcher.RegisterSubscription(*req.Subscription); err != nil {
			handleServiceError(c, err)
			return
		}
		h.logger.Info("Подписка зарегистрирована перед рассылкой",
			zap.String("endpoint", req.Subscription.Endpoint),
		)
	}

	report, err := h.dispatcher.Dispatch(c.Request.Context(), req.Type)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sharedModels.NotifyResponse{
		Message:            "Notification dispatched",
		Type:               req.Type,
		Sent:               report.Sent,
		Failed:             report.Failed,
		TotalSubscriptions: report.TotalSubscriptions,
	})
}

// pushStatus возвращает число подписок и признак настроенных VAPID-ключей.
func (h *PushHandler) pushStatus(c *gin.Context) {
	c.JSON(http.StatusOK, sharedModels.StatusResponse{
		Subscriptions:   h.dispatcher.SubscriptionCount(),
		VapidConfigured: h.dispatcher.SenderConfigured(),
	})
}

// vapidKey отдает публичный VAPID-ключ для вызова PushManager.subscribe на клиенте.
func (h *PushHandler) vapidKey(c *gin.Context) {
	c.JSON(http.StatusOK, VapidKeyResponse{PublicKey: h.vapidPublicKey})
}
