package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"push-server/internal/config"
	sharedModels "push-server/shared/models"

	webpush "github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"
)

// PushSender определяет интерфейс доставки одного payload'а одной подписке.
// Реализация обязана различать три исхода: успех (nil), постоянная ошибка
// (обертка над models.ErrSubscriptionGone - подписка подлежит удалению)
// и временная ошибка (любая другая - подписка сохраняется).
type PushSender interface {
	Send(ctx context.Context, sub sharedModels.PushSubscription, payload sharedModels.NotificationPayload) error
	Configured() bool
}

// --- Заглушка для Push Sender ---

type stubPushSender struct {
	logger *zap.Logger
}

// NewStubPushSender создает заглушку, имитирующую успешную доставку.
// Используется, когда VAPID-ключи не настроены.
func NewStubPushSender(logger *zap.Logger) PushSender {
	return &stubPushSender{logger: logger.Named("stub_push_sender")}
}

func (s *stubPushSender) Send(ctx context.Context, sub sharedModels.PushSubscription, payload sharedModels.NotificationPayload) error {
	s.logger.Info("ЗАГЛУШКА: Отправка Web Push",
		zap.String("endpoint", sub.Endpoint),
		zap.String("title", payload.Title),
		zap.String("tag", payload.Tag),
	)
	return nil
}

func (s *stubPushSender) Configured() bool {
	return false
}

// --- Реальный Web Push Sender ---

type webPushSender struct {
	options webpush.Options
	logger  *zap.Logger
}

// NewWebPushSender создает реальный отправитель Web Push (VAPID).
// Возвращает nil, nil, если ключи не настроены или содержат плейсхолдеры -
// вызывающий в этом случае подставляет заглушку.
func NewWebPushSender(cfg config.WebPushConfig, logger *zap.Logger) (PushSender, error) {
	if !cfg.Configured() {
		logger.Warn("VAPID-ключи не настроены, Web Push sender не будет создан.")
		return nil, nil
	}

	logger.Info("Web Push Sender успешно инициализирован",
		zap.String("subscriber", cfg.Subscriber),
		zap.Int("ttl_seconds", cfg.TTLSeconds),
	)
	return &webPushSender{
		options: webpush.Options{
			Subscriber:      cfg.Subscriber,
			VAPIDPublicKey:  cfg.VAPIDPublicKey,
			VAPIDPrivateKey: cfg.VAPIDPrivateKey,
			TTL:             cfg.TTLSeconds,
		},
		logger: logger.Named("webpush_sender"),
	}, nil
}

func (s *webPushSender) Configured() bool {
	return true
}

// Send сериализует payload и отправляет его на endpoint подписки.
// Классификация ответа push-сервиса:
//   - 2xx                -> успех;
//   - 404/410 или текст ошибки про истекшую подписку -> ErrSubscriptionGone;
//   - все остальное      -> временная ошибка (таймаут, rate limit и т.п.).
func (s *webPushSender) Send(ctx context.Context, sub sharedModels.PushSubscription, payload sharedModels.NotificationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ошибка сериализации payload: %w", err)
	}

	resp, err := webpush.SendNotificationWithContext(ctx, body, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			Auth:   sub.Keys.Auth,
			P256dh: sub.Keys.P256dh,
		},
	}, &s.options)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "expired") {
			return fmt.Errorf("%w: %s", sharedModels.ErrSubscriptionGone, err.Error())
		}
		return fmt.Errorf("ошибка отправки web push: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		s.logger.Debug("Web Push уведомление успешно отправлено",
			zap.String("endpoint", sub.Endpoint),
			zap.Int("status_code", resp.StatusCode),
		)
		return nil
	case resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: push service returned %d", sharedModels.ErrSubscriptionGone, resp.StatusCode)
	default:
		return fmt.Errorf("push service returned unexpected status %d", resp.StatusCode)
	}
}
