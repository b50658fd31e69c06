package handler

import (
	sharedModels "push-server/shared/models"
)

// NotifyRequest - тело запроса единого ingress-эндпоинта /api/notify.
// Возможны три комбинации:
//   - только subscription  -> регистрация подписки;
//   - type (+ опционально subscription при пустом хранилище) -> рассылка;
//   - ни того, ни другого  -> ошибка валидации.
type NotifyRequest struct {
	Type         string                         `json:"type,omitempty"`
	Subscription *sharedModels.PushSubscription `json:"subscription,omitempty"`
}

// VapidKeyResponse - ответ с публичным VAPID-ключом для PushManager.subscribe.
type VapidKeyResponse struct {
	PublicKey string `json:"publicKey"`
}
