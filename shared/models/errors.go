package models

import "errors"

// Доменные ошибки сервиса. Хендлеры сопоставляют их с HTTP-статусами
// через errors.Is, сервисы оборачивают через fmt.Errorf("...: %w", err).
var (
	// ErrInvalidSubscription - подписка без endpoint или отсутствующая вовсе.
	ErrInvalidSubscription = errors.New("invalid subscription: endpoint is required")

	// ErrUnknownEventType - тип события отсутствует в каталоге payload'ов.
	ErrUnknownEventType = errors.New("unknown event type")

	// ErrNoSubscriptions - рассылка запрошена при пустом хранилище подписок.
	// Отличаем "некому отправлять" от "отправили, но все попытки неудачны".
	ErrNoSubscriptions = errors.New("no subscriptions found")

	// ErrSubscriptionGone - транспорт сообщил, что endpoint больше не существует
	// (HTTP 404/410 от push-сервиса). Постоянный класс ошибки: подписка удаляется.
	ErrSubscriptionGone = errors.New("subscription is gone or expired")
)
