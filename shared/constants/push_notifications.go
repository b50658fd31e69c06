package constants

// Event types used in push notification data payload
const (
	PushEventTypeNewMatch   = "new_match"   // Новый матч
	PushEventTypeNewMessage = "new_message" // Новое сообщение в чате
	PushEventTypeChatExpiry = "chat_expiry" // Чат скоро истечет
)

// Ключи data payload, на которые опирается presenter и обработка кликов.
// Эти два ключа всегда присутствуют после merge (см. shared/notifications).
const (
	PushDataKeyURL  = "url"
	PushDataKeyType = "type"
)

// Значения по умолчанию для data payload, когда каталог или отправитель их не задал.
const (
	PushDefaultURL       = "/"
	PushDefaultEventType = "unknown"
)

// Идентификаторы действий в уведомлении.
const (
	// PushActionView - явное действие "открыть" (эквивалент клика по телу уведомления).
	PushActionView = "view"
	// PushActionDismiss - действие "закрыть": уведомление закрывается, навигации нет.
	PushActionDismiss = "dismiss"
)

// Пути к иконкам уведомлений (отдаются как статика приложения).
const (
	PushIconDefault = "/icons/icon-192.png"
	PushBadgeSmall  = "/icons/badge-72.png"
)
