package notifications

import (
	"fmt"

	"push-server/shared/constants"
	sharedModels "push-server/shared/models"
)

// Каталог payload'ов: фиксированная таблица "тип события -> шаблон уведомления".
// Каждая запись гарантирует непустые Title/Body, стабильный Tag и Data["url"] -
// на эти четыре поля опираются presenter и обработка кликов.
var payloadCatalog = map[string]sharedModels.NotificationPayload{
	constants.PushEventTypeNewMatch: {
		Title: "You have a new match! 🎉",
		Body:  "Someone liked you back. Open the app to say hi!",
		Icon:  constants.PushIconDefault,
		Badge: constants.PushBadgeSmall,
		Tag:   "new-match",
		Data: map[string]string{
			constants.PushDataKeyURL:  "/matches",
			constants.PushDataKeyType: constants.PushEventTypeNewMatch,
		},
		Actions: []sharedModels.NotificationAction{
			{Action: constants.PushActionView, Title: "View match"},
			{Action: constants.PushActionDismiss, Title: "Dismiss"},
		},
	},
	constants.PushEventTypeNewMessage: {
		Title: "New message 💬",
		Body:  "You have a new message waiting for you.",
		Icon:  constants.PushIconDefault,
		Badge: constants.PushBadgeSmall,
		Tag:   "new-message",
		Data: map[string]string{
			constants.PushDataKeyURL:  "/chats",
			constants.PushDataKeyType: constants.PushEventTypeNewMessage,
		},
		Actions: []sharedModels.NotificationAction{
			{Action: constants.PushActionView, Title: "Reply"},
			{Action: constants.PushActionDismiss, Title: "Later"},
		},
	},
	constants.PushEventTypeChatExpiry: {
		Title: "Your chat is about to expire ⏳",
		Body:  "Don't lose your match - send a message before the chat closes!",
		Icon:  constants.PushIconDefault,
		Badge: constants.PushBadgeSmall,
		Tag:   "chat-expiry",
		Data: map[string]string{
			constants.PushDataKeyURL:  "/chats",
			constants.PushDataKeyType: constants.PushEventTypeChatExpiry,
		},
		Actions: []sharedModels.NotificationAction{
			{Action: constants.PushActionView, Title: "Open chat"},
			{Action: constants.PushActionDismiss, Title: "Dismiss"},
		},
	},
}

// Lookup возвращает копию записи каталога для указанного типа события.
// Неизвестный тип - ошибка клиента (ErrUnknownEventType), не падение сервиса.
func Lookup(eventType string) (sharedModels.NotificationPayload, error) {
	payload, ok := payloadCatalog[eventType]
	if !ok {
		return sharedModels.NotificationPayload{}, fmt.Errorf("%w: %q", sharedModels.ErrUnknownEventType, eventType)
	}
	// Отдаем копию: записи каталога неизменяемы, а вызывающий может обогащать payload.
	return payload.Clone(), nil
}

// KnownEventTypes возвращает список типов событий, присутствующих в каталоге.
// Используется в сообщениях об ошибках и в логах при старте.
func KnownEventTypes() []string {
	types := make([]string, 0, len(payloadCatalog))
	for t := range payloadCatalog {
		types = append(types, t)
	}
	return types
}

// MergeOverrides накладывает per-send переопределения на копию payload.
// Порядок явный: каталог < переопределения отправителя; ключи url и type
// никогда не остаются пустыми (дефолты "/" и "unknown").
// Исходный payload не мутируется.
func MergeOverrides(payload sharedModels.NotificationPayload, overrides map[string]string) sharedModels.NotificationPayload {
	merged := payload.Clone()
	if merged.Data == nil {
		merged.Data = make(map[string]string, len(overrides)+2)
	}
	for k, v := range overrides {
		merged.Data[k] = v
	}
	if merged.Data[constants.PushDataKeyURL] == "" {
		merged.Data[constants.PushDataKeyURL] = constants.PushDefaultURL
	}
	if merged.Data[constants.PushDataKeyType] == "" {
		merged.Data[constants.PushDataKeyType] = constants.PushDefaultEventType
	}
	return merged
}
