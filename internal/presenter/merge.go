package presenter

import (
	"push-server/shared/constants"
	sharedModels "push-server/shared/models"
)

// Встроенные дефолты показа. Нижний слой merge: все, что задано payload'ом,
// их перекрывает.
var defaultOptions = NotificationOptions{
	Icon:               constants.PushIconDefault,
	Badge:              constants.PushBadgeSmall,
	Vibrate:            []int{200, 100, 200},
	RequireInteraction: true,
	Renotify:           true,
}

// BuildNotification собирает уведомление из payload по явному упорядоченному
// merge над фиксированным набором полей:
//
//	дефолты < поля записи каталога < одноименные ключи payload.Data,
//
// с двумя исключениями: Data["url"] и Data["type"] никогда не остаются
// пустыми (дефолты "/" и "unknown"). Никакого неявного deep-merge.
func BuildNotification(payload sharedModels.NotificationPayload) ShownNotification {
	opts := defaultOptions
	opts.Vibrate = append([]int(nil), defaultOptions.Vibrate...)

	// Слой каталога.
	title := payload.Title
	opts.Body = payload.Body
	if payload.Icon != "" {
		opts.Icon = payload.Icon
	}
	if payload.Badge != "" {
		opts.Badge = payload.Badge
	}
	opts.Tag = payload.Tag
	opts.Actions = append([]sharedModels.NotificationAction(nil), payload.Actions...)

	// Слой data: копия, чтобы не трогать payload вызывающего.
	data := make(map[string]string, len(payload.Data)+2)
	for k, v := range payload.Data {
		data[k] = v
	}

	// Одноименные ключи data перекрывают поля каталога.
	if v, ok := data["title"]; ok && v != "" {
		title = v
	}
	if v, ok := data["body"]; ok && v != "" {
		opts.Body = v
	}
	if v, ok := data["icon"]; ok && v != "" {
		opts.Icon = v
	}
	if v, ok := data["badge"]; ok && v != "" {
		opts.Badge = v
	}
	if v, ok := data["tag"]; ok && v != "" {
		opts.Tag = v
	}

	// url и type - всегда с дефолтом.
	if data[constants.PushDataKeyURL] == "" {
		data[constants.PushDataKeyURL] = constants.PushDefaultURL
	}
	if data[constants.PushDataKeyType] == "" {
		data[constants.PushDataKeyType] = constants.PushDefaultEventType
	}
	opts.Data = data

	return ShownNotification{Title: title, Options: opts}
}
