// Package presenter реализует воркер отображения уведомлений: принимает
// доставленные payload'ы и события взаимодействия пользователя и превращает
// их в показ OS-уведомлений и действия с окнами приложения.
//
// Воркер исполняется в отдельном контексте и не имеет прямого доступа к
// хранилищу подписок или диспетчеру - все внешние возможности платформы
// (показ уведомлений, реестр окон, сеть) абстрагированы интерфейсами.
package presenter

import (
	"context"
	"encoding/json"

	"push-server/shared/constants"
	sharedModels "push-server/shared/models"

	"go.uber.org/zap"
)

// EventKind - вид входящего события воркера.
type EventKind string

const (
	EventPush              EventKind = "push"
	EventNotificationClick EventKind = "notificationclick"
	EventNotificationClose EventKind = "notificationclose"
	EventInstall           EventKind = "install"
	EventActivate          EventKind = "activate"
	EventFetch             EventKind = "fetch"
)

// Event - одно входящее событие. Заполненность полей зависит от вида:
// push несет Body (может быть пустым или невалидным), click/close несут
// Notification и Action, fetch несет RequestURL.
type Event struct {
	Kind         EventKind
	Body         []byte
	Notification *ShownNotification
	Action       string
	RequestURL   string
}

// NotificationOptions - опции показа уведомления после merge.
type NotificationOptions struct {
	Body               string
	Icon               string
	Badge              string
	Tag                string
	Vibrate            []int
	RequireInteraction bool
	Renotify           bool
	Data               map[string]string
	Actions            []sharedModels.NotificationAction
}

// ShownNotification - уведомление, переданное платформе на показ.
type ShownNotification struct {
	Title   string
	Options NotificationOptions
}

// Notifier - возможность платформы показывать и закрывать уведомления.
type Notifier interface {
	Show(ctx context.Context, n ShownNotification) error
	Close(ctx context.Context, tag string) error
}

// HandlerFunc обрабатывает одно событие воркера.
type HandlerFunc func(ctx context.Context, ev Event) error

// Presenter маршрутизирует события по таблице обработчиков.
// Каждый обработчик независим и тестируется отдельно.
type Presenter struct {
	notifier Notifier
	windows  WindowRegistry
	cache    *AssetCache
	handlers map[EventKind]HandlerFunc
	logger   *zap.Logger
}

// NewPresenter собирает воркер с таблицей обработчиков событий.
func NewPresenter(notifier Notifier, windows WindowRegistry, cache *AssetCache, logger *zap.Logger) *Presenter {
	p := &Presenter{
		notifier: notifier,
		windows:  windows,
		cache:    cache,
		logger:   logger.Named("presenter"),
	}
	p.handlers = map[EventKind]HandlerFunc{
		EventPush:              p.handlePush,
		EventNotificationClick: p.handleClick,
		EventNotificationClose: p.handleClose,
		EventInstall:           p.handleInstall,
		EventActivate:          p.handleActivate,
		EventFetch:             p.handleFetch,
	}
	return p
}

// Handle обрабатывает событие. Ошибки обработчиков логируются и никогда
// не распространяются: сбой деградирует до no-op, воркер не падает.
func (p *Presenter) Handle(ctx context.Context, ev Event) {
	handler, ok := p.handlers[ev.Kind]
	if !ok {
		p.logger.Warn("Неизвестный вид события", zap.String("kind", string(ev.Kind)))
		return
	}
	if err := handler(ctx, ev); err != nil {
		p.logger.Error("Ошибка обработки события",
			zap.String("kind", string(ev.Kind)),
			zap.Error(err),
		)
	}
}

// handlePush показывает уведомление по доставленному payload.
// Нечитаемое тело - не ошибка: показываем generic fallback-уведомление.
func (p *Presenter) handlePush(ctx context.Context, ev Event) error {
	var payload sharedModels.NotificationPayload
	if len(ev.Body) == 0 || json.Unmarshal(ev.Body, &payload) != nil || payload.Title == "" {
		p.logger.Warn("Push без читаемого payload, показываем fallback")
		return p.notifier.Show(ctx, fallbackNotification())
	}
	return p.notifier.Show(ctx, BuildNotification(payload))
}

// handleClose - информационное событие, обязательных побочных эффектов нет.
func (p *Presenter) handleClose(_ context.Context, ev Event) error {
	tag := ""
	if ev.Notification != nil {
		tag = ev.Notification.Options.Tag
	}
	p.logger.Debug("Уведомление закрыто пользователем", zap.String("tag", tag))
	return nil
}

// fallbackNotification - фиксированное уведомление на случай пустого
// или нечитаемого payload. Всегда ведет на корень приложения.
func fallbackNotification() ShownNotification {
	return ShownNotification{
		Title: "New notification",
		Options: NotificationOptions{
			Body:  "You have a new notification.",
			Icon:  constants.PushIconDefault,
			Badge: constants.PushBadgeSmall,
			Data: map[string]string{
				constants.PushDataKeyURL:  constants.PushDefaultURL,
				constants.PushDataKeyType: constants.PushDefaultEventType,
			},
		},
	}
}
