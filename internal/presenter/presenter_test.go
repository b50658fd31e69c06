package presenter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"push-server/shared/constants"
	sharedModels "push-server/shared/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Фейки возможностей платформы ---

type fakeNotifier struct {
	shown      []ShownNotification
	closedTags []string
	showErr    error
}

func (f *fakeNotifier) Show(_ context.Context, n ShownNotification) error {
	if f.showErr != nil {
		return f.showErr
	}
	f.shown = append(f.shown, n)
	return nil
}

func (f *fakeNotifier) Close(_ context.Context, tag string) error {
	f.closedTags = append(f.closedTags, tag)
	return nil
}

type fakeWindow struct {
	url       string
	focusable bool
	focused   bool
	navigated []string
}

func (w *fakeWindow) URL() string     { return w.url }
func (w *fakeWindow) Focusable() bool { return w.focusable }
func (w *fakeWindow) Focus(context.Context) error {
	w.focused = true
	return nil
}
func (w *fakeWindow) Navigate(_ context.Context, url string) error {
	w.navigated = append(w.navigated, url)
	w.url = url
	return nil
}

type fakeRegistry struct {
	windows     []WindowClient
	opened      []string
	matchAllErr error
}

func (r *fakeRegistry) MatchAll(context.Context) ([]WindowClient, error) {
	if r.matchAllErr != nil {
		return nil, r.matchAllErr
	}
	return r.windows, nil
}

func (r *fakeRegistry) OpenWindow(_ context.Context, url string) (WindowClient, error) {
	r.opened = append(r.opened, url)
	return &fakeWindow{url: url, focusable: true}, nil
}

func newTestPresenter(notifier *fakeNotifier, registry *fakeRegistry) *Presenter {
	return NewPresenter(notifier, registry, nil, zap.NewNop())
}

// --- Push: fallback и merge ---

func TestPushWithEmptyBodyShowsFallback(t *testing.T) {
	notifier := &fakeNotifier{}
	p := newTestPresenter(notifier, &fakeRegistry{})

	p.Handle(context.Background(), Event{Kind: EventPush, Body: nil})

	// Ровно одно fallback-уведомление, ведущее на корень приложения.
	require.Len(t, notifier.shown, 1)
	assert.Equal(t, constants.PushDefaultURL, notifier.shown[0].Options.Data[constants.PushDataKeyURL])
	assert.Equal(t, constants.PushDefaultEventType, notifier.shown[0].Options.Data[constants.PushDataKeyType])
	assert.NotEmpty(t, notifier.shown[0].Title)
}

func TestPushWithGarbageBodyShowsFallback(t *testing.T) {
	notifier := &fakeNotifier{}
	p := newTestPresenter(notifier, &fakeRegistry{})

	p.Handle(context.Background(), Event{Kind: EventPush, Body: []byte("{not json")})

	require.Len(t, notifier.shown, 1)
	assert.Equal(t, constants.PushDefaultURL, notifier.shown[0].Options.Data[constants.PushDataKeyURL])
}

func TestPushWithValidPayloadShowsMergedNotification(t *testing.T) {
	notifier := &fakeNotifier{}
	p := newTestPresenter(notifier, &fakeRegistry{})

	payload := sharedModels.NotificationPayload{
		Title: "New message 💬",
		Body:  "You have a new message.",
		Tag:   "new-message",
		Data: map[string]string{
			constants.PushDataKeyURL:  "/chats",
			constants.PushDataKeyType: "new_message",
		},
		Actions: []sharedModels.NotificationAction{
			{Action: constants.PushActionView, Title: "Reply"},
			{Action: constants.PushActionDismiss, Title: "Later"},
		},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	p.Handle(context.Background(), Event{Kind: EventPush, Body: body})

	require.Len(t, notifier.shown, 1)
	shown := notifier.shown[0]
	assert.Equal(t, "New message 💬", shown.Title)
	assert.Equal(t, "new-message", shown.Options.Tag)
	assert.Equal(t, "/chats", shown.Options.Data[constants.PushDataKeyURL])
	// Дефолты нижнего слоя дошли до показа.
	assert.Equal(t, constants.PushIconDefault, shown.Options.Icon)
	assert.True(t, shown.Options.Renotify)
	require.Len(t, shown.Options.Actions, 2)
}

func TestPushShowErrorDoesNotPanic(t *testing.T) {
	notifier := &fakeNotifier{showErr: errors.New("display unavailable")}
	p := newTestPresenter(notifier, &fakeRegistry{})

	// Ошибка показа логируется, воркер не падает.
	p.Handle(context.Background(), Event{Kind: EventPush, Body: nil})
	assert.Empty(t, notifier.shown)
}

// --- Клики ---

func clickEvent(action, targetURL, tag string) Event {
	return Event{
		Kind:   EventNotificationClick,
		Action: action,
		Notification: &ShownNotification{
			Title: "t",
			Options: NotificationOptions{
				Tag:  tag,
				Data: map[string]string{constants.PushDataKeyURL: targetURL},
			},
		},
	}
}

func TestClickDismissClosesWithoutNavigation(t *testing.T) {
	notifier := &fakeNotifier{}
	registry := &fakeRegistry{windows: []WindowClient{&fakeWindow{url: "/", focusable: true}}}
	p := newTestPresenter(notifier, registry)

	p.Handle(context.Background(), clickEvent(constants.PushActionDismiss, "/matches", "new-match"))

	// Закрыли уведомление и ничего больше: ни фокуса, ни навигации, ни открытия окон.
	assert.Equal(t, []string{"new-match"}, notifier.closedTags)
	win := registry.windows[0].(*fakeWindow)
	assert.False(t, win.focused)
	assert.Empty(t, win.navigated)
	assert.Empty(t, registry.opened)
}

func TestClickViewFocusesAndNavigates(t *testing.T) {
	notifier := &fakeNotifier{}
	win := &fakeWindow{url: "/", focusable: true}
	registry := &fakeRegistry{windows: []WindowClient{win}}
	p := newTestPresenter(notifier, registry)

	p.Handle(context.Background(), clickEvent(constants.PushActionView, "/matches", "new-match"))

	assert.True(t, win.focused)
	assert.Equal(t, []string{"/matches"}, win.navigated)
	assert.Empty(t, registry.opened)
}

func TestClickDefaultActionBehavesLikeView(t *testing.T) {
	notifier := &fakeNotifier{}
	win := &fakeWindow{url: "/", focusable: true}
	registry := &fakeRegistry{windows: []WindowClient{win}}
	p := newTestPresenter(notifier, registry)

	// Клик по телу уведомления: action пустой.
	p.Handle(context.Background(), clickEvent("", "/chats", "new-message"))

	assert.True(t, win.focused)
	assert.Equal(t, []string{"/chats"}, win.navigated)
}

func TestClickSkipsNavigationWhenAlreadyOnTarget(t *testing.T) {
	notifier := &fakeNotifier{}
	win := &fakeWindow{url: "/matches", focusable: true}
	registry := &fakeRegistry{windows: []WindowClient{win}}
	p := newTestPresenter(notifier, registry)

	p.Handle(context.Background(), clickEvent(constants.PushActionView, "/matches", "new-match"))

	// Фокус есть, навигации нет: окно уже на целевом URL.
	assert.True(t, win.focused)
	assert.Empty(t, win.navigated)
}

func TestClickOpensNewWindowWhenNoneFocusable(t *testing.T) {
	notifier := &fakeNotifier{}
	registry := &fakeRegistry{windows: []WindowClient{&fakeWindow{url: "/", focusable: false}}}
	p := newTestPresenter(notifier, registry)

	p.Handle(context.Background(), clickEvent(constants.PushActionView, "/chats", "new-message"))

	assert.Equal(t, []string{"/chats"}, registry.opened)
}

func TestClickRegistryErrorIsContained(t *testing.T) {
	notifier := &fakeNotifier{}
	registry := &fakeRegistry{matchAllErr: errors.New("registry unavailable")}
	p := newTestPresenter(notifier, registry)

	// Ошибка поиска окон ловится и логируется, воркер не падает.
	p.Handle(context.Background(), clickEvent(constants.PushActionView, "/chats", "new-message"))
	assert.Empty(t, registry.opened)
}

func TestCloseEventHasNoSideEffects(t *testing.T) {
	notifier := &fakeNotifier{}
	registry := &fakeRegistry{windows: []WindowClient{&fakeWindow{url: "/", focusable: true}}}
	p := newTestPresenter(notifier, registry)

	p.Handle(context.Background(), Event{
		Kind:         EventNotificationClose,
		Notification: &ShownNotification{Options: NotificationOptions{Tag: "new-match"}},
	})

	assert.Empty(t, notifier.closedTags)
	assert.Empty(t, notifier.shown)
	assert.Empty(t, registry.opened)
}
