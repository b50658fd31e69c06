package presenter

import (
	"context"
	"fmt"

	"push-server/shared/constants"

	"go.uber.org/zap"
)

// WindowClient - одно открытое окно приложения.
type WindowClient interface {
	URL() string
	Focusable() bool
	Focus(ctx context.Context) error
	Navigate(ctx context.Context, url string) error
}

// WindowRegistry - реестр окон приложения, предоставляемый платформой.
type WindowRegistry interface {
	MatchAll(ctx context.Context) ([]WindowClient, error)
	OpenWindow(ctx context.Context, url string) (WindowClient, error)
}

// handleClick маршрутизирует клик по уведомлению.
// Действие dismiss-класса закрывает уведомление без какой-либо навигации.
// Любой другой клик (по телу или по действию "view") закрывает уведомление
// и фокусирует либо открывает окно приложения на целевом URL.
func (p *Presenter) handleClick(ctx context.Context, ev Event) error {
	if ev.Notification == nil {
		p.logger.Warn("Клик без данных уведомления, игнорируем")
		return nil
	}

	tag := ev.Notification.Options.Tag
	if err := p.notifier.Close(ctx, tag); err != nil {
		// Сбой закрытия не должен мешать навигации.
		p.logger.Warn("Не удалось закрыть уведомление", zap.String("tag", tag), zap.Error(err))
	}

	if ev.Action == constants.PushActionDismiss {
		p.logger.Debug("Уведомление отклонено", zap.String("tag", tag))
		return nil
	}

	targetURL := ev.Notification.Options.Data[constants.PushDataKeyURL]
	if targetURL == "" {
		targetURL = constants.PushDefaultURL
	}

	// Любая ошибка поиска/фокусировки ловится здесь и логируется (в Handle),
	// но не роняет воркер.
	if err := p.focusOrOpen(ctx, targetURL); err != nil {
		return fmt.Errorf("ошибка фокусировки окна: %w", err)
	}
	return nil
}

// focusOrOpen фокусирует первое пригодное окно приложения, при необходимости
// переводя его на целевой URL; если фокусируемых окон нет - открывает новое.
func (p *Presenter) focusOrOpen(ctx context.Context, targetURL string) error {
	windows, err := p.windows.MatchAll(ctx)
	if err != nil {
		return fmt.Errorf("ошибка получения списка окон: %w", err)
	}

	for _, w := range windows {
		if !w.Focusable() {
			continue
		}
		if err := w.Focus(ctx); err != nil {
			return fmt.Errorf("ошибка фокусировки: %w", err)
		}
		// Навигация только если окно уже не на целевом URL.
		if w.URL() != targetURL {
			if err := w.Navigate(ctx, targetURL); err != nil {
				return fmt.Errorf("ошибка навигации: %w", err)
			}
		}
		p.logger.Debug("Окно сфокусировано", zap.String("url", targetURL))
		return nil
	}

	if _, err := p.windows.OpenWindow(ctx, targetURL); err != nil {
		return fmt.Errorf("ошибка открытия окна: %w", err)
	}
	p.logger.Debug("Открыто новое окно", zap.String("url", targetURL))
	return nil
}
