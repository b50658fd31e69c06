package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"push-server/internal/store"
	sharedModels "push-server/shared/models"
	"push-server/shared/notifications"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher выполняет рассылку: разрешает тип события через каталог,
// веером отправляет payload всем подписчикам и удаляет подписки,
// доставка на которые невозможна навсегда.
type Dispatcher struct {
	store       *store.SubscriptionStore
	sender      PushSender
	sendTimeout time.Duration
	logger      *zap.Logger
}

// NewDispatcher создает диспетчер рассылки.
// sendTimeout ограничивает каждую отдельную отправку: push-сервис - это
// удаленный сетевой вызов без собственного дедлайна.
func NewDispatcher(st *store.SubscriptionStore, sender PushSender, sendTimeout time.Duration, logger *zap.Logger) *Dispatcher {
	if sendTimeout <= 0 {
		sendTimeout = 10 * time.Second
	}
	return &Dispatcher{
		store:       st,
		sender:      sender,
		sendTimeout: sendTimeout,
		logger:      logger.Named("dispatcher"),
	}
}

// Dispatch рассылает payload события eventType всем текущим подпискам.
//
// Рассылка не начинается только в двух случаях: неизвестный тип события
// и пустое хранилище. Все остальные ошибки - per-subscription: изолируются,
// считаются и никогда не прерывают доставку остальным. Даже если неудачны
// все попытки, отчет возвращается нормально с Sent = 0 - успех рассылки
// измеряется по подпискам, а не в целом.
func (d *Dispatcher) Dispatch(ctx context.Context, eventType string) (sharedModels.DispatchReport, error) {
	log := d.logger.With(
		zap.String("dispatch_id", uuid.NewString()),
		zap.String("event_type", eventType),
	)

	// 1. Разрешаем тип события через каталог. Промах - ошибка клиента,
	// хранилище не трогаем.
	payload, err := notifications.Lookup(eventType)
	if err != nil {
		return sharedModels.DispatchReport{TotalSubscriptions: d.store.Count()}, err
	}

	// 2. Снапшот подписок. Пустое хранилище - отличимое условие,
	// а не "все попытки неудачны".
	subs := d.store.List()
	if len(subs) == 0 {
		return sharedModels.DispatchReport{}, sharedModels.ErrNoSubscriptions
	}

	log.Info("Начало рассылки", zap.Int("subscriptions", len(subs)))

	// 3. Отправляем каждой подписке независимо и конкурентно.
	// Горутины не разделяют изменяемого состояния, кроме счетчиков под мьютексом.
	var (
		wg            sync.WaitGroup
		mu            sync.Mutex
		sentCount     int
		failedCount   int
		goneEndpoints []string
	)

	for _, sub := range subs {
		wg.Add(1)
		go func(sub sharedModels.PushSubscription) {
			defer wg.Done()

			sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
			defer cancel()

			err := d.sender.Send(sendCtx, sub, payload)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				sentCount++
			case errors.Is(err, sharedModels.ErrSubscriptionGone):
				// 4. Постоянная ошибка: endpoint мертв, помечаем на удаление.
				failedCount++
				goneEndpoints = append(goneEndpoints, sub.Endpoint)
				log.Warn("Подписка недействительна, будет удалена",
					zap.String("endpoint", sub.Endpoint),
					zap.Error(err),
				)
			default:
				// Временная ошибка: считаем, подписку сохраняем.
				// Повторная попытка откладывается до следующего реального события.
				failedCount++
				log.Error("Ошибка доставки уведомления",
					zap.String("endpoint", sub.Endpoint),
					zap.Error(err),
				)
			}
		}(sub)
	}

	wg.Wait()

	// 5. Чистим мертвые подписки одним батчем, по значению endpoint.
	if len(goneEndpoints) > 0 {
		removed := d.store.Remove(goneEndpoints...)
		log.Info("Недействительные подписки удалены", zap.Int("removed", removed))
	}

	report := sharedModels.DispatchReport{
		Sent:               sentCount,
		Failed:             failedCount,
		TotalSubscriptions: d.store.Count(),
	}
	log.Info("Рассылка завершена",
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed),
		zap.Int("total_subscriptions", report.TotalSubscriptions),
	)
	return report, nil
}

// SenderConfigured сообщает, настроен ли реальный транспорт доставки.
func (d *Dispatcher) SenderConfigured() bool {
	return d.sender.Configured()
}

// RegisterSubscription валидирует и сохраняет подписку.
func (d *Dispatcher) RegisterSubscription(sub sharedModels.PushSubscription) (int, error) {
	count, err := d.store.Register(sub)
	if err != nil {
		return count, fmt.Errorf("ошибка регистрации подписки: %w", err)
	}
	return count, nil
}

// SubscriptionCount возвращает текущее число подписок.
func (d *Dispatcher) SubscriptionCount() int {
	return d.store.Count()
}
