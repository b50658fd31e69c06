package store

import (
	"sync"

	sharedModels "push-server/shared/models"

	"go.uber.org/zap"
)

// SubscriptionStore - реестр push-подписок в памяти процесса.
// Идентичность подписки = значение endpoint. Персистентности нет:
// при рестарте процесса подписки теряются (осознанное ограничение).
//
// Дисциплина доступа: мутации (Register/Remove) сериализуются мьютексом,
// чтение отдает копию-снапшот. Диспетчер никогда не мутирует реестр сам -
// он возвращает список endpoint'ов, которые Store удаляет одним батчем.
type SubscriptionStore struct {
	mu     sync.RWMutex
	subs   []sharedModels.PushSubscription
	index  map[string]int // endpoint -> позиция в subs
	logger *zap.Logger
}

// NewSubscriptionStore создает пустой реестр подписок.
func NewSubscriptionStore(logger *zap.Logger) *SubscriptionStore {
	return &SubscriptionStore{
		subs:   make([]sharedModels.PushSubscription, 0),
		index:  make(map[string]int),
		logger: logger.Named("subscription_store"),
	}
}

// Register вставляет подписку или заменяет существующую с тем же endpoint.
// Замена происходит на месте: запись сохраняет исходную позицию, дубликатов
// не возникает. Возвращает общее число подписок после операции.
func (s *SubscriptionStore) Register(sub sharedModels.PushSubscription) (int, error) {
	if err := sub.Validate(); err != nil {
		return s.Count(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if pos, ok := s.index[sub.Endpoint]; ok {
		// Повторная регистрация: обновляем ключи на месте.
		s.subs[pos] = sub
		s.logger.Debug("Подписка обновлена", zap.String("endpoint", sub.Endpoint))
		return len(s.subs), nil
	}

	s.subs = append(s.subs, sub)
	s.index[sub.Endpoint] = len(s.subs) - 1
	s.logger.Info("Подписка зарегистрирована",
		zap.String("endpoint", sub.Endpoint),
		zap.Int("total", len(s.subs)),
	)
	return len(s.subs), nil
}

// List возвращает снапшот реестра в порядке вставки.
// Копия независима от внутреннего состояния: последующие мутации
// реестра на нее не влияют.
func (s *SubscriptionStore) List() []sharedModels.PushSubscription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]sharedModels.PushSubscription, len(s.subs))
	copy(snapshot, s.subs)
	return snapshot
}

// Remove удаляет все подписки с перечисленными endpoint'ами одним батчем.
// Неизвестные endpoint'ы игнорируются. Удаление ведется по значению endpoint,
// а не по позиции: конкурентные отправки завершаются в произвольном порядке,
// и позиционные индексы к моменту удаления уже ничего не значат.
func (s *SubscriptionStore) Remove(endpoints ...string) int {
	if len(endpoints) == 0 {
		return 0
	}

	victims := make(map[string]struct{}, len(endpoints))
	for _, e := range endpoints {
		victims[e] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.subs[:0]
	removed := 0
	for _, sub := range s.subs {
		if _, gone := victims[sub.Endpoint]; gone {
			removed++
			continue
		}
		kept = append(kept, sub)
	}
	if removed == 0 {
		return 0
	}

	s.subs = kept
	// Перестраиваем индекс: позиции сдвинулись.
	s.index = make(map[string]int, len(s.subs))
	for i, sub := range s.subs {
		s.index[sub.Endpoint] = i
	}

	s.logger.Info("Подписки удалены",
		zap.Int("removed", removed),
		zap.Int("remaining", len(s.subs)),
	)
	return removed
}

// Count возвращает текущее число подписок.
func (s *SubscriptionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
