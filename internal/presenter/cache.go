package presenter

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Fetcher - сетевой доступ воркера (аналог fetch платформы).
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// AssetCache - кеш офлайн-ресурсов с поколениями.
// Install наполняет текущее поколение, Activate удаляет все прочие,
// Fetch отдает cache-first с фолбэком в сеть. Точечной инвалидации
// отдельных записей нет.
type AssetCache struct {
	mu         sync.Mutex
	generation string
	caches     map[string]map[string][]byte // поколение -> url -> тело
	fetcher    Fetcher
	logger     *zap.Logger
}

// NewAssetCache создает кеш для указанного поколения (например, "app-cache-v2").
func NewAssetCache(generation string, fetcher Fetcher, logger *zap.Logger) *AssetCache {
	return &AssetCache{
		generation: generation,
		caches:     make(map[string]map[string][]byte),
		fetcher:    fetcher,
		logger:     logger.Named("asset_cache"),
	}
}

// handleInstall наполняет кеш текущего поколения фиксированным списком ресурсов.
func (p *Presenter) handleInstall(ctx context.Context, _ Event) error {
	if p.cache == nil {
		return nil
	}
	return p.cache.Prime(ctx, OfflineAssets)
}

// handleActivate удаляет кеши устаревших поколений.
func (p *Presenter) handleActivate(_ context.Context, _ Event) error {
	if p.cache == nil {
		return nil
	}
	p.cache.EvictStale()
	return nil
}

// handleFetch отдает ресурс из кеша, при промахе - из сети.
func (p *Presenter) handleFetch(ctx context.Context, ev Event) error {
	if p.cache == nil {
		return nil
	}
	_, err := p.cache.Fetch(ctx, ev.RequestURL)
	return err
}

// OfflineAssets - фиксированный список ресурсов, прогреваемых при установке.
var OfflineAssets = []string{
	"/",
	"/index.html",
	"/manifest.json",
	"/icons/icon-192.png",
	"/icons/badge-72.png",
}

// Prime загружает перечисленные ресурсы в кеш текущего поколения.
// Сбой загрузки отдельного ресурса не прерывает прогрев остальных.
func (c *AssetCache) Prime(ctx context.Context, assets []string) error {
	var firstErr error
	for _, url := range assets {
		body, err := c.fetcher.Fetch(ctx, url)
		if err != nil {
			c.logger.Warn("Не удалось закешировать ресурс", zap.String("url", url), zap.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("ошибка прогрева кеша %q: %w", url, err)
			}
			continue
		}
		c.put(url, body)
	}
	return firstErr
}

// EvictStale удаляет все поколения кеша, кроме текущего.
func (c *AssetCache) EvictStale() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for gen := range c.caches {
		if gen != c.generation {
			delete(c.caches, gen)
			c.logger.Info("Удалено устаревшее поколение кеша", zap.String("generation", gen))
		}
	}
}

// Fetch возвращает ресурс: сначала из кеша (любое поколение текущего ключа),
// при промахе - из сети. Сетевой ответ в кеш не дописывается.
func (c *AssetCache) Fetch(ctx context.Context, url string) ([]byte, error) {
	c.mu.Lock()
	if bucket, ok := c.caches[c.generation]; ok {
		if body, hit := bucket[url]; hit {
			c.mu.Unlock()
			return body, nil
		}
	}
	c.mu.Unlock()

	body, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("ресурс %q недоступен ни в кеше, ни в сети: %w", url, err)
	}
	return body, nil
}

// Generations возвращает список поколений, присутствующих в кеше.
func (c *AssetCache) Generations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	gens := make([]string, 0, len(c.caches))
	for gen := range c.caches {
		gens = append(gens, gen)
	}
	return gens
}

// seedGeneration кладет запись в произвольное поколение.
// Нужен тестам EvictStale; продакшн-код пишет только в текущее через put.
func (c *AssetCache) seedGeneration(generation, url string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.caches[generation] == nil {
		c.caches[generation] = make(map[string][]byte)
	}
	c.caches[generation][url] = body
}

func (c *AssetCache) put(url string, body []byte) {
	c.seedGeneration(c.generation, url, body)
}
