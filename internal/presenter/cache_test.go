package presenter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFetcher struct {
	responses map[string][]byte
	calls     []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	body, ok := f.responses[url]
	if !ok {
		return nil, errors.New("network error")
	}
	return body, nil
}

func TestPrimePopulatesCurrentGeneration(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string][]byte{
		"/":           []byte("index"),
		"/index.html": []byte("index"),
	}}
	cache := NewAssetCache("app-v2", fetcher, zap.NewNop())

	err := cache.Prime(context.Background(), []string{"/", "/index.html"})
	require.NoError(t, err)
	assert.Equal(t, []string{"app-v2"}, cache.Generations())

	// Закешированное отдается без похода в сеть.
	fetcher.calls = nil
	body, err := cache.Fetch(context.Background(), "/")
	require.NoError(t, err)
	assert.Equal(t, []byte("index"), body)
	assert.Empty(t, fetcher.calls)
}

func TestPrimeContinuesAfterFailedAsset(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string][]byte{
		"/good": []byte("ok"),
	}}
	cache := NewAssetCache("app-v2", fetcher, zap.NewNop())

	// Сбой одного ресурса не прерывает прогрев остальных.
	err := cache.Prime(context.Background(), []string{"/missing", "/good"})
	require.Error(t, err)

	body, err := cache.Fetch(context.Background(), "/good")
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), body)
}

func TestEvictStaleRemovesOldGenerationsOnly(t *testing.T) {
	cache := NewAssetCache("app-v2", &fakeFetcher{}, zap.NewNop())
	cache.seedGeneration("app-v1", "/", []byte("old"))
	cache.seedGeneration("app-v2", "/", []byte("current"))

	cache.EvictStale()

	assert.Equal(t, []string{"app-v2"}, cache.Generations())
}

func TestFetchFallsBackToNetwork(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string][]byte{
		"/api/data": []byte("fresh"),
	}}
	cache := NewAssetCache("app-v2", fetcher, zap.NewNop())

	// Промах кеша: идем в сеть, но ответ в кеш не дописываем.
	body, err := cache.Fetch(context.Background(), "/api/data")
	require.NoError(t, err)
	assert.Equal(t, []byte("fresh"), body)

	_, err = cache.Fetch(context.Background(), "/api/data")
	require.NoError(t, err)
	assert.Equal(t, []string{"/api/data", "/api/data"}, fetcher.calls)
}

func TestFetchMissEverywhereFails(t *testing.T) {
	cache := NewAssetCache("app-v2", &fakeFetcher{}, zap.NewNop())

	_, err := cache.Fetch(context.Background(), "/nope")
	require.Error(t, err)
}

func TestInstallActivateFetchViaDispatchTable(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string][]byte{}}
	for _, asset := range OfflineAssets {
		fetcher.responses[asset] = []byte("asset")
	}
	cache := NewAssetCache("app-v2", fetcher, zap.NewNop())
	cache.seedGeneration("app-v1", "/", []byte("stale"))

	p := NewPresenter(&fakeNotifier{}, &fakeRegistry{}, cache, zap.NewNop())

	p.Handle(context.Background(), Event{Kind: EventInstall})
	p.Handle(context.Background(), Event{Kind: EventActivate})

	// Install прогрел текущее поколение, Activate убрал устаревшее.
	assert.Equal(t, []string{"app-v2"}, cache.Generations())

	p.Handle(context.Background(), Event{Kind: EventFetch, RequestURL: "/index.html"})
}
