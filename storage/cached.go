package storage

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// URLCache stores resolved file URLs by key
type URLCache interface {
	GetURL(ctx context.Context, key string) (string, bool)
	SetURL(ctx context.Context, key, url string, ttl time.Duration)
	DeleteURL(ctx context.Context, keys ...string)
}

// CachedStore memoizes preview and download URLs of a FileStore. The TTL
// must stay below the lifetime of the URLs the wrapped store hands out.
type CachedStore struct {
	FileStore
	cache URLCache
	ttl   time.Duration
}

// WithURLCache wraps store with a URL cache. A nil cache returns store as is.
func WithURLCache(store FileStore, cache URLCache, ttl time.Duration) FileStore {
	if cache == nil {
		return store
	}
	return &CachedStore{FileStore: store, cache: cache, ttl: ttl}
}

func (s *CachedStore) PreviewURL(ctx context.Context, id string) (string, error) {
	return s.cached(ctx, "file:preview:"+id, func() (string, error) {
		return s.FileStore.PreviewURL(ctx, id)
	})
}

func (s *CachedStore) DownloadURL(ctx context.Context, id string) (string, error) {
	return s.cached(ctx, "file:download:"+id, func() (string, error) {
		return s.FileStore.DownloadURL(ctx, id)
	})
}

func (s *CachedStore) Delete(ctx context.Context, id string) error {
	s.cache.DeleteURL(ctx, "file:preview:"+id, "file:download:"+id)
	return s.FileStore.Delete(ctx, id)
}

func (s *CachedStore) cached(ctx context.Context, key string, resolve func() (string, error)) (string, error) {
	if url, ok := s.cache.GetURL(ctx, key); ok {
		return url, nil
	}
	url, err := resolve()
	if err != nil {
		return "", err
	}
	s.cache.SetURL(ctx, key, url, s.ttl)
	logrus.WithField("key", key).Debug("Cached file URL")
	return url, nil
}

func (s *CachedStore) Unwrap() FileStore {
	return s.FileStore
}

// AsPreviewer finds a Previewer behind any cache wrappers
func AsPreviewer(store FileStore) (Previewer, bool) {
	for {
		if p, ok := store.(Previewer); ok {
			return p, true
		}
		w, ok := store.(interface{ Unwrap() FileStore })
		if !ok {
			return nil, false
		}
		store = w.Unwrap()
	}
}
