package storefront

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/matst80/car-finder/pkg/cache"
	"github.com/matst80/car-finder/pkg/types"
	"golang.org/x/sync/singleflight"
)

const vocabularyKey = "vocabulary"

type VocabularyFetcher interface {
	FetchVocabulary(ctx context.Context) (*types.Vocabulary, error)
}

// VocabularyLoader fetches the filter options once and shares the snapshot.
// Concurrent loads collapse into one backend call.
type VocabularyLoader struct {
	fetcher VocabularyFetcher
	cache   *cache.Helper[types.Vocabulary]
	ttl     time.Duration
	group   singleflight.Group

	mu       sync.RWMutex
	snapshot *types.Vocabulary
}

func NewVocabularyLoader(fetcher VocabularyFetcher) *VocabularyLoader {
	return &VocabularyLoader{fetcher: fetcher}
}

// WithCache keeps the snapshot in c for ttl so restarts and other instances
// skip the backend call.
func (l *VocabularyLoader) WithCache(c *cache.Cache, ttl time.Duration) *VocabularyLoader {
	l.cache = cache.NewHelper[types.Vocabulary](c)
	l.ttl = ttl
	return l
}

// Current returns the loaded snapshot, or nil before the first load.
func (l *VocabularyLoader) Current() *types.Vocabulary {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshot
}

// Load returns the snapshot, fetching it if none has been loaded.
func (l *VocabularyLoader) Load(ctx context.Context) (*types.Vocabulary, error) {
	if v := l.Current(); v != nil {
		return v, nil
	}
	res, err, _ := l.group.Do(vocabularyKey, func() (any, error) {
		if v := l.Current(); v != nil {
			return v, nil
		}
		v, err := l.cache.Handle(ctx, vocabularyKey, l.ttl, func(ctx context.Context) (types.Vocabulary, error) {
			v, err := l.fetcher.FetchVocabulary(ctx)
			if err != nil {
				return types.Vocabulary{}, err
			}
			return *v, nil
		})
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.snapshot = &v
		l.mu.Unlock()
		return &v, nil
	})
	if err != nil {
		log.Printf("Failed to fetch vocabulary %v", err)
		return nil, err
	}
	return res.(*types.Vocabulary), nil
}

// Invalidate drops the snapshot so the next Load fetches again.
func (l *VocabularyLoader) Invalidate(ctx context.Context) {
	l.mu.Lock()
	l.snapshot = nil
	l.mu.Unlock()
	if l.cache != nil && l.cache.Cache != nil {
		if err := l.cache.Cache.Delete(ctx, vocabularyKey); err != nil {
			log.Printf("Failed to drop cached vocabulary %v", err)
		}
	}
}
