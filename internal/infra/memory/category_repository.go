package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"feud-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// CategoryLoader fetches category content from a backing store (files, Postgres).
type CategoryLoader interface {
	LoadCategory(ctx context.Context, categoryID string) (domain.Category, error)
}

// CategoryRepository caches categories with TTL to avoid re-reading the backing store.
type CategoryRepository struct {
	loader CategoryLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedCategory
}

type cachedCategory struct {
	category  domain.Category
	expiresAt time.Time
}

func NewCategoryRepository(loader CategoryLoader, ttl time.Duration) *CategoryRepository {
	return &CategoryRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedCategory),
	}
}

func (r *CategoryRepository) GetCategory(ctx context.Context, categoryID string) (domain.Category, error) {
	if category, ok := r.lookup(categoryID); ok {
		return category, nil
	}

	result, err, _ := r.sf.Do(categoryID, func() (interface{}, error) {
		if category, ok := r.lookup(categoryID); ok {
			return category, nil
		}

		category, err := r.loader.LoadCategory(ctx, categoryID)
		if err != nil {
			return domain.Category{}, err
		}

		r.mu.Lock()
		r.cache[categoryID] = cachedCategory{
			category:  category,
			expiresAt: r.clock().Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return category, nil
	})
	if err != nil {
		return domain.Category{}, err
	}
	return result.(domain.Category), nil
}

func (r *CategoryRepository) lookup(categoryID string) (domain.Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.cache[categoryID]
	if !ok || !entry.expiresAt.After(r.clock()) {
		return domain.Category{}, false
	}
	return entry.category, true
}

func (r *CategoryRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticCategoryLoader is a simple loader backed by an in-memory map (useful for tests/demos).
type StaticCategoryLoader struct {
	categories map[string]domain.Category
}

func NewStaticCategoryLoader(categories map[string]domain.Category) *StaticCategoryLoader {
	return &StaticCategoryLoader{categories: categories}
}

func (l *StaticCategoryLoader) LoadCategory(_ context.Context, categoryID string) (domain.Category, error) {
	if category, ok := l.categories[categoryID]; ok {
		return category, nil
	}
	return domain.Category{}, domain.ErrCategoryNotFound
}
