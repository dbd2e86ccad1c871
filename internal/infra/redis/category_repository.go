package redis

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"feud-service/internal/catalog"
	"feud-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// CategoryLoader fetches category content from a backing store (files, Postgres).
type CategoryLoader interface {
	LoadCategory(ctx context.Context, categoryID string) (domain.Category, error)
}

// CategoryRepository caches category documents in Redis and falls back to a loader on cache miss.
// Documents are stored in canonical rank form as: SET feud:category:{categoryID} {json}
type CategoryRepository struct {
	client *redis.Client
	loader CategoryLoader
	ttl    time.Duration
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewCategoryRepository(client *redis.Client, loader CategoryLoader, ttl time.Duration) *CategoryRepository {
	return &CategoryRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CategoryRepository) GetCategory(ctx context.Context, categoryID string) (domain.Category, error) {
	if category, ok := r.cached(ctx, categoryID); ok {
		return category, nil
	}

	result, err, _ := r.sf.Do(categoryID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if category, ok := r.cached(ctx, categoryID); ok {
			return category, nil
		}

		category, err := r.loader.LoadCategory(ctx, categoryID)
		if err != nil {
			return domain.Category{}, err
		}

		if data, err := catalog.Encode(category); err == nil {
			_ = r.client.Set(ctx, r.key(categoryID), data, r.ttlWithJitter()).Err()
		}
		return category, nil
	})
	if err != nil {
		return domain.Category{}, err
	}
	return result.(domain.Category), nil
}

func (r *CategoryRepository) cached(ctx context.Context, categoryID string) (domain.Category, bool) {
	data, err := r.client.Get(ctx, r.key(categoryID)).Bytes()
	if err != nil { // includes redis.Nil on miss
		return domain.Category{}, false
	}
	category, err := catalog.Decode(categoryID, data)
	if err != nil {
		return domain.Category{}, false
	}
	return category, true
}

func (r *CategoryRepository) key(categoryID string) string {
	return "feud:category:" + categoryID
}

func (r *CategoryRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	// Preload fills many keys at once; rand.Rand is not goroutine-safe.
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
