package catalog

import (
	"context"
	"fmt"
	"sync"

	"feud-service/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Source returns category content by ID.
type Source interface {
	GetCategory(ctx context.Context, categoryID string) (domain.Category, error)
}

// Catalog is the fully loaded category set. It is read-only once Preload returns,
// so games never hit the backing store after startup.
type Catalog map[string]domain.Category

func (c Catalog) GetCategory(_ context.Context, categoryID string) (domain.Category, error) {
	category, ok := c[categoryID]
	if !ok {
		return domain.Category{}, domain.ErrCategoryNotFound
	}
	return category, nil
}

// Preload fetches every category concurrently and fails if any of them cannot be loaded.
// Play must not start until Preload returns nil.
func Preload(ctx context.Context, src Source, categoryIDs []string) (Catalog, error) {
	var (
		mu  sync.Mutex
		out = make(Catalog, len(categoryIDs))
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, id := range categoryIDs {
		id := id
		g.Go(func() error {
			category, err := src.GetCategory(ctx, id)
			if err != nil {
				return fmt.Errorf("%w: category %s: %w", domain.ErrDataLoad, id, err)
			}
			mu.Lock()
			out[id] = category
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
