package postgres

import (
	"context"
	"errors"
	"fmt"

	"feud-service/internal/catalog"
	"feud-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// CategoryLoader loads category JSONB from Postgres.
type CategoryLoader struct {
	pool *pgxpool.Pool
}

func NewCategoryLoader(pool *pgxpool.Pool) *CategoryLoader {
	return &CategoryLoader{pool: pool}
}

func (l *CategoryLoader) LoadCategory(ctx context.Context, categoryID string) (domain.Category, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM categories WHERE id=$1`, categoryID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Category{}, fmt.Errorf("%w: %s", domain.ErrCategoryNotFound, categoryID)
	}
	if err != nil {
		return domain.Category{}, fmt.Errorf("load category: %w", err)
	}
	return catalog.Decode(categoryID, raw)
}
