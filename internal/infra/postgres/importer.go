package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"feud-service/internal/catalog"
	"feud-service/internal/domain"
	"feud-service/internal/infra/postgres/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// CategoryRow is the categories table as seen by bun.
type CategoryRow struct {
	bun.BaseModel `bun:"table:categories"`

	ID        string    `bun:"id,pk"`
	Data      string    `bun:"data,type:jsonb"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Open connects bun to Postgres through pgdriver.
func Open(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return err
	}
	_, err := migrator.Migrate(ctx)
	return err
}

// Importer upserts category documents so CategoryLoader can serve them.
type Importer struct {
	db *bun.DB
}

func NewImporter(db *bun.DB) *Importer {
	return &Importer{db: db}
}

// Import stores every category in canonical rank form, replacing existing rows.
func (i *Importer) Import(ctx context.Context, categories []domain.Category) error {
	return i.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, category := range categories {
			data, err := catalog.Encode(category)
			if err != nil {
				return fmt.Errorf("encode %s: %w", category.ID, err)
			}
			row := &CategoryRow{ID: category.ID, Data: string(data), UpdatedAt: time.Now()}
			if _, err := tx.NewInsert().
				Model(row).
				On("CONFLICT (id) DO UPDATE").
				Set("data = EXCLUDED.data").
				Set("updated_at = EXCLUDED.updated_at").
				Exec(ctx); err != nil {
				return fmt.Errorf("upsert %s: %w", category.ID, err)
			}
		}
		return nil
	})
}
