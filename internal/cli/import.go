package cli

import (
	"context"
	"fmt"
	"log"

	"feud-service/internal/catalog"
	"feud-service/internal/config"
	"feud-service/internal/domain"
	"feud-service/internal/infra/file"
	"feud-service/internal/infra/postgres"
	"github.com/spf13/cobra"
)

// NewImportCmd copies the category files from the data directory into Postgres.
func NewImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Import category JSON files into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), *configPath)
		},
	}
}

func runImport(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	loaded, err := catalog.Preload(ctx, fileSource{file.NewCategoryLoader(cfg.DataDir())}, cfg.CategoryIDs())
	if err != nil {
		return err
	}
	categories := make([]domain.Category, 0, len(loaded))
	for _, id := range cfg.CategoryIDs() {
		categories = append(categories, loaded[id])
	}

	db := postgres.Open(cfg.Postgres.URL)
	defer db.Close()
	if err := postgres.NewImporter(db).Import(ctx, categories); err != nil {
		return fmt.Errorf("import categories: %w", err)
	}
	log.Printf("imported %d categories from %s", len(categories), cfg.DataDir())
	return nil
}

// fileSource adapts a loader to catalog.Source without caching.
type fileSource struct {
	loader *file.CategoryLoader
}

func (s fileSource) GetCategory(ctx context.Context, categoryID string) (domain.Category, error) {
	return s.loader.LoadCategory(ctx, categoryID)
}
