package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"feud-service/internal/catalog"
	"feud-service/internal/domain"
)

var validID = regexp.MustCompile(`^[a-z0-9_-]+$`)

// CategoryLoader reads category documents from <dir>/<id>.json.
type CategoryLoader struct {
	dir string
}

func NewCategoryLoader(dir string) *CategoryLoader {
	return &CategoryLoader{dir: dir}
}

func (l *CategoryLoader) LoadCategory(_ context.Context, categoryID string) (domain.Category, error) {
	if !validID.MatchString(categoryID) {
		return domain.Category{}, domain.ErrCategoryNotFound
	}
	data, err := os.ReadFile(filepath.Join(l.dir, categoryID+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Category{}, fmt.Errorf("%w: %s", domain.ErrCategoryNotFound, categoryID)
	}
	if err != nil {
		return domain.Category{}, fmt.Errorf("read category %s: %w", categoryID, err)
	}
	return catalog.Decode(categoryID, data)
}
