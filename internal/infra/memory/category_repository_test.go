package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"feud-service/internal/domain"
)

func TestCategoryRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		CategoryLoader: NewStaticCategoryLoader(map[string]domain.Category{
			"animales": sampleCategory(),
		}),
	}
	repo := NewCategoryRepository(loader, time.Minute)

	if _, err := repo.GetCategory(context.Background(), "animales"); err != nil {
		t.Fatalf("get category: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetCategory(context.Background(), "animales"); err != nil {
		t.Fatalf("get category 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestCategoryRepositoryReloadsAfterExpiry(t *testing.T) {
	loader := &countingLoader{
		CategoryLoader: NewStaticCategoryLoader(map[string]domain.Category{
			"animales": sampleCategory(),
		}),
	}
	repo := NewCategoryRepository(loader, time.Minute)
	now := time.Now()
	repo.clock = func() time.Time { return now }

	_, _ = repo.GetCategory(context.Background(), "animales")
	now = now.Add(2 * time.Minute)
	_, _ = repo.GetCategory(context.Background(), "animales")
	if loader.calls != 2 {
		t.Fatalf("expected reload after expiry, loader calls %d", loader.calls)
	}
}

func TestCategoryRepositoryPropagatesMiss(t *testing.T) {
	repo := NewCategoryRepository(NewStaticCategoryLoader(nil), time.Minute)
	if _, err := repo.GetCategory(context.Background(), "nope"); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

type countingLoader struct {
	CategoryLoader
	calls int
}

func (l *countingLoader) LoadCategory(ctx context.Context, categoryID string) (domain.Category, error) {
	l.calls++
	return l.CategoryLoader.LoadCategory(ctx, categoryID)
}

func sampleCategory() domain.Category {
	return domain.Category{
		ID: "animales",
		Questions: []domain.Question{
			{
				Prompt: "mascotas mas populares",
				Answers: []domain.Answer{
					{Text: "Perro", Rank: 1},
					{Text: "Gato", Rank: 2},
				},
			},
		},
	}
}
