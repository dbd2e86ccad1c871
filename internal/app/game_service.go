package app

import (
	"context"
	"slices"
	"sync"
	"time"

	"feud-service/internal/domain"
	"feud-service/internal/game"
	"github.com/google/uuid"
)

// SessionRepository abstracts where live games are kept (in-memory, Redis-marked, etc).
type SessionRepository interface {
	Put(g *Game)
	Get(gameID string) (*Game, bool)
	Delete(gameID string)
}

// CategoryRepository loads category content (from cache/backing store).
type CategoryRepository interface {
	GetCategory(ctx context.Context, categoryID string) (domain.Category, error)
}

// GameService contains the game use cases. Each game is driven by its own engine.
type GameService struct {
	sessions    SessionRepository
	categories  CategoryRepository
	categoryIDs []string
	rules       game.Options
	newID       func() string
}

func NewGameService(store SessionRepository, categories CategoryRepository, categoryIDs []string, rules game.Options) *GameService {
	return &GameService{
		sessions:    store,
		categories:  categories,
		categoryIDs: slices.Clone(categoryIDs),
		rules:       rules,
		newID:       uuid.NewString,
	}
}

// Categories lists the category IDs a player can choose from.
func (s *GameService) Categories() []string {
	return slices.Clone(s.categoryIDs)
}

// NewGame creates a game in category selection.
func (s *GameService) NewGame(_ context.Context) domain.Outcome {
	g := NewGame(s.newID(), game.NewEngine(s.rules))
	s.sessions.Put(g)
	return g.snapshotOutcome()
}

// SelectCategory starts the game in a category and draws the first question.
func (s *GameService) SelectCategory(ctx context.Context, gameID, categoryID string) (domain.Outcome, error) {
	g, ok := s.sessions.Get(gameID)
	if !ok {
		return domain.Outcome{}, domain.ErrGameNotFound
	}
	if !slices.Contains(s.categoryIDs, categoryID) {
		return g.snapshotOutcome(), domain.ErrCategoryNotFound
	}

	category, err := s.categories.GetCategory(ctx, categoryID)
	if err != nil {
		return g.snapshotOutcome(), err
	}
	return g.apply(func(e *game.Engine) ([]domain.Event, error) {
		return e.SelectCategory(category)
	})
}

// SubmitGuess evaluates a guess against the current question.
func (s *GameService) SubmitGuess(_ context.Context, gameID, guess string) (domain.Outcome, error) {
	g, ok := s.sessions.Get(gameID)
	if !ok {
		return domain.Outcome{}, domain.ErrGameNotFound
	}
	return g.apply(func(e *game.Engine) ([]domain.Event, error) {
		return e.SubmitGuess(guess)
	})
}

// AdvanceRound moves to the next round, or ends the game after the last one.
func (s *GameService) AdvanceRound(_ context.Context, gameID string) (domain.Outcome, error) {
	g, ok := s.sessions.Get(gameID)
	if !ok {
		return domain.Outcome{}, domain.ErrGameNotFound
	}
	return g.apply((*game.Engine).AdvanceRound)
}

// ResetGame returns the game to category selection.
func (s *GameService) ResetGame(_ context.Context, gameID string) (domain.Outcome, error) {
	g, ok := s.sessions.Get(gameID)
	if !ok {
		return domain.Outcome{}, domain.ErrGameNotFound
	}
	return g.apply(func(e *game.Engine) ([]domain.Event, error) {
		e.ResetGame()
		return nil, nil
	})
}

// Snapshot returns the current state of a game.
func (s *GameService) Snapshot(_ context.Context, gameID string) (domain.Outcome, error) {
	g, ok := s.sessions.Get(gameID)
	if !ok {
		return domain.Outcome{}, domain.ErrGameNotFound
	}
	return g.snapshotOutcome(), nil
}

// End drops a game; it is called when the player disconnects.
func (s *GameService) End(_ context.Context, gameID string) {
	s.sessions.Delete(gameID)
}

// Game is a live game session guarding its engine.
type Game struct {
	id        string
	createdAt time.Time
	mu        sync.Mutex
	engine    *game.Engine
}

// NewGame is exported for infrastructure layers and tests that need to seed sessions.
func NewGame(id string, engine *game.Engine) *Game {
	return &Game{id: id, createdAt: time.Now(), engine: engine}
}

func (g *Game) ID() string { return g.id }

func (g *Game) CreatedAt() time.Time { return g.createdAt }

func (g *Game) apply(cmd func(*game.Engine) ([]domain.Event, error)) (domain.Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	events, err := cmd(g.engine)
	return g.outcomeLocked(events), err
}

func (g *Game) snapshotOutcome() domain.Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.outcomeLocked(nil)
}

func (g *Game) outcomeLocked(events []domain.Event) domain.Outcome {
	if events == nil {
		events = []domain.Event{}
	}
	return domain.Outcome{GameID: g.id, Snapshot: g.engine.Snapshot(), Events: events}
}
