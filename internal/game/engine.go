// Package game implements the single-player feud rules: question draws without
// repeats, lenient guess matching, rank-based scoring and round progression.
//
// An Engine is owned by exactly one game. It performs no I/O and is not safe
// for concurrent use; callers serialize commands per game.
package game

import (
	"math/rand"
	"time"

	"feud-service/internal/domain"
)

const (
	DefaultRounds  = 3
	DefaultGuesses = 4
)

// Options tune the engine rules. Zero values fall back to the defaults.
type Options struct {
	Rounds  int
	Guesses int
	Rand    *rand.Rand
}

// Engine holds the state of one game.
type Engine struct {
	rounds  int
	guesses int
	rnd     *rand.Rand

	phase       domain.Phase
	category    *domain.Category
	score       int
	round       int
	guessesLeft int

	question   domain.Question
	normalized []string
	revealed   []bool
	matched    []bool

	// used question indices per category ID
	used map[string]map[int]struct{}
}

func NewEngine(opts Options) *Engine {
	if opts.Rounds <= 0 {
		opts.Rounds = DefaultRounds
	}
	if opts.Guesses <= 0 {
		opts.Guesses = DefaultGuesses
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		rounds:      opts.Rounds,
		guesses:     opts.Guesses,
		rnd:         opts.Rand,
		phase:       domain.PhaseCategorySelect,
		guessesLeft: opts.Guesses,
		used:        make(map[string]map[int]struct{}),
	}
}

// SelectCategory starts a game in the given category and draws the first question.
// An empty category sends the player back to category selection.
func (e *Engine) SelectCategory(category domain.Category) ([]domain.Event, error) {
	if len(category.Questions) == 0 {
		e.toCategorySelect()
		return []domain.Event{e.event(domain.EventQuestionUnavailable)}, domain.ErrEmptyCategory
	}

	e.category = &category
	e.score = 0
	e.round = 1
	e.guessesLeft = e.guesses
	return e.draw()
}

// DrawQuestion replaces the current question with a fresh draw from the active category.
func (e *Engine) DrawQuestion() ([]domain.Event, error) {
	if e.category == nil || e.phase == domain.PhaseGameOver {
		return nil, domain.ErrRoundNotActive
	}
	return e.draw()
}

func (e *Engine) draw() ([]domain.Event, error) {
	questions := e.category.Questions
	if len(questions) == 0 {
		return []domain.Event{e.event(domain.EventQuestionUnavailable)}, domain.ErrEmptyCategory
	}

	used, ok := e.used[e.category.ID]
	if !ok {
		used = make(map[int]struct{})
		e.used[e.category.ID] = used
	}
	available := unusedIndices(len(questions), used)
	if len(available) == 0 {
		clear(used)
		available = unusedIndices(len(questions), used)
	}
	idx := available[e.rnd.Intn(len(available))]
	used[idx] = struct{}{}

	e.loadQuestion(questions[idx])
	e.phase = domain.PhaseGuessing

	ev := e.event(domain.EventQuestionDrawn)
	ev.Text = e.question.Prompt
	return []domain.Event{ev}, nil
}

func unusedIndices(n int, used map[int]struct{}) []int {
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if _, ok := used[i]; !ok {
			out = append(out, i)
		}
	}
	return out
}

func (e *Engine) loadQuestion(q domain.Question) {
	answers := make([]domain.Answer, len(q.Answers))
	copy(answers, q.Answers)
	e.question = domain.Question{Prompt: q.Prompt, Answers: answers}

	e.normalized = make([]string, len(answers))
	for i, a := range answers {
		e.normalized[i] = Normalize(a.Text)
	}
	e.revealed = make([]bool, len(answers))
	e.matched = make([]bool, len(answers))
}

// SubmitGuess reveals the first unrevealed answer containing the normalized guess.
// A miss consumes one guess; running out of guesses or revealing every answer ends the round.
func (e *Engine) SubmitGuess(raw string) ([]domain.Event, error) {
	if e.phase != domain.PhaseGuessing || e.guessesLeft <= 0 {
		return nil, domain.ErrRoundNotActive
	}

	guess := Normalize(raw)
	if guess == "" {
		return []domain.Event{e.event(domain.EventEmptyGuessRejected)}, domain.ErrEmptyGuess
	}

	for i, answer := range e.normalized {
		if e.revealed[i] || !matches(answer, guess) {
			continue
		}
		e.score += e.question.Answers[i].Points()
		events := []domain.Event{e.reveal(i, true)}
		if e.allRevealed() {
			events = append(events, e.endRound()...)
		}
		return events, nil
	}

	e.guessesLeft--
	events := []domain.Event{e.event(domain.EventWrongGuess)}
	if e.guessesLeft == 0 {
		events = append(events, e.endRound()...)
	}
	return events, nil
}

func (e *Engine) reveal(i int, matched bool) domain.Event {
	e.revealed[i] = true
	e.matched[i] = matched

	ev := e.event(domain.EventAnswerRevealed)
	ev.Index = &i
	ev.Text = e.question.Answers[i].Text
	ev.Points = e.question.Answers[i].Points()
	ev.Matched = matched
	return ev
}

func (e *Engine) allRevealed() bool {
	for _, r := range e.revealed {
		if !r {
			return false
		}
	}
	return true
}

func (e *Engine) endRound() []domain.Event {
	var events []domain.Event
	for i := range e.revealed {
		if !e.revealed[i] {
			events = append(events, e.reveal(i, false))
		}
	}

	e.phase = domain.PhaseRoundEnded
	events = append(events, e.event(domain.EventRoundEnded))
	if e.round >= e.rounds {
		events = append(events, e.endGame())
	}
	return events
}

func (e *Engine) endGame() domain.Event {
	e.phase = domain.PhaseGameOver
	return e.event(domain.EventGameEnded)
}

// AdvanceRound moves to the next round once the current one has ended.
func (e *Engine) AdvanceRound() ([]domain.Event, error) {
	switch e.phase {
	case domain.PhaseRoundEnded:
	case domain.PhaseGuessing:
		return nil, domain.ErrRoundInProgress
	default:
		return nil, domain.ErrRoundNotActive
	}

	e.round++
	e.guessesLeft = e.guesses
	if e.round > e.rounds {
		return []domain.Event{e.endGame()}, nil
	}
	return e.draw()
}

// ResetGame returns to category selection and forgets which questions were used.
func (e *Engine) ResetGame() {
	e.toCategorySelect()
	clear(e.used)
}

func (e *Engine) toCategorySelect() {
	e.phase = domain.PhaseCategorySelect
	e.category = nil
	e.score = 0
	e.round = 0
	e.guessesLeft = e.guesses
	e.question = domain.Question{}
	e.normalized = nil
	e.revealed = nil
	e.matched = nil
}

func (e *Engine) event(t domain.EventType) domain.Event {
	return domain.Event{
		Type:    t,
		Round:   e.round,
		Score:   e.score,
		Guesses: e.guessesLeft,
	}
}

func (e *Engine) Phase() domain.Phase { return e.phase }
func (e *Engine) Score() int          { return e.score }
func (e *Engine) Round() int          { return e.round }
func (e *Engine) GuessesLeft() int    { return e.guessesLeft }
func (e *Engine) Prompt() string      { return e.question.Prompt }

// Category returns the active category ID, or "" during category selection.
func (e *Engine) Category() string {
	if e.category == nil {
		return ""
	}
	return e.category.ID
}

// Slots lists every answer position of the current question in order.
func (e *Engine) Slots() []domain.AnswerSlot {
	slots := make([]domain.AnswerSlot, len(e.question.Answers))
	for i, a := range e.question.Answers {
		if !e.revealed[i] {
			continue
		}
		slots[i] = domain.AnswerSlot{
			Revealed: true,
			Matched:  e.matched[i],
			Text:     a.Text,
			Points:   a.Points(),
		}
	}
	return slots
}

func (e *Engine) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Phase:       e.phase,
		Category:    e.Category(),
		Score:       e.score,
		Round:       e.round,
		Rounds:      e.rounds,
		GuessesLeft: e.guessesLeft,
		Prompt:      e.question.Prompt,
		Slots:       e.Slots(),
	}
}
