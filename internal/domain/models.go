package domain

// MaxRank is the lowest-scoring rank an answer can hold.
const MaxRank = 10

// Points derives the score for an answer rank: rank 1 is worth 10000, rank 10 is worth 1000.
func Points(rank int) int {
	return 11000 - rank*1000
}

// Answer is one ranked completion of a question prompt.
type Answer struct {
	Text string `json:"text"`
	Rank int    `json:"rank"`
}

// Points is derived from the rank, never stored.
func (a Answer) Points() int {
	return Points(a.Rank)
}

// Question pairs a prompt with its ranked answers, in display order.
type Question struct {
	Prompt  string   `json:"question"`
	Answers []Answer `json:"answers"`
}

// Category is a themed pool of questions.
type Category struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}

// Phase is the top-level state of a single game.
type Phase string

const (
	PhaseCategorySelect Phase = "category_select"
	PhaseGuessing       Phase = "guessing"
	PhaseRoundEnded     Phase = "round_ended"
	PhaseGameOver       Phase = "game_over"
)

// AnswerSlot is the presentation view of one answer position.
// Text and Points are blank until the slot is revealed.
type AnswerSlot struct {
	Revealed bool   `json:"revealed"`
	Matched  bool   `json:"matched"`
	Text     string `json:"text,omitempty"`
	Points   int    `json:"points,omitempty"`
}

// Snapshot is a read-only copy of a game's state for rendering.
type Snapshot struct {
	Phase       Phase        `json:"phase"`
	Category    string       `json:"category,omitempty"`
	Score       int          `json:"score"`
	Round       int          `json:"round"`
	Rounds      int          `json:"rounds"`
	GuessesLeft int          `json:"guessesLeft"`
	Prompt      string       `json:"prompt,omitempty"`
	Slots       []AnswerSlot `json:"slots"`
}

// EventType names a notification emitted by the game engine.
type EventType string

const (
	EventQuestionUnavailable EventType = "question-unavailable"
	EventEmptyGuessRejected  EventType = "empty-guess-rejected"
	EventWrongGuess          EventType = "wrong-guess"
	EventRoundEnded          EventType = "round-ended"
	EventGameEnded           EventType = "game-ended"
	EventQuestionDrawn       EventType = "question-drawn"
	EventAnswerRevealed      EventType = "answer-revealed"
)

// Event is a discrete notification for the presentation layer.
type Event struct {
	Type    EventType `json:"type"`
	Round   int       `json:"round,omitempty"`
	Index   *int      `json:"index,omitempty"` // set only on answer-revealed
	Text    string    `json:"text,omitempty"`
	Points  int       `json:"points,omitempty"`
	Matched bool      `json:"matched,omitempty"`
	Score   int       `json:"score"`
	Guesses int       `json:"guessesLeft"`
	Message string    `json:"message,omitempty"`
}

// Outcome is the result of a game command: the state after it ran and the
// notifications it produced, in order.
type Outcome struct {
	GameID   string   `json:"gameId"`
	Snapshot Snapshot `json:"state"`
	Events   []Event  `json:"events"`
}
