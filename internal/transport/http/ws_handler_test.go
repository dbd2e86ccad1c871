package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"feud-service/internal/app"
	"feud-service/internal/domain"
	"feud-service/internal/game"
	"feud-service/internal/infra/memory"
	"github.com/gorilla/websocket"
)

func TestWebSocketGameFlow(t *testing.T) {
	server := httptest.NewServer(NewRouter(newTestService()))
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Expect session then the initial state.
	_, payload := readNext(conn, t, "session")
	if id, _ := payload["gameId"].(string); id == "" {
		t.Fatalf("expected game id, got %v", payload)
	}
	_, payload = readNext(conn, t, "state")
	if payload["phase"] != string(domain.PhaseCategorySelect) {
		t.Fatalf("expected category select, got %v", payload["phase"])
	}

	send(conn, t, "selectCategory", map[string]any{"category": "animales"})
	_, payload = readNext(conn, t, "event")
	if payload["type"] != string(domain.EventQuestionDrawn) {
		t.Fatalf("expected question-drawn, got %v", payload)
	}
	_, payload = readNext(conn, t, "state")
	if payload["phase"] != string(domain.PhaseGuessing) || payload["prompt"] != "mascotas mas populares" {
		t.Fatalf("expected guessing state, got %v", payload)
	}

	send(conn, t, "guess", map[string]any{"text": "PERRO"})
	_, payload = readNext(conn, t, "event")
	if payload["type"] != string(domain.EventAnswerRevealed) || payload["points"] != float64(10000) {
		t.Fatalf("expected rank 1 revealed, got %v", payload)
	}
	_, payload = readNext(conn, t, "state")
	if payload["score"] != float64(10000) {
		t.Fatalf("expected score 10000, got %v", payload["score"])
	}

	send(conn, t, "guess", map[string]any{"text": "   "})
	_, payload = readNext(conn, t, "event")
	if payload["type"] != string(domain.EventEmptyGuessRejected) {
		t.Fatalf("expected empty-guess-rejected, got %v", payload)
	}
	_, payload = readNext(conn, t, "error")
	if payload["message"] != domain.ErrEmptyGuess.Error() {
		t.Fatalf("expected empty guess message, got %v", payload)
	}
	_, payload = readNext(conn, t, "state")
	if payload["guessesLeft"] != float64(game.DefaultGuesses) {
		t.Fatalf("empty guess must not consume a guess, got %v", payload["guessesLeft"])
	}
}

func TestWebSocketRejectsUnknownCategory(t *testing.T) {
	server := httptest.NewServer(NewRouter(newTestService()))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+server.URL[len("http"):]+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	readNext(conn, t, "session")
	readNext(conn, t, "state")

	send(conn, t, "selectCategory", map[string]any{"category": "deportes"})
	_, payload := readNext(conn, t, "error")
	if payload["message"] != domain.ErrCategoryNotFound.Error() {
		t.Fatalf("expected category not found, got %v", payload)
	}
	_, payload = readNext(conn, t, "state")
	if payload["phase"] != string(domain.PhaseCategorySelect) {
		t.Fatalf("expected to stay in category select, got %v", payload["phase"])
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	server := httptest.NewServer(NewRouter(newTestService()))
	defer server.Close()

	resp, err := http.Get(server.URL + "/categories")
	if err != nil {
		t.Fatalf("get categories: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Categories []string `json:"categories"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Categories) != 1 || body.Categories[0] != "animales" {
		t.Fatalf("unexpected categories: %v", body.Categories)
	}
}

func send(conn *websocket.Conn, t *testing.T, typ string, payload map[string]any) {
	t.Helper()
	if err := conn.WriteJSON(map[string]any{"type": typ, "payload": payload}); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s (%v)", expect, msg.Type, msg.Payload)
	}
	return msg.Type, msg.Payload
}

func newTestService() *app.GameService {
	store := memory.NewSessionStore()
	categories := memory.NewCategoryRepository(memory.NewStaticCategoryLoader(map[string]domain.Category{
		"animales": {
			ID: "animales",
			Questions: []domain.Question{{
				Prompt: "mascotas mas populares",
				Answers: []domain.Answer{
					{Text: "Perro", Rank: 1},
					{Text: "Gato", Rank: 2},
				},
			}},
		},
	}), time.Minute)
	return app.NewGameService(store, categories, []string{"animales"}, game.Options{})
}
