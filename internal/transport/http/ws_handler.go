package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"feud-service/internal/app"
	"feud-service/internal/domain"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	service  *app.GameService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectCategoryPayload struct {
	Category string `json:"category"`
}

type guessPayload struct {
	Text string `json:"text"`
}

type sessionPayload struct {
	GameID     string   `json:"gameId"`
	Categories []string `json:"categories"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and drives one game per connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	started := h.service.NewGame(ctx)
	gameID := started.GameID
	defer h.service.End(context.Background(), gameID)

	if err := conn.WriteJSON(outboundMessage[sessionPayload]{Type: "session", Payload: sessionPayload{
		GameID:     gameID,
		Categories: h.service.Categories(),
	}}); err != nil {
		return
	}
	if err := writeOutcome(conn, started, nil); err != nil {
		return
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}

		outcome, err := h.dispatch(ctx, gameID, inbound)
		if errors.Is(err, domain.ErrGameNotFound) {
			_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
			return
		}
		if writeErr := writeOutcome(conn, outcome, err); writeErr != nil {
			log.Printf("ws write error: %v", writeErr)
			return
		}
	}
}

func (h *WSHandler) dispatch(ctx context.Context, gameID string, inbound inboundMessage) (domain.Outcome, error) {
	switch inbound.Type {
	case "selectCategory":
		var payload selectCategoryPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return h.invalid(ctx, gameID, "invalid selectCategory payload")
		}
		return h.service.SelectCategory(ctx, gameID, payload.Category)
	case "guess":
		var payload guessPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return h.invalid(ctx, gameID, "invalid guess payload")
		}
		return h.service.SubmitGuess(ctx, gameID, payload.Text)
	case "nextRound":
		return h.service.AdvanceRound(ctx, gameID)
	case "newGame":
		return h.service.ResetGame(ctx, gameID)
	default:
		return h.invalid(ctx, gameID, "unsupported message type")
	}
}

func (h *WSHandler) invalid(ctx context.Context, gameID, message string) (domain.Outcome, error) {
	outcome, err := h.service.Snapshot(ctx, gameID)
	if err != nil {
		return outcome, err
	}
	return outcome, errors.New(message)
}

// writeOutcome sends each event, then the error notice if any, then the resulting state.
func writeOutcome(conn *websocket.Conn, outcome domain.Outcome, cmdErr error) error {
	for _, ev := range outcome.Events {
		if err := conn.WriteJSON(outboundMessage[domain.Event]{Type: "event", Payload: ev}); err != nil {
			return err
		}
	}
	if cmdErr != nil {
		if err := conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: cmdErr.Error()}}); err != nil {
			return err
		}
	}
	return conn.WriteJSON(outboundMessage[domain.Snapshot]{Type: "state", Payload: outcome.Snapshot})
}
