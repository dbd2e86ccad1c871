package http

import (
	"encoding/json"
	"net/http"

	"feud-service/internal/app"
	"github.com/julienschmidt/httprouter"
)

// NewRouter wires the health check, category listing and game socket.
func NewRouter(service *app.GameService) *httprouter.Router {
	ws := NewWSHandler(service)

	mux := httprouter.New()
	mux.GET("/healthz", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Write([]byte("ok"))
	})
	mux.GET("/categories", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string][]string{"categories": service.Categories()})
	})
	mux.HandlerFunc(http.MethodGet, "/ws", ws.ServeWS)
	return mux
}
