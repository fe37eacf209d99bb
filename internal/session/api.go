package session

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"velha/internal/game"
	"velha/internal/ranking"
)

// RegisterAPIHandlers pendura a superfície somente-leitura no mux do
// servidor: liveness, a lista de partidas e o placar atual. Nada aqui
// muta estado, então os handlers só leem fotos dos stores.
func RegisterAPIHandlers(mux *http.ServeMux, store *game.Store, ledger *ranking.Ledger) {
	mux.HandleFunc("/health", handleHealth)

	mux.HandleFunc("/api/games", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, `{"error": "Method not allowed"}`, http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, store.List())
	})

	mux.HandleFunc("/api/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, `{"error": "Method not allowed"}`, http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, ledger.Leaderboard())
	})
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, healthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("api: failed to encode response: %v", err)
	}
}
