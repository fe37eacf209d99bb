// cmd/server/main.go
package main

import (
	log "github.com/sirupsen/logrus"

	"velha/internal/config"
	"velha/internal/events"
	"velha/internal/game"
	"velha/internal/matchmaking"
	"velha/internal/network"
	"velha/internal/ranking"
	"velha/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load configuration: %v", err)
	}

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	// O ledger é o dono das estatísticas; o store de partidas avisa ele
	// (e só ele) a cada transição terminal.
	ledger := ranking.NewLedger(ranking.ScoreRules{
		WinPoints:  cfg.WinPoints,
		DrawPoints: cfg.DrawPoints,
	})
	store := game.NewStore(func(g *game.Game, winner game.Mark) {
		ledger.RecordOutcome(g, winner)
	})
	queue := matchmaking.NewQueue(store)

	// Feed de eventos: NATS quando configurado, silêncio quando não.
	var feed events.Publisher = events.Noop{}
	if cfg.NATSURL != "" {
		natsFeed, err := events.ConnectNATS(cfg.NATSURL)
		if err != nil {
			log.Fatalf("could not connect to NATS at %s: %v", cfg.NATSURL, err)
		}
		defer natsFeed.Close()
		feed = natsFeed
	}

	handler := session.NewGameHandler(store, queue, ledger, feed)

	server := network.NewServer(handler)
	session.RegisterAPIHandlers(server.Mux(), store, ledger)

	log.Infof("velha server starting on %s", cfg.ListenAddr)
	if err := server.Listen(cfg.ListenAddr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
