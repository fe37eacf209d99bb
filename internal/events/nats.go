package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"velha/internal/game"
)

// Assuntos publicados no NATS.
const (
	SubjectMatchCreated = "velha.match.created"
	SubjectGameFinished = "velha.game.finished"
)

// NATSPublisher publica os eventos de ciclo de vida em um servidor NATS.
type NATSPublisher struct {
	conn *nats.Conn
}

// ConnectNATS abre a conexão com o servidor NATS da configuração.
// Reconexão fica por conta do próprio cliente NATS.
func ConnectNATS(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	log.Infof("event feed connected to NATS at %s", url)
	return &NATSPublisher{conn: conn}, nil
}

// Close drena e fecha a conexão.
func (p *NATSPublisher) Close() {
	p.conn.Drain()
}

// matchCreatedEvent é o corpo JSON de velha.match.created.
type matchCreatedEvent struct {
	GameID  string        `json:"gameId"`
	Players []game.Player `json:"players"`
	Status  game.Status   `json:"status"`
}

// gameFinishedEvent é o corpo JSON de velha.game.finished.
type gameFinishedEvent struct {
	GameID        string         `json:"gameId"`
	Winner        game.Mark      `json:"winner"`
	IsDraw        bool           `json:"isDraw"`
	PointsAwarded map[string]int `json:"pointsAwarded"`
}

func (p *NATSPublisher) MatchCreated(g *game.Game) {
	p.publish(SubjectMatchCreated, matchCreatedEvent{
		GameID:  g.ID,
		Players: g.Players,
		Status:  g.Status,
	})
}

func (p *NATSPublisher) GameFinished(g *game.Game, pointsAwarded map[string]int) {
	p.publish(SubjectGameFinished, gameFinishedEvent{
		GameID:        g.ID,
		Winner:        g.Winner,
		IsDraw:        g.IsDraw,
		PointsAwarded: pointsAwarded,
	})
}

func (p *NATSPublisher) publish(subject string, event any) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Warnf("event feed: failed to marshal %s: %v", subject, err)
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		// Melhor-esforço: o jogo segue mesmo sem barramento.
		log.Warnf("event feed: failed to publish %s: %v", subject, err)
	}
}
