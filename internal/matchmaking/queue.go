// Package matchmaking é o dono da fila de espera por oponente.
// O pareamento é FIFO e imediato na chegada: o recém-chegado fecha par
// com quem espera há mais tempo. Sem prioridade, sem ranking por skill;
// para um jogo casual de dois jogadores isso mantém o pareamento O(1)
// e ninguém morre de fome na fila.
package matchmaking

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"velha/internal/game"
)

// MatchResult é o que o chamador recebe ao entrar na fila: ou a partida
// já criada (Matched) ou a confirmação de que ficou esperando.
type MatchResult struct {
	Matched bool
	Game    *game.Game
}

// QueueStatus é a visão externa da fila. EstimatedWaitTime é só um
// texto indicativo, nunca uma garantia.
type QueueStatus struct {
	PlayersInQueue    int    `json:"playersInQueue"`
	EstimatedWaitTime string `json:"estimatedWaitTime"`
}

// Queue é a fila única de matchmaking. O slice guarda a ordem de
// chegada; o mutex garante que um jogador esperando nunca é pareado
// duas vezes, mesmo com chegadas concorrentes.
type Queue struct {
	mu      sync.Mutex
	waiting []game.Player

	store *game.Store
}

// NewQueue cria uma fila vazia que delega a criação de partidas ao Store.
func NewQueue(store *game.Store) *Queue {
	return &Queue{store: store}
}

// Enqueue tenta parear o jogador na hora. Se alguém já espera, o mais
// antigo da fila recebe o X, o recém-chegado o O, e a partida volta
// pronta. Senão o jogador entra no fim da fila. Entrar duas vezes é
// silenciosamente ignorado: nada muda e Matched é false.
func (q *Queue) Enqueue(p game.Player) (MatchResult, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, w := range q.waiting {
		if w.ID == p.ID {
			return MatchResult{}, nil
		}
	}

	if len(q.waiting) > 0 {
		// Par formado: o primeiro da fila sai e cria a partida.
		opponent := q.waiting[0]
		q.waiting = q.waiting[1:]

		g, err := q.store.Create(opponent)
		if err != nil {
			// A criação falhou: devolve o oponente para a frente da
			// fila, como se nada tivesse acontecido.
			q.waiting = append([]game.Player{opponent}, q.waiting...)
			return MatchResult{}, err
		}
		g, err = q.store.Join(g.ID, p)
		if err != nil {
			return MatchResult{}, err
		}

		log.WithFields(log.Fields{
			"game_id":    g.ID,
			"queue_size": len(q.waiting),
		}).Infof("match found: %s vs %s", opponent.Name, p.Name)
		return MatchResult{Matched: true, Game: g}, nil
	}

	q.waiting = append(q.waiting, p)
	log.WithFields(log.Fields{
		"player_id":  p.ID,
		"queue_size": len(q.waiting),
	}).Info("player added to matchmaking queue")
	return MatchResult{}, nil
}

// Dequeue remove o jogador da fila, se ele estiver nela. Ausência não é
// erro: cobre tanto o cancelamento deliberado quanto a desconexão antes
// do pareamento.
func (q *Queue) Dequeue(playerID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, w := range q.waiting {
		if w.ID == playerID {
			q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
			log.WithFields(log.Fields{
				"player_id":  playerID,
				"queue_size": len(q.waiting),
			}).Info("player left matchmaking queue")
			return
		}
	}
}

// Status retorna o tamanho da fila e a estimativa de espera.
func (q *Queue) Status() QueueStatus {
	q.mu.Lock()
	defer q.mu.Unlock()

	estimate := "Instant match"
	if len(q.waiting) > 0 {
		estimate = "< 30 seconds"
	}
	return QueueStatus{
		PlayersInQueue:    len(q.waiting),
		EstimatedWaitTime: estimate,
	}
}
