package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"velha/internal/game"
	"velha/internal/session/message"
)

// Nomes dos comandos de entrada, os mesmos que o cliente emite.
const (
	cmdJoinQueue         = "join_queue"
	cmdLeaveQueue        = "leave_queue"
	cmdCreatePrivateGame = "create_private_game"
	cmdJoinPrivateGame   = "join_private_game"
	cmdMakeMove          = "make_move"
	cmdRequestRematch    = "request_rematch"
)

func (h *GameHandler) registerHandlers() {
	// Matchmaking.
	h.router[cmdJoinQueue] = handleJoinQueue
	h.router[cmdLeaveQueue] = handleLeaveQueue

	// Partidas privadas por código.
	h.router[cmdCreatePrivateGame] = handleCreatePrivateGame
	h.router[cmdJoinPrivateGame] = handleJoinPrivateGame

	// Dentro da partida.
	h.router[cmdMakeMove] = handleMakeMove
	h.router[cmdRequestRematch] = handleRequestRematch
}

// handleJoinQueue coloca o jogador na fila. Se já houver alguém
// esperando, a partida nasce na hora e os dois lados são avisados
// individualmente com o símbolo que receberam.
func handleJoinQueue(h *GameHandler, s *PlayerSession, payload json.RawMessage) {
	var req struct {
		Name string `json:"name"`
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			message.SendError(s, "Invalid payload for join_queue.")
			return
		}
	}

	name := s.displayName(req.Name)
	h.ledger.Ensure(s.ID, name)

	result, err := h.queue.Enqueue(game.Player{ID: s.ID, Name: name})
	if err != nil {
		message.SendError(s, "Could not enter the queue: %v", err)
		return
	}

	if !result.Matched {
		s.Send() <- message.Queued("Looking for opponent...", h.queue.Status())
		return
	}

	// Cada jogador recebe a própria visão do pareamento.
	for _, p := range result.Game.Players {
		if sess := h.sessionFor(p.ID); sess != nil {
			sess.Send() <- message.GameFound(result.Game, p.Symbol)
		}
	}
	h.feed.MatchCreated(result.Game)
}

// handleLeaveQueue tira o jogador da fila. Sair sem estar nela não é
// erro: a confirmação vai do mesmo jeito.
func handleLeaveQueue(h *GameHandler, s *PlayerSession, payload json.RawMessage) {
	h.queue.Dequeue(s.ID)
	s.Send() <- message.LeftQueue("Left matchmaking queue")
}

// handleCreatePrivateGame cria uma partida por código: o criador recebe
// o X e o id curto para compartilhar com o oponente.
func handleCreatePrivateGame(h *GameHandler, s *PlayerSession, payload json.RawMessage) {
	var req struct {
		Name string `json:"name"`
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			message.SendError(s, "Invalid payload for create_private_game.")
			return
		}
	}

	name := s.displayName(req.Name)
	h.ledger.Ensure(s.ID, name)

	g, err := h.store.Create(game.Player{ID: s.ID, Name: name})
	if err != nil {
		message.SendError(s, "Could not create game: %v", err)
		return
	}

	s.Send() <- message.PrivateGameCreated(g, game.MarkX)
}

// handleJoinPrivateGame entra em uma partida criada por código.
func handleJoinPrivateGame(h *GameHandler, s *PlayerSession, payload json.RawMessage) {
	var req struct {
		GameID string `json:"gameId"`
		Name   string `json:"name"`
	}
	if err := json.Unmarshal(payload, &req); err != nil || req.GameID == "" {
		message.SendError(s, "Invalid payload: 'gameId' is required.")
		return
	}

	name := s.displayName(req.Name)
	h.ledger.Ensure(s.ID, name)

	g, err := h.store.Join(req.GameID, game.Player{ID: s.ID, Name: name})
	if err != nil {
		message.SendError(s, "Could not join game. Game may be full or not exist.")
		return
	}

	h.broadcastToGame(g, message.GameStarted(g, "Game started!"))
	for _, p := range g.Players {
		if sess := h.sessionFor(p.ID); sess != nil {
			sess.Send() <- message.YourSymbol(p.Symbol)
		}
	}
	h.feed.MatchCreated(g)
}

// handleMakeMove aplica uma jogada. Toda jogada aceita vira um
// game_update para os dois lados; a jogada que fecha a partida também
// dispara o game_finished com pontos e placar, uma única vez.
func handleMakeMove(h *GameHandler, s *PlayerSession, payload json.RawMessage) {
	var req struct {
		GameID   string `json:"gameId"`
		Position *int   `json:"position"`
	}
	if err := json.Unmarshal(payload, &req); err != nil || req.GameID == "" || req.Position == nil {
		message.SendError(s, "Invalid payload: 'gameId' and 'position' are required.")
		return
	}

	g, err := h.store.Move(req.GameID, s.ID, *req.Position)
	if err != nil {
		message.SendError(s, "%s", moveErrorText(err))
		return
	}

	h.broadcastToGame(g, message.GameUpdate(g))

	if g.Status != game.StatusFinished {
		return
	}

	awarded := h.ledger.PointsFor(g, g.Winner)

	var text string
	if g.Winner != game.MarkNone {
		winner, _ := g.PlayerBySymbol(g.Winner)
		text = fmt.Sprintf("%s wins! +%d pts", winner.Name, awarded[winner.ID])
	} else {
		// Empate: os dois pontuam igual, qualquer participante serve
		// para ler o valor.
		text = fmt.Sprintf("It's a draw! +%d pts each", awarded[g.Players[0].ID])
	}

	h.broadcastToGame(g, message.GameFinished(g, text, awarded, h.ledger.Leaderboard()))
	h.feed.GameFinished(g, awarded)
}

// handleRequestRematch reinicia a partida em que o solicitante joga:
// tabuleiro limpo, símbolos trocados, o novo X começa.
func handleRequestRematch(h *GameHandler, s *PlayerSession, payload json.RawMessage) {
	var req struct {
		GameID string `json:"gameId"`
	}
	if err := json.Unmarshal(payload, &req); err != nil || req.GameID == "" {
		message.SendError(s, "Invalid payload: 'gameId' is required.")
		return
	}

	g, err := h.store.Rematch(req.GameID, s.ID)
	if err != nil {
		switch {
		case errors.Is(err, game.ErrGameNotFound):
			message.SendError(s, "Game not found")
		case errors.Is(err, game.ErrNotAPlayer):
			message.SendError(s, "You are not in this game")
		default:
			message.SendError(s, "Could not restart game")
		}
		return
	}

	h.broadcastToGame(g, message.GameRestarted(g, "New game started! Symbols switched."))
	for _, p := range g.Players {
		if sess := h.sessionFor(p.ID); sess != nil {
			sess.Send() <- message.YourSymbol(p.Symbol)
		}
	}
}

// moveErrorText traduz os erros do Store para os textos que o cliente
// já conhece.
func moveErrorText(err error) string {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		return "Game not found"
	case errors.Is(err, game.ErrWrongStatus):
		return "Game not in progress"
	case errors.Is(err, game.ErrNotYourTurn):
		return "Not your turn"
	case errors.Is(err, game.ErrNotAPlayer):
		return "Player not in game"
	case errors.Is(err, game.ErrInvalidPosition):
		return "Invalid position"
	default:
		return "Invalid move"
	}
}
