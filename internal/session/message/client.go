// Package message constrói as mensagens que viajam no sentido
// servidor → cliente. Cada evento de saída tem o próprio construtor e a
// própria struct de payload; o nome do evento é exatamente o que o
// cliente escuta.
package message

import (
	"encoding/json"

	"velha/internal/game"
	"velha/internal/matchmaking"
	"velha/internal/network"
	"velha/internal/ranking"
)

// Nomes dos eventos de saída.
const (
	TypeQueued             = "queued"
	TypeGameFound          = "game_found"
	TypePrivateGameCreated = "private_game_created"
	TypeGameStarted        = "game_started"
	TypeYourSymbol         = "your_symbol"
	TypeGameUpdate         = "game_update"
	TypeGameFinished       = "game_finished"
	TypeGameRestarted      = "game_restarted"
	TypeLeftQueue          = "left_queue"
	TypeError              = "error"
)

// QueuedPayload confirma a entrada na fila e informa a situação dela.
type QueuedPayload struct {
	Message     string                  `json:"message"`
	QueueStatus matchmaking.QueueStatus `json:"queueStatus"`
}

// GameFoundPayload avisa um jogador pareado, com o símbolo que ele recebeu.
type GameFoundPayload struct {
	Game       *game.Game `json:"game"`
	YourSymbol game.Mark  `json:"yourSymbol"`
}

// PrivateGameCreatedPayload devolve o id curto para compartilhar.
type PrivateGameCreatedPayload struct {
	Game       *game.Game `json:"game"`
	GameID     string     `json:"gameId"`
	YourSymbol game.Mark  `json:"yourSymbol"`
}

// GamePayload é o formato comum de game_started e game_restarted.
type GamePayload struct {
	Game    *game.Game `json:"game"`
	Message string     `json:"message"`
}

// YourSymbolPayload informa (ou reinforma, após revanche) o símbolo.
type YourSymbolPayload struct {
	Symbol game.Mark `json:"symbol"`
}

// GameUpdatePayload é transmitido a cada jogada aceita.
type GameUpdatePayload struct {
	Game *game.Game `json:"game"`
}

// GameFinishedPayload é transmitido uma única vez por transição terminal.
type GameFinishedPayload struct {
	Game          *game.Game      `json:"game"`
	Message       string          `json:"message"`
	PointsAwarded map[string]int  `json:"pointsAwarded"`
	Leaderboard   []ranking.Entry `json:"leaderboard"`
}

// TextPayload cobre os avisos que só carregam um texto.
type TextPayload struct {
	Message string `json:"message"`
}

func Queued(text string, status matchmaking.QueueStatus) network.Message {
	return build(TypeQueued, QueuedPayload{Message: text, QueueStatus: status})
}

func GameFound(g *game.Game, symbol game.Mark) network.Message {
	return build(TypeGameFound, GameFoundPayload{Game: g, YourSymbol: symbol})
}

func PrivateGameCreated(g *game.Game, symbol game.Mark) network.Message {
	return build(TypePrivateGameCreated, PrivateGameCreatedPayload{Game: g, GameID: g.ID, YourSymbol: symbol})
}

func GameStarted(g *game.Game, text string) network.Message {
	return build(TypeGameStarted, GamePayload{Game: g, Message: text})
}

func YourSymbol(symbol game.Mark) network.Message {
	return build(TypeYourSymbol, YourSymbolPayload{Symbol: symbol})
}

func GameUpdate(g *game.Game) network.Message {
	return build(TypeGameUpdate, GameUpdatePayload{Game: g})
}

func GameFinished(g *game.Game, text string, awarded map[string]int, board []ranking.Entry) network.Message {
	return build(TypeGameFinished, GameFinishedPayload{
		Game:          g,
		Message:       text,
		PointsAwarded: awarded,
		Leaderboard:   board,
	})
}

func GameRestarted(g *game.Game, text string) network.Message {
	return build(TypeGameRestarted, GamePayload{Game: g, Message: text})
}

func LeftQueue(text string) network.Message {
	return build(TypeLeftQueue, TextPayload{Message: text})
}

func Error(text string) network.Message {
	return build(TypeError, TextPayload{Message: text})
}

// build serializa o payload direto no envelope. Todos os payloads deste
// pacote são structs nossas: falha de Marshal aqui é bug, não runtime.
func build(msgType string, payload any) network.Message {
	raw, _ := json.Marshal(payload)
	return network.Message{Type: msgType, Payload: raw}
}
