package game

import (
	"time"
)

// Status é o estado do ciclo de vida de uma partida.
//
// Máquina de estados:
//
//	waiting → playing → finished
//	             ↑_________↓  (revanche)
//
type Status string

const (
	StatusWaiting  Status = "waiting"  // Esperando o segundo jogador entrar.
	StatusPlaying  Status = "playing"  // Partida em andamento.
	StatusFinished Status = "finished" // Vitória ou empate registrado.
)

// Player é a foto de um participante dentro de uma partida: quem ele é e
// com qual símbolo joga. As estatísticas acumuladas NÃO vivem aqui, elas
// pertencem ao ledger de ranking. A partida nunca escreve nelas.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol Mark   `json:"symbol"`
}

// Game é uma instância única de jogo da velha entre até dois jogadores.
// Todos os campos são mutados apenas pelo Store, dentro do lock dele.
type Game struct {
	ID            string    `json:"id"`
	Board         Board     `json:"board"`
	Players       []Player  `json:"players"`
	CurrentPlayer string    `json:"currentPlayer"`
	Winner        Mark      `json:"winner"`
	IsDraw        bool      `json:"isDraw"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PlayerByID procura um participante pelo id da conexão.
func (g *Game) PlayerByID(id string) (Player, bool) {
	for _, p := range g.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// PlayerBySymbol procura o participante que joga com o símbolo dado.
func (g *Game) PlayerBySymbol(m Mark) (Player, bool) {
	for _, p := range g.Players {
		if p.Symbol == m {
			return p, true
		}
	}
	return Player{}, false
}

// Opponent retorna o outro participante da partida.
func (g *Game) Opponent(id string) (Player, bool) {
	for _, p := range g.Players {
		if p.ID != id {
			return p, true
		}
	}
	return Player{}, false
}

// snapshot devolve uma cópia independente da partida, segura para ser
// serializada e enviada aos clientes fora do lock do Store.
func (g *Game) snapshot() *Game {
	cp := *g
	cp.Players = make([]Player, len(g.Players))
	copy(cp.Players, g.Players)
	return &cp
}
