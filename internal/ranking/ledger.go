// Package ranking é o dono das estatísticas acumuladas por identidade.
// Nada fora daqui escreve em vitórias, derrotas ou pontos: a partida
// entrega o resultado e o ledger faz a contabilidade.
package ranking

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"velha/internal/game"
)

// ScoreRules define a política de pontuação. Os valores padrão vêm da
// configuração; derrota nunca pontua.
type ScoreRules struct {
	WinPoints  int
	DrawPoints int
}

// DefaultScoreRules é a pontuação clássica: 200 por vitória, 50 por empate.
var DefaultScoreRules = ScoreRules{WinPoints: 200, DrawPoints: 50}

// Stats é o registro acumulado de uma identidade.
type Stats struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Draws       int    `json:"draws"`
	Points      int    `json:"points"`
	GamesPlayed int    `json:"gamesPlayed"`
}

// Ledger guarda as estatísticas de todos os jogadores vistos pelo
// processo, chaveadas pelo id da conexão. As estatísticas sobrevivem à
// desconexão; só morrem com o processo.
type Ledger struct {
	mu      sync.Mutex
	rules   ScoreRules
	players map[string]*Stats
}

// NewLedger cria um ledger vazio com a política de pontuação dada.
func NewLedger(rules ScoreRules) *Ledger {
	return &Ledger{
		rules:   rules,
		players: make(map[string]*Stats),
	}
}

// Ensure garante que a identidade existe no ledger. Se já existe, as
// estatísticas são preservadas e apenas o nome de exibição é atualizado.
// Precisa ser chamado antes de qualquer incremento de estatística.
func (l *Ledger) Ensure(id, name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if st, ok := l.players[id]; ok {
		st.Name = name
		return
	}
	l.players[id] = &Stats{ID: id, Name: name}
}

// Get retorna uma cópia das estatísticas de uma identidade.
func (l *Ledger) Get(id string) (Stats, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	st, ok := l.players[id]
	if !ok {
		return Stats{}, false
	}
	return *st, true
}

// RecordOutcome registra o resultado terminal de uma partida para todos
// os participantes: o vencedor ganha pontos e uma vitória, o perdedor
// uma derrota, e um empate pontua os dois. winner é MarkNone no empate.
//
// Quem chama é responsável por chamar isto uma única vez por transição
// terminal; o guard de status do Store de partidas garante isso no
// fluxo público.
func (l *Ledger) RecordOutcome(g *game.Game, winner game.Mark) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range g.Players {
		st, ok := l.players[p.ID]
		if !ok {
			// Identidade nunca passou pelo Ensure: não inventamos
			// registro no meio da contabilidade.
			log.WithField("player_id", p.ID).Warn("outcome for unknown player ignored")
			continue
		}

		st.GamesPlayed++
		switch {
		case winner == game.MarkNone:
			st.Draws++
			st.Points += l.rules.DrawPoints
		case p.Symbol == winner:
			st.Wins++
			st.Points += l.rules.WinPoints
		default:
			st.Losses++
		}
	}
}

// PointsFor calcula o mapa id→pontos ganhos que acompanha a notificação
// de fim de partida. Não muta nada: é só a leitura da política.
func (l *Ledger) PointsFor(g *game.Game, winner game.Mark) map[string]int {
	awarded := make(map[string]int, len(g.Players))
	for _, p := range g.Players {
		switch {
		case winner == game.MarkNone:
			awarded[p.ID] = l.rules.DrawPoints
		case p.Symbol == winner:
			awarded[p.ID] = l.rules.WinPoints
		default:
			awarded[p.ID] = 0
		}
	}
	return awarded
}
