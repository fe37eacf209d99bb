// Package events publica o ciclo de vida das partidas em um barramento
// para observadores externos (dashboards, bots, auditoria). O fluxo do
// jogo nunca depende disso: publicar é melhor-esforço e falha é só log.
package events

import (
	"velha/internal/game"
)

// Publisher é o destino dos eventos de ciclo de vida.
type Publisher interface {
	// MatchCreated anuncia uma partida recém-pareada ou privada que começou.
	MatchCreated(g *game.Game)

	// GameFinished anuncia a transição terminal, com os pontos concedidos.
	GameFinished(g *game.Game, pointsAwarded map[string]int)
}

// Noop é o publisher padrão quando nenhum barramento está configurado.
type Noop struct{}

func (Noop) MatchCreated(*game.Game) {}

func (Noop) GameFinished(*game.Game, map[string]int) {}
