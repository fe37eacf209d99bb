package ranking

import (
	"math"
	"sort"
)

// leaderboardSize limita o placar aos 10 primeiros.
const leaderboardSize = 10

// Entry é a projeção somente-leitura de uma identidade no placar.
// É recalculada sob demanda a partir do ledger, nunca mutada por fora.
type Entry struct {
	PlayerID    string `json:"playerId"`
	Name        string `json:"name"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Draws       int    `json:"draws"`
	Points      int    `json:"points"`
	GamesPlayed int    `json:"gamesPlayed"`
	WinRate     int    `json:"winRate"`
	Rank        int    `json:"rank"`
}

// Leaderboard monta o placar atual: só quem já jogou aparece, ordenado
// por pontos, desempatado por taxa de vitória e depois por vitórias.
// O rank é denso (1..N) nessa ordem.
func (l *Ledger) Leaderboard() []Entry {
	l.mu.Lock()
	entries := make([]Entry, 0, len(l.players))
	for _, st := range l.players {
		if st.GamesPlayed == 0 {
			continue
		}
		entries = append(entries, Entry{
			PlayerID:    st.ID,
			Name:        st.Name,
			Wins:        st.Wins,
			Losses:      st.Losses,
			Draws:       st.Draws,
			Points:      st.Points,
			GamesPlayed: st.GamesPlayed,
			WinRate:     winRate(st.Wins, st.GamesPlayed),
		})
	}
	l.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		return a.Wins > b.Wins
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	if len(entries) > leaderboardSize {
		entries = entries[:leaderboardSize]
	}
	return entries
}

// winRate é a porcentagem inteira e arredondada de vitórias.
func winRate(wins, played int) int {
	if played == 0 {
		return 0
	}
	return int(math.Round(float64(wins) / float64(played) * 100))
}
