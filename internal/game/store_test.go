package game

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = Player{ID: "conn-alice", Name: "Alice"}
	bob   = Player{ID: "conn-bob", Name: "Bob"}
)

// newPlayingGame cria uma partida já com os dois jogadores dentro.
func newPlayingGame(t *testing.T, s *Store) *Game {
	t.Helper()
	g, err := s.Create(alice)
	require.NoError(t, err)
	g, err = s.Join(g.ID, bob)
	require.NoError(t, err)
	return g
}

func TestCreate(t *testing.T) {
	s := NewStore(nil)

	g, err := s.Create(alice)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^\d{5}$`), g.ID)
	assert.Equal(t, StatusWaiting, g.Status)
	assert.Equal(t, alice.ID, g.CurrentPlayer)
	require.Len(t, g.Players, 1)
	assert.Equal(t, MarkX, g.Players[0].Symbol)
	assert.False(t, g.CreatedAt.IsZero())
}

func TestJoin(t *testing.T) {
	t.Run("second player gets O and the game starts", func(t *testing.T) {
		s := NewStore(nil)
		g := newPlayingGame(t, s)

		assert.Equal(t, StatusPlaying, g.Status)
		require.Len(t, g.Players, 2)
		assert.Equal(t, MarkO, g.Players[1].Symbol)
		// O turno continua com quem criou.
		assert.Equal(t, alice.ID, g.CurrentPlayer)
	})

	t.Run("unknown game", func(t *testing.T) {
		s := NewStore(nil)
		_, err := s.Join("00000", bob)
		assert.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("full game", func(t *testing.T) {
		s := NewStore(nil)
		g := newPlayingGame(t, s)
		_, err := s.Join(g.ID, Player{ID: "conn-eve", Name: "Eve"})
		assert.ErrorIs(t, err, ErrGameFull)
	})
}

func TestMoveTurnAlternation(t *testing.T) {
	s := NewStore(nil)
	g := newPlayingGame(t, s)

	// Bob tenta jogar fora do turno dele.
	_, err := s.Move(g.ID, bob.ID, 0)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	// Alice joga: o turno vira para Bob.
	g, err = s.Move(g.ID, alice.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, g.CurrentPlayer)

	// Alice de novo, fora de hora.
	_, err = s.Move(g.ID, alice.ID, 4)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	// Bob em casa ocupada: rejeitado, turno não muda.
	_, err = s.Move(g.ID, bob.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidPosition)
	assert.Equal(t, bob.ID, s.Get(g.ID).CurrentPlayer)
}

func TestMoveWinConcludesGame(t *testing.T) {
	var (
		endCalls  int
		endWinner Mark
	)
	s := NewStore(func(g *Game, winner Mark) {
		endCalls++
		endWinner = winner
	})
	g := newPlayingGame(t, s)

	// Alice fecha a primeira linha: 0, 1, 2.
	for _, mv := range []struct {
		player string
		pos    int
	}{
		{alice.ID, 0}, {bob.ID, 3}, {alice.ID, 1}, {bob.ID, 4}, {alice.ID, 2},
	} {
		var err error
		g, err = s.Move(g.ID, mv.player, mv.pos)
		require.NoError(t, err)
	}

	assert.Equal(t, StatusFinished, g.Status)
	assert.Equal(t, MarkX, g.Winner)
	assert.False(t, g.IsDraw)
	assert.Equal(t, 1, endCalls)
	assert.Equal(t, MarkX, endWinner)

	// Depois do fim, nenhuma jogada entra e o ledger não é avisado de novo.
	_, err := s.Move(g.ID, bob.ID, 5)
	assert.ErrorIs(t, err, ErrWrongStatus)
	assert.Equal(t, 1, endCalls)
}

func TestMoveDrawConcludesGame(t *testing.T) {
	var endCalls int
	var endWinner Mark
	s := NewStore(func(g *Game, winner Mark) {
		endCalls++
		endWinner = winner
	})
	g := newPlayingGame(t, s)

	// Sequência alternada que enche o tabuleiro sem linha fechada.
	moves := []struct {
		player string
		pos    int
	}{
		{alice.ID, 0}, {bob.ID, 1}, {alice.ID, 2}, {bob.ID, 4},
		{alice.ID, 3}, {bob.ID, 5}, {alice.ID, 7}, {bob.ID, 6}, {alice.ID, 8},
	}
	for _, mv := range moves {
		var err error
		g, err = s.Move(g.ID, mv.player, mv.pos)
		require.NoError(t, err)
	}

	assert.Equal(t, StatusFinished, g.Status)
	assert.True(t, g.IsDraw)
	assert.Equal(t, MarkNone, g.Winner)
	assert.Equal(t, 1, endCalls)
	assert.Equal(t, MarkNone, endWinner)
}

func TestMoveOnWaitingGame(t *testing.T) {
	s := NewStore(nil)
	g, err := s.Create(alice)
	require.NoError(t, err)

	_, err = s.Move(g.ID, alice.ID, 0)
	assert.ErrorIs(t, err, ErrWrongStatus)
}

func TestRematch(t *testing.T) {
	t.Run("swaps symbols, clears the board and restarts", func(t *testing.T) {
		s := NewStore(nil)
		g := newPlayingGame(t, s)

		// Alice vence pela primeira linha.
		for _, mv := range []struct {
			player string
			pos    int
		}{
			{alice.ID, 0}, {bob.ID, 3}, {alice.ID, 1}, {bob.ID, 4}, {alice.ID, 2},
		} {
			var err error
			g, err = s.Move(g.ID, mv.player, mv.pos)
			require.NoError(t, err)
		}
		require.Equal(t, StatusFinished, g.Status)

		g, err := s.Rematch(g.ID, alice.ID)
		require.NoError(t, err)

		assert.Equal(t, Board{}, g.Board)
		assert.Equal(t, StatusPlaying, g.Status)
		assert.Equal(t, MarkNone, g.Winner)
		assert.False(t, g.IsDraw)

		// Os símbolos trocaram de dono e o novo X abre o jogo.
		a, _ := g.PlayerByID(alice.ID)
		b, _ := g.PlayerByID(bob.ID)
		assert.Equal(t, MarkO, a.Symbol)
		assert.Equal(t, MarkX, b.Symbol)
		assert.Equal(t, bob.ID, g.CurrentPlayer)
	})

	t.Run("unknown game", func(t *testing.T) {
		s := NewStore(nil)
		_, err := s.Rematch("00000", alice.ID)
		assert.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("requester outside the game", func(t *testing.T) {
		s := NewStore(nil)
		g := newPlayingGame(t, s)
		_, err := s.Rematch(g.ID, "conn-eve")
		assert.ErrorIs(t, err, ErrNotAPlayer)
	})

	t.Run("needs both players", func(t *testing.T) {
		s := NewStore(nil)
		g, err := s.Create(alice)
		require.NoError(t, err)
		_, err = s.Rematch(g.ID, alice.ID)
		assert.ErrorIs(t, err, ErrNeedTwoPlayers)
	})
}

func TestListByPlayer(t *testing.T) {
	s := NewStore(nil)
	g := newPlayingGame(t, s)
	_, err := s.Create(Player{ID: "conn-eve", Name: "Eve"})
	require.NoError(t, err)

	games := s.ListByPlayer(alice.ID)
	require.Len(t, games, 1)
	assert.Equal(t, g.ID, games[0].ID)

	assert.Len(t, s.List(), 2)
	assert.Empty(t, s.ListByPlayer("conn-nobody"))
}

func TestSnapshotsAreIndependent(t *testing.T) {
	s := NewStore(nil)
	g := newPlayingGame(t, s)

	// Mexer na foto não pode vazar para o estado do Store.
	g.Board[0] = MarkO
	g.Players[0].Name = "Mallory"

	fresh := s.Get(g.ID)
	assert.Equal(t, MarkNone, fresh.Board[0])
	assert.Equal(t, "Alice", fresh.Players[0].Name)
}
