package matchmaking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velha/internal/game"
)

func player(id, name string) game.Player {
	return game.Player{ID: id, Name: name}
}

func TestEnqueuePairsInArrivalOrder(t *testing.T) {
	store := game.NewStore(nil)
	q := NewQueue(store)

	// A chega primeiro e fica esperando.
	res, err := q.Enqueue(player("a", "A"))
	require.NoError(t, err)
	assert.False(t, res.Matched)

	// B chega e fecha par com A: A é o X, B é o O, A começa.
	res, err = q.Enqueue(player("b", "B"))
	require.NoError(t, err)
	require.True(t, res.Matched)
	require.NotNil(t, res.Game)

	assert.Equal(t, game.StatusPlaying, res.Game.Status)
	a, _ := res.Game.PlayerByID("a")
	b, _ := res.Game.PlayerByID("b")
	assert.Equal(t, game.MarkX, a.Symbol)
	assert.Equal(t, game.MarkO, b.Symbol)
	assert.Equal(t, "a", res.Game.CurrentPlayer)
}

func TestEnqueueIsFIFO(t *testing.T) {
	store := game.NewStore(nil)
	q := NewQueue(store)

	// A e B pareiam na chegada de B; C fica sozinho na fila.
	q.Enqueue(player("a", "A"))
	res, _ := q.Enqueue(player("b", "B"))
	require.True(t, res.Matched)
	_, okA := res.Game.PlayerByID("a")
	assert.True(t, okA, "B must pair with A, the oldest in queue")

	res, _ = q.Enqueue(player("c", "C"))
	assert.False(t, res.Matched)
	assert.Equal(t, 1, q.Status().PlayersInQueue)

	// D chega e leva o C que esperava.
	res, _ = q.Enqueue(player("d", "D"))
	require.True(t, res.Matched)
	c, _ := res.Game.PlayerByID("c")
	assert.Equal(t, game.MarkX, c.Symbol)
}

func TestEnqueueDuplicateIsSilentlyIgnored(t *testing.T) {
	store := game.NewStore(nil)
	q := NewQueue(store)

	q.Enqueue(player("a", "A"))
	res, err := q.Enqueue(player("a", "A"))
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.Equal(t, 1, q.Status().PlayersInQueue)

	// A continua pareável uma única vez.
	res, _ = q.Enqueue(player("b", "B"))
	assert.True(t, res.Matched)
	assert.Equal(t, 0, q.Status().PlayersInQueue)
}

func TestDequeue(t *testing.T) {
	store := game.NewStore(nil)
	q := NewQueue(store)

	q.Enqueue(player("a", "A"))
	q.Dequeue("a")
	assert.Equal(t, 0, q.Status().PlayersInQueue)

	// Remover quem não está na fila é um no-op silencioso.
	q.Dequeue("ghost")

	// Depois da saída de A, B espera em vez de parear.
	res, _ := q.Enqueue(player("b", "B"))
	assert.False(t, res.Matched)
}

func TestStatus(t *testing.T) {
	store := game.NewStore(nil)
	q := NewQueue(store)

	st := q.Status()
	assert.Equal(t, 0, st.PlayersInQueue)
	assert.Equal(t, "Instant match", st.EstimatedWaitTime)

	q.Enqueue(player("a", "A"))
	st = q.Status()
	assert.Equal(t, 1, st.PlayersInQueue)
	assert.Equal(t, "< 30 seconds", st.EstimatedWaitTime)
}
