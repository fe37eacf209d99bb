package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boardOf monta um tabuleiro a partir de 9 strings, na ordem das casas.
func boardOf(cells ...Mark) Board {
	var b Board
	copy(b[:], cells)
	return b
}

func TestApplyMove(t *testing.T) {
	t.Run("fills an empty cell", func(t *testing.T) {
		b, err := ApplyMove(Board{}, 4, MarkX)
		require.NoError(t, err)
		assert.Equal(t, MarkX, b[4])
	})

	t.Run("rejects positions outside the board", func(t *testing.T) {
		for _, pos := range []int{-1, 9, 100} {
			_, err := ApplyMove(Board{}, pos, MarkX)
			assert.ErrorIs(t, err, ErrInvalidPosition)
		}
	})

	t.Run("rejects an occupied cell", func(t *testing.T) {
		b, err := ApplyMove(Board{}, 0, MarkX)
		require.NoError(t, err)
		_, err = ApplyMove(b, 0, MarkO)
		assert.ErrorIs(t, err, ErrInvalidPosition)
	})

	t.Run("never mutates the input board", func(t *testing.T) {
		original := Board{}
		_, err := ApplyMove(original, 0, MarkX)
		require.NoError(t, err)
		assert.Equal(t, Board{}, original)
	})
}

func TestEvaluate(t *testing.T) {
	x, o, e := MarkX, MarkO, MarkNone

	tests := []struct {
		name string
		b    Board
		want Outcome
	}{
		{"empty board", Board{}, Outcome{}},
		{"game in progress", boardOf(x, o, e, e, x, e, e, e, e), Outcome{}},

		{"top row", boardOf(x, x, x, o, o, e, e, e, e), Outcome{Winner: x}},
		{"middle row", boardOf(o, o, e, x, x, x, e, e, e), Outcome{Winner: x}},
		{"bottom row", boardOf(e, e, e, o, o, e, x, x, x), Outcome{Winner: x}},
		{"left column", boardOf(o, x, e, o, x, e, o, e, e), Outcome{Winner: o}},
		{"middle column", boardOf(x, o, e, e, o, x, e, o, e), Outcome{Winner: o}},
		{"right column", boardOf(e, x, o, e, x, o, x, e, o), Outcome{Winner: o}},
		{"main diagonal", boardOf(x, o, e, o, x, e, e, e, x), Outcome{Winner: x}},
		{"anti diagonal", boardOf(e, o, x, o, x, e, x, e, e), Outcome{Winner: x}},

		{"full board with no line is a draw", boardOf(x, o, x, x, o, o, o, x, x), Outcome{Draw: true}},
		{"full board with a line is a win, not a draw", boardOf(x, x, x, o, o, x, o, x, o), Outcome{Winner: x}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.b)
			assert.Equal(t, tt.want, got)

			// Vitória e empate nunca coexistem.
			if got.Winner != MarkNone {
				assert.False(t, got.Draw)
			}
		})
	}
}
