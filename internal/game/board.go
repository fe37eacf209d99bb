package game

import (
	"errors"
	"fmt"
)

// Mark é o símbolo que um jogador usa dentro de uma partida.
// O primeiro jogador sempre recebe X, o segundo recebe O.
type Mark string

const (
	MarkX Mark = "X"
	MarkO Mark = "O"

	// MarkNone representa uma casa vazia do tabuleiro (ou "nenhum vencedor").
	MarkNone Mark = ""
)

// BoardSize é o número de casas do tabuleiro, indexadas de 0 a 8.
const BoardSize = 9

// Board é o tabuleiro do jogo da velha. Cada casa contém MarkX, MarkO
// ou MarkNone. O tipo é um array (não slice) de propósito: copiar um
// Board é uma cópia real, então as funções abaixo são puras.
type Board [BoardSize]Mark

// ErrInvalidPosition é retornado quando a posição está fora do tabuleiro
// ou a casa já está ocupada.
var ErrInvalidPosition = errors.New("invalid position")

// winLines são as 8 linhas fixas de vitória: 3 linhas, 3 colunas e 2 diagonais.
var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // linhas
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // colunas
	{0, 4, 8}, {2, 4, 6},            // diagonais
}

// ApplyMove aplica uma jogada e retorna o novo tabuleiro.
// Não tem efeitos colaterais: o tabuleiro de entrada nunca é modificado.
func ApplyMove(b Board, position int, mark Mark) (Board, error) {
	if position < 0 || position >= BoardSize {
		return b, fmt.Errorf("%w: %d is outside the board", ErrInvalidPosition, position)
	}
	if b[position] != MarkNone {
		return b, fmt.Errorf("%w: %d is already taken", ErrInvalidPosition, position)
	}
	b[position] = mark
	return b, nil
}

// Outcome é o resultado terminal de um tabuleiro.
// Winner != MarkNone e Draw nunca são verdadeiros ao mesmo tempo:
// a vitória é verificada antes do empate.
type Outcome struct {
	Winner Mark
	Draw   bool
}

// Terminal informa se o resultado encerra a partida.
func (o Outcome) Terminal() bool {
	return o.Winner != MarkNone || o.Draw
}

// Evaluate varre as 8 linhas fixas e decide o resultado do tabuleiro.
// É uma função total e determinística: sempre O(1).
func Evaluate(b Board) Outcome {
	for _, line := range winLines {
		a := b[line[0]]
		if a != MarkNone && a == b[line[1]] && a == b[line[2]] {
			return Outcome{Winner: a}
		}
	}
	for _, cell := range b {
		if cell == MarkNone {
			return Outcome{}
		}
	}
	return Outcome{Draw: true}
}
