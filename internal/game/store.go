package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Erros de negócio do Store. Todos são rejeições síncronas: nenhum deles
// deixa a partida em estado parcial.
var (
	ErrGameNotFound   = errors.New("game not found")
	ErrGameFull       = errors.New("game is full")
	ErrWrongStatus    = errors.New("game is not in the right status")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrNotAPlayer     = errors.New("you are not in this game")
	ErrNeedTwoPlayers = errors.New("game does not have two players")
)

// OnGameEndFunc é o callback executado quando uma partida chega a um
// resultado terminal. winner é MarkNone em caso de empate.
// É chamado exatamente uma vez por transição terminal, fora do lock.
type OnGameEndFunc func(g *Game, winner Mark)

// idAttempts limita as tentativas de gerar um id livre antes de desistir.
const idAttempts = 100

// Store é o dono exclusivo de todas as partidas. Qualquer operação
// pública executa como uma seção crítica única sob o mutex, então o
// Store é seguro para quantas conexões concorrentes aparecerem.
type Store struct {
	mu    sync.Mutex
	games map[string]*Game
	rng   *rand.Rand

	onGameEnd OnGameEndFunc
}

// NewStore cria um Store vazio. onGameEnd pode ser nil se ninguém
// precisar ser notificado do fim das partidas (útil em testes).
func NewStore(onGameEnd OnGameEndFunc) *Store {
	return &Store{
		games:     make(map[string]*Game),
		rng:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 1)),
		onGameEnd: onGameEnd,
	}
}

// Create cria uma partida nova com o primeiro jogador. Ele recebe o X
// e o primeiro turno; a partida fica esperando o oponente.
func (s *Store) Create(p Player) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.newGameID()
	if err != nil {
		return nil, err
	}

	p.Symbol = MarkX
	g := &Game{
		ID:            id,
		Players:       []Player{p},
		CurrentPlayer: p.ID,
		Status:        StatusWaiting,
		CreatedAt:     time.Now(),
	}
	s.games[id] = g

	log.WithFields(log.Fields{"game_id": id, "player_id": p.ID}).Info("game created")
	return g.snapshot(), nil
}

// Join coloca o segundo jogador em uma partida que está esperando.
// Ele recebe o O e a partida começa.
func (s *Store) Join(gameID string, p Player) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}
	if len(g.Players) >= 2 {
		return nil, ErrGameFull
	}
	if g.Status != StatusWaiting {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrWrongStatus, StatusWaiting, g.Status)
	}

	p.Symbol = MarkO
	g.Players = append(g.Players, p)
	g.Status = StatusPlaying

	log.WithFields(log.Fields{"game_id": gameID, "player_id": p.ID}).Info("player joined game")
	return g.snapshot(), nil
}

// Move aplica a jogada de um participante. Valida o estado da partida e
// o dono do turno, delega a jogada em si para o motor de regras e, se o
// tabuleiro chegar a um resultado terminal, fecha a partida e dispara o
// callback de fim de jogo uma única vez.
func (s *Store) Move(gameID, playerID string, position int) (*Game, error) {
	snap, winner, ended, err := s.applyMove(gameID, playerID, position)
	if err != nil {
		return nil, err
	}

	// O callback roda fora do lock: o ledger tem o próprio mutex e não
	// deve segurar o lock do Store enquanto atualiza estatísticas.
	if ended && s.onGameEnd != nil {
		s.onGameEnd(snap, winner)
	}
	return snap, nil
}

func (s *Store) applyMove(gameID, playerID string, position int) (*Game, Mark, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, MarkNone, false, ErrGameNotFound
	}
	if g.Status != StatusPlaying {
		return nil, MarkNone, false, fmt.Errorf("%w: game is %s", ErrWrongStatus, g.Status)
	}
	if g.CurrentPlayer != playerID {
		return nil, MarkNone, false, ErrNotYourTurn
	}

	player, ok := g.PlayerByID(playerID)
	if !ok {
		return nil, MarkNone, false, ErrNotAPlayer
	}

	board, err := ApplyMove(g.Board, position, player.Symbol)
	if err != nil {
		return nil, MarkNone, false, err
	}
	g.Board = board

	outcome := Evaluate(g.Board)
	switch {
	case outcome.Winner != MarkNone:
		g.Winner = outcome.Winner
		g.Status = StatusFinished
	case outcome.Draw:
		g.IsDraw = true
		g.Status = StatusFinished
	default:
		// Ninguém ganhou ainda: o turno passa para o oponente.
		if opp, ok := g.Opponent(playerID); ok {
			g.CurrentPlayer = opp.ID
		}
	}

	if g.Status == StatusFinished {
		log.WithFields(log.Fields{
			"game_id": gameID,
			"winner":  string(g.Winner),
			"draw":    g.IsDraw,
		}).Info("game finished")
	}

	return g.snapshot(), outcome.Winner, outcome.Terminal(), nil
}

// Rematch reinicia a partida no mesmo id, com os mesmos dois jogadores.
// O tabuleiro é limpo, os símbolos trocam de dono e quem recebeu o X
// começa. O comportamento herdado é permitir a revanche mesmo com a
// partida em andamento; quem chama decide se quer expor isso.
func (s *Store) Rematch(gameID, requesterID string) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}
	if _, ok := g.PlayerByID(requesterID); !ok {
		return nil, ErrNotAPlayer
	}
	if len(g.Players) != 2 {
		return nil, ErrNeedTwoPlayers
	}

	g.Board = Board{}
	g.Winner = MarkNone
	g.IsDraw = false
	g.Status = StatusPlaying
	g.CreatedAt = time.Now()

	// Troca os símbolos: quem era X vira O e vice-versa.
	for i := range g.Players {
		if g.Players[i].Symbol == MarkX {
			g.Players[i].Symbol = MarkO
		} else {
			g.Players[i].Symbol = MarkX
		}
	}

	// O novo dono do X sempre abre a revanche.
	if x, ok := g.PlayerBySymbol(MarkX); ok {
		g.CurrentPlayer = x.ID
	}

	log.WithFields(log.Fields{"game_id": gameID, "player_id": requesterID}).Info("game restarted")
	return g.snapshot(), nil
}

// Get retorna a foto de uma partida, ou nil se ela não existe.
func (s *Store) Get(gameID string) *Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil
	}
	return g.snapshot()
}

// List retorna uma foto de todas as partidas, sem ordem definida.
func (s *Store) List() []*Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Game, 0, len(s.games))
	for _, g := range s.games {
		out = append(out, g.snapshot())
	}
	return out
}

// ListByPlayer retorna as partidas das quais o jogador participa.
func (s *Store) ListByPlayer(playerID string) []*Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Game
	for _, g := range s.games {
		if _, ok := g.PlayerByID(playerID); ok {
			out = append(out, g.snapshot())
		}
	}
	return out
}

// newGameID gera um token numérico de 5 dígitos, fácil de compartilhar.
// Colisões com partidas vivas são resolvidas tentando de novo; o espaço
// tem 90 mil ids, então esgotar as tentativas significa que o processo
// está segurando partidas demais.
func (s *Store) newGameID() (string, error) {
	for i := 0; i < idAttempts; i++ {
		id := fmt.Sprintf("%05d", 10000+s.rng.IntN(90000))
		if _, taken := s.games[id]; !taken {
			return id, nil
		}
	}
	return "", errors.New("could not allocate a free game id")
}
