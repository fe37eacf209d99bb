package session

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"velha/internal/events"
	"velha/internal/game"
	"velha/internal/matchmaking"
	"velha/internal/network"
	"velha/internal/ranking"
	"velha/internal/session/message"
)

// CommandHandlerFunc é a assinatura de todos os handlers de comando.
// Recebem a sessão de quem pediu e o payload bruto da mensagem.
type CommandHandlerFunc func(h *GameHandler, s *PlayerSession, payload json.RawMessage)

// GameHandler implementa network.EventHandler: é onde a camada de rede
// encontra a fila, as partidas e o ranking. Os mapas de sessão são
// tocados apenas pela goroutine do Hub, então não precisam de lock.
type GameHandler struct {
	sessionsByClient map[*network.Client]*PlayerSession
	sessionsByID     map[string]*PlayerSession

	store  *game.Store
	queue  *matchmaking.Queue
	ledger *ranking.Ledger
	feed   events.Publisher

	router map[string]CommandHandlerFunc
}

// NewGameHandler liga os serviços injetados e registra os comandos.
// feed pode ser events.Noop quando não há barramento configurado.
func NewGameHandler(store *game.Store, queue *matchmaking.Queue, ledger *ranking.Ledger, feed events.Publisher) *GameHandler {
	h := &GameHandler{
		sessionsByClient: make(map[*network.Client]*PlayerSession),
		sessionsByID:     make(map[string]*PlayerSession),
		store:            store,
		queue:            queue,
		ledger:           ledger,
		feed:             feed,
		router:           make(map[string]CommandHandlerFunc),
	}
	h.registerHandlers()
	return h
}

// --- Implementação da interface network.EventHandler ---

// OnConnect cria a sessão do cliente recém-chegado.
func (h *GameHandler) OnConnect(c *network.Client) {
	s := h.connect(c.ID(), c)
	h.sessionsByClient[c] = s
	log.WithField("player_id", c.ID()).Infof("player connected, %d online", len(h.sessionsByID))
}

// OnDisconnect limpa o rastro da conexão. A regra é assimétrica de
// propósito: quem estava na fila sai dela, mas uma partida ativa fica
// intacta — não existe derrota por W.O. aqui.
func (h *GameHandler) OnDisconnect(c *network.Client) {
	s, ok := h.sessionsByClient[c]
	if !ok {
		return
	}
	delete(h.sessionsByClient, c)
	h.disconnect(s)
}

// OnMessage despacha a mensagem para o handler do comando.
func (h *GameHandler) OnMessage(c *network.Client, msg network.Message) {
	s, ok := h.sessionsByClient[c]
	if !ok {
		return // Mensagem de cliente sem sessão: ignora.
	}
	h.dispatch(s, msg)
}

// --- Núcleo testável, sem dependência do transporte ---

func (h *GameHandler) connect(id string, sender message.Sender) *PlayerSession {
	s := NewPlayerSession(id, sender)
	h.sessionsByID[id] = s
	return s
}

func (h *GameHandler) disconnect(s *PlayerSession) {
	// Desconexão não é erro: a fila é limpa em silêncio, sem aviso a
	// ninguém (a conexão que receberia o aviso já se foi).
	h.queue.Dequeue(s.ID)
	delete(h.sessionsByID, s.ID)
	log.WithField("player_id", s.ID).Infof("player disconnected, %d online", len(h.sessionsByID))
}

func (h *GameHandler) dispatch(s *PlayerSession, msg network.Message) {
	handler, found := h.router[msg.Type]
	if !found {
		message.SendError(s, "Unknown command: %s", msg.Type)
		return
	}
	handler(h, s, msg.Payload)
}

// sessionFor encontra a sessão viva de um participante da partida.
func (h *GameHandler) sessionFor(playerID string) *PlayerSession {
	return h.sessionsByID[playerID]
}

// broadcastToGame entrega a mesma mensagem a todos os participantes da
// partida que ainda têm conexão viva.
func (h *GameHandler) broadcastToGame(g *game.Game, msg network.Message) {
	for _, p := range g.Players {
		if s := h.sessionFor(p.ID); s != nil {
			s.Send() <- msg
		}
	}
}
