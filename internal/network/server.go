package network

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// Server aceita conexões WebSocket em /ws e as entrega ao Hub.
// Rotas HTTP extras (health, listagens) podem ser penduradas no mesmo
// mux antes do Listen.
type Server struct {
	hub *Hub
	mux *http.ServeMux
}

// upgrader promove a conexão HTTP para WebSocket.
// CheckOrigin liberado: o servidor não serve navegadores de produção
// diretamente, quem filtra origem é o proxy na frente.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// NewServer cria o servidor com a lógica de jogo injetada via handler.
func NewServer(handler EventHandler) *Server {
	s := &Server{
		hub: NewHub(handler),
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("/ws", s.wsHandler)
	return s
}

// Mux expõe o mux para registrar as rotas de leitura (health, placar).
func (s *Server) Mux() *http.ServeMux {
	return s.mux
}

// wsHandler é a porta de entrada de cada jogador: faz o upgrade, cria o
// Client com id próprio e liga as duas goroutines de bombeamento.
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("websocket upgrade failed: %v", err)
		return
	}

	client := newClient(conn, s.hub)
	client.hub.register <- client

	go client.writeLoop()
	go client.readLoop()
}

// Listen sobe o Hub e bloqueia servindo HTTP no endereço dado.
func (s *Server) Listen(address string) error {
	go s.hub.Run()

	log.Infof("websocket server listening on ws://%s/ws", address)
	return http.ListenAndServe(address, s.mux)
}
