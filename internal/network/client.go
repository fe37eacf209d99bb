package network

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	// Tempo máximo para concluir uma escrita na conexão.
	writeWait = 10 * time.Second

	// Tempo máximo esperando um pong do cliente.
	pongWait = 60 * time.Second

	// Frequência dos pings. Precisa ser menor que pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Tamanho do buffer do canal de saída de cada cliente.
	sendBuffer = 256
)

// Client é um jogador conectado, do ponto de vista do servidor.
// O id é gerado no handshake e vale só para esta conexão: reconectar é
// ser outra identidade. É essa a chave usada pela fila e pelo ledger.
type Client struct {
	id   string
	conn *websocket.Conn
	hub  *Hub

	// Canal bufferizado de saída. O Hub e os handlers escrevem aqui; a
	// goroutine writeLoop deste cliente é a única que toca na conexão.
	send chan Message
}

func newClient(conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		id:   uuid.NewString(),
		conn: conn,
		hub:  hub,
		send: make(chan Message, sendBuffer),
	}
}

// ID retorna o identificador desta conexão.
func (c *Client) ID() string {
	return c.id
}

// Send expõe o canal de saída do cliente. Nunca escreva direto na
// conexão: só este canal é seguro para concorrência.
func (c *Client) Send() chan<- Message {
	return c.send
}

// readLoop bombeia mensagens da conexão para o Hub.
func (c *Client) readLoop() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithField("client_id", c.id).Warnf("unexpected close: %v", err)
			}
			// Qualquer erro de leitura encerra a conexão; o defer cuida
			// de desregistrar o cliente.
			break
		}

		c.hub.incoming <- clientMessage{client: c, msg: msg}
	}
}

// writeLoop bombeia mensagens do canal send para a conexão, intercalando
// pings periódicos para manter a conexão viva.
func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// O Hub fechou o canal: o cliente foi desregistrado.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				log.WithField("client_id", c.id).Warnf("write failed: %v", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
