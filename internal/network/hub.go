package network

// clientMessage empacota uma mensagem junto com o cliente que a enviou.
// O Hub precisa dos dois para repassar ao EventHandler.
type clientMessage struct {
	client *Client
	msg    Message
}

// Hub mantém o conjunto de clientes ativos e roteia todos os eventos de
// rede para o handler, um por vez. É essa serialização que deixa o
// handler livre para mexer nos próprios mapas sem lock.
type Hub struct {
	// Clientes registrados. Acessado SOMENTE pela goroutine do Hub.
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	// Mensagens vindas dos readLoops de todos os clientes.
	incoming chan clientMessage

	handler EventHandler
}

// NewHub cria um Hub ligado ao handler de lógica do jogo.
func NewHub(handler EventHandler) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan clientMessage),
		handler:    handler,
	}
}

// Run é o loop do Hub. Roda em uma única goroutine pela vida do processo.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.handler.OnConnect(client)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				// Fechar o send é o sinal para o writeLoop do cliente
				// parar. Precisa acontecer exatamente uma vez.
				close(client.send)
				h.handler.OnDisconnect(client)
			}

		case clientMsg := <-h.incoming:
			// O Hub não olha o conteúdo: só entrega para o handler.
			h.handler.OnMessage(clientMsg.client, clientMsg.msg)
		}
	}
}
