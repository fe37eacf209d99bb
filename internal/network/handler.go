package network

// EventHandler é a interface que liga a camada de rede à lógica do jogo.
// O código do jogo (fora deste pacote) implementa esta interface; os
// três métodos são sempre chamados pela goroutine única do Hub, então o
// handler pode mexer no próprio estado sem lock adicional.
type EventHandler interface {
	// OnConnect é chamado quando um cliente novo termina o handshake.
	OnConnect(c *Client)

	// OnDisconnect é chamado quando um cliente some, de forma limpa ou não.
	OnDisconnect(c *Client)

	// OnMessage é chamado para cada mensagem recebida de um cliente.
	OnMessage(c *Client, msg Message)
}
