package message

import (
	"fmt"

	"velha/internal/network"
)

// Sender é qualquer destino que aceita uma mensagem de saída. Desacopla
// este pacote (e os handlers) do network.Client concreto, o que deixa a
// lógica de sessão testável sem transporte de verdade.
type Sender interface {
	Send() chan<- network.Message
}

// SendError formata e envia um erro só para o destinatário. Erros nunca
// são transmitidos para a partida inteira.
func SendError(sender Sender, format string, args ...any) {
	sender.Send() <- Error(fmt.Sprintf(format, args...))
}
