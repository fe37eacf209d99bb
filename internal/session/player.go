package session

import (
	"fmt"

	"velha/internal/network"
	"velha/internal/session/message"
)

// PlayerSession representa um jogador único conectado ao servidor.
// A identidade dele é a da conexão: o id nasce no handshake e morre com
// ela. O nome de exibição chega na primeira ação (fila ou partida
// privada) e fica guardado aqui e no ledger.
type PlayerSession struct {
	sender message.Sender

	ID   string
	Name string
}

// NewPlayerSession cria a sessão de uma conexão recém-chegada.
func NewPlayerSession(id string, sender message.Sender) *PlayerSession {
	return &PlayerSession{ID: id, sender: sender}
}

// Send faz a sessão também ser um message.Sender: enviar para a sessão
// é enviar para a conexão dela.
func (s *PlayerSession) Send() chan<- network.Message {
	return s.sender.Send()
}

// displayName resolve o nome de exibição: usa o que o cliente mandou ou
// gera um apelido a partir do id da conexão, como o cliente espera.
func (s *PlayerSession) displayName(requested string) string {
	if requested != "" {
		s.Name = requested
		return requested
	}
	if s.Name != "" {
		return s.Name
	}
	short := s.ID
	if len(short) > 6 {
		short = short[:6]
	}
	s.Name = fmt.Sprintf("Player_%s", short)
	return s.Name
}
