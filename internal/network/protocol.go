package network

import (
	"encoding/json"
)

// Message é o envelope padrão de toda a comunicação, nos dois sentidos.
// Type roteia o evento; Payload carrega os dados específicos em JSON
// bruto, decodificado só por quem conhece o evento.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage monta um envelope serializando o payload dado.
func NewMessage(msgType string, payload any) (Message, error) {
	if payload == nil {
		return Message{Type: msgType}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Payload: raw}, nil
}
