package message

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Message representa uma entrada imutável do ledger de uma conversa.
// O ID é atribuído pelo servidor (sequência estritamente crescente) e define,
// junto com o timestamp, a ordem total das mensagens dentro da conversa.
type Message struct {
	ID        int64     `json:"id"`
	ChatID    string    `json:"chat_id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Cursor marca a fronteira exclusiva para paginação de mensagens mais antigas.
// A chave é o par (timestamp, id); o id desempata inserções com o mesmo timestamp.
type Cursor struct {
	At time.Time
	ID int64
}

// CursorOf retorna o cursor correspondente a uma mensagem
func CursorOf(m *Message) Cursor {
	return Cursor{At: m.CreatedAt, ID: m.ID}
}

// String serializa o cursor no formato opaco usado pela API
func (c Cursor) String() string {
	return fmt.Sprintf("%d_%d", c.At.UnixMicro(), c.ID)
}

// ParseCursor decodifica um cursor serializado por String.
// Retorna erro para entradas malformadas; o chamador trata como requisição inválida.
func ParseCursor(s string) (Cursor, error) {
	parts := strings.SplitN(s, "_", 2)
	if len(parts) != 2 {
		return Cursor{}, fmt.Errorf("cursor malformado: %q", s)
	}
	usec, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("cursor malformado: %q", s)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("cursor malformado: %q", s)
	}
	return Cursor{At: time.UnixMicro(usec).UTC(), ID: id}, nil
}

// Before indica se a mensagem é estritamente anterior ao cursor na ordem (timestamp, id)
func (m *Message) Before(c Cursor) bool {
	if m.CreatedAt.Before(c.At) {
		return true
	}
	return m.CreatedAt.Equal(c.At) && m.ID < c.ID
}
