package dto

import (
	"time"

	"github.com/hugohenrick/chat-backend/internal/domain/message"
)

// SendMessageRequest representa o corpo da requisição de envio de mensagem
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// MarkReadRequest representa o corpo da requisição de avanço do marcador de leitura
type MarkReadRequest struct {
	MessageID int64 `json:"message_id"`
}

// MessageResponse representa a resposta com os dados de uma mensagem
type MessageResponse struct {
	ID        int64     `json:"id"`
	ChatID    string    `json:"chat_id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Cursor    string    `json:"cursor"`
}

// MessagePageResponse representa uma página de mensagens com o cursor para a
// página anterior (mensagens mais antigas)
type MessagePageResponse struct {
	Messages   []MessageResponse `json:"messages"`
	NextBefore string            `json:"next_before,omitempty"`
}

// ToMessageResponse converte a entidade de domínio para o DTO de resposta
func ToMessageResponse(m *message.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		ChatID:    m.ChatID,
		SenderID:  m.SenderID,
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
		Cursor:    message.CursorOf(m).String(),
	}
}

// ToMessagePageResponse converte uma página de mensagens (já em ordem da mais
// antiga para a mais recente) para o DTO de resposta
func ToMessagePageResponse(msgs []*message.Message) MessagePageResponse {
	out := MessagePageResponse{
		Messages: make([]MessageResponse, 0, len(msgs)),
	}
	for _, m := range msgs {
		out.Messages = append(out.Messages, ToMessageResponse(m))
	}
	if len(msgs) > 0 {
		// O cursor da mensagem mais antiga da página abre a página anterior
		out.NextBefore = message.CursorOf(msgs[0]).String()
	}
	return out
}
