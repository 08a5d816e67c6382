package dto

import (
	"time"

	"github.com/hugohenrick/chat-backend/internal/domain/chat"
	"github.com/hugohenrick/chat-backend/internal/service/conversation"
)

// CreateChatRequest representa o corpo da requisição de início de conversa
type CreateChatRequest struct {
	ParticipantIDs []string `json:"participant_ids" binding:"required"`
}

// ChatResponse representa a resposta com os dados de uma conversa
type ChatResponse struct {
	ID             string     `json:"id"`
	ParticipantIDs []string   `json:"participant_ids"`
	LastMessageAt  *time.Time `json:"last_message_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ChatSummaryResponse representa um item da lista de conversas do usuário
type ChatSummaryResponse struct {
	ChatID        string                         `json:"chat_id"`
	Participants  []conversation.ParticipantInfo `json:"participants"`
	LastMessage   string                         `json:"last_message,omitempty"`
	LastMessageAt *time.Time                     `json:"last_message_at,omitempty"`
	UnreadCount   int                            `json:"unread_count"`
	CreatedAt     time.Time                      `json:"created_at"`
}

// ToChatResponse converte a entidade de domínio para o DTO de resposta
func ToChatResponse(c *chat.Chat) ChatResponse {
	return ChatResponse{
		ID:             c.ID,
		ParticipantIDs: c.ParticipantIDs,
		LastMessageAt:  c.LastMessageAt,
		CreatedAt:      c.CreatedAt,
	}
}

// ToChatSummaryResponse converte a projeção do serviço para o DTO de resposta
func ToChatSummaryResponse(s *conversation.ChatSummary) ChatSummaryResponse {
	return ChatSummaryResponse{
		ChatID:        s.ChatID,
		Participants:  s.Participants,
		LastMessage:   s.LastMessage,
		LastMessageAt: s.LastMessageAt,
		UnreadCount:   s.UnreadCount,
		CreatedAt:     s.CreatedAt,
	}
}

// ToChatSummaryListResponse converte a lista de projeções
func ToChatSummaryListResponse(summaries []*conversation.ChatSummary) []ChatSummaryResponse {
	out := make([]ChatSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, ToChatSummaryResponse(s))
	}
	return out
}
