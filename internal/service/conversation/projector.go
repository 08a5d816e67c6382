package conversation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hugohenrick/chat-backend/internal/domain/chat"
	"github.com/hugohenrick/chat-backend/internal/domain/message"
	"github.com/hugohenrick/chat-backend/internal/domain/user"
	"github.com/hugohenrick/chat-backend/pkg/logger"
)

// ParticipantInfo contém os dados de exibição de um participante da conversa
type ParticipantInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// ChatSummary é a projeção de uma conversa para a lista de chats do cliente
type ChatSummary struct {
	ChatID        string            `json:"chat_id"`
	Participants  []ParticipantInfo `json:"participants"` // demais participantes, sem o próprio usuário
	LastMessage   string            `json:"last_message,omitempty"`
	LastMessageAt *time.Time        `json:"last_message_at,omitempty"`
	UnreadCount   int               `json:"unread_count"`
	CreatedAt     time.Time         `json:"created_at"`
}

// Projector deriva, por usuário, o resumo de conversas ordenado por recência.
// Lê das conversas e do ledger; nunca os altera. A última mensagem é lida da
// cauda verdadeira do ledger, nunca do ponteiro da conversa, que pode atrasar.
type Projector struct {
	chats    chat.Repository
	messages message.Repository
	users    user.Repository
	log      logger.Logger
}

// NewProjector cria uma nova instância de Projector
func NewProjector(chats chat.Repository, messages message.Repository, users user.Repository, log logger.Logger) *Projector {
	return &Projector{
		chats:    chats,
		messages: messages,
		users:    users,
		log:      log,
	}
}

// ListFor retorna o resumo de cada conversa da qual o usuário participa,
// ordenado pelo timestamp da última mensagem em ordem decrescente; conversas
// sem mensagens ficam ao final, ordenadas pela data de criação.
func (p *Projector) ListFor(ctx context.Context, userID string) ([]*ChatSummary, error) {
	chats, err := p.chats.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar conversas do usuário: %w", err)
	}

	// Resolver os dados de exibição de todos os demais participantes de uma vez
	otherIDs := make([]string, 0)
	seen := make(map[string]struct{})
	for _, c := range chats {
		for _, id := range c.OtherParticipants(userID) {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				otherIDs = append(otherIDs, id)
			}
		}
	}
	infoByID := make(map[string]ParticipantInfo, len(otherIDs))
	if len(otherIDs) > 0 {
		others, err := p.users.FindByIDs(ctx, otherIDs)
		if err != nil {
			return nil, fmt.Errorf("falha ao buscar participantes: %w", err)
		}
		for _, u := range others {
			infoByID[u.ID] = ParticipantInfo{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
		}
	}

	summaries := make([]*ChatSummary, 0, len(chats))
	for _, c := range chats {
		summary := &ChatSummary{
			ChatID:    c.ID,
			CreatedAt: c.CreatedAt,
		}
		for _, id := range c.OtherParticipants(userID) {
			if info, ok := infoByID[id]; ok {
				summary.Participants = append(summary.Participants, info)
			}
		}

		tail, err := p.messages.Latest(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("falha ao buscar última mensagem: %w", err)
		}
		if tail != nil {
			if c.LastMessageID == nil || *c.LastMessageID != tail.ID {
				p.log.Debug("ponteiro de última mensagem divergente do ledger", "chat_id", c.ID)
			}
			summary.LastMessage = tail.Text
			at := tail.CreatedAt
			summary.LastMessageAt = &at

			unread, err := p.messages.UnreadCount(ctx, c.ID, userID)
			if err != nil {
				return nil, fmt.Errorf("falha ao contar mensagens não lidas: %w", err)
			}
			summary.UnreadCount = unread
		}

		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		switch {
		case a.LastMessageAt != nil && b.LastMessageAt != nil:
			return a.LastMessageAt.After(*b.LastMessageAt)
		case a.LastMessageAt != nil:
			return true
		case b.LastMessageAt != nil:
			return false
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})

	return summaries, nil
}
