package chat

import (
	"sort"
	"strings"
	"time"
)

// Chat representa uma conversa entre um conjunto de participantes.
// O conjunto de participantes é imutável após a criação; o ponteiro para a
// última mensagem funciona como cache e pode atrasar em relação ao ledger.
type Chat struct {
	ID             string     `json:"id"`
	ParticipantIDs []string   `json:"participant_ids"`
	LastMessageID  *int64     `json:"last_message_id,omitempty"`
	LastMessageAt  *time.Time `json:"last_message_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// HasParticipant verifica se o usuário pertence à conversa
func (c *Chat) HasParticipant(userID string) bool {
	for _, id := range c.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// OtherParticipants retorna os participantes da conversa exceto o usuário informado
func (c *Chat) OtherParticipants(userID string) []string {
	others := make([]string, 0, len(c.ParticipantIDs))
	for _, id := range c.ParticipantIDs {
		if id != userID {
			others = append(others, id)
		}
	}
	return others
}

// NormalizeParticipants deduplica e ordena o conjunto de participantes.
// A forma normalizada é a identidade canônica da conversa.
func NormalizeParticipants(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	normalized := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		normalized = append(normalized, id)
	}
	sort.Strings(normalized)
	return normalized
}

// ParticipantKey retorna a chave única derivada do conjunto normalizado de
// participantes, usada pela constraint de unicidade no banco
func ParticipantKey(normalized []string) string {
	return strings.Join(normalized, ":")
}
