package chat

import (
	"context"
	"errors"
	"time"
)

// Erros de domínio para operações de conversa
var (
	ErrNotFound              = errors.New("conversa não encontrada")
	ErrForbidden             = errors.New("usuário não participa desta conversa")
	ErrDuplicateParticipants = errors.New("conversa com mesmo conjunto de participantes já existe")
	ErrEmptyParticipants     = errors.New("conjunto de participantes vazio")
	ErrUnknownParticipant    = errors.New("participante não encontrado")
)

// Repository define a interface para operações de repositório de conversas
type Repository interface {
	// Create cria uma nova conversa com o conjunto normalizado de participantes.
	// Retorna ErrDuplicateParticipants se já existir conversa com a mesma chave.
	Create(ctx context.Context, c *Chat) error

	// FindByParticipantKey busca uma conversa pela chave do conjunto de participantes
	FindByParticipantKey(ctx context.Context, key string) (*Chat, error)

	// FindByID busca uma conversa pelo ID, com seus participantes
	FindByID(ctx context.Context, id string) (*Chat, error)

	// ListByUser lista as conversas das quais o usuário participa
	ListByUser(ctx context.Context, userID string) ([]*Chat, error)

	// RecordLastMessage atualiza o ponteiro de última mensagem e seu timestamp
	// em um único passo; chamado apenas pelo ledger logo após um append
	RecordLastMessage(ctx context.Context, chatID string, messageID int64, at time.Time) error
}
