package message

import (
	"context"
	"errors"
)

// Erros de domínio para operações do ledger de mensagens
var (
	ErrNotFound  = errors.New("mensagem não encontrada")
	ErrEmptyText = errors.New("texto da mensagem vazio")
)

// Repository define a interface para o ledger append-only de mensagens
type Repository interface {
	// Append grava a mensagem com ID e timestamp atribuídos pelo servidor,
	// preenchendo m.ID e m.CreatedAt. Mensagens nunca são alteradas ou removidas.
	Append(ctx context.Context, m *Message) error

	// Page retorna as "limit" mensagens mais recentes da conversa com chave
	// (timestamp, id) estritamente menor que o cursor, quando informado.
	// O resultado vem em ordem decrescente; o serviço reordena para exibição.
	Page(ctx context.Context, chatID string, before *Cursor, limit int) ([]*Message, error)

	// Latest retorna a mensagem mais recente da conversa segundo o próprio
	// ledger (cauda verdadeira), ou nil se a conversa não tem mensagens
	Latest(ctx context.Context, chatID string) (*Message, error)

	// UnreadCount conta as mensagens da conversa posteriores ao marcador de
	// leitura do usuário e que não foram enviadas por ele
	UnreadCount(ctx context.Context, chatID, userID string) (int, error)

	// MarkRead avança o marcador de leitura do usuário na conversa até a
	// mensagem indicada; nunca retrocede o marcador
	MarkRead(ctx context.Context, chatID, userID string, messageID int64) error
}
