package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/chat-backend/internal/domain/message"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageRepository implementa a interface message.Repository usando PostgreSQL.
// O ledger é append-only: não existe UPDATE nem DELETE sobre messages.
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository cria uma nova instância de MessageRepository
func NewMessageRepository(db *pgxpool.Pool) message.Repository {
	return &MessageRepository{
		db: db,
	}
}

// Append implementa message.Repository.Append.
// ID (sequência BIGSERIAL, estritamente crescente) e timestamp vêm do
// servidor; o relógio do cliente nunca entra na ordenação.
func (r *MessageRepository) Append(ctx context.Context, m *message.Message) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	query := `
		INSERT INTO messages (chat_id, sender_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err = conn.QueryRow(ctx, query, m.ChatID, m.SenderID, m.Text).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("falha ao inserir mensagem: %w", err)
	}

	return nil
}

// Page implementa message.Repository.Page.
// A comparação de linha (created_at, id) < ($2, $3) torna o cursor exclusivo
// e estável: entradas antigas são imutáveis, então repaginar nunca pula nem
// repete mensagens mesmo com appends concorrentes.
func (r *MessageRepository) Page(ctx context.Context, chatID string, before *message.Cursor, limit int) ([]*message.Message, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	var rows pgx.Rows
	if before != nil {
		query := messageSelect + `
			WHERE chat_id = $1 AND (created_at, id) < ($2, $3)
			ORDER BY created_at DESC, id DESC
			LIMIT $4`
		rows, err = conn.Query(ctx, query, chatID, before.At, before.ID, limit)
	} else {
		query := messageSelect + `
			WHERE chat_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2`
		rows, err = conn.Query(ctx, query, chatID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao paginar mensagens: %w", err)
	}
	defer rows.Close()

	msgs := make([]*message.Message, 0, limit)
	for rows.Next() {
		m := &message.Message{}
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.Text, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("falha ao ler mensagem: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("falha ao percorrer mensagens: %w", err)
	}

	return msgs, nil
}

// Latest implementa message.Repository.Latest
func (r *MessageRepository) Latest(ctx context.Context, chatID string) (*message.Message, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	query := messageSelect + `
		WHERE chat_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	m := &message.Message{}
	err = conn.QueryRow(ctx, query, chatID).Scan(&m.ID, &m.ChatID, &m.SenderID, &m.Text, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("falha ao buscar última mensagem: %w", err)
	}

	return m, nil
}

// UnreadCount implementa message.Repository.UnreadCount.
// Sem marcador de leitura, toda mensagem enviada por terceiros conta como
// não lida.
func (r *MessageRepository) UnreadCount(ctx context.Context, chatID, userID string) (int, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	query := `
		SELECT COUNT(*)
		FROM messages m
		WHERE m.chat_id = $1
		  AND m.sender_id <> $2
		  AND m.id > COALESCE(
			(SELECT last_read_message_id FROM read_markers WHERE chat_id = $1 AND user_id = $2), 0)
	`

	var count int
	err = conn.QueryRow(ctx, query, chatID, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("falha ao contar mensagens não lidas: %w", err)
	}

	return count, nil
}

// MarkRead implementa message.Repository.MarkRead.
// O GREATEST garante que o marcador nunca retrocede sob requisições
// concorrentes ou fora de ordem.
func (r *MessageRepository) MarkRead(ctx context.Context, chatID, userID string, messageID int64) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	query := `
		INSERT INTO read_markers (chat_id, user_id, last_read_message_id, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (chat_id, user_id) DO UPDATE
		SET last_read_message_id = GREATEST(read_markers.last_read_message_id, EXCLUDED.last_read_message_id),
		    updated_at = NOW()
	`

	_, err = conn.Exec(ctx, query, chatID, userID, messageID)
	if err != nil {
		return fmt.Errorf("falha ao avançar marcador de leitura: %w", err)
	}

	return nil
}

const messageSelect = `
	SELECT
		id, chat_id, sender_id, text, created_at
	FROM
		messages`
