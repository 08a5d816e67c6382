package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/chat-backend/internal/domain/chat"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChatRepository implementa a interface chat.Repository usando PostgreSQL
type ChatRepository struct {
	db *pgxpool.Pool
}

// NewChatRepository cria uma nova instância de ChatRepository
func NewChatRepository(db *pgxpool.Pool) chat.Repository {
	return &ChatRepository{
		db: db,
	}
}

// Create implementa chat.Repository.Create.
// A conversa e seus participantes são gravados em uma única transação; a
// constraint de unicidade em participant_key impede conversas duplicadas para
// o mesmo conjunto e é devolvida como ErrDuplicateParticipants.
func (r *ChatRepository) Create(ctx context.Context, c *chat.Chat) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("falha ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	key := chat.ParticipantKey(c.ParticipantIDs)
	_, err = tx.Exec(ctx,
		"INSERT INTO chats (id, participant_key, created_at) VALUES ($1, $2, $3)",
		c.ID, key, c.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return chat.ErrDuplicateParticipants
		}
		return fmt.Errorf("falha ao inserir conversa: %w", err)
	}

	for _, userID := range c.ParticipantIDs {
		if _, err := tx.Exec(ctx,
			"INSERT INTO chat_participants (chat_id, user_id) VALUES ($1, $2)",
			c.ID, userID,
		); err != nil {
			// A FK para users é a última barreira contra ids que escaparam
			// da verificação do serviço
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && (pgErr.Code == foreignKeyViolation || pgErr.Code == invalidTextRepresentation) {
				return chat.ErrUnknownParticipant
			}
			return fmt.Errorf("falha ao inserir participante: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("falha ao confirmar transação: %w", err)
	}

	return nil
}

// FindByParticipantKey implementa chat.Repository.FindByParticipantKey
func (r *ChatRepository) FindByParticipantKey(ctx context.Context, key string) (*chat.Chat, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	return scanChat(conn.QueryRow(ctx, chatSelect+" WHERE c.participant_key = $1 GROUP BY c.id", key))
}

// FindByID implementa chat.Repository.FindByID
func (r *ChatRepository) FindByID(ctx context.Context, id string) (*chat.Chat, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	return scanChat(conn.QueryRow(ctx, chatSelect+" WHERE c.id = $1 GROUP BY c.id", id))
}

// ListByUser implementa chat.Repository.ListByUser
func (r *ChatRepository) ListByUser(ctx context.Context, userID string) ([]*chat.Chat, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	query := chatSelect + `
		WHERE c.id IN (SELECT chat_id FROM chat_participants WHERE user_id = $1)
		GROUP BY c.id
		ORDER BY COALESCE(c.last_message_at, c.created_at) DESC`

	rows, err := conn.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar conversas: %w", err)
	}
	defer rows.Close()

	chats := make([]*chat.Chat, 0)
	for rows.Next() {
		c, err := scanChatRow(rows)
		if err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("falha ao percorrer conversas: %w", err)
	}

	return chats, nil
}

// RecordLastMessage implementa chat.Repository.RecordLastMessage.
// Ponteiro e timestamp mudam juntos, nunca um sem o outro.
func (r *ChatRepository) RecordLastMessage(ctx context.Context, chatID string, messageID int64, at time.Time) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx,
		"UPDATE chats SET last_message_id = $2, last_message_at = $3 WHERE id = $1",
		chatID, messageID, at,
	)
	if err != nil {
		return fmt.Errorf("falha ao atualizar última mensagem: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return chat.ErrNotFound
	}

	return nil
}

const chatSelect = `
	SELECT
		c.id, c.last_message_id, c.last_message_at, c.created_at,
		array_agg(p.user_id::text ORDER BY p.user_id) AS participants
	FROM
		chats c
		JOIN chat_participants p ON p.chat_id = c.id`

// scanChat lê uma linha de conversa mapeando ausência para chat.ErrNotFound
func scanChat(row pgx.Row) (*chat.Chat, error) {
	c, err := scanChatRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, chat.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func scanChatRow(row pgx.Row) (*chat.Chat, error) {
	c := &chat.Chat{}
	var lastMessageID pgtype.Int8
	var lastMessageAt pgtype.Timestamptz

	err := row.Scan(&c.ID, &lastMessageID, &lastMessageAt, &c.CreatedAt, &c.ParticipantIDs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("falha ao ler conversa: %w", err)
	}

	if lastMessageID.Valid {
		id := lastMessageID.Int64
		c.LastMessageID = &id
	}
	if lastMessageAt.Valid {
		at := lastMessageAt.Time
		c.LastMessageAt = &at
	}

	return c, nil
}
