package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/chat-backend/internal/domain/user"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Códigos SQLSTATE do PostgreSQL tratados pelos repositórios
const (
	// uniqueViolation indica violação de constraint de unicidade
	uniqueViolation = "23505"
	// foreignKeyViolation indica referência a uma linha inexistente
	foreignKeyViolation = "23503"
	// invalidTextRepresentation indica valor fora do formato da coluna (ex.: UUID malformado)
	invalidTextRepresentation = "22P02"
)

// UserRepository implementa a interface user.Repository usando PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository cria uma nova instância de UserRepository
func NewUserRepository(db *pgxpool.Pool) user.Repository {
	return &UserRepository{
		db: db,
	}
}

// Create implementa user.Repository.Create.
// A constraint de unicidade em external_id garante exatamente um usuário por
// principal externo; a violação é devolvida como ErrDuplicateExternalID para
// que o chamador releia o registro vencedor em vez de falhar.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	query := `
		INSERT INTO users (
			id, external_id, name, email, avatar, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	_, err = conn.Exec(ctx, query,
		u.ID,
		u.ExternalID,
		u.Name,
		u.Email,
		u.Avatar,
		u.CreatedAt,
		u.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return user.ErrDuplicateExternalID
		}
		return fmt.Errorf("falha ao inserir usuário: %w", err)
	}

	return nil
}

// FindByID implementa user.Repository.FindByID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	return scanUser(conn.QueryRow(ctx, userSelect+" WHERE id = $1", id))
}

// FindByExternalID implementa user.Repository.FindByExternalID
func (r *UserRepository) FindByExternalID(ctx context.Context, externalID string) (*user.User, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	return scanUser(conn.QueryRow(ctx, userSelect+" WHERE external_id = $1", externalID))
}

// FindByIDs implementa user.Repository.FindByIDs
func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*user.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, userSelect+" WHERE id = ANY($1)", ids)
	if err != nil {
		if isInvalidID(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("falha ao buscar usuários: %w", err)
	}
	defer rows.Close()

	users := make([]*user.User, 0, len(ids))
	for rows.Next() {
		u := &user.User{}
		if err := rows.Scan(&u.ID, &u.ExternalID, &u.Name, &u.Email, &u.Avatar, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("falha ao ler usuário: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		if isInvalidID(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("falha ao percorrer usuários: %w", err)
	}

	return users, nil
}

// isInvalidID indica que um id consultado está fora do formato da coluna.
// Um id malformado não corresponde a usuário algum; o chamador trata a
// ausência, não um erro interno.
func isInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}

// UpdateProfile implementa user.Repository.UpdateProfile
func (r *UserRepository) UpdateProfile(ctx context.Context, id, name, avatar string) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx,
		"UPDATE users SET name = $2, avatar = $3, updated_at = $4 WHERE id = $1",
		id, name, avatar, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("falha ao atualizar perfil: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}

	return nil
}

const userSelect = `
	SELECT
		id, external_id, name, email, avatar, created_at, updated_at
	FROM
		users`

// scanUser lê uma linha de usuário mapeando ausência para user.ErrNotFound
func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(&u.ID, &u.ExternalID, &u.Name, &u.Email, &u.Avatar, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar usuário: %w", err)
	}
	return u, nil
}
