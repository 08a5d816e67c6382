package user

import (
	"context"
	"errors"
)

// Erros de domínio para operações de usuário
var (
	ErrNotFound            = errors.New("usuário não encontrado")
	ErrDuplicateExternalID = errors.New("usuário com mesmo principal externo já existe")
)

// Repository define a interface para operações de repositório de usuários
type Repository interface {
	// Create cria um novo usuário. Retorna ErrDuplicateExternalID se já
	// existir um usuário com o mesmo ExternalID.
	Create(ctx context.Context, u *User) error

	// FindByID busca um usuário pelo ID interno
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByExternalID busca um usuário pelo ID do principal externo
	FindByExternalID(ctx context.Context, externalID string) (*User, error)

	// FindByIDs busca vários usuários de uma vez (para montar o resumo de conversas)
	FindByIDs(ctx context.Context, ids []string) ([]*User, error)

	// UpdateProfile atualiza nome e avatar a partir de um re-sync com o provedor
	UpdateProfile(ctx context.Context, id, name, avatar string) error
}
