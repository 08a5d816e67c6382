package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/chat-backend/internal/domain/user"
	"github.com/hugohenrick/chat-backend/pkg/logger"
	"github.com/hugohenrick/chat-backend/pkg/provider"
)

// ErrUnresolved indica que o principal foi autenticado pelo provedor mas não
// pôde ser resolvido para um usuário interno (perfil indisponível)
var ErrUnresolved = errors.New("identidade não resolvida")

// Bridge reconcilia um principal externo autenticado com o registro interno
// de usuário, criando-o de forma preguiçosa no primeiro acesso
type Bridge struct {
	users    user.Repository
	provider provider.Provider
	log      logger.Logger
}

// NewBridge cria uma nova instância de Bridge
func NewBridge(users user.Repository, p provider.Provider, log logger.Logger) *Bridge {
	return &Bridge{
		users:    users,
		provider: p,
		log:      log,
	}
}

// Resolve retorna o usuário interno correspondente ao principal externo.
// Se o usuário ainda não existe, cria-o a partir do perfil fornecido pelo
// provedor. A operação é idempotente sob resoluções concorrentes do mesmo
// principal: um conflito de unicidade no ExternalID é resolvido relendo e
// devolvendo o registro vencedor, nunca falhando o chamador.
func (b *Bridge) Resolve(ctx context.Context, principal *provider.Principal) (*user.User, error) {
	u, err := b.users.FindByExternalID(ctx, principal.ID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, fmt.Errorf("falha ao buscar usuário pelo principal: %w", err)
	}

	profile, err := b.provider.FetchProfile(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, provider.ErrProfileUnavailable) {
			return nil, ErrUnresolved
		}
		return nil, fmt.Errorf("falha ao obter perfil no provedor: %w", err)
	}

	now := time.Now().UTC()
	u = &user.User{
		ID:         uuid.New().String(),
		ExternalID: principal.ID,
		Name:       user.DisplayNameFrom(profile.GivenName, profile.FamilyName, profile.Email),
		Email:      profile.Email,
		Avatar:     profile.Avatar,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = b.users.Create(ctx, u)
	if err == nil {
		b.log.Info("usuário criado a partir do principal externo", "user_id", u.ID, "external_id", principal.ID)
		return u, nil
	}

	// Corrida de primeira resolução: outra requisição do mesmo principal
	// venceu a inserção. Reler e devolver o registro existente.
	if errors.Is(err, user.ErrDuplicateExternalID) {
		existing, ferr := b.users.FindByExternalID(ctx, principal.ID)
		if ferr != nil {
			return nil, fmt.Errorf("falha ao reler usuário após conflito: %w", ferr)
		}
		return existing, nil
	}

	return nil, fmt.Errorf("falha ao criar usuário: %w", err)
}

// Refresh re-sincroniza nome e avatar do usuário com o perfil do provedor.
// Falhas do provedor não invalidam o usuário já resolvido.
func (b *Bridge) Refresh(ctx context.Context, u *user.User) (*user.User, error) {
	profile, err := b.provider.FetchProfile(ctx, u.ExternalID)
	if err != nil {
		b.log.Warn("falha ao re-sincronizar perfil; mantendo dados locais", "user_id", u.ID, "error", err)
		return u, nil
	}

	name := user.DisplayNameFrom(profile.GivenName, profile.FamilyName, profile.Email)
	if !u.ProfileChanged(name, profile.Avatar) {
		return u, nil
	}

	if err := b.users.UpdateProfile(ctx, u.ID, name, profile.Avatar); err != nil {
		return nil, fmt.Errorf("falha ao atualizar perfil do usuário: %w", err)
	}
	u.Name = name
	u.Avatar = profile.Avatar
	return u, nil
}
