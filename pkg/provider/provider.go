package provider

import (
	"context"
	"errors"
	"net/http"
)

// Erros do provedor de identidade
var (
	// ErrNoSession indica sessão ausente, expirada ou inválida
	ErrNoSession = errors.New("sessão ausente ou inválida")
	// ErrProfileUnavailable indica que o provedor autenticou o principal
	// mas o perfil não pôde ser obtido
	ErrProfileUnavailable = errors.New("perfil indisponível no provedor de identidade")
)

// Principal representa a identidade externa autenticada presente na requisição,
// antes da resolução para o usuário interno
type Principal struct {
	ID string
}

// Profile contém os dados de perfil fornecidos pelo provedor de identidade
type Profile struct {
	GivenName  string
	FamilyName string
	Email      string
	Avatar     string
}

// Provider define a capability consumida do provedor externo de identidade.
// O núcleo depende apenas desta interface, nunca dos formatos concretos de
// requisição/resposta de um provedor específico.
type Provider interface {
	// VerifySession valida a sessão presente na requisição e retorna o
	// principal autenticado; ErrNoSession quando ausente ou inválida
	VerifySession(r *http.Request) (*Principal, error)

	// FetchProfile obtém os dados de perfil do principal no provedor
	FetchProfile(ctx context.Context, principalID string) (*Profile, error)
}
