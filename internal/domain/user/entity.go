package user

import (
	"strings"
	"time"
)

// FallbackName é o nome de exibição usado quando o provedor não fornece nome nem email
const FallbackName = "User"

// User representa um usuário interno do sistema.
// O registro é criado de forma preguiçosa a partir do principal externo
// autenticado pelo provedor de identidade; nunca é removido por este subsistema.
type User struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"` // ID do principal no provedor (único, imutável)
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Avatar     string    `json:"avatar"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DisplayNameFrom deriva o nome de exibição a partir dos dados do provedor.
// Precedência: nome próprio + sobrenome; senão a parte local do email; senão FallbackName.
func DisplayNameFrom(givenName, familyName, email string) string {
	if givenName != "" {
		return strings.TrimSpace(givenName + " " + familyName)
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return FallbackName
}

// ProfileChanged verifica se o perfil local divergiu dos dados do provedor
func (u *User) ProfileChanged(name, avatar string) bool {
	return u.Name != name || u.Avatar != avatar
}
