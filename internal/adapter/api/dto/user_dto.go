package dto

import (
	"time"

	"github.com/hugohenrick/chat-backend/internal/domain/user"
)

// UserResponse representa a resposta com os dados de um usuário
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse converte a entidade de domínio para o DTO de resposta.
// O ID do principal externo não sai na API.
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}
