package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/chat-backend/internal/adapter/api/dto"
	"github.com/hugohenrick/chat-backend/internal/service/identity"
	"github.com/hugohenrick/chat-backend/pkg/logger"
	"github.com/hugohenrick/chat-backend/pkg/provider"
)

// Middleware cria o guard de autenticação aplicado a toda rota protegida.
// Verifica a sessão junto ao provedor externo, resolve o principal para o
// usuário interno (criando-o no primeiro acesso) e anexa o ID interno ao
// contexto da requisição. Nenhuma operação de conversa ou mensagem é
// alcançável sem passar por aqui.
func Middleware(p provider.Provider, bridge *identity.Bridge, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := p.VerifySession(c.Request)
		if err != nil || principal == nil {
			// Falha fechada: sem sessão válida nada prossegue
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Autenticação requerida",
				"Sessão ausente ou inválida",
			))
			return
		}

		u, err := bridge.Resolve(c.Request.Context(), principal)
		if err != nil {
			if errors.Is(err, identity.ErrUnresolved) {
				// Autenticado no provedor, mas sem usuário interno resolvível
				c.AbortWithStatusJSON(http.StatusNotFound, dto.NewErrorResponse(
					http.StatusNotFound,
					"Usuário não encontrado",
					"",
				))
				return
			}
			log.Error("falha ao resolver identidade do principal", "external_id", principal.ID, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
				http.StatusInternalServerError,
				"Erro interno",
				"",
			))
			return
		}

		// Disponibilizar a identidade interna para os handlers e serviços
		c.Set("user_id", u.ID)
		c.Set("current_user", u)
		c.Request = c.Request.WithContext(SetUserIDContext(c.Request.Context(), u.ID))

		c.Next()
	}
}
