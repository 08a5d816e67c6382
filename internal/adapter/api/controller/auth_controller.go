package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/chat-backend/internal/adapter/api/dto"
	"github.com/hugohenrick/chat-backend/internal/domain/user"
	"github.com/hugohenrick/chat-backend/internal/service/identity"
	"github.com/hugohenrick/chat-backend/pkg/logger"
	"github.com/hugohenrick/chat-backend/pkg/provider"
)

// AuthController gerencia as requisições de identidade do usuário autenticado
type AuthController struct {
	provider provider.Provider
	bridge   *identity.Bridge
	log      logger.Logger
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(p provider.Provider, bridge *identity.Bridge, log logger.Logger) *AuthController {
	return &AuthController{
		provider: p,
		bridge:   bridge,
		log:      log,
	}
}

// Me retorna o usuário interno correspondente à sessão atual
// @Summary Usuário autenticado
// @Description Retorna o registro interno do usuário da sessão atual
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	val, exists := ctx.Get("current_user")
	u, ok := val.(*user.User)
	if !exists || !ok {
		// O guard resolve a identidade antes de chegar aqui; sem usuário no
		// contexto não há o que retornar
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Usuário não encontrado", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}

// Callback resolve o principal autenticado para o usuário interno,
// criando-o no primeiro acesso e re-sincronizando o perfil com o provedor
// @Summary Callback pós-autenticação
// @Description Cria ou retorna o usuário interno do principal autenticado
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/callback [post]
func (c *AuthController) Callback(ctx *gin.Context) {
	principal, err := c.provider.VerifySession(ctx.Request)
	if err != nil || principal == nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Autenticação requerida", ""))
		return
	}

	u, err := c.bridge.Resolve(ctx.Request.Context(), principal)
	if err != nil {
		if errors.Is(err, identity.ErrUnresolved) {
			c.log.Warn("principal autenticado sem perfil resolvível", "external_id", principal.ID)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao resolver identidade", ""))
			return
		}
		c.log.Error("falha ao resolver identidade no callback", "external_id", principal.ID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewInternalErrorResponse(http.StatusInternalServerError, "Erro interno", err))
		return
	}

	// O provedor é a fonte de verdade do perfil; re-sincronizar nome e avatar
	u, err = c.bridge.Refresh(ctx.Request.Context(), u)
	if err != nil {
		c.log.Error("falha ao re-sincronizar perfil no callback", "user_id", u.ID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewInternalErrorResponse(http.StatusInternalServerError, "Erro interno", err))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}
