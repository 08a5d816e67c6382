package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/chat-backend/internal/adapter/api/controller"
)

// SetupAuthRoutes configura as rotas de identidade.
// O callback é público por definição: é ele que cria o usuário interno no
// primeiro acesso; /me exige o guard de autenticação.
func SetupAuthRoutes(router *gin.RouterGroup, authController *controller.AuthController, guard gin.HandlerFunc) {
	authRouter := router.Group("/auth")
	{
		authRouter.POST("/callback", authController.Callback)
		authRouter.GET("/me", guard, authController.Me)
	}
}
