package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/chat-backend/internal/adapter/api/controller"
)

// SetupChatRoutes configura as rotas de conversas e mensagens.
// Todas passam pelo guard de autenticação; nenhuma operação sobre conversas
// ou sobre o ledger é alcançável sem identidade interna resolvida.
func SetupChatRoutes(router *gin.RouterGroup, chatController *controller.ChatController, messageController *controller.MessageController, guard gin.HandlerFunc) {
	chatsRouter := router.Group("/chats")
	chatsRouter.Use(guard)
	{
		chatsRouter.GET("", chatController.List)
		chatsRouter.POST("", chatController.Create)
		chatsRouter.GET("/:id/messages", messageController.Page)
		chatsRouter.POST("/:id/messages", messageController.Send)
		chatsRouter.POST("/:id/read", chatController.MarkRead)
	}
}
