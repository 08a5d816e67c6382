package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/chat-backend/internal/adapter/api/dto"
	"github.com/hugohenrick/chat-backend/internal/domain/chat"
	"github.com/hugohenrick/chat-backend/internal/service/conversation"
	"github.com/hugohenrick/chat-backend/pkg/auth"
	"github.com/hugohenrick/chat-backend/pkg/logger"
)

// ChatController gerencia as requisições relacionadas a conversas
type ChatController struct {
	service   *conversation.Service
	projector *conversation.Projector
	log       logger.Logger
}

// NewChatController cria uma nova instância de ChatController
func NewChatController(service *conversation.Service, projector *conversation.Projector, log logger.Logger) *ChatController {
	return &ChatController{
		service:   service,
		projector: projector,
		log:       log,
	}
}

// List retorna o resumo das conversas do usuário, ordenado por recência
// @Summary Lista de conversas
// @Description Lista as conversas do usuário com última mensagem e não lidas
// @Tags chats
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.ChatSummaryResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/chats [get]
func (c *ChatController) List(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)

	summaries, err := c.projector.ListFor(ctx.Request.Context(), userID)
	if err != nil {
		c.log.Error("falha ao projetar lista de conversas", "user_id", userID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewInternalErrorResponse(http.StatusInternalServerError, "Erro ao listar conversas", err))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToChatSummaryListResponse(summaries))
}

// Create retorna a conversa existente para o conjunto de participantes ou cria uma nova
// @Summary Inicia uma conversa
// @Description Retorna a conversa do conjunto de participantes, criando-a se necessário
// @Tags chats
// @Accept json
// @Produce json
// @Security Bearer
// @Param chat body dto.CreateChatRequest true "Participantes da conversa"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/chats [post]
func (c *ChatController) Create(ctx *gin.Context) {
	var request dto.CreateChatRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	userID := auth.GetUserID(ctx)

	created, err := c.service.StartChat(ctx.Request.Context(), userID, request.ParticipantIDs)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyParticipants):
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "Conjunto de participantes inválido", ""))
		case errors.Is(err, chat.ErrUnknownParticipant):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Participante não encontrado", ""))
		default:
			c.log.Error("falha ao iniciar conversa", "user_id", userID, "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewInternalErrorResponse(http.StatusInternalServerError, "Erro ao iniciar conversa", err))
		}
		return
	}

	ctx.JSON(http.StatusOK, dto.ToChatResponse(created))
}

// MarkRead avança o marcador de leitura do usuário na conversa
// @Summary Marca conversa como lida
// @Description Avança o marcador de leitura até a mensagem indicada ou a mais recente
// @Tags chats
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID da conversa"
// @Param marker body dto.MarkReadRequest false "Mensagem limite"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/chats/{id}/read [post]
func (c *ChatController) MarkRead(ctx *gin.Context) {
	chatID := ctx.Param("id")
	userID := auth.GetUserID(ctx)

	var request dto.MarkReadRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
			return
		}
	}

	err := c.service.MarkRead(ctx.Request.Context(), chatID, userID, request.MessageID)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrNotFound):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Conversa não encontrada", ""))
		case errors.Is(err, chat.ErrForbidden):
			ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Acesso negado", "Você não participa desta conversa"))
		default:
			c.log.Error("falha ao avançar marcador de leitura", "chat_id", chatID, "user_id", userID, "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewInternalErrorResponse(http.StatusInternalServerError, "Erro ao marcar leitura", err))
		}
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Conversa marcada como lida", nil))
}
