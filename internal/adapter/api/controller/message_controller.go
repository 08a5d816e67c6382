package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/chat-backend/internal/adapter/api/dto"
	"github.com/hugohenrick/chat-backend/internal/domain/chat"
	"github.com/hugohenrick/chat-backend/internal/domain/message"
	"github.com/hugohenrick/chat-backend/internal/service/conversation"
	"github.com/hugohenrick/chat-backend/pkg/auth"
	"github.com/hugohenrick/chat-backend/pkg/logger"
)

// MessageController gerencia as requisições do ledger de mensagens
type MessageController struct {
	service *conversation.Service
	log     logger.Logger
}

// NewMessageController cria uma nova instância de MessageController
func NewMessageController(service *conversation.Service, log logger.Logger) *MessageController {
	return &MessageController{
		service: service,
		log:     log,
	}
}

// Page retorna uma página de mensagens da conversa, da mais antiga para a mais recente
// @Summary Mensagens da conversa
// @Description Pagina para trás a partir do cursor exclusivo "before"
// @Tags messages
// @Produce json
// @Security Bearer
// @Param id path string true "ID da conversa"
// @Param before query string false "Cursor exclusivo (mensagens mais antigas)"
// @Param limit query int false "Tamanho da página"
// @Success 200 {object} dto.MessagePageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/chats/{id}/messages [get]
func (c *MessageController) Page(ctx *gin.Context) {
	chatID := ctx.Param("id")
	userID := auth.GetUserID(ctx)

	var before *message.Cursor
	if raw := ctx.Query("before"); raw != "" {
		cursor, err := message.ParseCursor(raw)
		if err != nil {
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "Cursor inválido", err.Error()))
			return
		}
		before = &cursor
	}

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	msgs, err := c.service.Page(ctx.Request.Context(), chatID, userID, before, limit)
	if err != nil {
		c.respondLedgerError(ctx, chatID, userID, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMessagePageResponse(msgs))
}

// Send grava uma nova mensagem no ledger da conversa
// @Summary Envia uma mensagem
// @Description Grava a mensagem com ID e timestamp atribuídos pelo servidor
// @Tags messages
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID da conversa"
// @Param message body dto.SendMessageRequest true "Texto da mensagem"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/chats/{id}/messages [post]
func (c *MessageController) Send(ctx *gin.Context) {
	chatID := ctx.Param("id")
	userID := auth.GetUserID(ctx)

	var request dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	m, err := c.service.Append(ctx.Request.Context(), chatID, userID, request.Text)
	if err != nil {
		c.respondLedgerError(ctx, chatID, userID, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToMessageResponse(m))
}

// respondLedgerError mapeia os erros das operações do ledger para HTTP
func (c *MessageController) respondLedgerError(ctx *gin.Context, chatID, userID string, err error) {
	switch {
	case errors.Is(err, chat.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Conversa não encontrada", ""))
	case errors.Is(err, chat.ErrForbidden):
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Acesso negado", "Você não participa desta conversa"))
	case errors.Is(err, message.ErrEmptyText):
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "Texto da mensagem vazio", ""))
	default:
		c.log.Error("falha em operação do ledger", "chat_id", chatID, "user_id", userID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewInternalErrorResponse(http.StatusInternalServerError, "Erro interno", err))
	}
}
