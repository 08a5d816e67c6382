package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/chat-backend/internal/domain/chat"
	"github.com/hugohenrick/chat-backend/internal/domain/message"
	"github.com/hugohenrick/chat-backend/internal/domain/user"
	"github.com/hugohenrick/chat-backend/pkg/logger"
)

const (
	// DefaultPageSize é o tamanho de página usado quando o cliente não informa limite
	DefaultPageSize = 50
	// MaxPageSize é o teto do tamanho de página
	MaxPageSize = 100
)

// Service implementa as operações de conversa e do ledger de mensagens.
// Toda operação recebe o usuário solicitante já resolvido pelo guard de
// autenticação; o controle de acesso por participante acontece aqui.
type Service struct {
	chats    chat.Repository
	messages message.Repository
	users    user.Repository
	log      logger.Logger
}

// NewService cria uma nova instância de Service
func NewService(chats chat.Repository, messages message.Repository, users user.Repository, log logger.Logger) *Service {
	return &Service{
		chats:    chats,
		messages: messages,
		users:    users,
		log:      log,
	}
}

// StartChat retorna a conversa existente para o conjunto de participantes ou
// cria uma nova. O conjunto é normalizado (deduplicado e ordenado) e o
// chamador é sempre incluído. Idempotente: chamadas concorrentes com o mesmo
// conjunto não criam conversas duplicadas; o conflito de unicidade na chave
// de participantes é resolvido relendo a conversa vencedora.
func (s *Service) StartChat(ctx context.Context, callerID string, participantIDs []string) (*chat.Chat, error) {
	normalized := chat.NormalizeParticipants(append(participantIDs, callerID))
	if len(normalized) == 0 {
		return nil, chat.ErrEmptyParticipants
	}
	key := chat.ParticipantKey(normalized)

	existing, err := s.chats.FindByParticipantKey(ctx, key)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, chat.ErrNotFound) {
		return nil, fmt.Errorf("falha ao buscar conversa pela chave de participantes: %w", err)
	}

	// Uma conversa existente já teve seus participantes verificados; só a
	// criação precisa confirmar que todos os ids correspondem a usuários
	if err := s.ensureParticipantsExist(ctx, normalized); err != nil {
		return nil, err
	}

	c := &chat.Chat{
		ID:             uuid.New().String(),
		ParticipantIDs: normalized,
		CreatedAt:      time.Now().UTC(),
	}
	err = s.chats.Create(ctx, c)
	if err == nil {
		s.log.Info("conversa criada", "chat_id", c.ID, "participants", len(normalized))
		return c, nil
	}

	if errors.Is(err, chat.ErrDuplicateParticipants) {
		winner, ferr := s.chats.FindByParticipantKey(ctx, key)
		if ferr != nil {
			return nil, fmt.Errorf("falha ao reler conversa após conflito: %w", ferr)
		}
		return winner, nil
	}

	return nil, fmt.Errorf("falha ao criar conversa: %w", err)
}

// ensureParticipantsExist confirma que cada id do conjunto normalizado
// corresponde a um usuário registrado. Ids desconhecidos (ou fora do formato
// de id) retornam chat.ErrUnknownParticipant antes de qualquer escrita.
func (s *Service) ensureParticipantsExist(ctx context.Context, participantIDs []string) error {
	found, err := s.users.FindByIDs(ctx, participantIDs)
	if err != nil {
		return fmt.Errorf("falha ao verificar participantes: %w", err)
	}
	if len(found) != len(participantIDs) {
		return chat.ErrUnknownParticipant
	}
	return nil
}

// GetChat retorna a conversa apenas se o usuário solicitante é participante.
// Este é o único ponto de controle de acesso no nível de conversa; as
// operações do ledger delegam para cá.
func (s *Service) GetChat(ctx context.Context, chatID, userID string) (*chat.Chat, error) {
	c, err := s.chats.FindByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !c.HasParticipant(userID) {
		return nil, chat.ErrForbidden
	}
	return c, nil
}

// Append grava uma nova mensagem no ledger da conversa.
// O remetente deve ser participante; o texto, após trim, não pode ser vazio.
// ID e timestamp são atribuídos pelo servidor: o relógio do cliente nunca é
// usado para ordenação. Após a gravação durável, o ponteiro de última
// mensagem da conversa é atualizado; se essa atualização falhar, a mensagem
// permanece válida e o projetor reconcilia lendo a cauda do ledger.
func (s *Service) Append(ctx context.Context, chatID, senderID, text string) (*message.Message, error) {
	c, err := s.GetChat(ctx, chatID, senderID)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, message.ErrEmptyText
	}

	m := &message.Message{
		ChatID:   c.ID,
		SenderID: senderID,
		Text:     text,
	}
	if err := s.messages.Append(ctx, m); err != nil {
		return nil, fmt.Errorf("falha ao gravar mensagem: %w", err)
	}

	if err := s.chats.RecordLastMessage(ctx, c.ID, m.ID, m.CreatedAt); err != nil {
		// O ledger é a fonte de verdade; o ponteiro é apenas cache
		s.log.Warn("ponteiro de última mensagem não atualizado", "chat_id", c.ID, "message_id", m.ID, "error", err)
	}

	return m, nil
}

// Page retorna uma página de mensagens da conversa, da mais antiga para a
// mais recente dentro da página. Quando o cursor é informado, seleciona as
// "limit" mensagens mais recentes com chave (timestamp, id) estritamente
// menor que ele. O cursor é exclusivo: repaginar com a chave da mensagem mais
// antiga retornada nunca pula nem repete mensagens, mesmo com appends
// concorrentes, pois a paginação só percorre entradas já imutáveis.
func (s *Service) Page(ctx context.Context, chatID, userID string, before *message.Cursor, limit int) ([]*message.Message, error) {
	if _, err := s.GetChat(ctx, chatID, userID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultPageSize
	} else if limit > MaxPageSize {
		limit = MaxPageSize
	}

	msgs, err := s.messages.Page(ctx, chatID, before, limit)
	if err != nil {
		return nil, fmt.Errorf("falha ao paginar mensagens: %w", err)
	}

	// O repositório devolve da mais recente para a mais antiga
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// MarkRead avança o marcador de leitura do usuário na conversa.
// Com messageID zero, o marcador avança até a cauda atual do ledger.
func (s *Service) MarkRead(ctx context.Context, chatID, userID string, messageID int64) error {
	if _, err := s.GetChat(ctx, chatID, userID); err != nil {
		return err
	}

	if messageID == 0 {
		tail, err := s.messages.Latest(ctx, chatID)
		if err != nil {
			return fmt.Errorf("falha ao buscar cauda do ledger: %w", err)
		}
		if tail == nil {
			// Conversa sem mensagens: nada a marcar
			return nil
		}
		messageID = tail.ID
	}

	return s.messages.MarkRead(ctx, chatID, userID, messageID)
}
