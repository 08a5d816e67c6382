package controller

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/chat-backend/internal/domain/chat"
	"github.com/hugohenrick/chat-backend/internal/domain/message"
	"github.com/hugohenrick/chat-backend/internal/domain/user"
	"github.com/hugohenrick/chat-backend/internal/service/conversation"
	"github.com/hugohenrick/chat-backend/pkg/logger"
)

// memChatRepo implementa chat.Repository em memória
type memChatRepo struct {
	mu    sync.Mutex
	byID  map[string]*chat.Chat
	byKey map[string]*chat.Chat
}

func newMemChatRepo() *memChatRepo {
	return &memChatRepo{
		byID:  make(map[string]*chat.Chat),
		byKey: make(map[string]*chat.Chat),
	}
}

func (r *memChatRepo) Create(_ context.Context, c *chat.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := chat.ParticipantKey(c.ParticipantIDs)
	if _, ok := r.byKey[key]; ok {
		return chat.ErrDuplicateParticipants
	}
	clone := *c
	r.byID[c.ID] = &clone
	r.byKey[key] = &clone
	return nil
}

func (r *memChatRepo) FindByParticipantKey(_ context.Context, key string) (*chat.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byKey[key]
	if !ok {
		return nil, chat.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *memChatRepo) FindByID(_ context.Context, id string) (*chat.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, chat.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *memChatRepo) ListByUser(_ context.Context, userID string) ([]*chat.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*chat.Chat, 0)
	for _, c := range r.byID {
		if c.HasParticipant(userID) {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memChatRepo) RecordLastMessage(_ context.Context, chatID string, messageID int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[chatID]
	if !ok {
		return chat.ErrNotFound
	}
	id := messageID
	ts := at
	c.LastMessageID = &id
	c.LastMessageAt = &ts
	return nil
}

// memMessageRepo implementa message.Repository em memória com IDs crescentes
type memMessageRepo struct {
	mu      sync.Mutex
	nextID  int64
	byChat  map[string][]*message.Message
	markers map[string]int64
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{
		nextID:  1,
		byChat:  make(map[string][]*message.Message),
		markers: make(map[string]int64),
	}
}

func (r *memMessageRepo) Append(_ context.Context, m *message.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = r.nextID
	r.nextID++
	m.CreatedAt = time.Now().UTC()
	clone := *m
	r.byChat[m.ChatID] = append(r.byChat[m.ChatID], &clone)
	return nil
}

func (r *memMessageRepo) Page(_ context.Context, chatID string, before *message.Cursor, limit int) ([]*message.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgs := r.byChat[chatID]
	out := make([]*message.Message, 0, limit)
	for i := len(msgs) - 1; i >= 0 && len(out) < limit; i-- {
		m := msgs[i]
		if before != nil && !m.Before(*before) {
			continue
		}
		clone := *m
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memMessageRepo) Latest(_ context.Context, chatID string) (*message.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgs := r.byChat[chatID]
	if len(msgs) == 0 {
		return nil, nil
	}
	clone := *msgs[len(msgs)-1]
	return &clone, nil
}

func (r *memMessageRepo) UnreadCount(_ context.Context, chatID, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	marker := r.markers[chatID+"/"+userID]
	count := 0
	for _, m := range r.byChat[chatID] {
		if m.SenderID != userID && m.ID > marker {
			count++
		}
	}
	return count, nil
}

func (r *memMessageRepo) MarkRead(_ context.Context, chatID, userID string, messageID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := chatID + "/" + userID
	if messageID > r.markers[key] {
		r.markers[key] = messageID
	}
	return nil
}

// memUserRepo implementa user.Repository em memória
type memUserRepo struct {
	mu   sync.Mutex
	byID map[string]*user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: make(map[string]*user.User)}
}

func (r *memUserRepo) add(u *user.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *u
	r.byID[u.ID] = &clone
}

func (r *memUserRepo) Create(_ context.Context, u *user.User) error {
	r.add(u)
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) FindByExternalID(_ context.Context, externalID string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.ExternalID == externalID {
			clone := *u
			return &clone, nil
		}
	}
	return nil, user.ErrNotFound
}

func (r *memUserRepo) FindByIDs(_ context.Context, ids []string) ([]*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*user.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memUserRepo) UpdateProfile(_ context.Context, id, name, avatar string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Name = name
	u.Avatar = avatar
	return nil
}

// setupAPI monta o roteador com as rotas de conversa e mensagens. O usuário
// autenticado vem do cabeçalho X-User-ID, substituindo o guard de sessão para
// exercitar apenas o mapeamento de erros dos controllers.
func setupAPI() (*gin.Engine, *conversation.Service) {
	gin.SetMode(gin.TestMode)

	chats := newMemChatRepo()
	messages := newMemMessageRepo()
	users := newMemUserRepo()
	for _, id := range []string{"alice", "bob", "carol", "mallory"} {
		users.add(&user.User{ID: id, Name: id})
	}

	log := logger.NewLogger()
	svc := conversation.NewService(chats, messages, users, log)
	projector := conversation.NewProjector(chats, messages, users, log)
	chatController := NewChatController(svc, projector, log)
	messageController := NewMessageController(svc, log)

	router := gin.New()
	api := router.Group("/api", func(c *gin.Context) {
		c.Set("user_id", c.GetHeader("X-User-ID"))
	})
	api.GET("/chats", chatController.List)
	api.POST("/chats", chatController.Create)
	api.GET("/chats/:id/messages", messageController.Page)
	api.POST("/chats/:id/messages", messageController.Send)
	api.POST("/chats/:id/read", chatController.MarkRead)

	return router, svc
}

// doJSON executa uma requisição como o usuário indicado e retorna o recorder
func doJSON(t *testing.T, router *gin.Engine, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-User-ID", userID)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}
