package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/hugohenrick/chat-backend/internal/domain/chat"
	"github.com/hugohenrick/chat-backend/internal/domain/message"
	"github.com/hugohenrick/chat-backend/internal/domain/user"
	"github.com/hugohenrick/chat-backend/pkg/logger"
)

// fakeChatRepo implementa chat.Repository em memória para os testes
type fakeChatRepo struct {
	mu    sync.Mutex
	byID  map[string]*chat.Chat
	byKey map[string]*chat.Chat

	// failRecordLastMessage simula falha na atualização do ponteiro
	failRecordLastMessage bool
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		byID:  make(map[string]*chat.Chat),
		byKey: make(map[string]*chat.Chat),
	}
}

func (r *fakeChatRepo) Create(_ context.Context, c *chat.Chat) error {
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

func (r *fakeChatRepo) FindByParticipantKey(_ context.Context, key string) (*chat.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byKey[key]
	if !ok {
		return nil, chat.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeChatRepo) FindByID(_ context.Context, id string) (*chat.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, chat.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeChatRepo) ListByUser(_ context.Context, userID string) ([]*chat.Chat, error) {
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

func (r *fakeChatRepo) RecordLastMessage(_ context.Context, chatID string, messageID int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failRecordLastMessage {
		return chat.ErrNotFound
	}
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

// fakeMessageRepo implementa message.Repository em memória, com IDs
// estritamente crescentes como a sequência do banco
type fakeMessageRepo struct {
	mu      sync.Mutex
	nextID  int64
	byChat  map[string][]*message.Message
	markers map[string]int64 // chatID+"/"+userID -> last_read_message_id

	// clock permite controlar timestamps nos testes; nil usa time.Now
	clock func() time.Time
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{
		nextID:  1,
		byChat:  make(map[string][]*message.Message),
		markers: make(map[string]int64),
	}
}

func (r *fakeMessageRepo) now() time.Time {
	if r.clock != nil {
		return r.clock()
	}
	return time.Now().UTC()
}

func (r *fakeMessageRepo) Append(_ context.Context, m *message.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = r.nextID
	r.nextID++
	m.CreatedAt = r.now()
	clone := *m
	r.byChat[m.ChatID] = append(r.byChat[m.ChatID], &clone)
	return nil
}

func (r *fakeMessageRepo) Page(_ context.Context, chatID string, before *message.Cursor, limit int) ([]*message.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgs := r.byChat[chatID]
	out := make([]*message.Message, 0, limit)
	// percorre da mais recente para a mais antiga, como o SQL
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

func (r *fakeMessageRepo) Latest(_ context.Context, chatID string) (*message.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgs := r.byChat[chatID]
	if len(msgs) == 0 {
		return nil, nil
	}
	clone := *msgs[len(msgs)-1]
	return &clone, nil
}

// CountInChat é um auxiliar de teste, fora da interface message.Repository
func (r *fakeMessageRepo) CountInChat(_ context.Context, chatID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.byChat[chatID]), nil
}

func (r *fakeMessageRepo) UnreadCount(_ context.Context, chatID, userID string) (int, error) {
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

func (r *fakeMessageRepo) MarkRead(_ context.Context, chatID, userID string, messageID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := chatID + "/" + userID
	if messageID > r.markers[key] {
		r.markers[key] = messageID
	}
	return nil
}

// fakeUserRepo implementa user.Repository em memória (apenas o que o projetor usa)
type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*user.User)}
}

func (r *fakeUserRepo) add(u *user.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *u
	r.byID[u.ID] = &clone
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	r.add(u)
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) FindByExternalID(_ context.Context, externalID string) (*user.User, error) {
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

func (r *fakeUserRepo) FindByIDs(_ context.Context, ids []string) ([]*user.User, error) {
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

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id, name, avatar string) error {
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

func testLogger() logger.Logger {
	return logger.NewLogger()
}
