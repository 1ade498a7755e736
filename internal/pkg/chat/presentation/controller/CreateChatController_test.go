package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qport "pairchat/internal/infrastructure/queue/port"
	chat "pairchat/internal/pkg/chat/application/domain"
	"pairchat/internal/pkg/chat/application/usecase"
	"pairchat/internal/pkg/identity/middleware"
	idport "pairchat/internal/pkg/identity/port"
)

// memChatRepo is the minimal in-memory repository the controllers need.
type memChatRepo struct {
	profiles map[string][]string
	sessions map[string]chat.Session
	messages []chat.Message
}

func newMemChatRepo() *memChatRepo {
	return &memChatRepo{
		profiles: make(map[string][]string),
		sessions: make(map[string]chat.Session),
	}
}

func memPairKey(a, b string) string {
	x, y := chat.CanonicalPair(a, b)
	return x + "|" + y
}

func (m *memChatRepo) FindUserIDsByUsername(_ context.Context, username string) ([]string, error) {
	return m.profiles[username], nil
}

func (m *memChatRepo) FindSessionByPair(_ context.Context, a, b string) (*chat.Session, error) {
	if s, ok := m.sessions[memPairKey(a, b)]; ok {
		out := s
		return &out, nil
	}
	return nil, nil
}

func (m *memChatRepo) InsertSession(_ context.Context, s chat.Session) (bool, error) {
	key := memPairKey(s.ParticipantA, s.ParticipantB)
	if _, exists := m.sessions[key]; exists {
		return false, nil
	}
	m.sessions[key] = s
	return true, nil
}

func (m *memChatRepo) ListSessionsWithPreview(_ context.Context, userID string) ([]chat.SessionPreview, error) {
	var out []chat.SessionPreview
	for _, s := range m.sessions {
		if !s.HasParticipant(userID) {
			continue
		}
		p := chat.SessionPreview{Session: s}
		for _, msg := range m.messages {
			if msg.SessionID == s.ID && (p.Preview == nil || msg.CreatedAt.After(p.Preview.CreatedAt)) {
				mm := msg
				p.Preview = &mm
			}
		}
		out = append(out, p)
	}
	return out, nil
}

type memQueue struct {
	enqueued []qport.Task
}

func (m *memQueue) Enqueue(_ context.Context, t qport.Task, _ ...qport.EnqueueOption) (string, error) {
	m.enqueued = append(m.enqueued, t)
	return "task-id", nil
}

func (m *memQueue) Close() error { return nil }

type memResolver struct{ sessions map[string]string }

func (m *memResolver) Resolve(_ context.Context, token string) (string, error) {
	if id, ok := m.sessions[token]; ok {
		return id, nil
	}
	return "", idport.ErrNotAuthenticated
}

type chatHarness struct {
	engine *gin.Engine
	repo   *memChatRepo
	queue  *memQueue
}

func newChatHarness(t *testing.T) *chatHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newMemChatRepo()
	queue := &memQueue{}
	resolver := &memResolver{sessions: map[string]string{
		"tok-alice": "uA",
		"tok-bob":   "uB",
	}}

	createCtl := &CreateChatController{
		UC:    usecase.NewCreateOrGetSessionUseCase(repo, nil),
		Queue: queue,
	}
	listCtl := &ListChatsController{
		UC: usecase.NewListChatsUseCase(repo, nil),
	}

	e := gin.New()
	g := e.Group("/api/v1")
	g.Use(middleware.RequireUser(resolver))
	g.POST("/chats", createCtl.Handle())
	g.GET("/chats", listCtl.Handle())

	return &chatHarness{engine: e, repo: repo, queue: queue}
}

func (h *chatHarness) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)
	return rec
}

func TestCreateChatEndpointCreatesThenReturnsExisting(t *testing.T) {
	h := newChatHarness(t)
	h.repo.profiles["bob"] = []string{"uB"}
	h.repo.profiles["alice"] = []string{"uA"}

	rec := h.do(t, http.MethodPost, "/api/v1/chats", "tok-alice", gin.H{"username": "bob"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Created bool `json:"created"`
		Session struct {
			ID           string   `json:"id"`
			Title        string   `json:"title"`
			Participants []string `json:"participants"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.Created)
	assert.Equal(t, "Chat with bob", created.Session.Title)
	assert.ElementsMatch(t, []string{"uA", "uB"}, created.Session.Participants)

	// Reversed roles hit the same session via the unordered pair.
	rec = h.do(t, http.MethodPost, "/api/v1/chats", "tok-bob", gin.H{"username": "alice"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var existing struct {
		Created bool `json:"created"`
		Session struct {
			ID string `json:"id"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &existing))
	assert.False(t, existing.Created)
	assert.Equal(t, created.Session.ID, existing.Session.ID)
	assert.Len(t, h.repo.sessions, 1)
}

func TestCreateChatEndpointEnqueuesTaskOnlyOnCreate(t *testing.T) {
	h := newChatHarness(t)
	h.repo.profiles["bob"] = []string{"uB"}

	h.do(t, http.MethodPost, "/api/v1/chats", "tok-alice", gin.H{"username": "bob"})
	require.Len(t, h.queue.enqueued, 1)
	assert.Equal(t, "chat:session_created", h.queue.enqueued[0].Type)

	h.do(t, http.MethodPost, "/api/v1/chats", "tok-alice", gin.H{"username": "bob"})
	assert.Len(t, h.queue.enqueued, 1, "an existing session must not re-emit the task")
}

func TestCreateChatEndpointValidation(t *testing.T) {
	h := newChatHarness(t)

	// Missing field fails binding.
	rec := h.do(t, http.MethodPost, "/api/v1/chats", "tok-alice", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Whitespace-only fails the use case before any store access.
	rec = h.do(t, http.MethodPost, "/api/v1/chats", "tok-alice", gin.H{"username": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateChatEndpointUnknownTarget(t *testing.T) {
	h := newChatHarness(t)

	rec := h.do(t, http.MethodPost, "/api/v1/chats", "tok-alice", gin.H{"username": "nobody"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, h.repo.sessions)
}

func TestChatEndpointsRequireAuth(t *testing.T) {
	h := newChatHarness(t)

	rec := h.do(t, http.MethodPost, "/api/v1/chats", "", gin.H{"username": "bob"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.do(t, http.MethodGet, "/api/v1/chats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListChatsEndpointReturnsPreviews(t *testing.T) {
	h := newChatHarness(t)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	h.repo.sessions[memPairKey("uA", "uB")] = chat.Session{
		ID: "s1", Title: "Chat with bob",
		ParticipantA: "uA", ParticipantB: "uB",
		CreatedAt: now, UpdatedAt: now,
	}
	h.repo.messages = []chat.Message{
		{ID: "m1", SessionID: "s1", Content: "hi", CreatedAt: now.Add(time.Minute)},
		{ID: "m2", SessionID: "s1", Content: "newest", CreatedAt: now.Add(2 * time.Minute)},
	}

	rec := h.do(t, http.MethodGet, "/api/v1/chats", "tok-alice", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Count int `json:"count"`
		Chats []struct {
			ID          string `json:"id"`
			LastMessage *struct {
				Content string `json:"content"`
			} `json:"last_message"`
		} `json:"chats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	require.NotNil(t, resp.Chats[0].LastMessage)
	assert.Equal(t, "newest", resp.Chats[0].LastMessage.Content)
}

func TestListChatsEndpointEmptyForOutsider(t *testing.T) {
	h := newChatHarness(t)
	now := time.Now().UTC()
	h.repo.sessions[memPairKey("uX", "uY")] = chat.Session{
		ID: "s-other", ParticipantA: "uX", ParticipantB: "uY",
		CreatedAt: now, UpdatedAt: now,
	}

	rec := h.do(t, http.MethodGet, "/api/v1/chats", "tok-alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Zero(t, resp.Count, "sessions of other pairs must never leak into the listing")
}
