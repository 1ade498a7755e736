package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "pairchat/internal/pkg/chat/application/domain"
)

func seedListingRepo(t *testing.T) *fakeChatRepo {
	t.Helper()
	repo := newFakeChatRepo()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	put := func(id, a, b string, updated time.Time) {
		s := chat.Session{
			ID: id, Title: "Chat with " + b,
			ParticipantA: a, ParticipantB: b,
			CreatedAt: base, UpdatedAt: updated,
		}
		repo.sessions[pairKey(a, b)] = s
	}
	put("s-old", "u1", "u2", base.Add(1*time.Minute))
	put("s-mid", "u1", "u3", base.Add(2*time.Minute))
	put("s-new", "u1", "u4", base.Add(3*time.Minute))
	put("s-other", "u8", "u9", base.Add(4*time.Minute)) // u1 not a member

	// Messages inserted out of chronological order: the preview must still be
	// the latest by created_at, never the first one stored.
	repo.messages = []chat.Message{
		{ID: "m2", SessionID: "s-old", Content: "middle", CreatedAt: base.Add(20 * time.Second)},
		{ID: "m3", SessionID: "s-old", Content: "latest", CreatedAt: base.Add(30 * time.Second)},
		{ID: "m1", SessionID: "s-old", Content: "first", CreatedAt: base.Add(10 * time.Second)},
	}
	return repo
}

func TestListChatsOrderedByRecency(t *testing.T) {
	uc := NewListChatsUseCase(seedListingRepo(t), nil)

	previews, err := uc.Execute(context.Background(), ListChatsInput{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, previews, 3)

	var ids []string
	for _, p := range previews {
		ids = append(ids, p.Session.ID)
	}
	assert.Equal(t, []string{"s-new", "s-mid", "s-old"}, ids)
}

func TestListChatsContainment(t *testing.T) {
	uc := NewListChatsUseCase(seedListingRepo(t), nil)

	previews, err := uc.Execute(context.Background(), ListChatsInput{UserID: "u1"})
	require.NoError(t, err)
	for _, p := range previews {
		assert.True(t, p.Session.HasParticipant("u1"),
			"listing must never include a session the user is not in: %s", p.Session.ID)
	}
}

func TestListChatsPreviewIsLatestMessage(t *testing.T) {
	uc := NewListChatsUseCase(seedListingRepo(t), nil)

	previews, err := uc.Execute(context.Background(), ListChatsInput{UserID: "u1"})
	require.NoError(t, err)

	byID := map[string]chat.SessionPreview{}
	for _, p := range previews {
		byID[p.Session.ID] = p
	}

	withMsgs := byID["s-old"]
	require.NotNil(t, withMsgs.Preview)
	assert.Equal(t, "m3", withMsgs.Preview.ID)
	assert.Equal(t, "latest", withMsgs.Preview.Content)

	empty := byID["s-new"]
	assert.Nil(t, empty.Preview, "a session without messages has no preview")
}

func TestListChatsValidatesUserID(t *testing.T) {
	uc := NewListChatsUseCase(newFakeChatRepo(), nil)
	_, err := uc.Execute(context.Background(), ListChatsInput{})
	require.ErrorIs(t, err, ErrValidation)
}

func TestListChatsAllOrNothingOnStoreFailure(t *testing.T) {
	repo := seedListingRepo(t)
	repo.failAll = true
	uc := NewListChatsUseCase(repo, nil)

	previews, err := uc.Execute(context.Background(), ListChatsInput{UserID: "u1"})
	require.ErrorIs(t, err, ErrPersistence)
	assert.Nil(t, previews)
}

func TestListChatsReadThroughCache(t *testing.T) {
	repo := seedListingRepo(t)
	c := newFakeCache()
	uc := NewListChatsUseCase(repo, c)

	first, err := uc.Execute(context.Background(), ListChatsInput{UserID: "u1"})
	require.NoError(t, err)
	require.Equal(t, 1, repo.listCalls)
	require.Contains(t, c.values, ListCacheKey("u1"))

	second, err := uc.Execute(context.Background(), ListChatsInput{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls, "second listing must be served from the cache")
	assert.Equal(t, len(first), len(second))
	assert.Equal(t, first[0].Session.ID, second[0].Session.ID)
}

func TestListChatsIgnoresCorruptCacheEntry(t *testing.T) {
	repo := seedListingRepo(t)
	c := newFakeCache()
	c.values[ListCacheKey("u1")] = "{not json"
	uc := NewListChatsUseCase(repo, c)

	previews, err := uc.Execute(context.Background(), ListChatsInput{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, previews, 3)
	assert.Equal(t, 1, repo.listCalls)

	// The corrupt entry is overwritten with a fresh snapshot.
	var cached []chat.SessionPreview
	require.NoError(t, json.Unmarshal([]byte(c.values[ListCacheKey("u1")]), &cached))
	assert.Len(t, cached, 3)
}
