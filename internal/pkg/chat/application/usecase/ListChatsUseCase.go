package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	cache "pairchat/internal/infrastructure/cache/port"
	chat "pairchat/internal/pkg/chat/application/domain"
	repository "pairchat/internal/pkg/chat/persistence/repository/port"
)

// listTTL keeps the listing cache short-lived: previews change with every
// message append, which this service does not observe.
const listTTL = 10 * time.Second

// ListCacheKey is the cache slot for a user's session listing. The
// session-created task deletes it for both participants of a new session.
func ListCacheKey(userID string) string {
	return "chats:user:" + userID
}

// ListChatsInput wraps the identifier of the user whose sessions are listed.
type ListChatsInput struct {
	UserID string
}

// ListChatsUseCase returns the caller's sessions ordered by recency, each
// annotated with its most recent message. The call is all-or-nothing: a store
// failure returns no partial listing.
// Hexagonal: depends on repository and cache ports only.
type ListChatsUseCase struct {
	Repo  repository.ChatRepository
	Cache cache.Cache // optional; nil disables the read-through cache
}

func NewListChatsUseCase(repo repository.ChatRepository, c cache.Cache) *ListChatsUseCase {
	return &ListChatsUseCase{Repo: repo, Cache: c}
}

func (uc *ListChatsUseCase) Execute(ctx context.Context, in ListChatsInput) ([]chat.SessionPreview, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}

	key := ListCacheKey(in.UserID)
	if uc.Cache != nil {
		if raw, err := uc.Cache.Get(ctx, key); err == nil && raw != "" {
			var cached []chat.SessionPreview
			// A corrupt entry falls through to the store.
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	previews, err := uc.Repo.ListSessionsWithPreview(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Cache != nil {
		if raw, err := json.Marshal(previews); err == nil {
			_ = uc.Cache.Set(ctx, key, string(raw), listTTL)
		}
	}
	return previews, nil
}
