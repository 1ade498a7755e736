package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	chat "pairchat/internal/pkg/chat/application/domain"
)

var errStoreDown = errors.New("store unavailable")

// fakeChatRepo models the repository port contract in memory: canonical-pair
// uniqueness on insert, containment filtering and explicit ordering on list.
type fakeChatRepo struct {
	profiles map[string][]string     // username -> profile ids
	sessions map[string]chat.Session // canonical "a|b" -> session
	messages []chat.Message

	failAll bool          // every call errors, for all-or-nothing tests
	racer   *chat.Session // when set, a concurrent writer wins every insert

	findUserCalls int
	insertCalls   int
	listCalls     int
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		profiles: make(map[string][]string),
		sessions: make(map[string]chat.Session),
	}
}

func pairKey(a, b string) string {
	x, y := chat.CanonicalPair(a, b)
	return x + "|" + y
}

func (f *fakeChatRepo) FindUserIDsByUsername(_ context.Context, username string) ([]string, error) {
	f.findUserCalls++
	if f.failAll {
		return nil, errStoreDown
	}
	return f.profiles[username], nil
}

func (f *fakeChatRepo) FindSessionByPair(_ context.Context, a, b string) (*chat.Session, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	if s, ok := f.sessions[pairKey(a, b)]; ok {
		out := s
		return &out, nil
	}
	return nil, nil
}

func (f *fakeChatRepo) InsertSession(_ context.Context, s chat.Session) (bool, error) {
	f.insertCalls++
	if f.failAll {
		return false, errStoreDown
	}
	key := pairKey(s.ParticipantA, s.ParticipantB)
	if f.racer != nil {
		f.sessions[key] = *f.racer
		return false, nil
	}
	if _, exists := f.sessions[key]; exists {
		return false, nil
	}
	f.sessions[key] = s
	return true, nil
}

func (f *fakeChatRepo) ListSessionsWithPreview(_ context.Context, userID string) ([]chat.SessionPreview, error) {
	f.listCalls++
	if f.failAll {
		return nil, errStoreDown
	}
	var out []chat.SessionPreview
	for _, s := range f.sessions {
		if !s.HasParticipant(userID) {
			continue
		}
		p := chat.SessionPreview{Session: s}
		for _, m := range f.messages {
			if m.SessionID != s.ID {
				continue
			}
			if p.Preview == nil || m.CreatedAt.After(p.Preview.CreatedAt) {
				mm := m
				p.Preview = &mm
			}
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Session.UpdatedAt.After(out[j].Session.UpdatedAt)
	})
	return out, nil
}

// fakeCache is an in-memory port.Cache; TTLs are accepted but not enforced.
type fakeCache struct {
	values  map[string]string
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", errors.New("cache: miss")
	}
	return v, nil
}

func (f *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.values[key] = value
	return nil
}

func (f *fakeCache) Del(_ context.Context, keys ...string) (int64, error) {
	var n int64
	for _, k := range keys {
		f.deleted = append(f.deleted, k)
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeCache) Ping(context.Context) error { return nil }
func (f *fakeCache) Close() error               { return nil }
