package repository

import (
	"aws_quiz_backend/internal/model"
	"aws_quiz_backend/internal/util"
	"context"
	"encoding/json"
	"sync"
	"time"
)

// SessionRepository stores quiz sessions by session key. Put replaces
// whatever run the key currently holds; Update is a compare-and-set on the
// session version and fails with ErrVersionConflict when another request
// wrote the session in between.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*model.QuizSession, error)
	Put(ctx context.Context, session *model.QuizSession) error
	Update(ctx context.Context, session *model.QuizSession) error
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	data      []byte
	version   int64
	expiresAt time.Time
}

// MemorySessionRepository is the single-node session store. Sessions are
// kept as JSON snapshots so callers never alias store-owned state.
type MemorySessionRepository struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memoryEntry
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
	}
}

func (r *MemorySessionRepository) Get(ctx context.Context, id string) (*model.QuizSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(r.sessions, id)
		return nil, util.ErrSessionNotFound
	}

	var session model.QuizSession
	if err := json.Unmarshal(entry.data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *MemorySessionRepository) Put(ctx context.Context, session *model.QuizSession) error {
	session.Version = 1
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = memoryEntry{
		data:      data,
		version:   session.Version,
		expiresAt: time.Now().Add(r.ttl),
	}
	return nil
}

func (r *MemorySessionRepository) Update(ctx context.Context, session *model.QuizSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[session.ID]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(r.sessions, session.ID)
		return util.ErrSessionNotFound
	}
	if entry.version != session.Version {
		return util.ErrVersionConflict
	}

	session.Version++
	data, err := json.Marshal(session)
	if err != nil {
		session.Version--
		return err
	}
	r.sessions[session.ID] = memoryEntry{
		data:      data,
		version:   session.Version,
		expiresAt: time.Now().Add(r.ttl),
	}
	return nil
}

func (r *MemorySessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// Cleanup drops expired sessions and reports how many were removed. The app
// runs it on a ticker.
func (r *MemorySessionRepository) Cleanup() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, entry := range r.sessions {
		if now.After(entry.expiresAt) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
