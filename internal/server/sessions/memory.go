package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

// MemoryStore keeps sessions in a mutex-guarded map. Expired entries are
// removed lazily on Resolve.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]models.Session)}
}

func (s *MemoryStore) Create(ctx context.Context, userID int64, ttl time.Duration) (*models.Session, error) {
	sess, err := newSession(userID, ttl)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[sess.ID] = *sess
	s.mu.Unlock()

	return sess, nil
}

func (s *MemoryStore) Resolve(ctx context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, common.ErrorNotFound
	}

	if sess.Expired(time.Now()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, common.ErrorSessionExpired
	}

	out := sess
	return &out, nil
}

func (s *MemoryStore) Destroy(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Len reports the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
