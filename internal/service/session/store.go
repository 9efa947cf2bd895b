package session

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yash6810/Plutus/internal/model/session"
)

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Store owns all session records. Reads and commits exchange deep clones, so
// a commit is all-or-nothing: a concurrent Get never observes a half-written
// session. Per-session serialization is provided by Lock; the store-wide
// mutex only guards the maps.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex

	logger *zap.Logger
}

// NewStore bootstraps an empty in-memory store.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		sessions: make(map[string]*session.Session),
		locks:    make(map[string]*sync.Mutex),
		logger:   logger,
	}
}

// Lock serializes turn processing for one session id and returns the unlock
// function. Turns for different ids proceed independently.
func (s *Store) Lock(id string) func() {
	s.lockMu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	s.lockMu.Unlock()

	l.Lock()
	return l.Unlock
}

// GetOrCreate returns a clone of the session for id, provisioning a new
// active session on first sight.
func (s *Store) GetOrCreate(id string) *session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[id]; ok {
		return existing.Clone()
	}

	created := session.New(id)
	s.sessions[created.ID] = created
	s.logger.Info("session created", zap.String("sessionId", created.ID))
	return created.Clone()
}

// Get returns a clone of the session for id, or ErrNotFound.
func (s *Store) Get(id string) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	existing, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return existing.Clone(), nil
}

// Commit atomically replaces the stored record with a clone of sess.
// Partial writes are never observable: callers stage every mutation on their
// own clone and commit once at turn end.
func (s *Store) Commit(sess *session.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess.Clone()
}

// Len reports how many sessions are held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// CleanupExpired drops sessions created more than maxAge ago and returns how
// many were removed. Their per-id locks are dropped with them.
func (s *Store) CleanupExpired(maxAge time.Duration) int {
	cutoff := time.Now().UTC().Add(-maxAge)

	s.mu.Lock()
	var removed []string
	for id, sess := range s.sessions {
		if sess.CreatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed = append(removed, id)
		}
	}
	s.mu.Unlock()

	if len(removed) > 0 {
		s.lockMu.Lock()
		for _, id := range removed {
			delete(s.locks, id)
		}
		s.lockMu.Unlock()
		s.logger.Info("expired sessions removed", zap.Int("count", len(removed)))
	}
	return len(removed)
}
