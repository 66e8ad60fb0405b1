package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gantt-tools/gantt-go/internal/logger"
)

// Store keeps sessions in memory, keyed by a random UUID, and evicts
// sessions idle for longer than the TTL.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	opts     Options
	now      func() time.Time
}

// NewStore creates an empty store. A non-positive ttl disables eviction.
func NewStore(ttl time.Duration, opts Options) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		opts:     opts,
		now:      time.Now,
	}
}

// Create starts a new session.
func (st *Store) Create() *Session {
	s := New(uuid.NewString(), st.opts)
	s.touch(st.now())

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	logger.Debug("session created", "session", s.ID)
	return s
}

// Get returns a live session and refreshes its idle timer.
func (st *Store) Get(id string) (*Session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}

	st.mu.Lock()
	s, ok := st.sessions[id]
	if ok && st.expired(s) {
		delete(st.sessions, id)
		ok = false
	}
	st.mu.Unlock()

	if !ok {
		return nil, false
	}
	s.touch(st.now())
	return s, true
}

// GetOrCreate returns the session for id, creating a new one when id is
// unknown or expired. created reports whether a new session was made.
func (st *Store) GetOrCreate(id string) (s *Session, created bool) {
	if s, ok := st.Get(id); ok {
		return s, false
	}
	return st.Create(), true
}

// Delete drops a session.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len returns the number of stored sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep evicts expired sessions and returns how many were removed.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		if st.expired(s) {
			delete(st.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		logger.Debug("expired sessions evicted", "count", removed, "remaining", len(st.sessions))
	}
	return removed
}

// Run sweeps the store every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep()
		}
	}
}

func (st *Store) expired(s *Session) bool {
	return st.ttl > 0 && st.now().Sub(s.idleSince()) > st.ttl
}
