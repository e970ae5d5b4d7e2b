package dashboard

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lueurxax/auto-news-dashboard/internal/core/errors"
)

// Session is an authenticated dashboard visit and the view state it carries
// between requests.
type Session struct {
	ID        uuid.UUID
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
	View      ViewState
}

// SessionStore keeps sessions in memory. Sessions are lost on restart.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates a store whose sessions live for ttl.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a new session for username. Expired sessions are pruned.
func (s *SessionStore) Create(username string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)

	sess := &Session{
		ID:        uuid.New(),
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.sessions[sess.ID] = sess

	return *sess
}

// Get returns a copy of the session.
func (s *SessionStore) Get(id uuid.UUID) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(id)
	if err != nil {
		return Session{}, err
	}

	out := *sess
	out.View = sess.View.clone()

	return out, nil
}

// UpdateView applies fn to the session's view state under the store lock.
func (s *SessionStore) UpdateView(id uuid.UUID, fn func(v *ViewState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(id)
	if err != nil {
		return err
	}

	fn(&sess.View)

	return nil
}

// Delete drops a session. Unknown IDs are ignored.
func (s *SessionStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

// Prune drops expired sessions and returns how many were removed.
func (s *SessionStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.sessions)
	s.pruneLocked(s.now())

	return before - len(s.sessions)
}

// Len returns the number of stored sessions, including expired ones not yet pruned.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

func (s *SessionStore) lookupLocked(id uuid.UUID) (*Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, errors.ErrSessionNotFound
	}

	if s.now().After(sess.ExpiresAt) {
		delete(s.sessions, id)
		return nil, errors.ErrSessionExpired
	}

	return sess, nil
}

func (s *SessionStore) pruneLocked(now time.Time) {
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
}
