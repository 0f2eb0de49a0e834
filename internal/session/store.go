package session

import (
	"context"
	"sync"
	"time"

	"occustats/internal/reactive"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// StateFactory creates the initial dashboard state for a new session
type StateFactory func(ctx context.Context) (*reactive.State, error)

// Session is one browser client's selection state
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu      sync.Mutex
	state   *reactive.State
	version int
}

// Do runs fn with exclusive access to the session state. Calls on the same
// session are serialized; the version advances when fn succeeds.
func (s *Session) Do(fn func(st *reactive.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.state); err != nil {
		return err
	}
	s.version++
	return nil
}

// Read runs fn under the session lock without advancing the version.
// fn must not modify st.
func (s *Session) Read(fn func(st *reactive.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// Version counts successful Do calls
func (s *Session) Version() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Store keeps sessions in an expiring in-memory cache. Every Get pushes the
// session's expiry back by the store TTL.
type Store struct {
	sessions *cache.Cache
	newState StateFactory
}

// NewStore creates a store whose sessions expire after ttl without use.
// Expired sessions are purged every ttl.
func NewStore(newState StateFactory, ttl time.Duration) *Store {
	return &Store{
		sessions: cache.New(ttl, ttl),
		newState: newState,
	}
}

// Get returns a live session and marks it as used
func (s *Store) Get(id string) (*Session, bool) {
	sid, err := uuid.Parse(id)
	if err != nil {
		return nil, false
	}
	key := sid.String()
	v, ok := s.sessions.Get(key)
	if !ok {
		return nil, false
	}
	sess := v.(*Session)
	s.sessions.SetDefault(key, sess)
	return sess, true
}

// Create starts a new session
func (s *Store) Create(ctx context.Context) (*Session, error) {
	state, err := s.newState(ctx)
	if err != nil {
		return nil, err
	}
	sess := &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		state:     state,
	}
	s.sessions.SetDefault(sess.ID.String(), sess)
	return sess, nil
}

// GetOrCreate returns the session for id, creating one when id is unknown or expired
func (s *Store) GetOrCreate(ctx context.Context, id string) (*Session, bool, error) {
	if sess, ok := s.Get(id); ok {
		return sess, false, nil
	}
	sess, err := s.Create(ctx)
	if err != nil {
		return nil, false, err
	}
	return sess, true, nil
}

// Len is the number of stored sessions, including expired ones not yet purged
func (s *Store) Len() int {
	return s.sessions.ItemCount()
}
