package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned when a session ID is unknown or expired.
var ErrNotFound = errors.New("session: not found")

// Store keeps live sessions in memory, evicted after the configured
// idle TTL. Nothing is ever persisted.
type Store struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewStore creates a store whose sessions expire after ttl of
// inactivity.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		cache: gocache.New(ttl, ttl/2),
		ttl:   ttl,
	}
}

// Create opens a new session with an empty patient record.
func (s *Store) Create() *Session {
	sess := newSession()
	s.cache.Set(sess.ID.String(), sess, s.ttl)
	log.Info().Str("session_id", sess.ID.String()).Msg("session created")
	return sess
}

// Get resolves a session by ID and refreshes its TTL, so an active
// session never expires mid-use.
func (s *Store) Get(id uuid.UUID) (*Session, error) {
	v, ok := s.cache.Get(id.String())
	if !ok {
		return nil, ErrNotFound
	}
	sess := v.(*Session)
	s.cache.Set(sess.ID.String(), sess, s.ttl)
	return sess, nil
}

// Delete ends a session and drops its record.
func (s *Store) Delete(id uuid.UUID) {
	s.cache.Delete(id.String())
	log.Info().Str("session_id", id.String()).Msg("session ended")
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	return s.cache.ItemCount()
}
