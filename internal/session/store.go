package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store holds live sessions, bounded in size; a session expires after ttl
// without use.
type Store struct {
	sessions *expirable.LRU[string, *Session]
}

func NewStore(capacity int, ttl time.Duration) *Store {
	return &Store{sessions: expirable.NewLRU[string, *Session](capacity, nil, ttl)}
}

// Get returns a live session and extends its lifetime.
func (s *Store) Get(id string) (*Session, bool) {
	sess, ok := s.sessions.Get(id)
	if !ok {
		return nil, false
	}
	s.sessions.Add(id, sess)
	return sess, true
}

func (s *Store) Create() *Session {
	sess := New(uuid.NewString())
	s.sessions.Add(sess.ID, sess)
	return sess
}

func (s *Store) Delete(id string) {
	s.sessions.Remove(id)
}

func (s *Store) Len() int {
	return s.sessions.Len()
}
