package session

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const defaultSize = 1024

// Store keeps per-session resolution state: the id of the most recently
// scheduled command, carried across transcript batches so a follow-up like
// "remind me before that" can land on the right task. Entries expire so
// stale sessions cannot pin memory.
type Store struct {
	cache *expirable.LRU[string, string]
}

func NewStore(size int, ttl time.Duration) *Store {
	if size <= 0 {
		size = defaultSize
	}
	return &Store{cache: expirable.NewLRU[string, string](size, nil, ttl)}
}

// LastScheduled returns the last-scheduled task id for the session, or ""
// when the session is unknown or expired.
func (s *Store) LastScheduled(sessionID string) string {
	if sessionID == "" {
		return ""
	}
	v, ok := s.cache.Get(sessionID)
	if !ok {
		return ""
	}
	return v
}

// SetLastScheduled records the session's last-scheduled task id.
func (s *Store) SetLastScheduled(sessionID, taskID string) {
	if sessionID == "" || taskID == "" {
		return
	}
	s.cache.Add(sessionID, taskID)
}

// Clear drops the session's state.
func (s *Store) Clear(sessionID string) {
	s.cache.Remove(sessionID)
}
