// Package session provides the server-side session stores.
package session

import (
	"context"
	"maps"
	"sync"
	"time"

	"storefront/internal/core/ports"
)

type memoryRecord struct {
	values    map[string]string
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Used in development and tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryRecord
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryRecord), now: time.Now}
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[sessionID]
	if !ok {
		return nil, ports.ErrSessionNotFound
	}
	if s.now().After(rec.expiresAt) {
		delete(s.sessions, sessionID)
		return nil, ports.ErrSessionNotFound
	}
	return maps.Clone(rec.values), nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, values map[string]string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionID] = memoryRecord{values: maps.Clone(values), expiresAt: s.now().Add(ttl)}
	return nil
}
