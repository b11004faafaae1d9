package ports

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps server-side session records: a flat map of labels per
// session id. Saving refreshes the expiry.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (map[string]string, error)
	Save(ctx context.Context, sessionID string, values map[string]string, ttl time.Duration) error
}
