package http

import (
	"errors"
	"net/http"
	"time"

	"storefront/internal/core/ports"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	DefaultSessionCookieName = "sessionid"
	SessionTTL               = 14 * 24 * time.Hour

	cartSessionKeyLabel = "cart_session_key"
	sessionContextKey   = "session"
)

// session is the server-side record behind the session cookie.
type session struct {
	id     string
	values map[string]string
	dirty  bool
}

func (s *session) get(label string) string {
	return s.values[label]
}

func (s *session) set(label, value string) {
	if s.values[label] == value {
		return
	}
	s.values[label] = value
	s.dirty = true
}

// withSession loads the session named by the cookie, or starts an empty one.
// Changed sessions are saved, and the cookie refreshed, right before the
// response header is written.
func (s *Server) withSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		sess := &session{values: map[string]string{}}

		if cookie, err := c.Cookie(s.cfg.SessionCookieName); err == nil && cookie.Value != "" {
			values, loadErr := s.sessions.Load(ctx, cookie.Value)
			switch {
			case loadErr == nil:
				sess.id, sess.values = cookie.Value, values
			case errors.Is(loadErr, ports.ErrSessionNotFound):
			default:
				return loadErr
			}
		}
		if sess.id == "" {
			sess.id = uuid.NewString()
		}

		c.Set(sessionContextKey, sess)
		c.Response().Before(func() {
			if !sess.dirty {
				return
			}
			if err := s.sessions.Save(ctx, sess.id, sess.values, SessionTTL); err != nil {
				s.logger.Error("Failed to save session", "error", err)
				return
			}
			c.SetCookie(&http.Cookie{
				Name:     s.cfg.SessionCookieName,
				Value:    sess.id,
				Path:     "/",
				MaxAge:   int(SessionTTL.Seconds()),
				HttpOnly: true,
				Secure:   s.cfg.SessionCookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
		})
		return next(c)
	}
}

func sessionFrom(c echo.Context) *session {
	if sess, ok := c.Get(sessionContextKey).(*session); ok {
		return sess
	}
	return &session{values: map[string]string{}}
}
