// internal/interfaces/http/handlers/session.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ohana-chilli/storefront/internal/config"
)

const sessionCookieName = "session_id"

// Sessions issues the anonymous session cookie that keys a visitor's cart
// and bowl
type Sessions struct {
	maxAge int
	secure bool
}

// NewSessions creates the session cookie helper
func NewSessions(cfg *config.Config) Sessions {
	ttl := cfg.Storefront.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return Sessions{
		maxAge: int(ttl.Seconds()),
		secure: cfg.Security.SecureCookies,
	}
}

// getOrCreateSessionID gets session ID from cookie or creates a new one.
// The cookie is refreshed on every request so active carts do not expire.
func (s Sessions) getOrCreateSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie(sessionCookieName)
	if err != nil {
		sessionID = ""
	}
	if _, err := uuid.Parse(sessionID); err != nil {
		sessionID = uuid.New().String()
	}

	c.SetCookie(sessionCookieName, sessionID, s.maxAge, "/", "", s.secure, true)
	return sessionID
}
