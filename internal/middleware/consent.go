package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nutrifarma/advisor-api/internal/session"
	"github.com/nutrifarma/advisor-api/pkg/token"
)

// ContextSession is the gin context key holding the resolved session.
const ContextSession = "session"

// ConsentMiddleware guards every data route: no patient data moves in
// or out without the token issued by the consent endpoint.
type ConsentMiddleware struct {
	tokens   *token.Service
	sessions *session.Store
}

func NewConsentMiddleware(tokens *token.Service, sessions *session.Store) *ConsentMiddleware {
	return &ConsentMiddleware{tokens: tokens, sessions: sessions}
}

// RequireSession verifies the bearer token, resolves the live session
// and attaches it to the context.
func (m *ConsentMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Code:    http.StatusForbidden,
				Message: "consent required: no session token",
			})
			return
		}

		sessionID, err := m.tokens.Verify(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Code:    http.StatusForbidden,
				Message: "invalid or expired session token",
			})
			return
		}

		sess, err := m.sessions.Get(sessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Code:    http.StatusForbidden,
				Message: "session expired",
			})
			return
		}

		c.Set(ContextSession, sess)
		c.Next()
	}
}

// SessionFrom retrieves the session attached by RequireSession.
func SessionFrom(c *gin.Context) *session.Session {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil
	}
	return v.(*session.Session)
}
