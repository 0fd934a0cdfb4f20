package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/chamba-match/internal/services"
)

// SessionHeader identifies the caller's session on every request.
const SessionHeader = "X-Session-ID"

const sessionKey = "session"

// SessionMiddleware resolves the X-Session-ID header. Requests without a
// known session see an anonymous one with default preferences; it is only
// stored once a handler needs to write to it (see ensureSession).
func SessionMiddleware(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := sessions.Get(c.GetHeader(SessionHeader))
		if err != nil {
			sess = services.AnonymousSession()
		} else {
			c.Header(SessionHeader, sess.ID)
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// ensureSession returns the current session, storing a new anonymous one
// first if the request has none. The new id is echoed in the header.
func ensureSession(c *gin.Context, sessions *services.SessionService) services.Session {
	sess := currentSession(c)
	if sess.ID != "" {
		return sess
	}
	sess = sessions.Create(nil)
	c.Header(SessionHeader, sess.ID)
	c.Set(sessionKey, sess)
	return sess
}

// bindOptionalJSON binds a body that may be missing. An empty body leaves
// obj untouched.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// RequireAdmin rejects sessions without the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentSession(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) services.Session {
	v, _ := c.Get(sessionKey)
	sess, _ := v.(services.Session)
	return sess
}

// ownerKey is who saved jobs and read notifications belong to: the user's
// email, or the session itself for anonymous users. Empty when the request
// has no stored session.
func ownerKey(sess services.Session) string {
	if sess.Email != "" {
		return sess.Email
	}
	if sess.ID == "" {
		return ""
	}
	return "session:" + sess.ID
}

// sessionError answers for errors coming from SessionService.
func sessionError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrSessionNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
