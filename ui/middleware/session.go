package middleware

import (
	"log"
	"net/http"
	"time"

	"occustats/internal/errors"
	"occustats/internal/session"

	"github.com/gin-gonic/gin"
)

// CookieName carries the session id
const CookieName = "occustats_session"

const sessionKey = "occustats.session"

// Session attaches the caller's session to the request, starting a new one
// when the cookie is missing, unknown or expired.
func Session(store *session.Store, ttl time.Duration) gin.HandlerFunc {
	maxAge := int(ttl / time.Second)
	return func(c *gin.Context) {
		raw, _ := c.Cookie(CookieName)

		sess, created, err := store.GetOrCreate(c.Request.Context(), raw)
		if err != nil {
			log.Printf("[Session] Failed to start session: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": err.Error(),
				"code":  errors.GetCode(err),
			})
			return
		}

		if created {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CookieName, sess.ID.String(), maxAge, "/", "", false, true)
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session set by Session, or nil
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}
