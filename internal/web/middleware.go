package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"clubtrack/internal/session"
)

const sessionKey = "session"

// countRequests records every request in the prometheus counter.
func (h *Handler) countRequests(c *gin.Context) {
	c.Next()
	httpRequests.WithLabelValues(c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
}

// withSession resolves the session cookie, starting an anonymous session when
// none exists so flashes work before login.
func (h *Handler) withSession(c *gin.Context) {
	ctx := c.Request.Context()
	if token, err := c.Cookie(session.CookieName); err == nil {
		sess, err := h.sessions.Resolve(ctx, token)
		if err == nil {
			c.Set(sessionKey, sess)
			c.Next()
			return
		}
		if !errors.Is(err, session.ErrNoSession) {
			log.Error().Err(err).Msg("session lookup failed")
		}
	}
	token, err := h.sessions.Start(ctx, session.Identity{})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.setCookie(c, token)
	sess, err := h.sessions.Resolve(ctx, token)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set(sessionKey, sess)
	c.Next()
}

// requireAuth redirects anonymous sessions to the login page.
func (h *Handler) requireAuth(c *gin.Context) {
	if h.sess(c).UserID == 0 {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}
	c.Next()
}

// requireRole is a soft gate: a role mismatch bounces to the dashboard
// rather than surfacing an error.
func (h *Handler) requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.sess(c).Role != role {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (h *Handler) setCookie(c *gin.Context, token string) {
	c.SetCookie(session.CookieName, token, int(h.sessions.TTL().Seconds()), "/", "", false, true)
}

func (h *Handler) clearCookie(c *gin.Context) {
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
}
