package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"clubtrack/internal/session"
	"clubtrack/internal/user"
)

func (h *Handler) loginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"flashes": h.flashes(c)})
}

func (h *Handler) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	u, err := h.users.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidLogin) {
			h.flash(c, "Invalid credentials or unapproved account")
			c.Redirect(http.StatusFound, "/login")
			return
		}
		h.fail(c, err)
		return
	}

	token, err := h.sessions.Promote(c.Request.Context(), h.sess(c), session.Identity{UserID: u.ID, Role: u.Role})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.setCookie(c, token)
	log.Info().Str("username", u.Username).Str("role", u.Role).Msg("login")
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *Handler) registerForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"flashes": h.flashes(c)})
}

func (h *Handler) register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	_, err := h.users.Register(c.Request.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUsernameTaken):
			h.flash(c, "Username already taken")
		case errors.Is(err, user.ErrMissingCredentials):
			h.flash(c, "Username and password required")
		default:
			h.fail(c, err)
			return
		}
		c.Redirect(http.StatusFound, "/register")
		return
	}
	h.flash(c, "Registration successful. Await approval.")
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) logout(c *gin.Context) {
	if token, err := c.Cookie(session.CookieName); err == nil {
		_ = h.sessions.End(c.Request.Context(), token)
	}
	h.clearCookie(c)
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) approveUsers(c *gin.Context) {
	pending, err := h.users.Pending(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending, "flashes": h.flashes(c)})
}

func (h *Handler) approve(c *gin.Context) {
	id, ok := pathID(c, "user_id")
	if !ok {
		h.flash(c, "User not found")
		c.Redirect(http.StatusFound, "/approve_users")
		return
	}
	if err := h.users.Approve(c.Request.Context(), id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			h.flash(c, "User not found")
		} else {
			h.fail(c, err)
			return
		}
	}
	c.Redirect(http.StatusFound, "/approve_users")
}

func (h *Handler) reject(c *gin.Context) {
	id, ok := pathID(c, "user_id")
	if !ok {
		h.flash(c, "User not found")
		c.Redirect(http.StatusFound, "/approve_users")
		return
	}
	if err := h.users.Reject(c.Request.Context(), id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			h.flash(c, "User not found")
		} else {
			h.fail(c, err)
			return
		}
	}
	c.Redirect(http.StatusFound, "/approve_users")
}
