// Package web wires the HTTP surface: every route redirects or renders JSON,
// authorization failures resolve to soft redirects, and one-shot flash
// messages ride the session.
package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"clubtrack/internal/attendance"
	"clubtrack/internal/content"
	"clubtrack/internal/event"
	"clubtrack/internal/session"
	"clubtrack/internal/upload"
	"clubtrack/internal/user"
)

var httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "clubtrack_http_requests_total",
	Help: "HTTP requests by method and status.",
}, []string{"method", "status"})

// Handler holds the services behind the HTTP surface.
type Handler struct {
	sessions   *session.Manager
	users      *user.Service
	events     *event.Service
	attendance *attendance.Service
	contents   *content.Service
	uploads    *upload.Store
}

// New creates a handler.
func New(
	sessions *session.Manager,
	users *user.Service,
	events *event.Service,
	att *attendance.Service,
	contents *content.Service,
	uploads *upload.Store,
) *Handler {
	return &Handler{
		sessions:   sessions,
		users:      users,
		events:     events,
		attendance: att,
		contents:   contents,
		uploads:    uploads,
	}
}

// Register mounts all routes on the engine.
func (h *Handler) Register(r *gin.Engine) {
	r.Use(h.countRequests, h.withSession)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", h.index)
	r.GET("/login", h.loginForm)
	r.POST("/login", h.login)
	r.GET("/register", h.registerForm)
	r.POST("/register", h.register)
	r.GET("/logout", h.logout)
	r.GET("/uploads/:filename", h.serveUpload)

	authed := r.Group("", h.requireAuth)
	authed.GET("/dashboard", h.dashboard)
	authed.GET("/view_content/:event_id", h.viewContent)

	students := r.Group("", h.requireAuth, h.requireRole(user.RoleStudent))
	students.GET("/intend/:event_id/:flag", h.intend)

	teachers := r.Group("", h.requireAuth, h.requireRole(user.RoleTeacher))
	teachers.GET("/approve_users", h.approveUsers)
	teachers.GET("/approve/:user_id", h.approve)
	teachers.GET("/reject/:user_id", h.reject)
	teachers.GET("/add_event", h.addEventForm)
	teachers.POST("/add_event", h.addEvent)
	teachers.GET("/mark_presence/:event_id", h.markPresence)
	teachers.GET("/set_presence/:event_id/:user_id/:flag", h.setPresence)
	teachers.GET("/add_content/:event_id", h.addContentForm)
	teachers.POST("/add_content/:event_id", h.addContent)
	teachers.GET("/delete_content/:content_id", h.deleteContent)
	teachers.GET("/statistics", h.statistics)
}

func (h *Handler) index(c *gin.Context) {
	if h.sess(c).UserID == 0 {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

// sess returns the request session; withSession guarantees one exists.
func (h *Handler) sess(c *gin.Context) *session.Session {
	v, _ := c.Get(sessionKey)
	return v.(*session.Session)
}

// flash queues a message for the next rendered view.
func (h *Handler) flash(c *gin.Context, msg string) {
	_ = h.sessions.Flash(c.Request.Context(), h.sess(c).ID, msg)
}

// flashes drains pending messages for a view response.
func (h *Handler) flashes(c *gin.Context) []string {
	msgs, _ := h.sessions.PopFlashes(c.Request.Context(), h.sess(c).ID)
	return msgs
}

// pathID parses a numeric path parameter; ok is false when it is malformed.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// pathFlag parses a 0/1 path parameter; any nonzero integer counts as true.
func pathFlag(c *gin.Context, name string) (bool, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return false, false
	}
	return n != 0, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
