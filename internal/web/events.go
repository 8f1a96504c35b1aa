package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"clubtrack/internal/event"
)

func (h *Handler) dashboard(c *gin.Context) {
	events, err := h.events.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "flashes": h.flashes(c)})
}

func (h *Handler) addEventForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"flashes": h.flashes(c)})
}

func (h *Handler) addEvent(c *gin.Context) {
	title := c.PostForm("title")
	dateStr := c.PostForm("date")
	description := c.PostForm("description")

	_, err := h.events.Create(c.Request.Context(), title, dateStr, description)
	if err != nil {
		switch {
		case errors.Is(err, event.ErrBadDate):
			h.flash(c, "Invalid date format")
		case errors.Is(err, event.ErrMissingTitle):
			h.flash(c, "Title required")
		default:
			h.fail(c, err)
			return
		}
		c.Redirect(http.StatusFound, "/add_event")
		return
	}
	h.flash(c, "Event added")
	c.Redirect(http.StatusFound, "/dashboard")
}

// eventOr404 loads the event or flashes and redirects to the dashboard.
// The bool reports whether the caller may proceed.
func (h *Handler) eventOr404(c *gin.Context) (*event.Event, bool) {
	id, ok := pathID(c, "event_id")
	if ok {
		ev, err := h.events.Get(c.Request.Context(), id)
		if err != nil {
			h.fail(c, err)
			return nil, false
		}
		if ev != nil {
			return ev, true
		}
	}
	h.flash(c, "Event not found")
	c.Redirect(http.StatusFound, "/dashboard")
	return nil, false
}

func (h *Handler) intend(c *gin.Context) {
	ev, ok := h.eventOr404(c)
	if !ok {
		return
	}
	intending, ok := pathFlag(c, "flag")
	if !ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	if err := h.attendance.SetIntent(c.Request.Context(), h.sess(c).UserID, ev.ID, intending); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *Handler) markPresence(c *gin.Context) {
	ev, ok := h.eventOr404(c)
	if !ok {
		return
	}
	sheet, err := h.attendance.Sheet(c.Request.Context(), ev.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": ev, "sheet": sheet, "flashes": h.flashes(c)})
}

func (h *Handler) setPresence(c *gin.Context) {
	ev, ok := h.eventOr404(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	present, ok := pathFlag(c, "flag")
	if !ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	if err := h.attendance.SetPresence(c.Request.Context(), userID, ev.ID, present); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/mark_presence/%d", ev.ID))
}

func (h *Handler) statistics(c *gin.Context) {
	eventStats, studentStats, err := h.attendance.Statistics(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"event_stats":   eventStats,
		"student_stats": studentStats,
		"flashes":       h.flashes(c),
	})
}
