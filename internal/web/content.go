package web

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"clubtrack/internal/content"
)

func (h *Handler) addContentForm(c *gin.Context) {
	ev, ok := h.eventOr404(c)
	if !ok {
		return
	}
	students, err := h.users.ApprovedStudents(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": ev, "students": students, "flashes": h.flashes(c)})
}

func (h *Handler) addContent(c *gin.Context) {
	ev, ok := h.eventOr404(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.flash(c, "Invalid form submission")
		c.Redirect(http.StatusFound, fmt.Sprintf("/add_content/%d", ev.ID))
		return
	}
	description := c.PostForm("description")
	text := c.PostForm("content")

	var uploads []content.Upload
	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, fh := range form.File["files"] {
		if fh.Filename == "" || fh.Size == 0 {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			h.fail(c, err)
			return
		}
		opened = append(opened, f)
		uploads = append(uploads, content.Upload{Name: fh.Filename, Data: f})
	}

	var accessIDs []int64
	for _, raw := range form.Value["access"] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Warn().Str("value", raw).Msg("skipping malformed access user id")
			continue
		}
		accessIDs = append(accessIDs, id)
	}

	if _, err := h.contents.Publish(c.Request.Context(), ev.ID, description, text, uploads, accessIDs); err != nil {
		h.fail(c, err)
		return
	}
	h.flash(c, "Content added")
	c.Redirect(http.StatusFound, fmt.Sprintf("/view_content/%d", ev.ID))
}

func (h *Handler) viewContent(c *gin.Context) {
	ev, ok := h.eventOr404(c)
	if !ok {
		return
	}
	sess := h.sess(c)
	visible, err := h.contents.View(c.Request.Context(), ev.ID, sess.UserID, sess.Role)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": ev, "contents": visible, "flashes": h.flashes(c)})
}

func (h *Handler) deleteContent(c *gin.Context) {
	id, ok := pathID(c, "content_id")
	if !ok {
		h.flash(c, "Content not found")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	eventID, err := h.contents.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			h.flash(c, "Content not found")
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}
		h.fail(c, err)
		return
	}
	h.flash(c, "Content deleted")
	c.Redirect(http.StatusFound, fmt.Sprintf("/view_content/%d", eventID))
}

func (h *Handler) serveUpload(c *gin.Context) {
	path, err := h.uploads.Path(c.Param("filename"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.File(path)
}
