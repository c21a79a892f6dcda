package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/warbler/internal/api/flash"
	"github.com/d60-Lab/warbler/internal/api/middleware"
	"github.com/d60-Lab/warbler/internal/forms"
	"github.com/d60-Lab/warbler/internal/service"
)

// NewMessageForm renders the composer.
func (h *Handler) NewMessageForm(c *gin.Context) {
	h.render(c, http.StatusOK, "message_new.html", gin.H{"Form": forms.MessageForm{}})
}

// CreateMessage posts a new message owned by the session user.
func (h *Handler) CreateMessage(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	var f forms.MessageForm
	_ = c.ShouldBind(&f)
	if errs := f.Validate(); errs.Any() {
		h.render(c, http.StatusOK, "message_new.html", gin.H{"Form": f, "Errors": errs})
		return
	}

	if _, err := h.messages.Post(c.Request.Context(), u.ID, f.Text); err != nil {
		if errors.Is(err, service.ErrEmptyMessage) || errors.Is(err, service.ErrMessageTooLong) {
			errs := forms.Errors{"Text": {err.Error()}}
			h.render(c, http.StatusOK, "message_new.html", gin.H{"Form": f, "Errors": errs})
			return
		}
		c.Error(err)
		c.String(http.StatusInternalServerError, "post failed")
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", u.ID))
}

// ShowMessage renders a single message, 404 when the id does not exist.
func (h *Handler) ShowMessage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	m, err := h.messages.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		c.Error(err)
		c.String(http.StatusInternalServerError, "lookup failed")
		return
	}
	author, err := h.users.GetByID(c.Request.Context(), m.UserID)
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "lookup failed")
		return
	}
	h.render(c, http.StatusOK, "message_show.html", gin.H{"Message": m, "Author": author})
}

// DeleteMessage removes a message. Only the owner may delete it.
func (h *Handler) DeleteMessage(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	if err := h.messages.Delete(c.Request.Context(), u.ID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			h.notFound(c)
		case errors.Is(err, service.ErrNotOwner):
			flash.Set(c, "danger", "Access unauthorized.")
			c.Redirect(http.StatusFound, "/")
		default:
			c.Error(err)
			c.String(http.StatusInternalServerError, "delete failed")
		}
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", u.ID))
}

// LikeMessage adds the session user's like and returns to the referring
// page.
func (h *Handler) LikeMessage(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	if err := h.messages.Like(c.Request.Context(), u.ID, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		c.Error(err)
		c.String(http.StatusInternalServerError, "like failed")
		return
	}
	redirectBack(c)
}

// UnlikeMessage removes the session user's like and returns to the
// referring page.
func (h *Handler) UnlikeMessage(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	if err := h.messages.Unlike(c.Request.Context(), u.ID, id); err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "unlike failed")
		return
	}
	redirectBack(c)
}
