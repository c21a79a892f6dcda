package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/warbler/internal/api/middleware"
)

// Home shows the landing page to anonymous visitors and the timeline of
// followed users' messages to everyone else.
func (h *Handler) Home(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		h.render(c, http.StatusOK, "home_anon.html", gin.H{})
		return
	}
	msgs, err := h.messages.Feed(c.Request.Context(), u.ID)
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "feed failed")
		return
	}
	h.render(c, http.StatusOK, "home.html", gin.H{"Messages": msgs})
}
