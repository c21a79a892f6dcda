package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/warbler/internal/api/flash"
	"github.com/d60-Lab/warbler/internal/api/middleware"
	"github.com/d60-Lab/warbler/internal/auth"
	"github.com/d60-Lab/warbler/internal/forms"
	"github.com/d60-Lab/warbler/internal/service"
)

// Handler owns every route of the application.
type Handler struct {
	users     service.UserService
	messages  service.MessageService
	relations service.RelationshipService
	sessions  *auth.SessionManager
}

func New(users service.UserService, messages service.MessageService, relations service.RelationshipService, sessions *auth.SessionManager) *Handler {
	return &Handler{users: users, messages: messages, relations: relations, sessions: sessions}
}

// render fills in the data every page expects (identity, flashes) and
// executes the named template.
func (h *Handler) render(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if u, ok := middleware.CurrentUser(c); ok {
		data["CurrentUser"] = u
	}
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = forms.Errors{}
	}
	data["Flashes"] = flash.Take(c)
	c.HTML(code, name, data)
}

func (h *Handler) notFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "404.html", gin.H{})
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// redirectBack sends the client to the page the action came from.
func redirectBack(c *gin.Context) {
	ref := c.Request.Referer()
	if ref == "" {
		ref = "/"
	}
	c.Redirect(http.StatusFound, ref)
}
