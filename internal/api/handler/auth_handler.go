package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/warbler/internal/api/flash"
	"github.com/d60-Lab/warbler/internal/api/middleware"
	"github.com/d60-Lab/warbler/internal/forms"
	"github.com/d60-Lab/warbler/internal/service"
	"github.com/d60-Lab/warbler/pkg/logger"
)

// SignupForm renders the registration page.
func (h *Handler) SignupForm(c *gin.Context) {
	h.render(c, http.StatusOK, "signup.html", gin.H{"Form": forms.SignupForm{}})
}

// Signup creates the account, logs the new user in and sends them home.
// A username or email collision re-shows the form.
func (h *Handler) Signup(c *gin.Context) {
	var f forms.SignupForm
	_ = c.ShouldBind(&f)
	if errs := f.Validate(); errs.Any() {
		h.render(c, http.StatusOK, "signup.html", gin.H{"Form": f, "Errors": errs})
		return
	}

	u, err := h.users.Signup(c.Request.Context(), f.Username, f.Email, f.Password, f.ImageURL)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) || errors.Is(err, service.ErrEmailTaken) {
			flash.Set(c, "danger", "Username already taken")
			h.render(c, http.StatusOK, "signup.html", gin.H{"Form": f})
			return
		}
		c.Error(err)
		c.String(http.StatusInternalServerError, "signup failed")
		return
	}

	if err := middleware.SetSessionCookie(c, h.sessions, u.ID); err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "signup failed")
		return
	}
	logger.Info("user signed up", zap.Int64("user_id", u.ID), zap.String("username", u.Username))
	c.Redirect(http.StatusFound, "/")
}

// LoginForm renders the login page.
func (h *Handler) LoginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{"Form": forms.LoginForm{}})
}

// Login authenticates and starts a session. The failure message never says
// whether the username or the password was wrong.
func (h *Handler) Login(c *gin.Context) {
	var f forms.LoginForm
	_ = c.ShouldBind(&f)
	if errs := f.Validate(); errs.Any() {
		h.render(c, http.StatusOK, "login.html", gin.H{"Form": f, "Errors": errs})
		return
	}

	u, err := h.users.Authenticate(c.Request.Context(), f.Username, f.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLogin) {
			flash.Set(c, "danger", "Invalid credentials.")
			h.render(c, http.StatusOK, "login.html", gin.H{"Form": f})
			return
		}
		c.Error(err)
		c.String(http.StatusInternalServerError, "login failed")
		return
	}

	if err := middleware.SetSessionCookie(c, h.sessions, u.ID); err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "login failed")
		return
	}
	flash.Set(c, "success", "Hello, "+u.Username+"!")
	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session. Already-anonymous clients just get the
// redirect.
func (h *Handler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	flash.Set(c, "success", "Logged Out Successfully")
	c.Redirect(http.StatusFound, "/login")
}
