package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/warbler/internal/api/flash"
	"github.com/d60-Lab/warbler/internal/auth"
	"github.com/d60-Lab/warbler/internal/model"
	"github.com/d60-Lab/warbler/internal/service"
)

// SessionCookie is the name of the signed session token cookie.
const SessionCookie = "warbler_session"

const currentUserKey = "currentUser"

// Session resolves the request identity from the session cookie and stores
// the loaded User in the gin context. A missing, invalid or expired token,
// or a token naming a user that no longer exists, leaves the request
// anonymous.
func Session(sessions *auth.SessionManager, users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err == nil && token != "" {
			if uid, perr := sessions.Parse(token); perr == nil {
				if u, gerr := users.GetByID(c.Request.Context(), uid); gerr == nil {
					c.Set(currentUserKey, u)
				}
			}
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user for this request, if any.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*model.User)
	return u, ok && u != nil
}

// RequireAuth guards protected routes: anonymous requests get the
// unauthorized flash and a redirect home.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			flash.Set(c, "danger", "Access unauthorized.")
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SetSessionCookie issues the signed token for userID and attaches it.
// Lax so top-level redirects after cross-site form posts still carry it.
func SetSessionCookie(c *gin.Context, sessions *auth.SessionManager, userID int64) error {
	token, err := sessions.Issue(userID)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(sessions.Lifetime().Seconds()), "/", "", false, true)
	return nil
}

// ClearSessionCookie logs the client out. No-op for anonymous clients.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}
