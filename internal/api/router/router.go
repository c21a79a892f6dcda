package router

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/warbler/internal/api/handler"
	"github.com/d60-Lab/warbler/internal/api/middleware"
	"github.com/d60-Lab/warbler/internal/auth"
	"github.com/d60-Lab/warbler/internal/config"
	"github.com/d60-Lab/warbler/internal/service"
)

// New builds the gin engine with the full middleware chain and route
// table.
func New(cfg config.Config, h *handler.Handler, sessions *auth.SessionManager, users service.UserService) *gin.Engine {
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.SentryDSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.OTLPEndpoint != "" {
		r.Use(otelgin.Middleware("warbler"))
	}
	r.Use(middleware.RequestLog())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.NoStore())
	r.Use(middleware.Session(sessions, users))

	r.LoadHTMLGlob(cfg.TemplateGlob)
	r.Static("/static", cfg.StaticDir)

	Register(r, h)
	return r
}

// Register attaches every route to r. Split out from New so tests can
// mount the handlers on a bare engine.
func Register(r *gin.Engine, h *handler.Handler) {
	limiter := middleware.NewLoginLimiter(0, 0)

	r.GET("/", h.Home)

	r.GET("/signup", h.SignupForm)
	r.POST("/signup", limiter.Middleware(), h.Signup)
	r.GET("/login", h.LoginForm)
	r.POST("/login", limiter.Middleware(), h.Login)
	r.GET("/logout", h.Logout)

	users := r.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.GET("/:id", h.ShowUser)
		users.GET("/:id/liked", h.ShowLiked)

		authed := users.Group("", middleware.RequireAuth())
		authed.GET("/:id/following", h.ShowFollowing)
		authed.GET("/:id/followers", h.ShowFollowers)
		authed.POST("/follow/:id", h.Follow)
		authed.POST("/stop-following/:id", h.Unfollow)
		authed.GET("/profile", h.EditProfileForm)
		authed.POST("/profile", h.EditProfile)
		authed.POST("/delete", h.DeleteUser)
	}

	messages := r.Group("/messages")
	{
		messages.GET("/:id", h.ShowMessage)

		authed := messages.Group("", middleware.RequireAuth())
		authed.GET("/new", h.NewMessageForm)
		authed.POST("/new", h.CreateMessage)
		authed.POST("/:id/delete", h.DeleteMessage)
		authed.POST("/:id/like", h.LikeMessage)
		authed.POST("/:id/unlike", h.UnlikeMessage)
	}
}
