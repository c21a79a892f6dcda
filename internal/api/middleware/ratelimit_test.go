package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func limitedEngine(l *LoginLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", l.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/login", l.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestLoginLimiterBurstThenReject(t *testing.T) {
	r := limitedEngine(NewLoginLimiter(0.0001, 3))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestLoginLimiterGetUnaffected(t *testing.T) {
	r := limitedEngine(NewLoginLimiter(0.0001, 1))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// POST budget is spent, GET still works
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestLoginLimiterPerIP(t *testing.T) {
	r := limitedEngine(NewLoginLimiter(0.0001, 1))

	reqA := httptest.NewRequest(http.MethodPost, "/login", nil)
	reqA.RemoteAddr = "10.0.0.1:1234"
	reqB := httptest.NewRequest(http.MethodPost, "/login", nil)
	reqB.RemoteAddr = "10.0.0.2:1234"

	w := httptest.NewRecorder()
	r.ServeHTTP(w, reqA)
	assert.Equal(t, http.StatusOK, w.Code)

	// a different client has its own budget
	w = httptest.NewRecorder()
	r.ServeHTTP(w, reqB)
	assert.Equal(t, http.StatusOK, w.Code)
}
