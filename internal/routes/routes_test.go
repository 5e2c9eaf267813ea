package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
)

func limitedEngine(t *testing.T, trusted []string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r, err := NewEngine(trusted)
	require.NoError(t, err)
	r.Use(middleware.NewRateLimiter(nil, 0.001, 2).Handler())
	r.POST("/api/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func login(r *gin.Engine, remote, forwarded string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = remote + ":4321"
	req.Header.Set("X-Forwarded-For", forwarded)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestNewEngine_ForwardedForCannotResetLimiter(t *testing.T) {
	r := limitedEngine(t, nil)

	var codes []int
	for _, xff := range []string{"1.2.3.1", "1.2.3.2", "1.2.3.3", "1.2.3.4"} {
		codes = append(codes, login(r, "203.0.113.9", xff))
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestNewEngine_TrustedProxyForwardsClientIP(t *testing.T) {
	r := limitedEngine(t, []string{"10.0.0.1"})

	for _, xff := range []string{"1.2.3.1", "1.2.3.2", "1.2.3.3"} {
		assert.Equal(t, http.StatusOK, login(r, "10.0.0.1", xff), xff)
	}
	assert.Equal(t, http.StatusOK, login(r, "10.0.0.1", "1.2.3.1"))
	assert.Equal(t, http.StatusTooManyRequests, login(r, "10.0.0.1", "1.2.3.1"))
}

func TestNewEngine_RejectsBadProxyList(t *testing.T) {
	_, err := NewEngine([]string{"not-an-ip"})
	assert.Error(t, err)
}
