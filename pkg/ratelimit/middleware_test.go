package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetRateLimitType(t *testing.T) {
	tests := []struct {
		path string
		want RateLimitType
	}{
		{"/health", RateLimitTypeHealth},
		{"/ping", RateLimitTypeHealth},
		{"/api/v1/auth/login", RateLimitTypeAuth},
		{"/api/v1/auth/register", RateLimitTypeAuth},
		{"/api/v1/shop/orders", RateLimitTypeOrder},
		{"/api/v1/shop/orders/123/cancel", RateLimitTypeOrder},
		{"/api/v1/shop/products", RateLimitTypePublic},
		{"/api/v1/feed", RateLimitTypeFeed},
		{"/api/v1/feed/posts/123/like", RateLimitTypeFeed},
		{"/api/v1/users/profile", RateLimitTypeUser},
		{"/api/v1/workouts", RateLimitTypeUser},
		{"/api/v1/nutrition/meals", RateLimitTypeUser},
		{"/api/v1/habits", RateLimitTypeUser},
		{"/swagger/index.html", RateLimitTypeDefault},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, getRateLimitType(tt.path))
		})
	}
}

func testContext(remoteAddr string, headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = remoteAddr
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestGetClientIP(t *testing.T) {
	c := testContext("10.0.0.1:39822", nil)
	assert.Equal(t, "10.0.0.1", getClientIP(c))

	// First hop of X-Forwarded-For wins
	c = testContext("10.0.0.1:39822", map[string]string{
		"X-Forwarded-For": "203.0.113.7, 70.41.3.18",
	})
	assert.Equal(t, "203.0.113.7", getClientIP(c))

	c = testContext("10.0.0.1:39822", map[string]string{
		"X-Real-IP": "203.0.113.9",
	})
	assert.Equal(t, "203.0.113.9", getClientIP(c))

	// Garbage forwarded headers fall back to the socket address
	c = testContext("10.0.0.1:39822", map[string]string{
		"X-Forwarded-For": "not-an-ip",
	})
	assert.Equal(t, "10.0.0.1", getClientIP(c))
}
