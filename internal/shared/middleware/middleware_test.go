package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/internal/shared/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:       "test-secret",
			JWTExpiresIn: 15 * time.Minute,
		},
	}
}

func signToken(t *testing.T, secret, tokenType string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": "8d5a9c62-1f0c-4f8a-9a5e-1f2b3c4d5e6f",
		"email":   "alex@example.com",
		"type":    tokenType,
		"exp":     time.Now().Add(expiresIn).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newAuthRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuthWithConfig(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":    c.GetString("user_id"),
			"user_email": c.GetString("user_email"),
		})
	})
	r.GET("/optional", OptionalAuthWithConfig(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return r
}

func doRequest(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMissingHeader(t *testing.T) {
	r := newAuthRouter(testConfig())

	w := doRequest(r, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header is required")
}

func TestJWTAuthBadFormat(t *testing.T) {
	cfg := testConfig()
	r := newAuthRouter(cfg)
	token := signToken(t, cfg.JWT.Secret, "access", time.Minute)

	for _, header := range []string{"Basic abc123", token} {
		w := doRequest(r, "/protected", header)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Bearer")
	}
}

func TestJWTAuthInvalidToken(t *testing.T) {
	r := newAuthRouter(testConfig())

	w := doRequest(r, "/protected", "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")
}

func TestJWTAuthWrongSecret(t *testing.T) {
	r := newAuthRouter(testConfig())
	token := signToken(t, "some-other-secret", "access", time.Minute)

	w := doRequest(r, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	cfg := testConfig()
	r := newAuthRouter(cfg)
	token := signToken(t, cfg.JWT.Secret, "access", -time.Minute)

	w := doRequest(r, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")
}

func TestJWTAuthRejectsRefreshToken(t *testing.T) {
	cfg := testConfig()
	r := newAuthRouter(cfg)
	token := signToken(t, cfg.JWT.Secret, "refresh", time.Minute)

	w := doRequest(r, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthValidToken(t *testing.T) {
	cfg := testConfig()
	r := newAuthRouter(cfg)
	token := signToken(t, cfg.JWT.Secret, "access", time.Minute)

	w := doRequest(r, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "8d5a9c62-1f0c-4f8a-9a5e-1f2b3c4d5e6f")
	assert.Contains(t, w.Body.String(), "alex@example.com")
}

func TestOptionalAuth(t *testing.T) {
	cfg := testConfig()
	r := newAuthRouter(cfg)

	// No header still reaches the handler
	w := doRequest(r, "/optional", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// A bad token is ignored rather than rejected
	w = doRequest(r, "/optional", "Bearer garbage")
	assert.Equal(t, http.StatusOK, w.Code)

	// A good token populates the identity
	token := signToken(t, cfg.JWT.Secret, "access", time.Minute)
	w = doRequest(r, "/optional", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "8d5a9c62-1f0c-4f8a-9a5e-1f2b3c4d5e6f")
}
