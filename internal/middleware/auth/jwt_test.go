package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func newMiddleware(t *testing.T, skipPaths ...string) echo.MiddlewareFunc {
	t.Helper()
	return JWTMiddleware(JWTConfig{
		Secret:    testSecret,
		Logger:    zap.NewNop(),
		SkipPaths: skipPaths,
	})
}

func doRequest(mw echo.MiddlewareFunc, path, authHeader string) (*httptest.ResponseRecorder, *AuthUser) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *AuthUser
	handler := mw(func(c echo.Context) error {
		got, _ = GetUserFromContext(c)
		return c.NoContent(http.StatusOK)
	})
	_ = handler(c)
	return rec, got
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	staffID := uuid.New()
	schoolID := uuid.New()

	token, expiresAt, err := GenerateToken(testSecret, staffID, schoolID, "admin@school.test", "admin", time.Hour)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	rec, user := doRequest(newMiddleware(t), "/api/v1/schools", "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, user)
	assert.Equal(t, staffID, user.StaffID)
	assert.Equal(t, schoolID, user.SchoolID)
	assert.Equal(t, "admin", user.Role)
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	rec, _ := doRequest(newMiddleware(t), "/api/v1/schools", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_AUTH_HEADER")
}

func TestJWTMiddleware_MalformedHeader(t *testing.T) {
	rec, _ := doRequest(newMiddleware(t), "/api/v1/schools", "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_AUTH_FORMAT")
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	token, _, err := GenerateToken(testSecret, uuid.New(), uuid.New(), "a@b.test", "teacher", -time.Minute)
	require.NoError(t, err)

	rec, _ := doRequest(newMiddleware(t), "/api/v1/schools", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
}

func TestJWTMiddleware_WrongSecret(t *testing.T) {
	token, _, err := GenerateToken("other-secret", uuid.New(), uuid.New(), "a@b.test", "teacher", time.Hour)
	require.NoError(t, err)

	rec, _ := doRequest(newMiddleware(t), "/api/v1/schools", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddleware_SkipPaths(t *testing.T) {
	rec, _ := doRequest(newMiddleware(t, "/health", "/api/v1/auth"), "/api/v1/auth/login", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	token, _, err := GenerateToken(testSecret, uuid.New(), uuid.New(), "b@school.test", "bursar", time.Hour)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/billing/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := newMiddleware(t)(func(c echo.Context) error {
		_, err := RequireRole(c, "admin", "bursar")
		assert.NoError(t, err)

		_, err = RequireRole(c, "admin")
		assert.Error(t, err)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
}
