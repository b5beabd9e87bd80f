package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "schoolhub/internal/domain/errors"
	pkgErrors "schoolhub/pkg/errors"
)

// respond runs an error through writeError and decodes the JSON body.
func respond(t *testing.T, err error) (int, map[string]string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, writeError(c, zap.NewNop(), err))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestWriteError(t *testing.T) {
	t.Run("validation errors are 400, not 500", func(t *testing.T) {
		for _, err := range []error{
			domainErrors.NewValidationError("unknown status filter: %s", "bogus"),
			domainErrors.NewValidationError("payment amount must be positive"),
		} {
			status, body := respond(t, err)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, pkgErrors.ErrInvalidArgument, body["code"])
			assert.Equal(t, err.Error(), body["error"])
		}
	})

	t.Run("not found", func(t *testing.T) {
		status, body := respond(t, domainErrors.ErrSubscriptionNotFound)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, pkgErrors.ErrNotFound, body["code"])
	})

	t.Run("invalid transition is a conflict", func(t *testing.T) {
		status, body := respond(t, domainErrors.NewInvalidTransitionError("suspended", "suspend"))
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, pkgErrors.ErrConflict, body["code"])
	})

	t.Run("bad credentials are 401", func(t *testing.T) {
		status, _ := respond(t, domainErrors.ErrInvalidCredentials)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("anything else is a generic 500", func(t *testing.T) {
		status, body := respond(t, assert.AnError)
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, pkgErrors.ErrInternal, body["code"])
		assert.Equal(t, "internal server error", body["error"])
	})
}
