package middleware

import (
	"net/http"
	"net/http/httptest"
	"stickynotes/cmd/internal/utils"
	"stickynotes/cmd/internal/utils/tokens"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := NewAuthMiddleware(&AuthMiddlewareConfig{Verifier: tokens.NewVerifier(testSecret)})
	err := mw(func(c echo.Context) error {
		called = true
		identity, apierr := utils.GetIdentityFromContext(c)
		require.Nil(t, apierr)
		return c.String(http.StatusOK, identity.Subject)
	})(c)
	require.NoError(t, err)
	return rec, called
}

func TestAuthMiddleware(t *testing.T) {
	valid, err := tokens.NewIssuer(testSecret, time.Hour).Issue(5, "user")
	require.NoError(t, err)
	expired, err := tokens.NewIssuer(testSecret, -time.Minute).Issue(5, "user")
	require.NoError(t, err)
	forged, err := tokens.NewIssuer("other-secret", time.Hour).Issue(5, "user")
	require.NoError(t, err)

	t.Run("valid token reaches the handler", func(t *testing.T) {
		rec, called := runAuth(t, "Bearer "+valid)
		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "5", rec.Body.String())
	})

	for name, header := range map[string]string{
		"missing":   "",
		"malformed": "Bearer nope",
		"expired":   "Bearer " + expired,
		"forged":    "Bearer " + forged,
	} {
		t.Run(name+" token is rejected", func(t *testing.T) {
			rec, called := runAuth(t, header)
			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"message":"Invalid or missing authentication token"}`, rec.Body.String())
		})
	}
}

func TestErrorHandlerHidesInternals(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.GET("/boom", func(c echo.Context) error {
		return assert.AnError
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Not Found"}`, rec.Body.String())
}
