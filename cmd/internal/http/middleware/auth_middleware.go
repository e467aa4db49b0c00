package middleware

import (
	"net/http"
	"stickynotes/cmd/internal/utils"
	"stickynotes/cmd/internal/utils/apierror"
	"stickynotes/cmd/internal/utils/tokens"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type TokenVerifier interface {
	Verify(raw string) (*tokens.Identity, error)
}

type AuthMiddlewareConfig struct {
	Verifier TokenVerifier
}

// NewAuthMiddleware rejects the request with 401 unless it carries a valid
// bearer token. Nothing downstream runs for a rejected request.
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			identity, err := cfg.Verifier.Verify(header)
			if err != nil {
				log.Debugf("rejected %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			c.Set(utils.IdentityKey, identity)
			return next(c)
		}
	}
}
