package utils

import (
	"stickynotes/cmd/internal/utils/apierror"
	"stickynotes/cmd/internal/utils/tokens"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// IdentityKey is the echo context key the auth middleware stores the
// verified identity under.
const IdentityKey = "identity"

func GetIdentityFromContext(c echo.Context) (*tokens.Identity, apierror.ErrorResponse) {
	val := c.Get(IdentityKey)
	if val == nil {
		log.Warnf("route %s attempted to read nil identity from context", c.Request().URL)
		return nil, apierror.UnauthorizedError
	}

	identity, ok := val.(*tokens.Identity)
	if !ok {
		log.Warnf("expected identity type at '%s' context key, got %T", IdentityKey, val)
		return nil, apierror.InternalServerError
	}
	return identity, nil
}
