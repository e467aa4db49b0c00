package middleware

import (
	"errors"
	"net/http"
	"stickynotes/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// ErrorHandler renders framework errors (unknown route, body limit, panics
// caught by Recover) with the same body as every other API error. Internal
// errors are logged and never sent back.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var resp *apierror.APIError
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		resp = apierror.NewSimple(he.Code, http.StatusText(he.Code))
	} else {
		log.Errorf("unhandled error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		resp = apierror.InternalServerError
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(resp.Code())
	} else {
		werr = c.JSON(resp.Code(), resp)
	}

	if werr != nil {
		log.Errorf("failed to write error response: %v", werr)
	}
}
