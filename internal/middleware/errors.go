package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// StatusOf returns the status a handler error will be rendered with. Handlers
// that write their own response return nil, so the committed status wins.
func StatusOf(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

// ErrorHandler renders every error that reaches Echo as {"error": msg}.
// Internal errors are logged and answered with a generic message.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := StatusOf(c, err)
	msg := http.StatusText(status)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if s, ok := he.Message.(string); ok && s != "" {
			msg = s
		}
		if he.Internal != nil {
			err = he.Internal
		}
	}

	logger := GetLogger(c)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Str("path", c.Path()).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, map[string]string{"error": msg})
}
