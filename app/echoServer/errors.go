package echoServer

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders the error page. The underlying error text is only
// shown when dev is set.
func ErrorHandler(log *slog.Logger, dev bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := err.Error()
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(status)
			}
		}

		data := echo.Map{
			"title":   "Error",
			"message": message,
			"status":  status,
		}
		if dev {
			data["error"] = err.Error()
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.Render(status, "error", data)
		}
		if err != nil {
			log.Error("render error page", "err", err, "req_id", c.Response().Header().Get(echo.HeaderXRequestID))
		}
	}
}
