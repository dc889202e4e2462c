package catalog

import (
	"log/slog"
	"net/http"

	catalogsvc "locallibrary/service/catalog"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc catalogsvc.Service
	Log *slog.Logger
}

// GET /catalog
func (h *Controller) Index(c echo.Context) error {
	counts, err := h.Svc.Counts(c.Request().Context())
	if err != nil {
		h.Log.Error("catalog counts", "err", err)
		return err
	}
	return c.Render(http.StatusOK, "catalog_index", echo.Map{
		"title": "Local Library Home",
		"data":  counts,
	})
}
