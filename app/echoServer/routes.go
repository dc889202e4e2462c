package echoServer

import (
	"context"
	"net/http"

	"locallibrary/app/echoServer/controller/bookinstance"
	"locallibrary/app/echoServer/controller/catalog"

	"github.com/labstack/echo/v4"
)

type C struct {
	Catalog      *catalog.Controller
	BookInstance *bookinstance.Controller

	// Ping reports store health for /health.
	Ping func(ctx context.Context) error
}

func Register(e *echo.Echo, c C) {
	e.GET("/", func(ctx echo.Context) error {
		return ctx.Redirect(http.StatusFound, "/catalog")
	})
	e.GET("/health", health(c.Ping))
	e.GET("/metrics", echo.WrapHandler(MetricsHandler()))

	cat := e.Group("/catalog")
	cat.GET("", c.Catalog.Index)

	// Book instances
	cat.GET("/bookinstances", c.BookInstance.List)
	cat.GET("/bookinstance/create", c.BookInstance.CreateForm)
	cat.POST("/bookinstance/create", c.BookInstance.Create)
	cat.GET("/bookinstance/:id", c.BookInstance.Detail)
	cat.GET("/bookinstance/:id/delete", c.BookInstance.DeleteForm)
	cat.POST("/bookinstance/:id/delete", c.BookInstance.Delete)
	cat.GET("/bookinstance/:id/update", c.BookInstance.UpdateForm)
	cat.POST("/bookinstance/:id/update", c.BookInstance.Update)
}

func health(ping func(ctx context.Context) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ping != nil {
			if err := ping(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, echo.Map{
					"status":  "unavailable",
					"message": err.Error(),
				})
			}
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	}
}
