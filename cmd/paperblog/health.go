package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/paperblog"
)

// healthRoutes adds /healthz, which answers 503 while the database is unreachable.
func healthRoutes(a *paperblog.App) {
	a.Echo.GET("/healthz", func(c echo.Context) error {
		if err := a.Store.Ping(c.Request().Context()); err != nil {
			return c.String(http.StatusServiceUnavailable, "database unavailable")
		}
		return c.String(http.StatusOK, "ok")
	})
}
