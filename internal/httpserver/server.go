package httpserver

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	loggingmw "github.com/Skotchmaster/orders/internal/middleware/logging"
)

// New builds the echo instance with its middleware chain and all routes.
func New(logger *slog.Logger, d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(loggingmw.RequestLogger(logger))
	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware)
	}

	Register(e, d)
	return e
}
