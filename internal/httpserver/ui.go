package httpserver

import (
	"embed"

	"github.com/labstack/echo/v4"
)

//go:embed static
var staticFiles embed.FS

// registerUI serves the browser client at / from the embedded static dir.
func registerUI(e *echo.Echo) {
	e.StaticFS("/", echo.MustSubFS(staticFiles, "static"))
}
