package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/Skotchmaster/orders/internal/db"
	"github.com/Skotchmaster/orders/internal/logging"
	"github.com/Skotchmaster/orders/internal/metrics"
)

type Deps struct {
	OrderHandler *OrderHTTP
	DB           *gorm.DB
	Metrics      *metrics.ServerMetrics
	Gatherer     prometheus.Gatherer
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", d.ready)
	if d.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler(d.Gatherer)))
	}

	orders := e.Group("/orders")
	orders.GET("", d.OrderHandler.ListOrders)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.PUT("/:id", d.OrderHandler.UpdateOrder)
	orders.DELETE("/:id", d.OrderHandler.DeleteOrder)
	orders.PUT("/:id/cancel", d.OrderHandler.CancelOrder)

	orders.GET("/:id/items", d.OrderHandler.ListOrderItems)
	orders.POST("/:id/items", d.OrderHandler.CreateItem)
	orders.GET("/:id/items/:item_id", d.OrderHandler.GetItem)
	orders.PUT("/:id/items/:item_id", d.OrderHandler.UpdateItem)
	orders.DELETE("/:id/items/:item_id", d.OrderHandler.DeleteItem)

	e.GET("/items", d.OrderHandler.ListItems)

	registerUI(e)
}

func (d *Deps) ready(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "health.ready")

	if err := db.Ping(ctx, d.DB); err != nil {
		return fail(l, "ready_error", err)
	}
	return c.NoContent(http.StatusOK)
}
