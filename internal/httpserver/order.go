package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/orders/internal/logging"
	"github.com/Skotchmaster/orders/internal/models"
	"github.com/Skotchmaster/orders/internal/service"
	"github.com/Skotchmaster/orders/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func serializeOrders(orders []models.Order) []map[string]any {
	out := make([]map[string]any, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Serialize())
	}
	return out
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	var q transport.ListOrdersQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		l.Warn("list_orders_error", "status", 400, "reason", "invalid query", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	orders, err := h.Svc.ListOrders(ctx, q)
	if err != nil {
		return fail(l, "list_orders_error", err)
	}

	l.Info("list_orders_success", "count", len(orders), "status_filter", q.Status, "customer_filter", q.CustomerID)
	return c.JSON(http.StatusOK, serializeOrders(orders))
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	payload, err := decodePayload(c, "Order")
	if err != nil {
		return fail(l, "create_order_error", err)
	}

	order, err := h.Svc.CreateOrder(ctx, payload)
	if err != nil {
		return fail(l, "create_order_error", err)
	}

	l.Info("create_order_success", "order_id", order.ID)
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/orders/%d", order.ID))
	return c.JSON(http.StatusCreated, order.Serialize())
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "get_order_error", err)
	}

	order, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		return fail(l, "get_order_error", err)
	}

	return c.JSON(http.StatusOK, order.Serialize())
}

func (h *OrderHTTP) UpdateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_order")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "update_order_error", err)
	}
	payload, err := decodePayload(c, "Order")
	if err != nil {
		return fail(l, "update_order_error", err)
	}

	order, err := h.Svc.UpdateOrder(ctx, id, payload)
	if err != nil {
		return fail(l, "update_order_error", err)
	}

	l.Info("update_order_success", "order_id", id)
	return c.JSON(http.StatusOK, order.Serialize())
}

func (h *OrderHTTP) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete_order")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "delete_order_error", err)
	}
	if err := h.Svc.DeleteOrder(ctx, id); err != nil {
		return fail(l, "delete_order_error", err)
	}

	l.Info("delete_order_success", "order_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHTTP) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel_order")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "cancel_order_error", err)
	}

	order, err := h.Svc.CancelOrder(ctx, id)
	if err != nil {
		return fail(l, "cancel_order_error", err)
	}

	l.Info("cancel_order_success", "order_id", id)
	return c.JSON(http.StatusOK, order.Serialize())
}
