package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/orders/internal/logging"
	"github.com/Skotchmaster/orders/internal/models"
)

func serializeItems(items []models.Item) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, i := range items {
		out = append(out, i.Serialize())
	}
	return out
}

func (h *OrderHTTP) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.create_item")

	orderID, err := parseID(c, "id")
	if err != nil {
		return fail(l, "create_item_error", err)
	}
	payload, err := decodePayload(c, "Item")
	if err != nil {
		return fail(l, "create_item_error", err)
	}

	item, err := h.Svc.CreateItem(ctx, orderID, payload)
	if err != nil {
		return fail(l, "create_item_error", err)
	}

	l.Info("create_item_success", "order_id", orderID, "item_id", item.ID)
	return c.JSON(http.StatusCreated, item.Serialize())
}

func (h *OrderHTTP) ListOrderItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.list_order_items")

	orderID, err := parseID(c, "id")
	if err != nil {
		return fail(l, "list_order_items_error", err)
	}

	items, err := h.Svc.ListOrderItems(ctx, orderID)
	if err != nil {
		return fail(l, "list_order_items_error", err)
	}

	return c.JSON(http.StatusOK, serializeItems(items))
}

func (h *OrderHTTP) GetItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.get_item")

	orderID, err := parseID(c, "id")
	if err != nil {
		return fail(l, "get_item_error", err)
	}
	itemID, err := parseID(c, "item_id")
	if err != nil {
		return fail(l, "get_item_error", err)
	}

	item, err := h.Svc.GetItem(ctx, orderID, itemID)
	if err != nil {
		return fail(l, "get_item_error", err)
	}

	return c.JSON(http.StatusOK, item.Serialize())
}

func (h *OrderHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.update_item")

	orderID, err := parseID(c, "id")
	if err != nil {
		return fail(l, "update_item_error", err)
	}
	itemID, err := parseID(c, "item_id")
	if err != nil {
		return fail(l, "update_item_error", err)
	}
	payload, err := decodePayload(c, "Item")
	if err != nil {
		return fail(l, "update_item_error", err)
	}

	item, err := h.Svc.UpdateItem(ctx, orderID, itemID, payload)
	if err != nil {
		return fail(l, "update_item_error", err)
	}

	l.Info("update_item_success", "order_id", orderID, "item_id", itemID)
	return c.JSON(http.StatusOK, item.Serialize())
}

func (h *OrderHTTP) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.delete_item")

	orderID, err := parseID(c, "id")
	if err != nil {
		return fail(l, "delete_item_error", err)
	}
	itemID, err := parseID(c, "item_id")
	if err != nil {
		return fail(l, "delete_item_error", err)
	}

	if err := h.Svc.DeleteItem(ctx, orderID, itemID); err != nil {
		return fail(l, "delete_item_error", err)
	}

	l.Info("delete_item_success", "order_id", orderID, "item_id", itemID)
	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHTTP) ListItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.list_items")

	items, err := h.Svc.ListItems(ctx)
	if err != nil {
		return fail(l, "list_items_error", err)
	}

	return c.JSON(http.StatusOK, serializeItems(items))
}
