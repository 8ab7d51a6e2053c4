package service

import (
	"context"

	"github.com/Skotchmaster/orders/internal/models"
	"github.com/Skotchmaster/orders/internal/repo"
)

func (s *OrderService) CreateItem(ctx context.Context, orderID uint, payload any) (*models.Item, error) {
	order, err := s.Store.FindOrderOr404(ctx, orderID)
	if err != nil {
		return nil, err
	}

	item := models.NewItem()
	if err := item.Deserialize(payload); err != nil {
		return nil, err
	}
	item.OrderID = order.ID

	if err := s.Store.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *OrderService) ListOrderItems(ctx context.Context, orderID uint) ([]models.Item, error) {
	order, err := s.Store.FindOrderOr404(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Items == nil {
		return []models.Item{}, nil
	}
	return order.Items, nil
}

func (s *OrderService) GetItem(ctx context.Context, orderID, itemID uint) (*models.Item, error) {
	order, err := s.Store.FindOrderOr404(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.itemOf(ctx, order, itemID)
}

// UpdateItem rewrites the item from payload, keeping the path ids.
func (s *OrderService) UpdateItem(ctx context.Context, orderID, itemID uint, payload any) (*models.Item, error) {
	order, err := s.Store.FindOrderOr404(ctx, orderID)
	if err != nil {
		return nil, err
	}
	item, err := s.itemOf(ctx, order, itemID)
	if err != nil {
		return nil, err
	}

	if err := item.Deserialize(payload); err != nil {
		return nil, err
	}
	item.ID = itemID
	item.OrderID = order.ID

	if err := s.Store.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes the item when it exists under the order. A missing
// item is not an error.
func (s *OrderService) DeleteItem(ctx context.Context, orderID, itemID uint) error {
	order, err := s.Store.FindOrderOr404(ctx, orderID)
	if err != nil {
		return err
	}
	item, err := s.Store.FindItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil || item.OrderID != order.ID {
		return nil
	}
	return s.Store.DeleteItem(ctx, item)
}

func (s *OrderService) ListItems(ctx context.Context) ([]models.Item, error) {
	return s.Store.AllItems(ctx)
}

// itemOf treats an item filed under another order as absent.
func (s *OrderService) itemOf(ctx context.Context, order *models.Order, itemID uint) (*models.Item, error) {
	item, err := s.Store.FindItemOr404(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OrderID != order.ID {
		return nil, &repo.NotFoundError{Entity: "Item", ID: itemID}
	}
	return item, nil
}
