package service

import (
	"context"
	"strconv"

	"github.com/Skotchmaster/orders/internal/models"
	"github.com/Skotchmaster/orders/internal/transport"
)

// Store is the persistence contract the service runs against.
type Store interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	UpdateOrder(ctx context.Context, order *models.Order) error
	DeleteOrder(ctx context.Context, order *models.Order) error
	FindOrder(ctx context.Context, id uint) (*models.Order, error)
	FindOrderOr404(ctx context.Context, id uint) (*models.Order, error)
	AllOrders(ctx context.Context) ([]models.Order, error)
	FindOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	FindOrdersByCustomer(ctx context.Context, customerID int64) ([]models.Order, error)

	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, item *models.Item) error
	FindItem(ctx context.Context, id uint) (*models.Item, error)
	FindItemOr404(ctx context.Context, id uint) (*models.Item, error)
	AllItems(ctx context.Context) ([]models.Item, error)
}

type OrderService struct {
	Store Store
}

func New(store Store) *OrderService {
	return &OrderService{Store: store}
}

func (s *OrderService) CreateOrder(ctx context.Context, payload any) (*models.Order, error) {
	var order models.Order
	if err := order.Deserialize(payload); err != nil {
		return nil, err
	}
	if err := s.Store.CreateOrder(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	return s.Store.FindOrderOr404(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context, q transport.ListOrdersQuery) ([]models.Order, error) {
	switch {
	case q.Status != "":
		status, err := models.ParseOrderStatus(q.Status)
		if err != nil {
			return nil, err
		}
		return s.Store.FindOrdersByStatus(ctx, status)
	case q.CustomerID != "":
		customerID, err := strconv.ParseInt(q.CustomerID, 10, 64)
		if err != nil {
			return nil, &models.ValidationError{Entity: "Order", Kind: models.InvalidAttribute, Field: "customer-id"}
		}
		return s.Store.FindOrdersByCustomer(ctx, customerID)
	default:
		return s.Store.AllOrders(ctx)
	}
}

// UpdateOrder rewrites the order columns from payload. Items in the payload
// are ignored and the id always comes from the path.
func (s *OrderService) UpdateOrder(ctx context.Context, id uint, payload any) (*models.Order, error) {
	order, err := s.Store.FindOrderOr404(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, ok := payload.(map[string]any); ok {
		stripped := make(map[string]any, len(data))
		for k, v := range data {
			if k != "items" {
				stripped[k] = v
			}
		}
		payload = stripped
	}

	if err := order.Deserialize(payload); err != nil {
		return nil, err
	}
	order.ID = id

	if err := s.Store.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteOrder removes the order and its items. A missing order is not an error.
func (s *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	order, err := s.Store.FindOrder(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return nil
	}
	return s.Store.DeleteOrder(ctx, order)
}

// CancelOrder forces the status to CANCELLED regardless of the current one.
func (s *OrderService) CancelOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.Store.FindOrderOr404(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Cancel()
	if err := s.Store.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
