package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/orders/internal/db"
	"github.com/Skotchmaster/orders/internal/logging"
	"github.com/Skotchmaster/orders/internal/models"
)

var orderColumns = []string{"customer_id", "tracking_id", "status"}

func withItems(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id ASC")
	})
}

// CreateOrder inserts the order together with its items. Preset ids are
// cleared so the store issues fresh keys.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	logging.FromContext(ctx).Debug("creating order", "customer_id", order.CustomerID, "items", len(order.Items))

	order.ID = 0
	for i := range order.Items {
		order.Items[i].ID = 0
		order.Items[i].OrderID = 0
	}

	if err := r.DB.WithContext(ctx).Create(order).Error; err != nil {
		return db.Classify(err)
	}
	return nil
}

// UpdateOrder writes the order columns. Items are left as stored.
func (r *GormRepo) UpdateOrder(ctx context.Context, order *models.Order) error {
	logging.FromContext(ctx).Debug("updating order", "order_id", order.ID)

	res := r.DB.WithContext(ctx).
		Model(order).
		Select(orderColumns).
		Omit(clause.Associations).
		Updates(order)
	if res.Error != nil {
		return db.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: "Order", ID: order.ID}
	}
	return nil
}

// DeleteOrder removes the order and all of its items in one transaction.
func (r *GormRepo) DeleteOrder(ctx context.Context, order *models.Order) error {
	logging.FromContext(ctx).Debug("deleting order", "order_id", order.ID)

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.Item{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, order.ID).Error
	})
	if err != nil {
		return db.Classify(err)
	}
	order.Items = nil
	return nil
}

// FindOrder returns nil without error when no order has the id.
func (r *GormRepo) FindOrder(ctx context.Context, id uint) (*models.Order, error) {
	logging.FromContext(ctx).Debug("processing order lookup", "order_id", id)

	var order models.Order
	err := withItems(r.DB.WithContext(ctx)).Where("id = ?", id).Take(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, db.Classify(err)
	}
	return &order, nil
}

func (r *GormRepo) FindOrderOr404(ctx context.Context, id uint) (*models.Order, error) {
	order, err := r.FindOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, &NotFoundError{Entity: "Order", ID: id}
	}
	return order, nil
}

func (r *GormRepo) AllOrders(ctx context.Context) ([]models.Order, error) {
	logging.FromContext(ctx).Debug("processing all orders")
	return r.findOrders(ctx, r.DB.WithContext(ctx))
}

func (r *GormRepo) FindOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	logging.FromContext(ctx).Debug("processing status query", "status", status.String())
	return r.findOrders(ctx, r.DB.WithContext(ctx).Where("status = ?", status))
}

func (r *GormRepo) FindOrdersByCustomer(ctx context.Context, customerID int64) ([]models.Order, error) {
	logging.FromContext(ctx).Debug("processing customer query", "customer_id", customerID)
	return r.findOrders(ctx, r.DB.WithContext(ctx).Where("customer_id = ?", customerID))
}

func (r *GormRepo) findOrders(_ context.Context, q *gorm.DB) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	if err := withItems(q).Order("id ASC").Find(&orders).Error; err != nil {
		return nil, db.Classify(err)
	}
	return orders, nil
}
