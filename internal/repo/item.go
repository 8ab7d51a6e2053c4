package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/orders/internal/db"
	"github.com/Skotchmaster/orders/internal/logging"
	"github.com/Skotchmaster/orders/internal/models"
)

var itemColumns = []string{"product_id", "quantity", "price", "order_id"}

// CreateItem inserts the item under item.OrderID with a fresh id.
func (r *GormRepo) CreateItem(ctx context.Context, item *models.Item) error {
	logging.FromContext(ctx).Debug("creating item", "order_id", item.OrderID, "product_id", item.ProductID)

	item.ID = 0
	if err := r.DB.WithContext(ctx).Create(item).Error; err != nil {
		return db.Classify(err)
	}
	return nil
}

func (r *GormRepo) UpdateItem(ctx context.Context, item *models.Item) error {
	logging.FromContext(ctx).Debug("updating item", "item_id", item.ID)

	res := r.DB.WithContext(ctx).Model(item).Select(itemColumns).Updates(item)
	if res.Error != nil {
		return db.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: "Item", ID: item.ID}
	}
	return nil
}

func (r *GormRepo) DeleteItem(ctx context.Context, item *models.Item) error {
	logging.FromContext(ctx).Debug("deleting item", "item_id", item.ID)

	if err := r.DB.WithContext(ctx).Delete(&models.Item{}, item.ID).Error; err != nil {
		return db.Classify(err)
	}
	return nil
}

// FindItem returns nil without error when no item has the id.
func (r *GormRepo) FindItem(ctx context.Context, id uint) (*models.Item, error) {
	logging.FromContext(ctx).Debug("processing item lookup", "item_id", id)

	var item models.Item
	err := r.DB.WithContext(ctx).Where("id = ?", id).Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, db.Classify(err)
	}
	return &item, nil
}

func (r *GormRepo) FindItemOr404(ctx context.Context, id uint) (*models.Item, error) {
	item, err := r.FindItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &NotFoundError{Entity: "Item", ID: id}
	}
	return item, nil
}

func (r *GormRepo) AllItems(ctx context.Context) ([]models.Item, error) {
	logging.FromContext(ctx).Debug("processing all items")

	items := make([]models.Item, 0)
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, db.Classify(err)
	}
	return items, nil
}
