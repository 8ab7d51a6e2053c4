package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// PriceScale is the number of fractional digits kept for Item.Price.
const PriceScale = 2

// maxPrice is the first magnitude numeric(12,2) cannot hold.
var maxPrice = decimal.New(1, 12-PriceScale)

// Item is a purchased line entry owned by exactly one Order.
type Item struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"              json:"id"`
	ProductID int64           `gorm:"not null"                              json:"product_id"`
	Quantity  int             `gorm:"not null"                              json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"           json:"price"`
	OrderID   uint            `gorm:"not null;index"                        json:"order_id"`
}

// Order is a customer purchase record. Items are owned by the order and
// removed together with it.
type Order struct {
	ID         uint        `gorm:"primaryKey;autoIncrement"                            json:"id"`
	CustomerID int64       `gorm:"not null;index"                                      json:"customer_id"`
	TrackingID *int64      `json:"tracking_id"`
	Status     OrderStatus `gorm:"type:varchar(16);not null;index"                     json:"status"`
	Items      []Item      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"      json:"items"`
}

func (i Item) Serialize() map[string]any {
	return map[string]any{
		"id":         i.ID,
		"product_id": i.ProductID,
		"quantity":   i.Quantity,
		"price":      i.Price.InexactFloat64(),
		"order_id":   i.OrderID,
	}
}

func (o Order) Serialize() map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, item.Serialize())
	}

	var trackingID any
	if o.TrackingID != nil {
		trackingID = *o.TrackingID
	}

	return map[string]any{
		"id":          o.ID,
		"customer_id": o.CustomerID,
		"tracking_id": trackingID,
		"status":      o.Status.String(),
		"items":       items,
	}
}

// Cancel moves the order to CANCELLED whatever its current status.
func (o *Order) Cancel() {
	o.Status = OrderStatusCancelled
}

func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Serialize())
}

func (i *Item) UnmarshalJSON(data []byte) error {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	return i.Deserialize(payload)
}

func (o Order) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Serialize())
}

func (o *Order) UnmarshalJSON(data []byte) error {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	return o.Deserialize(payload)
}
