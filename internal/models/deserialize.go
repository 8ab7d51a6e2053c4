package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrDataValidation is matched by every deserialization failure.
var ErrDataValidation = errors.New("data validation error")

type ValidationKind int

const (
	MissingField ValidationKind = iota + 1
	WrongShape
	InvalidAttribute
	InvalidEnumValue
)

func (k ValidationKind) String() string {
	switch k {
	case MissingField:
		return "missing_field"
	case WrongShape:
		return "wrong_shape"
	case InvalidAttribute:
		return "invalid_attribute"
	case InvalidEnumValue:
		return "invalid_enum_value"
	default:
		return fmt.Sprintf("ValidationKind(%d)", int(k))
	}
}

type ValidationError struct {
	Entity string
	Kind   ValidationKind
	Field  string
	Value  string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("Invalid %s: missing %s", e.Entity, e.Field)
	case WrongShape:
		return fmt.Sprintf("Invalid %s: body of request contained bad or no data", e.Entity)
	case InvalidEnumValue:
		return fmt.Sprintf("Invalid attribute: %s %q", e.Field, e.Value)
	default:
		return "Invalid attribute: " + e.Field
	}
}

func (e *ValidationError) Unwrap() error { return ErrDataValidation }

// NewItem returns an unsaved item with quantity 1.
func NewItem() *Item {
	return &Item{Quantity: 1}
}

// Deserialize fills the item from a decoded JSON object. product_id,
// quantity and price are required; id and order_id are taken only when
// present. The item is left untouched on error.
func (i *Item) Deserialize(data any) error {
	f, err := objectFields("Item", data)
	if err != nil {
		return err
	}

	id := i.ID
	if v, ok := f.optional("id"); ok {
		if id, err = f.id("id", v); err != nil {
			return err
		}
	}
	productID, err := f.requiredInt("product_id")
	if err != nil {
		return err
	}
	quantity, err := f.requiredInt("quantity")
	if err != nil {
		return err
	}
	if quantity < math.MinInt32 || quantity > math.MaxInt32 {
		return f.invalid("quantity")
	}
	price, err := f.requiredDecimal("price")
	if err != nil {
		return err
	}
	if !fitsPriceColumn(price) {
		return f.invalid("price")
	}
	orderID := i.OrderID
	if v, ok := f.optional("order_id"); ok {
		if orderID, err = f.id("order_id", v); err != nil {
			return err
		}
	}

	i.ID = id
	i.ProductID = productID
	i.Quantity = int(quantity)
	i.Price = price
	i.OrderID = orderID
	return nil
}

// Deserialize fills the order from a decoded JSON object. customer_id,
// tracking_id (may be null) and status are required. When items is present
// it replaces the current collection.
func (o *Order) Deserialize(data any) error {
	f, err := objectFields("Order", data)
	if err != nil {
		return err
	}

	id := o.ID
	if v, ok := f.optional("id"); ok {
		if id, err = f.id("id", v); err != nil {
			return err
		}
	}
	customerID, err := f.requiredInt("customer_id")
	if err != nil {
		return err
	}
	rawTracking, err := f.required("tracking_id")
	if err != nil {
		return err
	}
	var trackingID *int64
	if rawTracking != nil {
		n, ok := toInt64(rawTracking)
		if !ok {
			return f.invalid("tracking_id")
		}
		trackingID = &n
	}

	items := o.Items
	if v, ok := f.obj["items"]; ok {
		list, ok := toList(v)
		if !ok {
			return f.invalid("items")
		}
		items = make([]Item, 0, len(list))
		for _, raw := range list {
			item := NewItem()
			if err := item.Deserialize(raw); err != nil {
				return err
			}
			items = append(items, *item)
		}
	}

	rawStatus, err := f.required("status")
	if err != nil {
		return err
	}
	name, ok := rawStatus.(string)
	if !ok {
		return f.invalid("status")
	}
	status, err := ParseOrderStatus(name)
	if err != nil {
		return err
	}

	o.ID = id
	o.CustomerID = customerID
	o.TrackingID = trackingID
	o.Items = items
	o.Status = status
	return nil
}

type fields struct {
	entity string
	obj    map[string]any
}

func objectFields(entity string, data any) (fields, error) {
	obj, ok := data.(map[string]any)
	if !ok || obj == nil {
		return fields{}, &ValidationError{Entity: entity, Kind: WrongShape}
	}
	return fields{entity: entity, obj: obj}, nil
}

func (f fields) invalid(key string) error {
	return &ValidationError{Entity: f.entity, Kind: InvalidAttribute, Field: key}
}

func (f fields) required(key string) (any, error) {
	v, ok := f.obj[key]
	if !ok {
		return nil, &ValidationError{Entity: f.entity, Kind: MissingField, Field: key}
	}
	return v, nil
}

// optional reports a key only when it is present with a non-null value.
func (f fields) optional(key string) (any, bool) {
	v, ok := f.obj[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (f fields) requiredInt(key string) (int64, error) {
	v, err := f.required(key)
	if err != nil {
		return 0, err
	}
	n, ok := toInt64(v)
	if !ok {
		return 0, f.invalid(key)
	}
	return n, nil
}

func (f fields) requiredDecimal(key string) (decimal.Decimal, error) {
	v, err := f.required(key)
	if err != nil {
		return decimal.Zero, err
	}
	d, ok := toDecimal(v)
	if !ok {
		return decimal.Zero, f.invalid(key)
	}
	return d, nil
}

func (f fields) id(key string, v any) (uint, error) {
	n, ok := toInt64(v)
	if !ok || n < 0 {
		return 0, f.invalid(key)
	}
	return uint(n), nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), uint64(n) <= math.MaxInt64
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= math.MaxInt64
	}
	return 0, false
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil
	case decimal.Decimal:
		return n, true
	}
	if i, ok := toInt64(v); ok {
		return decimal.NewFromInt(i), true
	}
	return decimal.Zero, false
}

// fitsPriceColumn reports whether d is stored by numeric(12,2) unchanged.
func fitsPriceColumn(d decimal.Decimal) bool {
	return d.Abs().LessThan(maxPrice) && d.Equal(d.Round(PriceScale))
}

func toList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out, true
	}
	return nil, false
}
