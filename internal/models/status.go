package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type OrderStatus int

const (
	OrderStatusCreated OrderStatus = iota
	OrderStatusPaid
	OrderStatusCompleted
	OrderStatusCancelled
)

var orderStatusNames = [...]string{
	OrderStatusCreated:   "CREATED",
	OrderStatusPaid:      "PAID",
	OrderStatusCompleted: "COMPLETED",
	OrderStatusCancelled: "CANCELLED",
}

// OrderStatuses lists every status in declaration order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusCreated, OrderStatusPaid, OrderStatusCompleted, OrderStatusCancelled}
}

func (s OrderStatus) Valid() bool {
	return s >= OrderStatusCreated && s <= OrderStatusCancelled
}

func (s OrderStatus) String() string {
	if !s.Valid() {
		return fmt.Sprintf("OrderStatus(%d)", int(s))
	}
	return orderStatusNames[s]
}

// ParseOrderStatus resolves a status by its exact name.
func ParseOrderStatus(name string) (OrderStatus, error) {
	for i, n := range orderStatusNames {
		if n == name {
			return OrderStatus(i), nil
		}
	}
	return 0, &ValidationError{Entity: "Order", Kind: InvalidEnumValue, Field: "status", Value: name}
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("marshal %s", s)
	}
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return &ValidationError{Entity: "Order", Kind: InvalidAttribute, Field: "status"}
	}
	parsed, err := ParseOrderStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value stores the status by name.
func (s OrderStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("store %s", s)
	}
	return s.String(), nil
}

func (s *OrderStatus) Scan(src any) error {
	var name string
	switch v := src.(type) {
	case string:
		name = v
	case []byte:
		name = string(v)
	case nil:
		*s = OrderStatusCreated
		return nil
	default:
		return fmt.Errorf("scan order status from %T", src)
	}
	parsed, err := ParseOrderStatus(name)
	if err != nil {
		return fmt.Errorf("scan order status: %w", err)
	}
	*s = parsed
	return nil
}
