package transport

// ListOrdersQuery holds the optional filters of GET /orders. Status wins
// when both are given.
type ListOrdersQuery struct {
	Status     string `query:"status"`
	CustomerID string `query:"customer-id"`
}
