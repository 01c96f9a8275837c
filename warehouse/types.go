// Package warehouse holds the destination-side model used by tests and the
// command line examples.
package warehouse

import (
	"time"
)

// Address is a shipping address.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Customer is the warehouse view of a store customer.
type Customer struct {
	ID       int64    `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Address  Address  `json:"address"`
	Orders   []*Order `json:"orders,omitempty"`
}

// Order is a shipment request.
type Order struct {
	ID           string            `json:"id"`
	Customer     *Customer         `json:"customer"`
	CustomerName string            `json:"customer_name"`
	Status       string            `json:"status"`
	TotalCents   int64             `json:"total_cents"`
	Items        []OrderItem       `json:"items"`
	Notes        map[string]string `json:"notes"`
	OrderedAt    time.Time         `json:"ordered_at"`
	Reference    string            `json:"reference"`
	Internal     string            `json:"-"`
}

// OrderItem is a line item within a shipment.
type OrderItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Subtotal  int64  `json:"subtotal"`
}
