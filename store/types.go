// Package store holds the source-side domain model used by tests and the
// command line examples.
package store

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Address is a postal address.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Customer places orders. Orders point back to their customer.
type Customer struct {
	ID       int64    `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Address  *Address `json:"address"`
	Orders   []*Order `json:"orders"`
	IsActive bool     `json:"is_active"`
}

// Order represents a transaction made by a customer.
type Order struct {
	ID         uuid.UUID         `json:"id"`
	Customer   *Customer         `json:"customer"`
	Status     OrderStatus       `json:"status"`
	TotalCents int64             `json:"total_cents"`
	Items      []OrderItem       `json:"items"`
	Notes      map[string]string `json:"notes"`
	OrderedAt  time.Time         `json:"ordered_at"`

	reference string
}

// Reference returns the external reference of the order.
func (o *Order) Reference() string { return o.reference }

// SetReference sets the external reference of the order.
func (o *Order) SetReference(ref string) { o.reference = ref }

// OrderItem is a product line within an order.
// It snapshots the price at the time of purchase.
type OrderItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// Subtotal returns Quantity * UnitPrice.
func (i *OrderItem) Subtotal() int64 { return int64(i.Quantity) * i.UnitPrice }
