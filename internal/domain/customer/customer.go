// Package customer holds the customer entity and its persistence contract.
package customer

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

var (
	// ErrNotFound is returned when a requested customer does not exist.
	ErrNotFound = errors.New("customer not found")

	// ErrHasOrders is returned when a delete is rejected because the
	// customer still owns orders.
	ErrHasOrders = errors.New("customer has orders")
)

// Customer is a buyer that orders reference. Customers are immutable after
// creation.
type Customer struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
}

// Repository defines persistence operations for customers.
type Repository interface {
	// Create persists a new customer and populates its generated ID.
	Create(ctx context.Context, c *Customer) error
	// GetByID returns a customer, or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*Customer, error)
	// List returns all customers ordered by ID.
	List(ctx context.Context) ([]Customer, error)
	// Delete removes a customer. It returns ErrHasOrders while orders
	// still reference the customer, or ErrNotFound.
	Delete(ctx context.Context, id int64) error
}
