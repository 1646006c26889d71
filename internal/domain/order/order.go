// Package order holds the order aggregate and its business rules.
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a customer order with its line items. Total is the cached
// sum of line totals; the domain recomputes it whenever items change, the
// store never owns it.
type Order struct {
	ID         int64
	Number     string
	CustomerID int64
	Status     Status
	Total      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	Items      []Item

	// CustomerName is resolved on read paths for response convenience.
	// It is not persisted on the order row.
	CustomerName string
}

// Item represents a single line item in an order.
type Item struct {
	ID          int64
	ProductName string
	ProductSKU  string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// LineTotal returns quantity × unit price. It is always recomputed, never
// stored.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ComputeTotal returns the exact decimal sum of the items' line totals.
func ComputeTotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total.Round(2)
}

// FormatNumber renders an order number from a year and a reserved sequence
// value, e.g. "ORD-2026-00042". Sequences above 99999 keep their full width.
func FormatNumber(year int, seq int64) string {
	return fmt.Sprintf("ORD-%04d-%05d", year, seq)
}

// Summary is the listing projection of an order.
type Summary struct {
	ID           int64
	Number       string
	CustomerName string
	Status       Status
	Total        decimal.Decimal
	ItemCount    int
	CreatedAt    time.Time
}

// CustomerSpend is one entry of the top-customers report section.
type CustomerSpend struct {
	CustomerID   int64
	CustomerName string
	OrderCount   int
	TotalSpent   decimal.Decimal
}

// Report is the aggregate view over all orders, produced in a single read.
type Report struct {
	TotalOrders    int
	TotalRevenue   decimal.Decimal
	OrdersByStatus map[string]int
	TopCustomers   []CustomerSpend
}

// Repository defines persistence operations for orders.
//
// Create must be atomic: it reserves the next per-year sequence value,
// assigns the order number, and inserts the order with its items in one
// transaction. It populates o.ID and o.Number on success.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context, offset, limit int) ([]Summary, error)
	UpdateStatus(ctx context.Context, id int64, status Status, updatedAt time.Time) error
	Delete(ctx context.Context, id int64) error
	Report(ctx context.Context) (*Report, error)
}
