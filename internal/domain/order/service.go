package order

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/VictorHDev1/order-api/internal/domain/customer"
)

// Sentinel errors surfaced by the service.
var (
	// ErrNotFound is returned when a requested order does not exist.
	ErrNotFound = fmt.Errorf("order not found")

	// ErrEmptyItems is returned when an order is created with no items.
	ErrEmptyItems = fmt.Errorf("order must have at least one item")

	// ErrNumberConflict is returned when the store rejects an order number
	// as a duplicate. The caller may retry; a fresh sequence value is
	// reserved on every attempt.
	ErrNumberConflict = fmt.Errorf("order number already exists")

	// ErrCustomerConflict is returned when the customer passed validation
	// but was deleted before the order insert committed.
	ErrCustomerConflict = fmt.Errorf("customer was deleted concurrently")
)

// InvalidQuantityError indicates a line item with a non-positive quantity.
type InvalidQuantityError struct {
	ProductSKU string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for product %s", e.ProductSKU)
}

// InvalidUnitPriceError indicates a line item with a negative unit price.
type InvalidUnitPriceError struct {
	ProductSKU string
}

func (e *InvalidUnitPriceError) Error() string {
	return fmt.Sprintf("unit price must not be negative for product %s", e.ProductSKU)
}

// Listing page defaults. Page sizes above MaxPageSize are clamped so a
// single request cannot pull the whole table.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// CreateItem is one line item of a create request.
type CreateItem struct {
	ProductName string
	ProductSKU  string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// CreateRequest holds the input for creating an order.
type CreateRequest struct {
	CustomerID int64
	Items      []CreateItem
}

// Service encapsulates order business rules over the customer and order
// repositories.
type Service struct {
	customers customer.Repository
	orders    Repository
	now       func() time.Time
}

// NewService creates an order Service with the required repositories.
func NewService(customers customer.Repository, orders Repository) *Service {
	return &Service{
		customers: customers,
		orders:    orders,
		now:       time.Now,
	}
}

// Create validates the request, computes the total with exact decimal
// arithmetic, and persists the order with its items in one atomic unit.
// The order number is assigned by the repository from a per-year sequence
// reserved in the same transaction.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}

	items := make([]Item, len(req.Items))
	for i, it := range req.Items {
		if it.Quantity <= 0 {
			return nil, &InvalidQuantityError{ProductSKU: it.ProductSKU}
		}
		if it.UnitPrice.IsNegative() {
			return nil, &InvalidUnitPriceError{ProductSKU: it.ProductSKU}
		}
		items[i] = Item{
			ProductName: it.ProductName,
			ProductSKU:  it.ProductSKU,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}

	cust, err := s.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	o := &Order{
		CustomerID:   cust.ID,
		CustomerName: cust.Name,
		Status:       StatusPending,
		Total:        ComputeTotal(items),
		CreatedAt:    s.now().UTC(),
		Items:        items,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return o, nil
}

// Get returns an order with its items and the owning customer's display
// name. No side effects.
func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.orders.GetByID(ctx, id)
}

// UpdateStatus sets the order status and last-updated timestamp. Any status
// may follow any other; there is no transition graph.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	return s.orders.UpdateStatus(ctx, id, status, s.now().UTC())
}

// Delete removes an order; the store cascades to its items.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.orders.Delete(ctx, id)
}

// List returns order summaries by creation time descending. Page is
// 1-based; out-of-range paging inputs fall back to the defaults.
func (s *Service) List(ctx context.Context, page, pageSize int) ([]Summary, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return s.orders.List(ctx, (page-1)*pageSize, pageSize)
}

// Report produces the aggregate order report in a single read.
func (s *Service) Report(ctx context.Context) (*Report, error) {
	return s.orders.Report(ctx)
}
