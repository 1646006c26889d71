package order

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorHDev1/order-api/internal/domain/customer"
)

// --- Mock implementations ---

type mockCustomerRepo struct {
	byID map[int64]*customer.Customer
}

func (m *mockCustomerRepo) Create(_ context.Context, _ *customer.Customer) error { return nil }

func (m *mockCustomerRepo) GetByID(_ context.Context, id int64) (*customer.Customer, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, customer.ErrNotFound
	}
	return c, nil
}

func (m *mockCustomerRepo) List(_ context.Context) ([]customer.Customer, error) { return nil, nil }
func (m *mockCustomerRepo) Delete(_ context.Context, _ int64) error             { return nil }

type mockOrderRepo struct {
	lastOrder  *Order
	createErr  error
	lastStatus Status
	lastUpdate time.Time
	statusErr  error
	listOffset int
	listLimit  int
}

func (m *mockOrderRepo) Create(_ context.Context, o *Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	o.ID = 1
	o.Number = FormatNumber(o.CreatedAt.Year(), 1)
	m.lastOrder = o
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, _ int64) (*Order, error) {
	return nil, ErrNotFound
}

func (m *mockOrderRepo) List(_ context.Context, offset, limit int) ([]Summary, error) {
	m.listOffset = offset
	m.listLimit = limit
	return nil, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, _ int64, status Status, updatedAt time.Time) error {
	if m.statusErr != nil {
		return m.statusErr
	}
	m.lastStatus = status
	m.lastUpdate = updatedAt
	return nil
}

func (m *mockOrderRepo) Delete(_ context.Context, _ int64) error { return nil }

func (m *mockOrderRepo) Report(_ context.Context) (*Report, error) { return &Report{}, nil }

// --- Helpers ---

func newCustomerRepo(customers ...customer.Customer) *mockCustomerRepo {
	byID := make(map[int64]*customer.Customer, len(customers))
	for i := range customers {
		byID[customers[i].ID] = &customers[i]
	}
	return &mockCustomerRepo{byID: byID}
}

func validItems() []CreateItem {
	return []CreateItem{{
		ProductName: "Widget",
		ProductSKU:  "SKU-0001",
		Quantity:    2,
		UnitPrice:   decimal.RequireFromString("25.99"),
	}}
}

// --- Tests ---

func TestCreate_EmptyItems(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := NewService(newCustomerRepo(), repo)

	_, err := svc.Create(context.Background(), CreateRequest{CustomerID: 1})

	require.ErrorIs(t, err, ErrEmptyItems)
	assert.Nil(t, repo.lastOrder, "nothing must be persisted")
}

func TestCreate_UnknownCustomer(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := NewService(newCustomerRepo(), repo)

	_, err := svc.Create(context.Background(), CreateRequest{
		CustomerID: 999,
		Items:      validItems(),
	})

	require.ErrorIs(t, err, customer.ErrNotFound)
	assert.Nil(t, repo.lastOrder, "nothing must be persisted")
}

func TestCreate_InvalidQuantity(t *testing.T) {
	svc := NewService(newCustomerRepo(), &mockOrderRepo{})

	_, err := svc.Create(context.Background(), CreateRequest{
		CustomerID: 1,
		Items: []CreateItem{{
			ProductSKU: "SKU-0001",
			Quantity:   0,
			UnitPrice:  decimal.NewFromInt(10),
		}},
	})

	var iqErr *InvalidQuantityError
	require.ErrorAs(t, err, &iqErr)
	assert.Equal(t, "SKU-0001", iqErr.ProductSKU)
}

func TestCreate_NegativeUnitPrice(t *testing.T) {
	svc := NewService(newCustomerRepo(), &mockOrderRepo{})

	_, err := svc.Create(context.Background(), CreateRequest{
		CustomerID: 1,
		Items: []CreateItem{{
			ProductSKU: "SKU-0002",
			Quantity:   1,
			UnitPrice:  decimal.RequireFromString("-0.01"),
		}},
	})

	var ipErr *InvalidUnitPriceError
	require.ErrorAs(t, err, &ipErr)
	assert.Equal(t, "SKU-0002", ipErr.ProductSKU)
}

func TestCreate_ComputesExactTotal(t *testing.T) {
	cust := customer.Customer{ID: 100, Name: "Customer 100"}
	repo := &mockOrderRepo{}
	svc := NewService(newCustomerRepo(cust), repo)

	o, err := svc.Create(context.Background(), CreateRequest{
		CustomerID: 100,
		Items:      validItems(),
	})

	require.NoError(t, err)
	assert.Equal(t, "51.98", o.Total.StringFixed(2))
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, int64(100), o.CustomerID)
	assert.Equal(t, "Customer 100", o.CustomerName)
	assert.Regexp(t, `^ORD-\d{4}-\d{5}$`, o.Number)
	require.NotNil(t, repo.lastOrder)
	assert.Len(t, repo.lastOrder.Items, 1)
}

func TestCreate_NumberConflictPassthrough(t *testing.T) {
	cust := customer.Customer{ID: 1, Name: "Customer 1"}
	repo := &mockOrderRepo{createErr: ErrNumberConflict}
	svc := NewService(newCustomerRepo(cust), repo)

	_, err := svc.Create(context.Background(), CreateRequest{
		CustomerID: 1,
		Items:      validItems(),
	})

	require.ErrorIs(t, err, ErrNumberConflict)
}

func TestCreate_CustomerConflictPassthrough(t *testing.T) {
	cust := customer.Customer{ID: 1, Name: "Customer 1"}
	repo := &mockOrderRepo{createErr: ErrCustomerConflict}
	svc := NewService(newCustomerRepo(cust), repo)

	_, err := svc.Create(context.Background(), CreateRequest{
		CustomerID: 1,
		Items:      validItems(),
	})

	require.ErrorIs(t, err, ErrCustomerConflict)
}

func TestUpdateStatus_InvalidValue(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := NewService(newCustomerRepo(), repo)

	err := svc.UpdateStatus(context.Background(), 1, Status(42))

	require.ErrorIs(t, err, ErrInvalidStatus)
	assert.True(t, repo.lastUpdate.IsZero(), "repository must not be touched")
}

func TestUpdateStatus_SetsTimestamp(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := NewService(newCustomerRepo(), repo)
	before := time.Now().UTC()

	err := svc.UpdateStatus(context.Background(), 1, StatusShipped)

	require.NoError(t, err)
	assert.Equal(t, StatusShipped, repo.lastStatus)
	assert.False(t, repo.lastUpdate.Before(before))
}

func TestUpdateStatus_NotFoundPassthrough(t *testing.T) {
	repo := &mockOrderRepo{statusErr: ErrNotFound}
	svc := NewService(newCustomerRepo(), repo)

	err := svc.UpdateStatus(context.Background(), 999, StatusConfirmed)

	require.ErrorIs(t, err, ErrNotFound)
}

func TestList_PagingNormalization(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pageSize   int
		wantOffset int
		wantLimit  int
	}{
		{"defaults", 0, 0, 0, DefaultPageSize},
		{"negative page", -5, 20, 0, 20},
		{"third page", 3, 10, 20, 10},
		{"oversized page size", 1, 1000, 0, MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockOrderRepo{}
			svc := NewService(newCustomerRepo(), repo)

			_, err := svc.List(context.Background(), tt.page, tt.pageSize)

			require.NoError(t, err)
			assert.Equal(t, tt.wantOffset, repo.listOffset)
			assert.Equal(t, tt.wantLimit, repo.listLimit)
		})
	}
}

func TestCreate_RepoErrorWrapped(t *testing.T) {
	cust := customer.Customer{ID: 1, Name: "Customer 1"}
	repo := &mockOrderRepo{createErr: errors.New("db write failed")}
	svc := NewService(newCustomerRepo(cust), repo)

	_, err := svc.Create(context.Background(), CreateRequest{
		CustomerID: 1,
		Items:      validItems(),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create order")
}
