package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VictorHDev1/order-api/internal/domain/customer"
)

const (
	insertCustomerSQL = `INSERT INTO customers (name, email, created_at)
		VALUES ($1, $2, $3) RETURNING id`

	getCustomerByIDSQL = `SELECT id, name, email, created_at
		FROM customers WHERE id = $1`

	listCustomersSQL = `SELECT id, name, email, created_at
		FROM customers ORDER BY id`

	deleteCustomerSQL = `DELETE FROM customers WHERE id = $1`
)

var _ customer.Repository = (*CustomerRepository)(nil)

// CustomerRepository implements customer.Repository backed by PostgreSQL.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a CustomerRepository that uses the given pool.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// Create persists a new customer and populates its generated ID.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	err := r.pool.QueryRow(ctx, insertCustomerSQL, c.Name, c.Email, c.CreatedAt).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("creating customer %q: %w", c.Email, err)
	}
	return nil
}

// GetByID returns a single customer by its identifier.
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*customer.Customer, error) {
	rows, err := r.pool.Query(ctx, getCustomerByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting customer %d: %w", id, err)
	}

	c, err := pgx.CollectExactlyOneRow(rows, scanCustomer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrNotFound
		}
		return nil, fmt.Errorf("getting customer %d: %w", id, err)
	}
	return &c, nil
}

// List returns all customers ordered by ID.
func (r *CustomerRepository) List(ctx context.Context) ([]customer.Customer, error) {
	rows, err := r.pool.Query(ctx, listCustomersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	return pgx.CollectRows(rows, scanCustomer)
}

// Delete removes a customer. The RESTRICT foreign key on orders rejects the
// delete while the customer still owns orders; that case surfaces as
// customer.ErrHasOrders.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, deleteCustomerSQL, id)
	if err != nil {
		if pgErrCode(err) == codeForeignKeyViolation {
			return customer.ErrHasOrders
		}
		return fmt.Errorf("deleting customer %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return customer.ErrNotFound
	}
	return nil
}

func scanCustomer(row pgx.CollectableRow) (customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt)
	return c, err
}
