package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/VictorHDev1/order-api/internal/domain/order"
)

const (
	// reserveNumberSQL atomically increments the per-year counter and returns
	// the reserved value. The upsert runs inside the order-creation
	// transaction, so no two creations can observe the same value.
	reserveNumberSQL = `INSERT INTO order_number_seqs (year, last_value) VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_value = order_number_seqs.last_value + 1
		RETURNING last_value`

	insertOrderSQL = `INSERT INTO orders (order_number, customer_id, status, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`

	insertOrderItemSQL = `INSERT INTO order_items (order_id, product_name, product_sku, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`

	getOrderByIDSQL = `SELECT o.id, o.order_number, o.customer_id, c.name, o.status, o.total_amount, o.created_at, o.updated_at
		FROM orders o JOIN customers c ON c.id = o.customer_id
		WHERE o.id = $1`

	getOrderItemsSQL = `SELECT id, product_name, product_sku, quantity, unit_price
		FROM order_items WHERE order_id = $1 ORDER BY id`

	listOrdersSQL = `SELECT o.id, o.order_number, c.name, o.status, o.total_amount,
			(SELECT count(*) FROM order_items i WHERE i.order_id = o.id) AS item_count,
			o.created_at
		FROM orders o JOIN customers c ON c.id = o.customer_id
		ORDER BY o.created_at DESC, o.id DESC
		OFFSET $1 LIMIT $2`

	updateOrderStatusSQL = `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`

	deleteOrderSQL = `DELETE FROM orders WHERE id = $1`

	reportTotalsSQL = `SELECT count(*), COALESCE(sum(total_amount), 0) FROM orders`

	reportByStatusSQL = `SELECT status, count(*) FROM orders GROUP BY status`

	reportTopCustomersSQL = `SELECT c.id, c.name, count(*) AS order_count, sum(o.total_amount) AS total_spent
		FROM orders o JOIN customers c ON c.id = o.customer_id
		GROUP BY c.id, c.name
		ORDER BY total_spent DESC, c.id ASC
		LIMIT 5`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create reserves the next per-year sequence value, assigns the order
// number, and inserts the order with its items, all in one transaction.
// It populates o.ID, o.Number, and the item IDs on success.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) (err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	year := o.CreatedAt.UTC().Year()
	var seq int64
	if err = tx.QueryRow(ctx, reserveNumberSQL, year).Scan(&seq); err != nil {
		return fmt.Errorf("reserving order number for %d: %w", year, err)
	}
	o.Number = order.FormatNumber(year, seq)

	err = tx.QueryRow(ctx, insertOrderSQL,
		o.Number, o.CustomerID, int16(o.Status), o.Total, o.CreatedAt,
	).Scan(&o.ID)
	if err != nil {
		switch pgErrCode(err) {
		case codeUniqueViolation:
			return order.ErrNumberConflict
		case codeForeignKeyViolation:
			return order.ErrCustomerConflict
		}
		return fmt.Errorf("inserting order %q: %w", o.Number, err)
	}

	for i := range o.Items {
		it := &o.Items[i]
		err = tx.QueryRow(ctx, insertOrderItemSQL,
			o.ID, it.ProductName, it.ProductSKU, it.Quantity, it.UnitPrice,
		).Scan(&it.ID)
		if err != nil {
			return fmt.Errorf("inserting item %q for order %q: %w", it.ProductSKU, o.Number, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create order: %w", err)
	}
	return nil
}

// GetByID returns an order with its items and the owning customer's name.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	var (
		o      order.Order
		status int16
	)
	err := r.pool.QueryRow(ctx, getOrderByIDSQL, id).Scan(
		&o.ID, &o.Number, &o.CustomerID, &o.CustomerName,
		&status, &o.Total, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}
	o.Status = order.Status(status)

	rows, err := r.pool.Query(ctx, getOrderItemsSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting items for order %d: %w", id, err)
	}
	o.Items, err = pgx.CollectRows(rows, scanOrderItem)
	if err != nil {
		return nil, fmt.Errorf("getting items for order %d: %w", id, err)
	}

	return &o, nil
}

// List returns order summaries ordered by creation time descending.
func (r *OrderRepository) List(ctx context.Context, offset, limit int) ([]order.Summary, error) {
	rows, err := r.pool.Query(ctx, listOrdersSQL, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return pgx.CollectRows(rows, scanOrderSummary)
}

// UpdateStatus sets the status and last-updated timestamp of an order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status order.Status, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, updateOrderStatusSQL, id, int16(status), updatedAt)
	if err != nil {
		return fmt.Errorf("updating status of order %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

// Delete removes an order; order_items cascade at the schema level.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, deleteOrderSQL, id)
	if err != nil {
		return fmt.Errorf("deleting order %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

// Report runs the three aggregate queries concurrently against the pool and
// assembles the result.
func (r *OrderRepository) Report(ctx context.Context) (*order.Report, error) {
	rep := &order.Report{
		TotalRevenue:   decimal.Zero,
		OrdersByStatus: make(map[string]int),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := r.pool.QueryRow(ctx, reportTotalsSQL).Scan(&rep.TotalOrders, &rep.TotalRevenue)
		if err != nil {
			return fmt.Errorf("report totals: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		rows, err := r.pool.Query(ctx, reportByStatusSQL)
		if err != nil {
			return fmt.Errorf("report by status: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				status int16
				count  int
			)
			if err := rows.Scan(&status, &count); err != nil {
				return fmt.Errorf("report by status: %w", err)
			}
			rep.OrdersByStatus[order.Status(status).String()] = count
		}
		return rows.Err()
	})

	g.Go(func() error {
		rows, err := r.pool.Query(ctx, reportTopCustomersSQL)
		if err != nil {
			return fmt.Errorf("report top customers: %w", err)
		}
		top, err := pgx.CollectRows(rows, scanCustomerSpend)
		if err != nil {
			return fmt.Errorf("report top customers: %w", err)
		}
		rep.TopCustomers = top
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rep, nil
}

func scanOrderItem(row pgx.CollectableRow) (order.Item, error) {
	var it order.Item
	err := row.Scan(&it.ID, &it.ProductName, &it.ProductSKU, &it.Quantity, &it.UnitPrice)
	return it, err
}

func scanOrderSummary(row pgx.CollectableRow) (order.Summary, error) {
	var (
		s      order.Summary
		status int16
	)
	err := row.Scan(&s.ID, &s.Number, &s.CustomerName, &status, &s.Total, &s.ItemCount, &s.CreatedAt)
	s.Status = order.Status(status)
	return s, err
}

func scanCustomerSpend(row pgx.CollectableRow) (order.CustomerSpend, error) {
	var cs order.CustomerSpend
	err := row.Scan(&cs.CustomerID, &cs.CustomerName, &cs.OrderCount, &cs.TotalSpent)
	return cs, err
}
