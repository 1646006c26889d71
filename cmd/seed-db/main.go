// Command seed-db populates the database with the fixed development
// dataset: 10 customers and 100 orders with random line items drawn from a
// deterministic source.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/VictorHDev1/order-api/internal/domain/customer"
	"github.com/VictorHDev1/order-api/internal/domain/order"
	"github.com/VictorHDev1/order-api/internal/storage/postgres"
)

const (
	seedCustomers = 10
	seedOrders    = 100
	randSeed      = 42
)

func main() {
	var databaseURL string
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL string) error {
	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	customerRepo := postgres.NewCustomerRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)

	existing, err := customerRepo.List(ctx)
	if err != nil {
		return errors.Wrap(err, "list customers")
	}
	if len(existing) > 0 {
		slog.Info("database already seeded", slog.Int("customers", len(existing)))
		return nil
	}

	customers, err := createCustomers(ctx, customerRepo)
	if err != nil {
		return errors.Wrap(err, "seed customers")
	}

	if err := createOrders(ctx, orderRepo, customers); err != nil {
		return errors.Wrap(err, "seed orders")
	}

	return nil
}

func createCustomers(ctx context.Context, repo *postgres.CustomerRepository) ([]customer.Customer, error) {
	slog.Info("creating customers", slog.Int("count", seedCustomers))

	now := time.Now().UTC()
	customers := make([]customer.Customer, 0, seedCustomers)
	for i := 1; i <= seedCustomers; i++ {
		c := customer.Customer{
			Name:      fmt.Sprintf("Customer %d", i),
			Email:     fmt.Sprintf("customer%d@example.com", i),
			CreatedAt: now.AddDate(0, 0, -100+i),
		}
		if err := repo.Create(ctx, &c); err != nil {
			return nil, errors.Wrapf(err, "create customer %d", i)
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func createOrders(ctx context.Context, repo *postgres.OrderRepository, customers []customer.Customer) error {
	slog.Info("creating orders", slog.Int("count", seedOrders))

	// Deterministic dataset: same seed, same orders, every run.
	rng := rand.New(rand.NewSource(randSeed))
	now := time.Now().UTC()

	for i := 1; i <= seedOrders; i++ {
		cust := customers[i%len(customers)]

		itemCount := rng.Intn(4) + 1
		items := make([]order.Item, itemCount)
		for j := range items {
			price := decimal.NewFromFloat(rng.Float64()*100 + 10).Round(2)
			items[j] = order.Item{
				ProductName: fmt.Sprintf("Product %d", rng.Intn(49)+1),
				ProductSKU:  fmt.Sprintf("SKU-%d", rng.Intn(9000)+1000),
				Quantity:    rng.Intn(4) + 1,
				UnitPrice:   price,
			}
		}

		o := order.Order{
			CustomerID: cust.ID,
			Status:     order.Status(i % 6),
			Total:      order.ComputeTotal(items),
			CreatedAt:  now.AddDate(0, 0, -100+i),
			Items:      items,
		}
		if err := repo.Create(ctx, &o); err != nil {
			return errors.Wrapf(err, "create order %d", i)
		}
	}

	return nil
}
