//go:build integration

package integration

import (
	"net/http"
	"testing"
)

var statusNames = map[string]bool{
	"Pending":    true,
	"Confirmed":  true,
	"Processing": true,
	"Shipped":    true,
	"Delivered":  true,
	"Cancelled":  true,
}

func TestReport(t *testing.T) {
	resp := doGet(t, "/api/orders/reports")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	report := decodeJSON[reportResponse](t, resp)

	// The seed creates 100 orders; other tests may add more.
	if report.TotalOrders < 100 {
		t.Errorf("total orders: got %d, want >= 100", report.TotalOrders)
	}
	if report.TotalRevenue <= 0 {
		t.Errorf("total revenue: got %v, want > 0", report.TotalRevenue)
	}

	sum := 0
	for name, count := range report.OrdersByStatus {
		if !statusNames[name] {
			t.Errorf("unexpected status key %q", name)
		}
		sum += count
	}
	if sum != report.TotalOrders {
		t.Errorf("status counts sum to %d, total is %d", sum, report.TotalOrders)
	}

	// The seed creates 10 customers with orders, so the top list is full.
	if len(report.TopCustomers) != 5 {
		t.Fatalf("top customers: got %d, want 5", len(report.TopCustomers))
	}
	for i := 1; i < len(report.TopCustomers); i++ {
		if report.TopCustomers[i].TotalSpent > report.TopCustomers[i-1].TotalSpent {
			t.Errorf("top customers not sorted by totalSpent desc at index %d", i)
		}
	}
	for _, c := range report.TopCustomers {
		if c.CustomerName == "" {
			t.Errorf("customer %d has empty name", c.CustomerID)
		}
		if c.OrderCount < 1 {
			t.Errorf("customer %d has order count %d", c.CustomerID, c.OrderCount)
		}
	}
}
