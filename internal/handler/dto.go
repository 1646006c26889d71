package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/VictorHDev1/order-api/internal/domain/customer"
	"github.com/VictorHDev1/order-api/internal/domain/order"
)

// Wire DTOs. Field names match the original API contract; monetary response
// fields are JSON numbers, request prices are parsed as exact decimals.

type createOrderRequest struct {
	CustomerID int64                    `json:"customerId"`
	Items      []createOrderItemRequest `json:"items"`
}

type createOrderItemRequest struct {
	ProductName string          `json:"productName"`
	ProductSku  string          `json:"productSku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type updateOrderStatusRequest struct {
	Status *int `json:"status"`
}

type orderResponse struct {
	ID           int64               `json:"id"`
	OrderNumber  string              `json:"orderNumber"`
	CustomerID   int64               `json:"customerId"`
	CustomerName string              `json:"customerName"`
	Status       int                 `json:"status"`
	TotalAmount  float64             `json:"totalAmount"`
	CreatedAt    time.Time           `json:"createdAt"`
	Items        []orderItemResponse `json:"items"`
}

type orderItemResponse struct {
	ID          int64   `json:"id"`
	ProductName string  `json:"productName"`
	ProductSku  string  `json:"productSku"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

type orderSummaryResponse struct {
	ID           int64     `json:"id"`
	OrderNumber  string    `json:"orderNumber"`
	CustomerName string    `json:"customerName"`
	Status       int       `json:"status"`
	TotalAmount  float64   `json:"totalAmount"`
	ItemCount    int       `json:"itemCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

type orderReportResponse struct {
	TotalOrders    int                    `json:"totalOrders"`
	TotalRevenue   float64                `json:"totalRevenue"`
	OrdersByStatus map[string]int         `json:"ordersByStatus"`
	TopCustomers   []customerSpendSummary `json:"topCustomers"`
}

type customerSpendSummary struct {
	CustomerID   int64   `json:"customerId"`
	CustomerName string  `json:"customerName"`
	OrderCount   int     `json:"orderCount"`
	TotalSpent   float64 `json:"totalSpent"`
}

type createCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type customerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func toOrderResponse(o *order.Order) orderResponse {
	items := make([]orderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemResponse{
			ID:          it.ID,
			ProductName: it.ProductName,
			ProductSku:  it.ProductSKU,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.InexactFloat64(),
			TotalPrice:  it.LineTotal().InexactFloat64(),
		}
	}
	return orderResponse{
		ID:           o.ID,
		OrderNumber:  o.Number,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		Status:       int(o.Status),
		TotalAmount:  o.Total.InexactFloat64(),
		CreatedAt:    o.CreatedAt,
		Items:        items,
	}
}

func toOrderSummaryResponse(s order.Summary) orderSummaryResponse {
	return orderSummaryResponse{
		ID:           s.ID,
		OrderNumber:  s.Number,
		CustomerName: s.CustomerName,
		Status:       int(s.Status),
		TotalAmount:  s.Total.InexactFloat64(),
		ItemCount:    s.ItemCount,
		CreatedAt:    s.CreatedAt,
	}
}

func toReportResponse(rep *order.Report) orderReportResponse {
	top := make([]customerSpendSummary, len(rep.TopCustomers))
	for i, cs := range rep.TopCustomers {
		top[i] = customerSpendSummary{
			CustomerID:   cs.CustomerID,
			CustomerName: cs.CustomerName,
			OrderCount:   cs.OrderCount,
			TotalSpent:   cs.TotalSpent.InexactFloat64(),
		}
	}
	return orderReportResponse{
		TotalOrders:    rep.TotalOrders,
		TotalRevenue:   rep.TotalRevenue.InexactFloat64(),
		OrdersByStatus: rep.OrdersByStatus,
		TopCustomers:   top,
	}
}

func toCustomerResponse(c *customer.Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}
