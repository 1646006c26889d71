package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/VictorHDev1/order-api/internal/domain/customer"
	"github.com/VictorHDev1/order-api/internal/domain/order"
)

// CreateOrder handles POST /orders.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]order.CreateItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = order.CreateItem{
			ProductName: it.ProductName,
			ProductSKU:  it.ProductSku,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}

	o, err := h.orders.Create(r.Context(), order.CreateRequest{
		CustomerID: req.CustomerID,
		Items:      items,
	})
	if err != nil {
		h.writeCreateOrderError(w, r, err)
		return
	}

	zctx.From(r.Context()).Info("Order created",
		zap.Int64("order_id", o.ID),
		zap.String("order_number", o.Number),
		zap.Int64("customer_id", o.CustomerID),
	)

	w.Header().Set("Location", fmt.Sprintf("/api/orders/%d", o.ID))
	writeJSON(w, http.StatusCreated, toOrderResponse(o))
}

// writeCreateOrderError maps order-creation failures to HTTP statuses:
// bad customer and malformed items are 400, number and concurrent-delete
// conflicts are 409 and safe to retry.
func (h *Handler) writeCreateOrderError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		iqErr *order.InvalidQuantityError
		ipErr *order.InvalidUnitPriceError
	)
	switch {
	case errors.Is(err, customer.ErrNotFound):
		writeError(w, http.StatusBadRequest, "Customer not found")
	case errors.Is(err, order.ErrEmptyItems):
		writeError(w, http.StatusBadRequest, "Order must have at least one item")
	case errors.As(err, &iqErr):
		writeError(w, http.StatusBadRequest, iqErr.Error())
	case errors.As(err, &ipErr):
		writeError(w, http.StatusBadRequest, ipErr.Error())
	case errors.Is(err, order.ErrNumberConflict):
		writeError(w, http.StatusConflict, "Order number already exists")
	case errors.Is(err, order.ErrCustomerConflict):
		writeError(w, http.StatusConflict, "Customer was deleted concurrently")
	default:
		zctx.From(r.Context()).Error("Create order failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// GetOrder handles GET /orders/{id}.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	o, err := h.orders.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Order not found")
			return
		}
		zctx.From(r.Context()).Error("Get order failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

// ListOrders handles GET /orders with 1-based page and pageSize query
// parameters.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "pageSize", order.DefaultPageSize)

	summaries, err := h.orders.List(r.Context(), page, pageSize)
	if err != nil {
		zctx.From(r.Context()).Error("List orders failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := make([]orderSummaryResponse, len(summaries))
	for i, s := range summaries {
		resp[i] = toOrderSummaryResponse(s)
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpdateOrderStatus handles PATCH /orders/{id}/status.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req updateOrderStatusRequest
	if err := decodeBody(r, &req); err != nil || req.Status == nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status, err := order.ParseStatus(*req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order status")
		return
	}

	if err := h.orders.UpdateStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Order not found")
			return
		}
		zctx.From(r.Context()).Error("Update order status failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteOrder handles DELETE /orders/{id}.
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.orders.Delete(r.Context(), id); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Order not found")
			return
		}
		zctx.From(r.Context()).Error("Delete order failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetReport handles GET /orders/reports.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.orders.Report(r.Context())
	if err != nil {
		zctx.From(r.Context()).Error("Report failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toReportResponse(rep))
}

// queryInt parses an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
