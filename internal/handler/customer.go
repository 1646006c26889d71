package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/VictorHDev1/order-api/internal/domain/customer"
)

// CreateCustomer handles POST /customers. Customers are immutable once
// created; there is no update route.
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	c := &customer.Customer{
		Name:      req.Name,
		Email:     req.Email,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.customers.Create(r.Context(), c); err != nil {
		zctx.From(r.Context()).Error("Create customer failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/customers/%d", c.ID))
	writeJSON(w, http.StatusCreated, toCustomerResponse(c))
}

// GetCustomer handles GET /customers/{id}.
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	c, err := h.customers.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Customer not found")
			return
		}
		zctx.From(r.Context()).Error("Get customer failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toCustomerResponse(c))
}

// DeleteCustomer handles DELETE /customers/{id}. Deletion is rejected with
// 409 while the customer still owns orders.
func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.customers.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, customer.ErrNotFound):
			writeError(w, http.StatusNotFound, "Customer not found")
		case errors.Is(err, customer.ErrHasOrders):
			writeError(w, http.StatusConflict, "Customer has orders")
		default:
			zctx.From(r.Context()).Error("Delete customer failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
