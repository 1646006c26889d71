// Package handler maps HTTP requests to service calls and serializes
// responses. Business rules live in the order service; handlers stay thin.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/VictorHDev1/order-api/internal/domain/customer"
	"github.com/VictorHDev1/order-api/internal/domain/order"
)

// Handler serves the order-management HTTP API.
type Handler struct {
	orders    *order.Service
	customers customer.Repository
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(orders *order.Service, customers customer.Repository) *Handler {
	return &Handler{
		orders:    orders,
		customers: customers,
	}
}

// Routes returns the chi router for the API surface. The caller mounts it
// under the desired prefix.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.ListOrders)
		r.Post("/", h.CreateOrder)
		r.Get("/reports", h.GetReport)
		r.Get("/{id}", h.GetOrder)
		r.Patch("/{id}/status", h.UpdateOrderStatus)
		r.Delete("/{id}", h.DeleteOrder)
	})

	r.Route("/customers", func(r chi.Router) {
		r.Post("/", h.CreateCustomer)
		r.Get("/{id}", h.GetCustomer)
		r.Delete("/{id}", h.DeleteCustomer)
	})

	return r
}

// idParam parses the {id} route parameter. A non-numeric or non-positive
// value reports false after writing a 400 response.
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func decodeBody(r *http.Request, v any) error {
	defer func() { _ = r.Body.Close() }()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{
		Code:    status,
		Message: msg,
	})
}
