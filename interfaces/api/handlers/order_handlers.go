package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fieldops/application"
	"fieldops/interfaces/api/presenters"
	"fieldops/logging"
)

// OrderHandlers handles customer and job order endpoints.
type OrderHandlers struct {
	orderService application.OrderService
	presenter    *presenters.FieldworkPresenter
	logger       *logging.Logger
}

// NewOrderHandlers creates a new order handlers instance.
func NewOrderHandlers(orderService application.OrderService, presenter *presenters.FieldworkPresenter) *OrderHandlers {
	return &OrderHandlers{
		orderService: orderService,
		presenter:    presenter,
		logger:       logging.Default().WithComponent("order_handler"),
	}
}

type createCustomerRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// CreateCustomer registers a customer.
func (h *OrderHandlers) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		badRequest(w, "missing name")
		return
	}
	customer, err := h.orderService.CreateCustomer(r.Context(), req.Name, req.Address, req.Phone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.presenter.FormatCustomer(customer))
}

// GetCustomer returns one customer.
func (h *OrderHandlers) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.orderService.GetCustomer(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.presenter.FormatCustomer(customer))
}

// ListCustomers lists all customers.
func (h *OrderHandlers) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.orderService.ListCustomers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.presenter.FormatCustomers(customers))
}

// ListCustomerOrders lists a customer's orders.
func (h *OrderHandlers) ListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListOrdersByCustomer(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.presenter.FormatOrders(orders))
}

type createOrderRequest struct {
	CustomerID string `json:"customer_id"`
	Title      string `json:"title"`
	Notes      string `json:"notes"`
}

// CreateOrder opens a job order for a customer.
func (h *OrderHandlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.CustomerID == "" {
		badRequest(w, "missing customer_id")
		return
	}
	order, err := h.orderService.CreateOrder(r.Context(), application.NewOrderParams{
		CustomerID: req.CustomerID,
		Title:      req.Title,
		Notes:      req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.presenter.FormatOrder(order))
}

// GetOrder returns one order.
func (h *OrderHandlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.GetOrder(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.presenter.FormatOrder(order))
}

// ListOrders lists all orders.
func (h *OrderHandlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListOrders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.presenter.FormatOrders(orders))
}

type updateNotesRequest struct {
	Notes string `json:"notes"`
}

// UpdateOrderNotes replaces an order's notes.
func (h *OrderHandlers) UpdateOrderNotes(w http.ResponseWriter, r *http.Request) {
	var req updateNotesRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	orderID := chi.URLParam(r, "orderID")
	if err := h.orderService.UpdateOrderNotes(r.Context(), orderID, req.Notes); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteOrder removes an order with no jobs.
func (h *OrderHandlers) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orderService.DeleteOrder(r.Context(), chi.URLParam(r, "orderID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
