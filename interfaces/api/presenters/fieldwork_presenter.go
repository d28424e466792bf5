package presenters

import (
	"time"

	"fieldops/domain/fieldwork"
)

// CustomerView is the JSON representation of a customer.
type CustomerView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"created_at"`
}

// OrderView is the JSON representation of a job order.
type OrderView struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Title      string `json:"title"`
	Notes      string `json:"notes,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// WorkerView is the JSON representation of a worker.
type WorkerView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone,omitempty"`
	UserAccountID string `json:"user_account_id,omitempty"`
}

// FieldworkPresenter formats customers, orders and workers for API responses.
type FieldworkPresenter struct{}

// NewFieldworkPresenter creates a new fieldwork presenter.
func NewFieldworkPresenter() *FieldworkPresenter {
	return &FieldworkPresenter{}
}

// FormatCustomer maps a customer to its view model.
func (p *FieldworkPresenter) FormatCustomer(c *fieldwork.Customer) CustomerView {
	return CustomerView{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

// FormatCustomers maps a customer list, never returning a nil slice.
func (p *FieldworkPresenter) FormatCustomers(list []*fieldwork.Customer) []CustomerView {
	views := make([]CustomerView, 0, len(list))
	for _, c := range list {
		views = append(views, p.FormatCustomer(c))
	}
	return views
}

// FormatOrder maps an order to its view model.
func (p *FieldworkPresenter) FormatOrder(o *fieldwork.JobOrder) OrderView {
	return OrderView{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Title:      o.Title,
		Notes:      o.Notes,
		CreatedAt:  o.CreatedAt.Format(time.RFC3339),
	}
}

// FormatOrders maps an order list, never returning a nil slice.
func (p *FieldworkPresenter) FormatOrders(list []*fieldwork.JobOrder) []OrderView {
	views := make([]OrderView, 0, len(list))
	for _, o := range list {
		views = append(views, p.FormatOrder(o))
	}
	return views
}

// FormatWorker maps a worker to its view model.
func (p *FieldworkPresenter) FormatWorker(w *fieldwork.Worker) WorkerView {
	return WorkerView{
		ID:            w.ID,
		Name:          w.Name,
		Phone:         w.Phone,
		UserAccountID: w.UserAccountID,
	}
}

// FormatWorkers maps a worker list, never returning a nil slice.
func (p *FieldworkPresenter) FormatWorkers(list []*fieldwork.Worker) []WorkerView {
	views := make([]WorkerView, 0, len(list))
	for _, w := range list {
		views = append(views, p.FormatWorker(w))
	}
	return views
}
