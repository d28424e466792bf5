package fieldwork

import "time"

// Customer is the owning side of job orders.
type Customer struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
}
