package fieldwork

import "time"

// JobOrder (commessa) groups jobs for one customer visit/contract.
//
// An order may not be deleted while any job references it; the guard lives
// at the application boundary, not in storage.
type JobOrder struct {
	ID         string
	CustomerID string
	Title      string
	Notes      string
	CreatedAt  time.Time
}
