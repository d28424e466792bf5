package jobs

import (
	"fmt"
	"time"
)

// Payment is one expected payment row for a job.
//
// Collected and Partial are mutually exclusive: Collected means the full
// amount was received, Partial means 0 < CollectedAmount < Amount was
// received so far.
type Payment struct {
	ID              string
	JobID           string
	Amount          float64
	Collected       bool
	Partial         bool
	CollectedAmount float64
	DueDate         *time.Time
	Note            string
	CreatedAt       time.Time
}

// Validate checks the collected/partial exclusivity invariant.
func (p *Payment) Validate() error {
	if p.Amount < 0 {
		return fmt.Errorf("payment amount must not be negative, got %.2f", p.Amount)
	}
	if p.Collected && p.Partial {
		return fmt.Errorf("payment %s: collected and partial are mutually exclusive", p.ID)
	}
	if p.Partial && p.CollectedAmount <= 0 {
		return fmt.Errorf("payment %s: partial payment requires a positive collected amount", p.ID)
	}
	if !p.Partial && !p.Collected && p.CollectedAmount != 0 {
		return fmt.Errorf("payment %s: collected amount set without collected or partial flag", p.ID)
	}
	return nil
}
