// Package billing holds the single implementation of payment aggregation,
// shared by job, order, and weekly-report views.
package billing

import "fieldops/domain/jobs"

// Summary is the aggregate of a set of payment rows.
type Summary struct {
	// Expected is the sum of all amounts.
	Expected float64
	// Collected is the sum of received money: the full amount for collected
	// rows, the collected amount for partial rows.
	Collected float64
	// Pending is Expected - Collected. It may be negative when a partial
	// row over-collected; over-collections are deliberately not clamped so
	// they stay visible to reporting.
	Pending float64
}

// Summarize aggregates payment rows into expected/collected/pending totals.
// Pure, no I/O.
func Summarize(payments []*jobs.Payment) Summary {
	var s Summary
	for _, p := range payments {
		s.Expected += p.Amount
		switch {
		case p.Collected:
			s.Collected += p.Amount
		case p.Partial:
			s.Collected += p.CollectedAmount
		}
	}
	s.Pending = s.Expected - s.Collected
	return s
}

// Merge combines two summaries, for order- and week-level rollups.
func Merge(a, b Summary) Summary {
	return Summary{
		Expected:  a.Expected + b.Expected,
		Collected: a.Collected + b.Collected,
		Pending:   a.Pending + b.Pending,
	}
}
