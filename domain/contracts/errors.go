package contracts

import "errors"

// Common errors for domain contracts
var (
	// ErrNotFound occurs when the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrOrderHasJobs occurs when deleting an order that jobs still reference.
	ErrOrderHasJobs = errors.New("order still has jobs")

	// ErrJobHasCheckoutEvents occurs when deleting a job with checkout history.
	ErrJobHasCheckoutEvents = errors.New("job has checkout events")
)
