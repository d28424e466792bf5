package lifecycle

import (
	"errors"
	"fmt"

	"fieldops/domain/jobs"
)

// Validation errors returned by the transition validator. These are local
// precondition failures surfaced to the user as actionable messages, never
// wrapped persistence faults.
var (
	// ErrMissingScheduleInfo: assignment requested without a planned date.
	ErrMissingScheduleInfo = errors.New("set a date and time before assigning")

	// ErrNoWorkersAssigned: assignment requested with an empty worker set.
	// Warning-level; callers may retry with ActionForceAssign after an
	// explicit confirmation.
	ErrNoWorkersAssigned = errors.New("no workers assigned")

	// ErrConfirmationRequired: cancellation requested without the
	// caller-supplied confirmation flag.
	ErrConfirmationRequired = errors.New("confirmation required")

	// ErrRoleNotAllowed: the acting user's role may not perform the action.
	ErrRoleNotAllowed = errors.New("action not allowed for this role")
)

// InvalidTransitionError reports a requested action that the status graph
// does not permit from the job's current status.
type InvalidTransitionError struct {
	Action Action
	From   jobs.JobStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("action %q is not allowed while the job is %q", e.Action, e.From)
}

// IsValidationError reports whether err is one of the typed validation
// failures (as opposed to a persistence fault).
func IsValidationError(err error) bool {
	var invalid *InvalidTransitionError
	return errors.Is(err, ErrMissingScheduleInfo) ||
		errors.Is(err, ErrNoWorkersAssigned) ||
		errors.Is(err, ErrConfirmationRequired) ||
		errors.Is(err, ErrRoleNotAllowed) ||
		errors.As(err, &invalid)
}
