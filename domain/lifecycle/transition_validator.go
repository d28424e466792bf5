package lifecycle

import (
	"time"

	"fieldops/domain/jobs"
)

// Role identifies the kind of acting user for role-gated actions.
type Role string

const (
	RoleWorker     Role = "worker"
	RoleBackoffice Role = "backoffice"
)

// Actor is the current user performing a transition, passed explicitly
// instead of being read from ambient session state.
type Actor struct {
	ID   string
	Role Role
}

// TransitionPayload carries the per-action parameters of a transition
// request.
type TransitionPayload struct {
	// PlannedDate is required for assign/force_assign; optional start time
	// for start (defaults to now).
	PlannedDate *time.Time
	// WorkerIDs is the full replacement assignment set for assign.
	WorkerIDs []string
	// Confirmed must be true for cancel.
	Confirmed bool
	// NewStatus is the target for manual_override.
	NewStatus jobs.JobStatus
	// Note is free text recorded with the audit event (checkout notes).
	Note string
}

// JobPatch is the persisted-state change produced by a validated
// transition. Only fields with their Set flag raised are written, mirroring
// the store's partial-patch semantics.
type JobPatch struct {
	Status jobs.JobStatus

	PlannedDate    *time.Time
	SetPlannedDate bool

	Workers    []string
	SetWorkers bool
}

// TransitionValidator validates requested manual status changes and turns
// them into patches. Pure: it never touches storage; the caller persists the
// patch and notifies the lifecycle notifier.
type TransitionValidator struct {
	clock Clock
}

// NewTransitionValidator creates a validator using clock for defaulted
// timestamps.
func NewTransitionValidator(clock Clock) *TransitionValidator {
	if clock == nil {
		clock = SystemClock{}
	}
	return &TransitionValidator{clock: clock}
}

// RequestTransition validates action against job and returns the resulting
// patch. Validation failures are the typed errors in errors.go.
func (v *TransitionValidator) RequestTransition(job *jobs.Job, action Action, payload TransitionPayload, actor Actor) (*JobPatch, error) {
	switch action {
	case ActionAssign, ActionForceAssign:
		return v.assign(job, action, payload)
	case ActionStart:
		return v.start(job, payload)
	case ActionMarkIncomplete:
		return v.simple(job, ActionMarkIncomplete)
	case ActionComplete:
		return v.simple(job, ActionComplete)
	case ActionCancel:
		if !payload.Confirmed {
			return nil, ErrConfirmationRequired
		}
		return v.simple(job, ActionCancel)
	case ActionManualOverride:
		return v.manualOverride(payload, actor)
	default:
		return nil, &InvalidTransitionError{Action: action, From: job.Status}
	}
}

// assign requires a planned date, and a non-empty worker set unless the
// caller explicitly forces through the "confirm anyway" path.
func (v *TransitionValidator) assign(job *jobs.Job, action Action, payload TransitionPayload) (*JobPatch, error) {
	if payload.PlannedDate == nil {
		return nil, ErrMissingScheduleInfo
	}
	if len(payload.WorkerIDs) == 0 && action != ActionForceAssign {
		return nil, ErrNoWorkersAssigned
	}

	// Both assign variants use the same graph edge.
	target, err := targetStatus(job.Status, ActionAssign)
	if err != nil {
		return nil, err
	}

	return &JobPatch{
		Status:         target,
		PlannedDate:    payload.PlannedDate,
		SetPlannedDate: true,
		Workers:        payload.WorkerIDs,
		SetWorkers:     true,
	}, nil
}

// start moves the job to in_corso. A job started without a planned date gets
// the start instant as its planned date so later lateness checks have an
// anchor.
func (v *TransitionValidator) start(job *jobs.Job, payload TransitionPayload) (*JobPatch, error) {
	target, err := targetStatus(job.Status, ActionStart)
	if err != nil {
		return nil, err
	}

	at := payload.PlannedDate
	if at == nil {
		now := v.clock.Now()
		at = &now
	}

	patch := &JobPatch{Status: target}
	if job.PlannedDate == nil {
		patch.PlannedDate = at
		patch.SetPlannedDate = true
	}
	return patch, nil
}

// simple handles actions with no payload beyond the graph check.
func (v *TransitionValidator) simple(job *jobs.Job, action Action) (*JobPatch, error) {
	target, err := targetStatus(job.Status, action)
	if err != nil {
		return nil, err
	}
	return &JobPatch{Status: target}, nil
}

// manualOverride is the administrative escape hatch: any target status, no
// graph check, but backoffice-only and always audited by the caller.
func (v *TransitionValidator) manualOverride(payload TransitionPayload, actor Actor) (*JobPatch, error) {
	if actor.Role != RoleBackoffice {
		return nil, ErrRoleNotAllowed
	}
	if !payload.NewStatus.IsValid() {
		return nil, &InvalidTransitionError{Action: ActionManualOverride, From: payload.NewStatus}
	}
	return &JobPatch{Status: payload.NewStatus}, nil
}
