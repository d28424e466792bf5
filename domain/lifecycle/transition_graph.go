package lifecycle

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"

	"fieldops/domain/jobs"
)

// Action is a requested manual lifecycle transition.
type Action string

const (
	ActionAssign         Action = "assign"
	ActionForceAssign    Action = "force_assign"
	ActionStart          Action = "start"
	ActionMarkIncomplete Action = "mark_incomplete"
	ActionComplete       Action = "complete"
	ActionCancel         Action = "cancel"
	ActionManualOverride Action = "manual_override"
)

// ParseAction converts a raw string to an Action, rejecting unknown values.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	switch a {
	case ActionAssign, ActionForceAssign, ActionStart, ActionMarkIncomplete,
		ActionComplete, ActionCancel, ActionManualOverride:
		return a, nil
	}
	return "", fmt.Errorf("unknown transition action %q", s)
}

// graphContext carries no data; the graph is static per status.
type graphContext struct{}

// newStatusMachine builds the allowed-transition graph rooted at the job's
// current status. force_assign shares the assign edge and manual_override
// bypasses the graph entirely, so neither appears here.
func newStatusMachine(initial jobs.JobStatus) (*statekit.Interpreter[graphContext], error) {
	builder := statekit.NewMachine[graphContext]("job-status").
		WithInitial(statekit.StateID(initial)).
		WithContext(graphContext{})

	builder.State(statekit.StateID(jobs.StatusAwaitingSchedule)).
		On(statekit.EventType(ActionAssign)).Target(statekit.StateID(jobs.StatusAssigned)).
		On(statekit.EventType(ActionStart)).Target(statekit.StateID(jobs.StatusInProgress)).
		On(statekit.EventType(ActionCancel)).Target(statekit.StateID(jobs.StatusCancelled)).
		Done()

	builder.State(statekit.StateID(jobs.StatusAssigned)).
		On(statekit.EventType(ActionStart)).Target(statekit.StateID(jobs.StatusInProgress)).
		On(statekit.EventType(ActionComplete)).Target(statekit.StateID(jobs.StatusCompleted)).
		On(statekit.EventType(ActionMarkIncomplete)).Target(statekit.StateID(jobs.StatusIncomplete)).
		On(statekit.EventType(ActionCancel)).Target(statekit.StateID(jobs.StatusCancelled)).
		Done()

	builder.State(statekit.StateID(jobs.StatusInProgress)).
		On(statekit.EventType(ActionAssign)).Target(statekit.StateID(jobs.StatusAssigned)).
		On(statekit.EventType(ActionComplete)).Target(statekit.StateID(jobs.StatusCompleted)).
		On(statekit.EventType(ActionMarkIncomplete)).Target(statekit.StateID(jobs.StatusIncomplete)).
		On(statekit.EventType(ActionCancel)).Target(statekit.StateID(jobs.StatusCancelled)).
		Done()

	builder.State(statekit.StateID(jobs.StatusLate)).
		On(statekit.EventType(ActionAssign)).Target(statekit.StateID(jobs.StatusAssigned)).
		On(statekit.EventType(ActionStart)).Target(statekit.StateID(jobs.StatusInProgress)).
		On(statekit.EventType(ActionComplete)).Target(statekit.StateID(jobs.StatusCompleted)).
		On(statekit.EventType(ActionMarkIncomplete)).Target(statekit.StateID(jobs.StatusIncomplete)).
		On(statekit.EventType(ActionCancel)).Target(statekit.StateID(jobs.StatusCancelled)).
		Done()

	// Incomplete holds until reassigned (or cancelled).
	builder.State(statekit.StateID(jobs.StatusIncomplete)).
		On(statekit.EventType(ActionAssign)).Target(statekit.StateID(jobs.StatusAssigned)).
		On(statekit.EventType(ActionCancel)).Target(statekit.StateID(jobs.StatusCancelled)).
		Done()

	// Terminal states have no outgoing edges.
	builder.State(statekit.StateID(jobs.StatusCompleted)).Done()
	builder.State(statekit.StateID(jobs.StatusCancelled)).Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build status machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()
	return interpreter, nil
}

// targetStatus runs the action through the graph from the given status and
// returns the resulting status, or an InvalidTransitionError when the graph
// has no matching edge.
func targetStatus(from jobs.JobStatus, action Action) (jobs.JobStatus, error) {
	// Rescheduling an already assigned job stays assegnato; the interpreter
	// cannot distinguish a rejected event from a self transition, so the
	// self-loop is short-circuited here.
	if action == ActionAssign && from == jobs.StatusAssigned {
		return jobs.StatusAssigned, nil
	}

	interpreter, err := newStatusMachine(from)
	if err != nil {
		return "", err
	}

	interpreter.Send(statekit.Event{Type: statekit.EventType(action)})
	after := jobs.JobStatus(interpreter.State().Value)

	if after == from {
		return "", &InvalidTransitionError{Action: action, From: from}
	}
	return after, nil
}
