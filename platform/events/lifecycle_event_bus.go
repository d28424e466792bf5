package events

import (
	"sync"

	"fieldops/domain/events"
	"fieldops/logging"
)

// LifecycleEventBus provides type-safe event publishing and subscription for
// job lifecycle events. Handlers run asynchronously so publishers never
// block on consumers.
type LifecycleEventBus struct {
	mu     sync.RWMutex
	logger *logging.Logger

	statusChangedHandlers  []func(events.JobStatusChangedEvent)
	jobAssignedHandlers    []func(events.JobAssignedEvent)
	jobCheckedOutHandlers  []func(events.JobCheckedOutEvent)
	sweepCompletedHandlers []func(events.SweepCompletedEvent)
}

// NewLifecycleEventBus creates a new typed lifecycle event bus
func NewLifecycleEventBus() *LifecycleEventBus {
	return &LifecycleEventBus{
		logger:                 logging.Default().WithComponent("lifecycle_event_bus"),
		statusChangedHandlers:  make([]func(events.JobStatusChangedEvent), 0),
		jobAssignedHandlers:    make([]func(events.JobAssignedEvent), 0),
		jobCheckedOutHandlers:  make([]func(events.JobCheckedOutEvent), 0),
		sweepCompletedHandlers: make([]func(events.SweepCompletedEvent), 0),
	}
}

// Subscribe methods for each event type

func (bus *LifecycleEventBus) OnJobStatusChanged(handler func(events.JobStatusChangedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.statusChangedHandlers = append(bus.statusChangedHandlers, handler)
}

func (bus *LifecycleEventBus) OnJobAssigned(handler func(events.JobAssignedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.jobAssignedHandlers = append(bus.jobAssignedHandlers, handler)
}

func (bus *LifecycleEventBus) OnJobCheckedOut(handler func(events.JobCheckedOutEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.jobCheckedOutHandlers = append(bus.jobCheckedOutHandlers, handler)
}

func (bus *LifecycleEventBus) OnSweepCompleted(handler func(events.SweepCompletedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.sweepCompletedHandlers = append(bus.sweepCompletedHandlers, handler)
}

// Publish methods for each event type

func (bus *LifecycleEventBus) PublishJobStatusChanged(event events.JobStatusChangedEvent) {
	bus.mu.RLock()
	handlers := make([]func(events.JobStatusChangedEvent), len(bus.statusChangedHandlers))
	copy(handlers, bus.statusChangedHandlers)
	bus.mu.RUnlock()

	for _, handler := range handlers {
		go func(h func(events.JobStatusChangedEvent)) {
			defer func() {
				if r := recover(); r != nil {
					bus.logger.Error("Event handler panicked in JobStatusChanged",
						"job_id", event.JobID,
						"panic", r)
				}
			}()
			h(event)
		}(handler)
	}
}

func (bus *LifecycleEventBus) PublishJobAssigned(event events.JobAssignedEvent) {
	bus.mu.RLock()
	handlers := make([]func(events.JobAssignedEvent), len(bus.jobAssignedHandlers))
	copy(handlers, bus.jobAssignedHandlers)
	bus.mu.RUnlock()

	for _, handler := range handlers {
		go func(h func(events.JobAssignedEvent)) {
			defer func() {
				if r := recover(); r != nil {
					bus.logger.Error("Event handler panicked in JobAssigned",
						"job_id", event.JobID,
						"panic", r)
				}
			}()
			h(event)
		}(handler)
	}
}

func (bus *LifecycleEventBus) PublishJobCheckedOut(event events.JobCheckedOutEvent) {
	bus.mu.RLock()
	handlers := make([]func(events.JobCheckedOutEvent), len(bus.jobCheckedOutHandlers))
	copy(handlers, bus.jobCheckedOutHandlers)
	bus.mu.RUnlock()

	for _, handler := range handlers {
		go func(h func(events.JobCheckedOutEvent)) {
			defer func() {
				if r := recover(); r != nil {
					bus.logger.Error("Event handler panicked in JobCheckedOut",
						"job_id", event.JobID,
						"panic", r)
				}
			}()
			h(event)
		}(handler)
	}
}

func (bus *LifecycleEventBus) PublishSweepCompleted(event events.SweepCompletedEvent) {
	bus.mu.RLock()
	handlers := make([]func(events.SweepCompletedEvent), len(bus.sweepCompletedHandlers))
	copy(handlers, bus.sweepCompletedHandlers)
	bus.mu.RUnlock()

	for _, handler := range handlers {
		go func(h func(events.SweepCompletedEvent)) {
			defer func() {
				if r := recover(); r != nil {
					bus.logger.Error("Event handler panicked in SweepCompleted",
						"applied", len(event.Applied),
						"panic", r)
				}
			}()
			h(event)
		}(handler)
	}
}
