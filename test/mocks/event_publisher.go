package mocks

import (
	"github.com/stretchr/testify/mock"

	"fieldops/domain/events"
)

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishJobStatusChanged(event events.JobStatusChangedEvent) {
	m.Called(event)
}

func (m *MockEventPublisher) PublishJobAssigned(event events.JobAssignedEvent) {
	m.Called(event)
}

func (m *MockEventPublisher) PublishJobCheckedOut(event events.JobCheckedOutEvent) {
	m.Called(event)
}

func (m *MockEventPublisher) PublishSweepCompleted(event events.SweepCompletedEvent) {
	m.Called(event)
}
