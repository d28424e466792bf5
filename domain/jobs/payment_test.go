package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayment_Validate(t *testing.T) {
	tests := []struct {
		name    string
		payment Payment
		wantErr bool
	}{
		{"plain expected payment", Payment{Amount: 100}, false},
		{"collected in full", Payment{Amount: 100, Collected: true}, false},
		{"partial with collected amount", Payment{Amount: 100, Partial: true, CollectedAmount: 40}, false},
		{"negative amount", Payment{Amount: -1}, true},
		{"collected and partial together", Payment{Amount: 100, Collected: true, Partial: true, CollectedAmount: 40}, true},
		{"partial without collected amount", Payment{Amount: 100, Partial: true}, true},
		{"collected amount without flags", Payment{Amount: 100, CollectedAmount: 40}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payment.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJobStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusIncomplete.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusAssigned.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.False(t, StatusLate.IsTerminal())
	assert.False(t, StatusAwaitingSchedule.IsTerminal())
}
