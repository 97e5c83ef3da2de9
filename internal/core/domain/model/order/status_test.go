package order_test

import (
	"testing"

	"kitchen/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransitionTo_FullTable(t *testing.T) {
	all := []order.Status{
		order.StatusPending,
		order.StatusConfirmed,
		order.StatusPreparing,
		order.StatusReady,
		order.StatusCompleted,
		order.StatusCancelled,
	}

	allowed := map[order.Status][]order.Status{
		order.StatusPending:   {order.StatusConfirmed, order.StatusCancelled},
		order.StatusConfirmed: {order.StatusPreparing, order.StatusCancelled},
		order.StatusPreparing: {order.StatusReady, order.StatusCancelled},
		order.StatusReady:     {order.StatusCompleted, order.StatusCancelled},
		order.StatusCompleted: {},
		order.StatusCancelled: {},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.StatusPending.IsTerminal())
	assert.False(t, order.StatusConfirmed.IsTerminal())
	assert.False(t, order.StatusPreparing.IsTerminal())
	assert.False(t, order.StatusReady.IsTerminal())
	assert.True(t, order.StatusCompleted.IsTerminal())
	assert.True(t, order.StatusCancelled.IsTerminal())
}

func TestStatus_NextStatuses(t *testing.T) {
	assert.Equal(t, []order.Status{order.StatusConfirmed, order.StatusCancelled},
		order.StatusPending.NextStatuses())
	assert.Empty(t, order.StatusCompleted.NextStatuses())
	assert.Empty(t, order.StatusCancelled.NextStatuses())
	assert.Empty(t, order.StatusUnknown.NextStatuses())
}

func TestStatusFromString(t *testing.T) {
	tests := []struct {
		input string
		want  order.Status
	}{
		{"pending", order.StatusPending},
		{"confirmed", order.StatusConfirmed},
		{"preparing", order.StatusPreparing},
		{"ready", order.StatusReady},
		{"completed", order.StatusCompleted},
		{"cancelled", order.StatusCancelled},
	}

	for _, tt := range tests {
		got, err := order.StatusFromString(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.input, got.String())
	}
}

func TestStatusFromString_Invalid(t *testing.T) {
	for _, input := range []string{"", "unknown", "PENDING", "done"} {
		_, err := order.StatusFromString(input)
		require.Error(t, err, input)
	}
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, order.StatusPending.Validate())
	require.NoError(t, order.StatusCancelled.Validate())
	require.Error(t, order.StatusUnknown.Validate())
	require.Error(t, order.Status(42).Validate())
}

func TestInvalidTransitionError_Message(t *testing.T) {
	err := order.NewInvalidTransitionError(order.StatusPending, order.StatusReady)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "pending")
	assert.Contains(t, err.Error(), "ready")
	assert.Contains(t, err.Error(), "valid next statuses: confirmed, cancelled")
}

func TestInvalidTransitionError_FromTerminal(t *testing.T) {
	err := order.NewInvalidTransitionError(order.StatusCompleted, order.StatusReady)
	assert.Contains(t, err.Error(), "final status")
}
