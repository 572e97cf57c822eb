package redis

import (
	"testing"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/stretchr/testify/assert"
)

func TestNewCircuitBreakerHook_StartsClosed(t *testing.T) {
	hook := NewCircuitBreakerHook()

	assert.Equal(t, circuitbreaker.ClosedState, hook.GetState())
}

func TestStateToFloat(t *testing.T) {
	assert.Equal(t, 0.0, stateToFloat(circuitbreaker.ClosedState))
	assert.Equal(t, 1.0, stateToFloat(circuitbreaker.HalfOpenState))
	assert.Equal(t, 2.0, stateToFloat(circuitbreaker.OpenState))
}
