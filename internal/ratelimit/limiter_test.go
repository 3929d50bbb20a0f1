package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientLimiter_BurstExhaustion(t *testing.T) {
	l := NewClientLimiter(1, 2)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
}

func TestClientLimiter_KeysAreIndependent(t *testing.T) {
	l := NewClientLimiter(1, 1)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestClientLimiter_Defaults(t *testing.T) {
	l := NewClientLimiter(0, 0)
	assert.True(t, l.Allow("10.0.0.1"))
}
