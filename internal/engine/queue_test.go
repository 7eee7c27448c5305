package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRingQueueFIFOOrder(t *testing.T) {
	q := newRingQueue(4)
	q.push(1)
	q.push(2)
	q.push(3)
	assert.Equal(t, 1, q.pop())
	assert.Equal(t, 2, q.pop())
	q.push(4)
	q.push(5)
	assert.Equal(t, 3, q.pop())
	assert.Equal(t, 4, q.pop())
	assert.Equal(t, 5, q.pop())
	assert.True(t, q.empty())
}

func TestRingQueueResetClears(t *testing.T) {
	q := newRingQueue(2)
	q.push(7)
	q.reset()
	assert.True(t, q.empty())
}
