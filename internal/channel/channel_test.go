package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffered_SendReceive(t *testing.T) {
	ch := NewBuffered[int](2)

	ch.Send(1)
	ch.Send(2)
	assert.Equal(t, 2, ch.Len())

	assert.Equal(t, 1, <-ch.Receive())
	assert.Equal(t, 2, <-ch.Receive())
	assert.Equal(t, 0, ch.Len())
}

func TestBuffered_TrySend_Full(t *testing.T) {
	ch := NewBuffered[string](1)

	require.True(t, ch.TrySend("first"))
	assert.False(t, ch.TrySend("second"), "full buffer should reject")

	assert.Equal(t, "first", <-ch.Receive())
	assert.True(t, ch.TrySend("second"))
}

func TestBuffered_CloseDrains(t *testing.T) {
	ch := NewBuffered[int](4)
	ch.Send(7)
	ch.Close()

	got, ok := <-ch.Receive()
	require.True(t, ok)
	assert.Equal(t, 7, got)

	_, ok = <-ch.Receive()
	assert.False(t, ok, "closed channel should report done after drain")
}

func TestUnbuffered_TrySend_NoReceiver(t *testing.T) {
	ch := NewUnbuffered[int]()
	assert.False(t, ch.TrySend(1), "no receiver waiting")
	assert.Equal(t, 0, ch.Len())
}

func TestUnbuffered_SendReceive(t *testing.T) {
	ch := NewUnbuffered[int]()

	done := make(chan int)
	go func() {
		done <- <-ch.Receive()
	}()

	ch.Send(42)
	assert.Equal(t, 42, <-done)
}
