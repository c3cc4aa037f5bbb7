package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapforge/engine/internal/model"
)

func TestFeed_PushDrain(t *testing.T) {
	f := NewFeed(16)

	f.Push(Event{Kind: TokenCreated, TokenID: "t1"})
	f.Push(Event{Kind: TokenUpdated, TokenID: "t1"}, Event{Kind: TokenDeleted, TokenID: "t2"})

	require.Equal(t, 3, f.Len())

	got := f.Drain()
	require.Len(t, got, 3)
	assert.Equal(t, TokenCreated, got[0].Kind)
	assert.Equal(t, TokenUpdated, got[1].Kind)
	assert.Equal(t, TokenDeleted, got[2].Kind)
	assert.False(t, got[0].At.IsZero(), "timestamp filled in on push")

	assert.Equal(t, 0, f.Len())
	assert.Empty(t, f.Drain())
}

func TestFeed_DropsWhenFull(t *testing.T) {
	f := NewFeed(2)

	f.Push(Event{Kind: TokenCreated}, Event{Kind: TokenCreated}, Event{Kind: TokenCreated})

	assert.Equal(t, 2, f.Len())
	assert.Equal(t, uint64(1), f.Dropped())

	// capacity frees up after a drain
	f.Drain()
	f.Push(Event{Kind: TokenUpdated})
	assert.Equal(t, 1, f.Len())
	assert.Equal(t, uint64(1), f.Dropped())
}

func TestFeed_PushFrame(t *testing.T) {
	f := NewFeed(16)

	f.PushFrame(model.TokenFrame{TokenID: "t1", Progress: 0.5})

	got := f.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, AnimationFrame, got[0].Kind)
	assert.Equal(t, model.TokenID("t1"), got[0].TokenID)
	require.NotNil(t, got[0].Frame)
	assert.Equal(t, 0.5, got[0].Frame.Progress)
}

func TestFeed_ConcurrentPush(t *testing.T) {
	f := NewFeed(10000)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.Push(Event{Kind: TokenUpdated, TokenID: "t"})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1000, f.Len())
	assert.Equal(t, uint64(0), f.Dropped())
}

func TestFeed_Defaults(t *testing.T) {
	f := NewFeed(0)
	assert.Equal(t, DefaultCapacity, f.cap)

	f.Push(Event{Kind: TokenCreated})
	f.Clear()
	assert.Equal(t, 0, f.Len())
}
