// Package events collects token change events and animation frames for
// delivery to the UI layer. Producers push from any goroutine; the render
// loop drains in batches.
package events

import (
	"sync"
	"time"

	"github.com/mapforge/engine/internal/model"
)

// Kind identifies what happened to a token.
type Kind string

const (
	TokenCreated       Kind = "token:created"
	TokenUpdated       Kind = "token:updated"
	TokenDeleted       Kind = "token:deleted"
	TokenDuplicated    Kind = "token:duplicated"
	ConditionsChanged  Kind = "token:conditions"
	SelectionChanged   Kind = "selection:changed"
	AnimationFrame     Kind = "animation:frame"
	AnimationComplete  Kind = "animation:complete"
	AnimationCancelled Kind = "animation:cancelled"
)

// Event is a single change record.
type Event struct {
	Kind    Kind
	TokenID model.TokenID
	Token   *model.Token
	Frame   *model.TokenFrame
	At      time.Time
}

// Feed is a bounded thread-safe event buffer. When full, new events are
// dropped and counted rather than blocking the producer.
type Feed struct {
	mu      sync.Mutex
	items   []Event
	cap     int
	dropped uint64
	clock   func() time.Time
}

// DefaultCapacity bounds the feed between drains. A render loop draining
// at 60Hz leaves generous headroom.
const DefaultCapacity = 4096

// NewFeed creates a feed holding at most capacity events. Non-positive
// capacity falls back to DefaultCapacity.
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{
		items: make([]Event, 0, capacity),
		cap:   capacity,
		clock: time.Now,
	}
}

// Push appends events to the feed, dropping any that exceed capacity.
func (f *Feed) Push(events ...Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range events {
		if len(f.items) >= f.cap {
			f.dropped++
			continue
		}
		if e.At.IsZero() {
			e.At = f.clock()
		}
		f.items = append(f.items, e)
	}
}

// PushFrame satisfies the scheduler's frame sink.
func (f *Feed) PushFrame(frame model.TokenFrame) {
	f.Push(Event{
		Kind:    AnimationFrame,
		TokenID: frame.TokenID,
		Frame:   &frame,
	})
}

// Drain returns all buffered events and clears the feed.
func (f *Feed) Drain() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := f.items
	f.items = make([]Event, 0, f.cap)
	return result
}

// Len returns the number of buffered events.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// Dropped returns the count of events discarded because the feed was full.
func (f *Feed) Dropped() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dropped
}

// Clear removes all buffered events without returning them.
func (f *Feed) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = f.items[:0]
}
