package cache

import (
	"sync"
)

// Store caches values by key to avoid repeated backend reads. Latency in
// these lookups is critical to keep template spawns off the database path.
type Store[K comparable, V any] struct {
	m     sync.Mutex
	items map[K]V
}

func NewStore[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{
		items: make(map[K]V),
	}
}

func (s *Store[K, V]) Reset() {
	s.m.Lock()
	defer s.m.Unlock()
	s.items = make(map[K]V)
}

func (s *Store[K, V]) Get(key K) (V, bool) {
	s.m.Lock()
	defer s.m.Unlock()
	if v, ok := s.items[key]; ok {
		return v, true
	}
	var zero V
	return zero, false
}

func (s *Store[K, V]) Add(key K, value V) {
	s.m.Lock()
	defer s.m.Unlock()
	s.items[key] = value
}

func (s *Store[K, V]) Delete(key K) {
	s.m.Lock()
	defer s.m.Unlock()
	delete(s.items, key)
}

func (s *Store[K, V]) Len() int {
	s.m.Lock()
	defer s.m.Unlock()
	return len(s.items)
}

// SafeCounter is a thread-safe counter
type SafeCounter struct {
	mu sync.Mutex
	v  int
}

func (c *SafeCounter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

func (c *SafeCounter) Set(v int) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

func (c *SafeCounter) Inc() {
	c.mu.Lock()
	c.v++
	c.mu.Unlock()
}
