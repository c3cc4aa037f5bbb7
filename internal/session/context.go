package session

import (
	"sync"
	"time"

	"github.com/mapforge/engine/internal/grid"
)

// Board describes the map currently open in the editor.
type Board struct {
	Name string `json:"name"`
	// SquareSize is the edge length of one grid square in map pixels.
	SquareSize float64 `json:"squareSize"`
}

// Context holds the current editing session state
type Context struct {
	mu        sync.RWMutex
	board     Board
	startedAt time.Time
}

// NewContext creates a new Context with default values
func NewContext() *Context {
	return &Context{
		board:     Board{Name: "No board loaded", SquareSize: grid.DefaultSquareSize},
		startedAt: time.Now(),
	}
}

// GetBoard returns the current board
func (c *Context) GetBoard() Board {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.board
}

// SetBoard sets the current board. A non-positive square size keeps the
// grid default.
func (c *Context) SetBoard(b Board) {
	if b.SquareSize <= 0 {
		b.SquareSize = grid.DefaultSquareSize
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.board = b
}

// StartedAt returns when this session began.
func (c *Context) StartedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.startedAt
}

// Duration returns how long this session has been running.
func (c *Context) Duration() time.Duration {
	return time.Since(c.StartedAt())
}
