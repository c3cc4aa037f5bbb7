package parser

import (
	"fmt"
	"strconv"

	"github.com/mapforge/engine/internal/session"
)

// ParseBoard parses a session board change.
// data[0] is the board name, data[1] an optional grid square size in
// map pixels.
func (p *Parser) ParseBoard(data []string) (session.Board, error) {
	if len(data) < 1 {
		return session.Board{}, fmt.Errorf("session set: expected at least 1 argument, got %d", len(data))
	}
	data = fixArgs(data)

	b := session.Board{Name: data[0]}
	if b.Name == "" {
		return session.Board{}, fmt.Errorf("session set: board name is required")
	}

	if len(data) > 1 && data[1] != "" {
		size, err := strconv.ParseFloat(data[1], 64)
		if err != nil {
			return session.Board{}, fmt.Errorf("session set: invalid square size %q: %w", data[1], err)
		}
		b.SquareSize = size
	}
	return b, nil
}
