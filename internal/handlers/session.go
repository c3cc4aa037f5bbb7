package handlers

import (
	"fmt"

	"github.com/mapforge/engine/internal/dispatcher"
)

func (m *Manager) handleSessionSet(e dispatcher.Event) (any, error) {
	board, err := m.deps.Parser.ParseBoard(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to set session board: %w", err)
	}

	m.deps.Session.SetBoard(board)
	return board, nil
}

func (m *Manager) handleSessionInfo(e dispatcher.Event) (any, error) {
	return map[string]any{
		"board":      m.deps.Session.GetBoard(),
		"startedAt":  m.deps.Session.StartedAt(),
		"durationMs": m.deps.Session.Duration().Milliseconds(),
		"tokens":     m.deps.Registry.Count(),
	}, nil
}
