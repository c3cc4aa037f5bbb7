package handlers

import (
	"fmt"

	"github.com/mapforge/engine/internal/dispatcher"
)

func (m *Manager) handleTokenCreate(e dispatcher.Event) (any, error) {
	data, err := m.deps.Parser.ParseTokenCreate(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	tok, res, err := m.deps.Registry.Create(data)
	if err != nil {
		// structural rejection: return the validation result so the form
		// can surface the messages
		return res, err
	}
	return tok, nil
}

func (m *Manager) handleTokenUpdate(e dispatcher.Event) (any, error) {
	id, update, err := m.deps.Parser.ParseTokenUpdate(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to update token: %w", err)
	}

	tok, res, ok := m.deps.Registry.Update(id, update)
	if !ok {
		if len(res.Errors) > 0 {
			return res, fmt.Errorf("token %s update rejected", id)
		}
		// unknown id: silent no-op
		return nil, nil
	}
	return tok, nil
}

func (m *Manager) handleTokenDelete(e dispatcher.Event) (any, error) {
	ids, err := m.deps.Parser.ParseTokenIDs(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to delete tokens: %w", err)
	}
	return m.deps.Registry.DeleteMany(ids), nil
}

func (m *Manager) handleTokenDuplicate(e dispatcher.Event) (any, error) {
	ids, offset, err := m.deps.Parser.ParseDuplicate(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to duplicate tokens: %w", err)
	}
	return m.deps.Registry.Duplicate(ids, offset), nil
}

func (m *Manager) handleTokenAlign(e dispatcher.Event) (any, error) {
	ids, mode, err := m.deps.Parser.ParseAlign(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to align tokens: %w", err)
	}
	return m.deps.Registry.Align(ids, mode), nil
}

func (m *Manager) handleTokenSnap(e dispatcher.Event) (any, error) {
	ids, err := m.deps.Parser.ParseTokenIDs(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to snap tokens: %w", err)
	}
	return m.deps.Registry.SnapToGrid(ids, m.deps.Session.GetBoard().SquareSize), nil
}
