package handlers

import (
	"fmt"

	"github.com/mapforge/engine/internal/dispatcher"
)

func (m *Manager) handleConditionApply(e dispatcher.Event) (any, error) {
	id, candidates, source, err := m.deps.Parser.ParseConditionApply(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to apply conditions: %w", err)
	}

	res, ok := m.deps.Registry.ApplyConditions(id, candidates, source)
	if !ok {
		// unknown id: silent no-op
		return nil, nil
	}
	return res, nil
}

func (m *Manager) handleConditionRemove(e dispatcher.Event) (any, error) {
	id, types, err := m.deps.Parser.ParseConditionRemove(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to remove conditions: %w", err)
	}

	res, ok := m.deps.Registry.RemoveConditions(id, types)
	if !ok {
		return nil, nil
	}
	return res, nil
}
