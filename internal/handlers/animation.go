package handlers

import (
	"fmt"
	"strings"

	"github.com/mapforge/engine/internal/dispatcher"
	"github.com/mapforge/engine/internal/model"
	"github.com/mapforge/engine/internal/scheduler"
	"github.com/mapforge/engine/internal/util"
)

func (m *Manager) handleAnimationSchedule(e dispatcher.Event) (any, error) {
	req, err := m.deps.Parser.ParseAnimationSchedule(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule animation: %w", err)
	}

	kind, err := req.AnimationKind()
	if err != nil {
		return nil, fmt.Errorf("failed to schedule animation: %w", err)
	}

	id := m.deps.Scheduler.Schedule(scheduler.Spec{
		TokenID:  req.TokenID,
		Kind:     kind,
		Duration: durationMs(req.DurationMs),
		Easing:   scheduler.Easing(req.Easing),
		Delay:    durationMs(req.DelayMs),
		Priority: req.Priority,
	})
	return id, nil
}

// handleAnimationCancel cancels by animation handle, or every animation
// for a token when the argument is prefixed "token:".
func (m *Manager) handleAnimationCancel(e dispatcher.Event) (any, error) {
	if len(e.Args) < 1 {
		return nil, fmt.Errorf("failed to cancel animation: expected 1 argument, got 0")
	}

	arg := util.TrimQuotes(e.Args[0])
	if tokenID, ok := strings.CutPrefix(arg, "token:"); ok {
		m.deps.Scheduler.CancelAllForToken(model.TokenID(tokenID))
		return nil, nil
	}

	m.deps.Scheduler.Cancel(model.AnimationID(arg))
	return nil, nil
}
