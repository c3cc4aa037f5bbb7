package scheduler

import (
	"sync"
	"time"

	"github.com/mapforge/engine/internal/model"
)

// ScheduleParallel schedules every spec immediately, each still subject to
// the concurrency cap. onAllComplete, if set, fires after the last
// animation's own completion callback; it never fires if any member was
// dropped at the cap or cancelled.
func (s *Scheduler) ScheduleParallel(specs []Spec, onAllComplete func()) []model.AnimationID {
	return s.scheduleBatch(specs, 0, onAllComplete)
}

// ScheduleSequence schedules the specs with a fixed stagger added
// cumulatively to each item's own delay, so the items start one after
// another. onAllComplete behaves as in ScheduleParallel.
func (s *Scheduler) ScheduleSequence(specs []Spec, stagger time.Duration, onAllComplete func()) []model.AnimationID {
	return s.scheduleBatch(specs, stagger, onAllComplete)
}

func (s *Scheduler) scheduleBatch(specs []Spec, stagger time.Duration, onAllComplete func()) []model.AnimationID {
	if len(specs) == 0 {
		if onAllComplete != nil {
			onAllComplete()
		}
		return nil
	}

	group := &completionGroup{remaining: len(specs), done: onAllComplete}

	ids := make([]model.AnimationID, len(specs))
	for i, spec := range specs {
		spec.Delay += stagger * time.Duration(i)
		spec.OnComplete = group.wrap(spec.OnComplete)
		ids[i] = s.Schedule(spec)
	}
	return ids
}

// completionGroup counts down member completions and fires the group
// callback after the last one.
type completionGroup struct {
	mu        sync.Mutex
	remaining int
	done      func()
}

func (g *completionGroup) wrap(inner func()) func() {
	return func() {
		if inner != nil {
			inner()
		}

		g.mu.Lock()
		g.remaining--
		fire := g.remaining == 0 && g.done != nil
		g.mu.Unlock()

		if fire {
			g.done()
		}
	}
}
