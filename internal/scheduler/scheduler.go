// Package scheduler queues, advances, and retires time-based token
// animations. It is cooperative: nothing moves until the consuming layer
// calls Tick, which is intended to be driven once per rendered frame.
package scheduler

import (
	"log/slog"
	"sync"
	"time"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/mapforge/engine/internal/grid"
	"github.com/mapforge/engine/internal/model"
)

// DefaultMaxConcurrent caps how many animations may be running at once.
const DefaultMaxConcurrent = 50

// FrameSink receives the interpolated frame produced for each running
// animation on every tick. A nil sink discards frames.
type FrameSink interface {
	PushFrame(model.TokenFrame)
}

// Spec describes one animation to schedule.
type Spec struct {
	TokenID  model.TokenID
	Kind     model.AnimationKind
	Duration time.Duration
	Easing   Easing
	Delay    time.Duration
	Priority int

	OnStart    func()
	OnUpdate   func(progress float64)
	OnComplete func()
	OnCancel   func()
}

// animation is the runtime record for a scheduled animation.
type animation struct {
	id        model.AnimationID
	spec      Spec
	status    model.AnimationStatus
	startTime time.Time
	timer     *time.Timer
}

// Options configures a Scheduler.
type Options struct {
	// MaxConcurrent caps running animations; 0 means DefaultMaxConcurrent.
	MaxConcurrent int
	Logger        *slog.Logger
	Sink          FrameSink
	// Clock stamps start times for delayed starts; nil means time.Now.
	Clock func() time.Time
}

// Scheduler owns all in-flight animations. One instance is created per
// engine and passed to its consumers explicitly.
type Scheduler struct {
	mu      sync.Mutex
	byID    map[model.AnimationID]*animation
	order   []model.AnimationID // insertion order for deterministic ticks
	running int

	maxConcurrent int
	logger        *slog.Logger
	sink          FrameSink
	clock         func() time.Time
}

// New creates an empty scheduler.
func New(opts Options) *Scheduler {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = DefaultMaxConcurrent
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Scheduler{
		byID:          make(map[model.AnimationID]*animation),
		maxConcurrent: opts.MaxConcurrent,
		logger:        opts.Logger,
		sink:          opts.Sink,
		clock:         opts.Clock,
	}
}

// Schedule registers an animation and returns its handle.
//
// If the running count has reached the concurrency cap the animation is
// dropped: the returned handle is valid but none of its callbacks ever fire.
// The drop is logged, never raised.
func (s *Scheduler) Schedule(spec Spec) model.AnimationID {
	id := model.NewAnimationID()

	s.mu.Lock()
	if s.running >= s.maxConcurrent {
		s.mu.Unlock()
		s.logger.Warn("animation dropped, concurrency cap reached",
			"tokenId", spec.TokenID, "kind", kindName(spec.Kind), "cap", s.maxConcurrent)
		return id
	}

	a := &animation{id: id, spec: spec, status: model.AnimationPending}
	s.byID[id] = a
	s.order = append(s.order, id)

	var onStart func()
	if spec.Delay <= 0 {
		onStart = s.startLocked(a, s.clock())
		s.mu.Unlock()
	} else {
		a.timer = time.AfterFunc(spec.Delay, func() { s.delayedStart(id) })
		s.mu.Unlock()
	}

	if from, to, travels := travel(spec.Kind); travels {
		s.logger.Debug("animation scheduled",
			"id", id, "tokenId", spec.TokenID, "kind", kindName(spec.Kind),
			"distancePx", grid.Distance(from, to))
	}

	if onStart != nil {
		onStart()
	}
	return id
}

// travel reports the endpoints of position-changing kinds.
func travel(kind model.AnimationKind) (from, to geom.XY, ok bool) {
	switch k := kind.(type) {
	case model.Movement:
		return k.From, k.To, true
	case model.Teleport:
		return k.From, k.To, true
	}
	return geom.XY{}, geom.XY{}, false
}

// startLocked promotes a pending animation to running. Caller holds the lock;
// the returned callback must be invoked after unlocking.
func (s *Scheduler) startLocked(a *animation, now time.Time) func() {
	a.status = model.AnimationRunning
	a.startTime = now
	s.running++
	return a.spec.OnStart
}

// delayedStart is the timer path: promote only if not cancelled in the interim.
func (s *Scheduler) delayedStart(id model.AnimationID) {
	s.mu.Lock()
	a, ok := s.byID[id]
	if !ok || a.status != model.AnimationPending {
		s.mu.Unlock()
		return
	}
	onStart := s.startLocked(a, s.clock())
	s.mu.Unlock()

	if onStart != nil {
		onStart()
	}
}

// Tick advances every running animation to the given time. Animations are
// advanced in the order they were scheduled. Completion fires OnComplete
// exactly once and removes the animation.
func (s *Scheduler) Tick(now time.Time) {
	s.mu.Lock()
	work := make([]*animation, 0, len(s.order))
	for _, id := range s.order {
		if a := s.byID[id]; a != nil && a.status == model.AnimationRunning {
			work = append(work, a)
		}
	}
	s.mu.Unlock()

	for _, a := range work {
		raw := rawProgress(now.Sub(a.startTime), a.spec.Duration)
		eased := a.spec.Easing.Apply(raw)

		if a.spec.OnUpdate != nil {
			a.spec.OnUpdate(eased)
		}
		if s.sink != nil {
			s.sink.PushFrame(interpolate(a, eased))
		}

		if raw >= 1 {
			s.complete(a)
		}
	}
}

func rawProgress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	p := float64(elapsed) / float64(duration)
	if p > 1 {
		return 1
	}
	return p
}

// complete transitions a running animation to completed, unless it was
// cancelled from inside a tick callback.
func (s *Scheduler) complete(a *animation) {
	s.mu.Lock()
	if a.status != model.AnimationRunning {
		s.mu.Unlock()
		return
	}
	a.status = model.AnimationCompleted
	s.removeLocked(a)
	s.mu.Unlock()

	if a.spec.OnComplete != nil {
		a.spec.OnComplete()
	}
}

// Cancel stops an animation, firing OnCancel and never OnComplete.
// Cancelling an unknown or already finished handle is a no-op.
func (s *Scheduler) Cancel(id model.AnimationID) {
	s.mu.Lock()
	a, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	a.status = model.AnimationCancelled
	if a.timer != nil {
		a.timer.Stop()
	}
	s.removeLocked(a)
	s.mu.Unlock()

	if a.spec.OnCancel != nil {
		a.spec.OnCancel()
	}
}

// CancelAllForToken cancels every pending or running animation targeting the
// token.
func (s *Scheduler) CancelAllForToken(tokenID model.TokenID) {
	s.mu.Lock()
	var cancelled []*animation
	for _, id := range s.order {
		a := s.byID[id]
		if a != nil && a.spec.TokenID == tokenID {
			a.status = model.AnimationCancelled
			if a.timer != nil {
				a.timer.Stop()
			}
			cancelled = append(cancelled, a)
		}
	}
	for _, a := range cancelled {
		s.removeLocked(a)
	}
	s.mu.Unlock()

	for _, a := range cancelled {
		if a.spec.OnCancel != nil {
			a.spec.OnCancel()
		}
	}
}

// removeLocked drops the animation from the active map, keeping the running
// count in step. Caller holds the lock.
func (s *Scheduler) removeLocked(a *animation) {
	if _, ok := s.byID[a.id]; !ok {
		return
	}
	delete(s.byID, a.id)
	for i, id := range s.order {
		if id == a.id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if a.startTime != (time.Time{}) {
		s.running--
	}
}

// IsAnimating reports whether any animation for the token is running.
func (s *Scheduler) IsAnimating(tokenID model.TokenID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.byID {
		if a.spec.TokenID == tokenID && a.status == model.AnimationRunning {
			return true
		}
	}
	return false
}

// Running returns the number of currently running animations.
func (s *Scheduler) Running() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Active returns the number of registered animations, pending included.
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// Status looks up the lifecycle state of an animation. Handles that were
// dropped at the cap, completed, or cancelled report not-found.
func (s *Scheduler) Status(id model.AnimationID) (model.AnimationStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	if !ok {
		return "", false
	}
	return a.status, true
}

func kindName(k model.AnimationKind) string {
	if k == nil {
		return "none"
	}
	return k.Kind()
}
