// Package registry owns the canonical token collection plus the UI state
// that hangs off it: selection, visibility, hover/drag pointers, and the
// clipboard. All mutation is funneled through here so that validation and
// condition resolution run before anything is stored. Latency in these
// calls matters; everything stays in memory behind one mutex.
package registry

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/mapforge/engine/internal/condition"
	"github.com/mapforge/engine/internal/events"
	"github.com/mapforge/engine/internal/model"
	"github.com/mapforge/engine/internal/validate"
)

// ErrInvalidToken is returned when a create or update fails structural
// validation. Advisory warnings never produce this error.
var ErrInvalidToken = errors.New("token failed structural validation")

// DefaultDuplicateOffset shifts duplicated tokens down-right by one grid
// square so the copy is visible next to the original.
var DefaultDuplicateOffset = geom.XY{X: 50, Y: 50}

// Canceller is the slice of the animation scheduler the registry needs
// when tokens are deleted.
type Canceller interface {
	CancelAllForToken(tokenID model.TokenID)
}

// Options configures a Registry. Zero values fall back to sane defaults.
type Options struct {
	Validation  validate.Config
	AllowCustom bool
	Animations  Canceller
	Feed        *events.Feed
	Logger      *slog.Logger
	Clock       func() time.Time
}

// Registry is the single owner of all placed tokens.
type Registry struct {
	mu        sync.Mutex
	tokens    map[model.TokenID]model.Token
	order     []model.TokenID
	visible   map[model.TokenID]bool
	selection map[model.TokenID]struct{}
	hover     model.TokenID
	drag      model.TokenID
	clipboard []model.Token

	validation  validate.Config
	allowCustom bool
	animations  Canceller
	feed        *events.Feed
	log         *slog.Logger
	clock       func() time.Time
}

func New(opts Options) *Registry {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Registry{
		tokens:      make(map[model.TokenID]model.Token),
		visible:     make(map[model.TokenID]bool),
		selection:   make(map[model.TokenID]struct{}),
		validation:  opts.Validation,
		allowCustom: opts.AllowCustom,
		animations:  opts.Animations,
		feed:        opts.Feed,
		log:         opts.Logger,
		clock:       opts.Clock,
	}
}

// Create builds a token from creation data, validates it, and inserts it
// into the collection marked visible. Structural errors reject the insert.
func (r *Registry) Create(data model.CreateTokenData) (model.Token, validate.Result, error) {
	now := r.clock()
	tok := model.NewTokenAt(data, now)

	res := validate.Validate(tok, r.validation)
	if !res.IsValid {
		r.log.Warn("token create rejected",
			"name", data.Name,
			"errors", res.Errors,
		)
		return model.Token{}, res, ErrInvalidToken
	}

	r.mu.Lock()
	r.tokens[tok.ID] = tok
	r.order = append(r.order, tok.ID)
	r.visible[tok.ID] = true
	r.mu.Unlock()

	r.emit(events.Event{Kind: events.TokenCreated, TokenID: tok.ID, Token: &tok, At: now})
	r.log.Debug("token created", "id", tok.ID, "name", tok.Name)
	return tok, res, nil
}

// Update merges updates into an existing token. The merge always refreshes
// the last-modified timestamp. Unknown ids are silent no-ops (ok=false with
// an empty result); structural errors leave the stored token untouched.
func (r *Registry) Update(id model.TokenID, u model.TokenUpdate) (model.Token, validate.Result, bool) {
	r.mu.Lock()
	current, found := r.tokens[id]
	r.mu.Unlock()
	if !found {
		return model.Token{}, validate.Result{}, false
	}

	now := r.clock()
	merged := current.ApplyAt(u, now)

	res := validate.Validate(merged, r.validation)
	if !res.IsValid {
		r.log.Warn("token update rejected", "id", id, "errors", res.Errors)
		return current, res, false
	}

	r.mu.Lock()
	r.tokens[id] = merged
	r.mu.Unlock()

	r.emit(events.Event{Kind: events.TokenUpdated, TokenID: id, Token: &merged, At: now})
	return merged, res, true
}

// Delete removes a token and every reference to it: selection, visibility,
// hover/drag pointers, and in-flight animations. Unknown ids are no-ops.
func (r *Registry) Delete(id model.TokenID) bool {
	r.mu.Lock()
	if _, found := r.tokens[id]; !found {
		r.mu.Unlock()
		return false
	}
	delete(r.tokens, id)
	delete(r.visible, id)
	delete(r.selection, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.hover == id {
		r.hover = ""
	}
	if r.drag == id {
		r.drag = ""
	}
	r.mu.Unlock()

	if r.animations != nil {
		r.animations.CancelAllForToken(id)
	}
	r.emit(events.Event{Kind: events.TokenDeleted, TokenID: id, At: r.clock()})
	r.log.Debug("token deleted", "id", id)
	return true
}

// DeleteMany deletes each id and returns the number actually removed.
func (r *Registry) DeleteMany(ids []model.TokenID) int {
	n := 0
	for _, id := range ids {
		if r.Delete(id) {
			n++
		}
	}
	return n
}

// Duplicate copies the given tokens with fresh ids and timestamps, names
// suffixed " (Copy)", and positions shifted by offset. A nil offset uses
// DefaultDuplicateOffset; an explicit zero offset duplicates in place.
// Originals are untouched. Ids not in the collection are skipped.
func (r *Registry) Duplicate(ids []model.TokenID, offset *geom.XY) []model.Token {
	shift := DefaultDuplicateOffset
	if offset != nil {
		shift = *offset
	}
	now := r.clock()

	r.mu.Lock()
	copies := make([]model.Token, 0, len(ids))
	for _, id := range ids {
		src, found := r.tokens[id]
		if !found {
			continue
		}
		dup := src
		dup.ID = model.NewTokenID()
		dup.Name = src.Name + " (Copy)"
		dup.Position = src.Position.Add(shift)
		dup.Label.Text = dup.Name
		dup.CreatedAt = now
		dup.UpdatedAt = now
		dup.Conditions = append([]model.ConditionEffect(nil), src.Conditions...)

		r.tokens[dup.ID] = dup
		r.order = append(r.order, dup.ID)
		r.visible[dup.ID] = true
		copies = append(copies, dup)
	}
	r.mu.Unlock()

	for i := range copies {
		r.emit(events.Event{Kind: events.TokenDuplicated, TokenID: copies[i].ID, Token: &copies[i], At: now})
	}
	return copies
}

// ApplyConditions runs the candidates through the condition resolver
// against the token's current effects and stores the outcome. Unknown ids
// are silent no-ops.
func (r *Registry) ApplyConditions(id model.TokenID, candidates []string, source string) (condition.ApplyResult, bool) {
	r.mu.Lock()
	tok, found := r.tokens[id]
	r.mu.Unlock()
	if !found {
		return condition.ApplyResult{}, false
	}

	now := r.clock()
	res := condition.Apply(tok.Conditions, candidates, source, condition.ApplyOptions{
		AllowCustom: r.allowCustom,
		Now:         now,
	})

	updated := tok.WithConditions(res.Effects, now)
	r.mu.Lock()
	r.tokens[id] = updated
	r.mu.Unlock()

	r.emit(events.Event{Kind: events.ConditionsChanged, TokenID: id, Token: &updated, At: now})
	return res, true
}

// RemoveConditions strips the named condition types from a token.
func (r *Registry) RemoveConditions(id model.TokenID, types []string) (condition.RemoveResult, bool) {
	r.mu.Lock()
	tok, found := r.tokens[id]
	r.mu.Unlock()
	if !found {
		return condition.RemoveResult{}, false
	}

	now := r.clock()
	res := condition.Remove(tok.Conditions, types)

	updated := tok.WithConditions(res.Effects, now)
	r.mu.Lock()
	r.tokens[id] = updated
	r.mu.Unlock()

	r.emit(events.Event{Kind: events.ConditionsChanged, TokenID: id, Token: &updated, At: now})
	return res, true
}

// Get returns a token snapshot by id.
func (r *Registry) Get(id model.TokenID) (model.Token, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	return t, ok
}

// List returns snapshots of all tokens in insertion order.
func (r *Registry) List() []model.Token {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Token, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tokens[id])
	}
	return out
}

// Count returns the number of tokens in the collection.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}

func (r *Registry) emit(e events.Event) {
	if r.feed != nil {
		r.feed.Push(e)
	}
}
