package registry

import (
	"sort"

	geom "github.com/peterstace/simplefeatures/geom"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mapforge/engine/internal/events"
	"github.com/mapforge/engine/internal/grid"
	"github.com/mapforge/engine/internal/model"
)

// AlignMode selects which edge or center tokens are lined up on.
type AlignMode string

const (
	AlignLeft   AlignMode = "left"
	AlignRight  AlignMode = "right"
	AlignTop    AlignMode = "top"
	AlignBottom AlignMode = "bottom"
	AlignCenter AlignMode = "center" // horizontal: mean x
	AlignMiddle AlignMode = "middle" // vertical: mean y
)

// Align moves every listed token to a single computed coordinate on one
// axis: min for left/top, max for right/bottom, arithmetic mean for
// center/middle. The other axis is untouched. Fewer than two resolvable
// ids is a no-op. Returns the number of tokens moved.
func (r *Registry) Align(ids []model.TokenID, mode AlignMode) int {
	now := r.clock()

	r.mu.Lock()
	targets := make([]model.TokenID, 0, len(ids))
	for _, id := range ids {
		if _, found := r.tokens[id]; found {
			targets = append(targets, id)
		}
	}
	if len(targets) < 2 {
		r.mu.Unlock()
		return 0
	}

	horizontal := mode == AlignLeft || mode == AlignRight || mode == AlignCenter

	positions := make([]geom.XY, len(targets))
	for i, id := range targets {
		positions[i] = r.tokens[id].Position
	}
	min, max, _ := grid.Extent(positions)
	mean := grid.Centroid(positions)

	var edge geom.XY
	switch mode {
	case AlignLeft, AlignTop:
		edge = min
	case AlignRight, AlignBottom:
		edge = max
	case AlignCenter, AlignMiddle:
		edge = mean
	default:
		r.mu.Unlock()
		return 0
	}
	target := edge.Y
	if horizontal {
		target = edge.X
	}

	moved := make([]model.Token, 0, len(targets))
	for _, id := range targets {
		t := r.tokens[id]
		if horizontal {
			t.Position.X = target
		} else {
			t.Position.Y = target
		}
		t.UpdatedAt = now
		r.tokens[id] = t
		moved = append(moved, t)
	}
	r.mu.Unlock()

	for i := range moved {
		r.emit(events.Event{Kind: events.TokenUpdated, TokenID: moved[i].ID, Token: &moved[i], At: now})
	}
	return len(moved)
}

// SnapToGrid moves each listed token onto the grid for the given square
// size, keeping larger footprints centered on squares. Unknown ids are
// skipped. Returns the number of tokens that actually moved.
func (r *Registry) SnapToGrid(ids []model.TokenID, squareSize float64) int {
	now := r.clock()

	r.mu.Lock()
	moved := make([]model.Token, 0, len(ids))
	for _, id := range ids {
		t, found := r.tokens[id]
		if !found {
			continue
		}
		snapped := grid.SnapFootprint(t.Position, t.Size, squareSize)
		if snapped == t.Position {
			continue
		}
		t.Position = snapped
		t.UpdatedAt = now
		r.tokens[id] = t
		moved = append(moved, t)
	}
	r.mu.Unlock()

	for i := range moved {
		r.emit(events.Event{Kind: events.TokenUpdated, TokenID: moved[i].ID, Token: &moved[i], At: now})
	}
	return len(moved)
}

// FilterCriteria narrows a token list. Nil fields match everything; set
// fields are combined with AND.
type FilterCriteria struct {
	Category      *model.TokenCategory
	Size          *model.SizeCategory
	Visible       *bool
	HasInitiative *bool
	IsPlayer      *bool
	Conditions    []string // token must carry every listed condition
}

// Filter returns the registry's tokens matching the criteria, in
// insertion order.
func (r *Registry) Filter(criteria FilterCriteria) []model.Token {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Token, 0)
	for _, id := range r.order {
		t := r.tokens[id]
		if r.matchesLocked(t, criteria) {
			out = append(out, t)
		}
	}
	return out
}

func (r *Registry) matchesLocked(t model.Token, c FilterCriteria) bool {
	if c.Category != nil && t.Category != *c.Category {
		return false
	}
	if c.Size != nil && t.Size != *c.Size {
		return false
	}
	if c.Visible != nil && r.visible[t.ID] != *c.Visible {
		return false
	}
	if c.HasInitiative != nil && (t.Initiative != nil) != *c.HasInitiative {
		return false
	}
	if c.IsPlayer != nil && t.IsPlayer != *c.IsPlayer {
		return false
	}
	for _, cond := range c.Conditions {
		if !t.HasCondition(cond) {
			return false
		}
	}
	return true
}

// SortKey selects the token attribute to sort by.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortBySize     SortKey = "size"
	SortByCategory SortKey = "category"
	SortByCreated  SortKey = "created"
)

// SortOrder selects ascending or descending.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortTokens returns a sorted copy of the given tokens. Size compares by
// ordinal position in the six-value enumeration, created by timestamp,
// name and category by locale-aware collation. The sort is stable so
// equal keys keep their input order.
func SortTokens(tokens []model.Token, key SortKey, order SortOrder) []model.Token {
	out := append([]model.Token(nil), tokens...)

	// collators carry internal buffers, so each sort gets its own
	col := collate.New(language.Und)
	cmp := func(a, b model.Token) int {
		switch key {
		case SortBySize:
			return a.Size.Ordinal() - b.Size.Ordinal()
		case SortByCategory:
			return col.CompareString(string(a.Category), string(b.Category))
		case SortByCreated:
			return a.CreatedAt.Compare(b.CreatedAt)
		default:
			return col.CompareString(a.Name, b.Name)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if order == SortDesc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// Sort returns the registry's tokens sorted by key and order.
func (r *Registry) Sort(key SortKey, order SortOrder) []model.Token {
	return SortTokens(r.List(), key, order)
}
