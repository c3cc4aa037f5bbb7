package registry

import (
	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/mapforge/engine/internal/events"
	"github.com/mapforge/engine/internal/model"
)

// Select adds the given ids to the selection set. Ids not in the
// collection are ignored.
func (r *Registry) Select(ids ...model.TokenID) {
	r.mu.Lock()
	changed := false
	for _, id := range ids {
		if _, found := r.tokens[id]; !found {
			continue
		}
		if _, already := r.selection[id]; !already {
			r.selection[id] = struct{}{}
			changed = true
		}
	}
	r.mu.Unlock()
	if changed {
		r.emit(events.Event{Kind: events.SelectionChanged, At: r.clock()})
	}
}

// Deselect removes the given ids from the selection set.
func (r *Registry) Deselect(ids ...model.TokenID) {
	r.mu.Lock()
	changed := false
	for _, id := range ids {
		if _, ok := r.selection[id]; ok {
			delete(r.selection, id)
			changed = true
		}
	}
	r.mu.Unlock()
	if changed {
		r.emit(events.Event{Kind: events.SelectionChanged, At: r.clock()})
	}
}

// ClearSelection empties the selection set.
func (r *Registry) ClearSelection() {
	r.mu.Lock()
	changed := len(r.selection) > 0
	r.selection = make(map[model.TokenID]struct{})
	r.mu.Unlock()
	if changed {
		r.emit(events.Event{Kind: events.SelectionChanged, At: r.clock()})
	}
}

// Selection returns the selected ids in collection insertion order.
func (r *Registry) Selection() []model.TokenID {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.TokenID, 0, len(r.selection))
	for _, id := range r.order {
		if _, ok := r.selection[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Selected reports whether the id is in the selection set.
func (r *Registry) Selected(id model.TokenID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.selection[id]
	return ok
}

// SetHover records which token the pointer is over. Empty clears it.
func (r *Registry) SetHover(id model.TokenID) {
	r.mu.Lock()
	r.hover = id
	r.mu.Unlock()
}

// Hover returns the hovered token id, empty if none.
func (r *Registry) Hover() model.TokenID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hover
}

// SetDrag records the token currently being dragged. Empty clears it.
func (r *Registry) SetDrag(id model.TokenID) {
	r.mu.Lock()
	r.drag = id
	r.mu.Unlock()
}

// Drag returns the dragged token id, empty if none.
func (r *Registry) Drag() model.TokenID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drag
}

// SetVisible toggles a token's visibility flag. Unknown ids are no-ops.
func (r *Registry) SetVisible(id model.TokenID, visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, found := r.tokens[id]; found {
		r.visible[id] = visible
	}
}

// IsVisible reports a token's visibility flag. Unknown ids are invisible.
func (r *Registry) IsVisible(id model.TokenID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible[id]
}

// Copy snapshots the given tokens into the clipboard, replacing any
// previous contents. Ids not in the collection are skipped.
func (r *Registry) Copy(ids []model.TokenID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clipboard = r.clipboard[:0]
	for _, id := range ids {
		if t, found := r.tokens[id]; found {
			t.Conditions = append([]model.ConditionEffect(nil), t.Conditions...)
			r.clipboard = append(r.clipboard, t)
		}
	}
	return len(r.clipboard)
}

// Paste inserts copies of the clipboard contents with fresh ids, " (Copy)"
// name suffixes, and positions shifted by offset. A zero offset uses
// DefaultDuplicateOffset. The clipboard itself is preserved so repeated
// pastes work.
func (r *Registry) Paste(offset geom.XY) []model.Token {
	if offset == (geom.XY{}) {
		offset = DefaultDuplicateOffset
	}
	now := r.clock()

	r.mu.Lock()
	pasted := make([]model.Token, 0, len(r.clipboard))
	for _, src := range r.clipboard {
		dup := src
		dup.ID = model.NewTokenID()
		dup.Name = src.Name + " (Copy)"
		dup.Position = src.Position.Add(offset)
		dup.Label.Text = dup.Name
		dup.CreatedAt = now
		dup.UpdatedAt = now
		dup.Conditions = append([]model.ConditionEffect(nil), src.Conditions...)

		r.tokens[dup.ID] = dup
		r.order = append(r.order, dup.ID)
		r.visible[dup.ID] = true
		pasted = append(pasted, dup)
	}
	r.mu.Unlock()

	for i := range pasted {
		r.emit(events.Event{Kind: events.TokenDuplicated, TokenID: pasted[i].ID, Token: &pasted[i], At: now})
	}
	return pasted
}
