package condition

import (
	"fmt"
	"time"

	"github.com/mapforge/engine/internal/model"
)

// ApplyOptions configures one resolution call.
type ApplyOptions struct {
	// AllowCustom permits free-form condition names outside the recognized
	// fourteen. Custom conditions bypass the rule table entirely.
	AllowCustom bool

	// Now is the timestamp stamped onto applied effects. Zero means time.Now().
	Now time.Time
}

// ApplyResult is the structured outcome of Apply. Blocked and replaced
// conditions are not errors; they are returned for UI feedback.
type ApplyResult struct {
	Success  bool
	Applied  []string
	Blocked  []string
	Replaced []string
	Warnings []string

	// Effects is the reworked effect list: surviving existing effects
	// followed by newly applied ones.
	Effects []model.ConditionEffect
}

// RemoveResult is the structured outcome of Remove.
type RemoveResult struct {
	Success   bool
	Removed   []string
	Remaining []string
	Warnings  []string

	// Effects is the kept effect list, custom effects included.
	Effects []model.ConditionEffect
}

// Apply resolves candidate condition names against the existing effects.
//
// Candidates are processed in the order given and are resolved against the
// pre-existing effects only; two candidates in the same call are not checked
// against each other. A declared conflict with no interaction rule lets both
// conditions coexist, with a warning so callers can surface the rule-table gap.
func Apply(existing []model.ConditionEffect, candidates []string, source string, opts ApplyOptions) ApplyResult {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	res := ApplyResult{}

	// Working copy of the pre-existing effects; replace/upgrade rules remove
	// entries from it. Newly applied effects accumulate separately so later
	// candidates never resolve against them.
	working := make([]model.ConditionEffect, len(existing))
	copy(working, existing)

	var added []model.ConditionEffect

	appendEffect := func(condType string) {
		added = append(added, model.ConditionEffect{
			Type:           condType,
			Source:         source,
			DurationRounds: -1,
			AppliedAt:      now,
			AppliedBy:      source,
		})
		res.Applied = append(res.Applied, condType)
	}

	for _, cand := range candidates {
		if !IsKnown(cand) {
			if !opts.AllowCustom {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("unknown condition %q dropped; custom conditions are disabled", cand))
				continue
			}
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("condition %q is not a recognized condition; applying as custom", cand))
			appendEffect(cand)
			continue
		}

		def, _ := Get(cand)

		if !def.CanStack && hasType(working, cand) {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("condition %q is already active and does not stack", cand))
			continue
		}

		blocked := false
		for i := 0; i < len(working); i++ {
			e := working[i]
			if e.Type == cand || !InConflict(cand, e.Type) {
				continue
			}

			rule, found := FindInteraction(cand, e.Type)
			if !found {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("conditions %q and %q conflict but have no interaction rule; allowing both", cand, e.Type))
				continue
			}

			switch rule.Kind {
			case Blocks, Downgrades:
				res.Blocked = append(res.Blocked, cand)
				blocked = true
			case Replaces, Upgrades:
				res.Replaced = append(res.Replaced, e.Type)
				working = append(working[:i], working[i+1:]...)
				i--
			case Stacks:
				// declared conflict explicitly allowed to coexist
			}

			if blocked {
				break
			}
		}
		if blocked {
			continue
		}

		appendEffect(cand)
	}

	res.Effects = append(working, added...)
	res.Success = len(res.Applied) > 0
	return res
}

// Remove partitions the existing effects into kept and removed by type name.
// A warning is emitted for every requested type that is not present.
// Remaining lists recognized condition types only; custom effects are kept in
// Effects but excluded from the typed Remaining list.
func Remove(existing []model.ConditionEffect, types []string) RemoveResult {
	res := RemoveResult{}

	drop := make(map[string]bool, len(types))
	for _, ct := range types {
		drop[ct] = true
	}

	for _, e := range existing {
		if drop[e.Type] {
			res.Removed = append(res.Removed, e.Type)
			continue
		}
		res.Effects = append(res.Effects, e)
		if IsKnown(e.Type) {
			res.Remaining = append(res.Remaining, e.Type)
		}
	}

	removed := make(map[string]bool, len(res.Removed))
	for _, ct := range res.Removed {
		removed[ct] = true
	}
	for _, ct := range types {
		if !removed[ct] {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("condition %q is not active; nothing to remove", ct))
		}
	}

	res.Success = len(res.Removed) > 0
	return res
}

func hasType(effects []model.ConditionEffect, condType string) bool {
	for _, e := range effects {
		if e.Type == condType {
			return true
		}
	}
	return false
}
