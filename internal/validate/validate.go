// Package validate checks tokens against structural constraints and,
// optionally, advisory D&D 5e domain rules. Validation is pure: it reads the
// token and the static condition rule tables and mutates nothing.
package validate

import (
	"fmt"
	"regexp"

	"github.com/mapforge/engine/internal/condition"
	"github.com/mapforge/engine/internal/model"
)

// Config selects which validation layers run.
type Config struct {
	// EnforceDND enables the advisory domain-rule layer. Violations are
	// warnings, never errors, with one exception controlled by Strict.
	EnforceDND bool

	// Strict promotes the size-enum membership check to an error. No other
	// domain check is ever promoted.
	Strict bool

	// AllowCustomConditions suppresses unknown-condition warnings for
	// free-form condition names.
	AllowCustomConditions bool
}

// Result is the outcome of validating one token. Errors block persistence;
// warnings are advisory and only affect DNDCompliant.
type Result struct {
	IsValid      bool
	Errors       []string
	Warnings     []string
	DNDCompliant bool
}

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ArmorClass bounds: values outside the hard bound are almost certainly data
// entry mistakes; values outside the advisory band are unusual but possible.
const (
	armorClassHardMin = 1
	armorClassHardMax = 30
	armorClassSoftMin = 8
	armorClassSoftMax = 25
)

const (
	initiativeMin = -10
	initiativeMax = 50

	speedCeiling      = 200
	conditionAdvisory = 8
)

// speedRanges holds the expected walking speed band in feet per size.
var speedRanges = map[model.SizeCategory][2]int{
	model.SizeTiny:       {10, 40},
	model.SizeSmall:      {15, 40},
	model.SizeMedium:     {20, 50},
	model.SizeLarge:      {25, 60},
	model.SizeHuge:       {20, 80},
	model.SizeGargantuan: {15, 100},
}

// Validate checks a token against the structural constraints and, when
// enabled, the advisory domain rules.
func Validate(t model.Token, cfg Config) Result {
	res := Result{}

	structural(t, &res)

	domainIssues := 0
	if cfg.EnforceDND {
		domainIssues = domain(t, cfg, &res)
	}

	res.IsValid = len(res.Errors) == 0
	res.DNDCompliant = !cfg.EnforceDND || domainIssues == 0
	return res
}

// structural appends the always-enforced checks. Violations are errors.
func structural(t model.Token, res *Result) {
	if t.Name == "" {
		res.Errors = append(res.Errors, "token name must not be empty")
	}

	if !hexColorRe.MatchString(t.FillColor) {
		res.Errors = append(res.Errors, fmt.Sprintf("fill color %q is not a #RRGGBB hex color", t.FillColor))
	}
	if t.BorderColor != "" && !hexColorRe.MatchString(t.BorderColor) {
		res.Errors = append(res.Errors, fmt.Sprintf("border color %q is not a #RRGGBB hex color", t.BorderColor))
	}

	if t.Opacity < 0 || t.Opacity > 1 {
		res.Errors = append(res.Errors, fmt.Sprintf("opacity %g is outside [0,1]", t.Opacity))
	}
	if t.BorderWidth < 0 {
		res.Errors = append(res.Errors, fmt.Sprintf("border width %g must not be negative", t.BorderWidth))
	}
	if t.Layer < 0 {
		res.Errors = append(res.Errors, fmt.Sprintf("layer %d must not be negative", t.Layer))
	}

	if t.Label.FontSize <= 0 {
		res.Errors = append(res.Errors, fmt.Sprintf("label font size %g must be positive", t.Label.FontSize))
	}
	if t.Label.Offset < 0 {
		res.Errors = append(res.Errors, fmt.Sprintf("label offset %g must not be negative", t.Label.Offset))
	}
	if !hexColorRe.MatchString(t.Label.Color) {
		res.Errors = append(res.Errors, fmt.Sprintf("label color %q is not a #RRGGBB hex color", t.Label.Color))
	}

	if hp := t.HitPoints; hp != nil {
		if hp.Current < 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("hit points current %d must not be negative", hp.Current))
		}
		if hp.Maximum <= 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("hit points maximum %d must be positive", hp.Maximum))
		}
		if hp.Temporary < 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("temporary hit points %d must not be negative", hp.Temporary))
		}
		if hp.Maximum > 0 && hp.Current > hp.Maximum+hp.Temporary {
			res.Errors = append(res.Errors, fmt.Sprintf(
				"hit points current %d exceeds maximum %d plus temporary %d",
				hp.Current, hp.Maximum, hp.Temporary))
		}
	}
}

// domain appends the advisory D&D checks and returns the number of issues it
// found, counting the strict-promoted size error as an issue.
func domain(t model.Token, cfg Config, res *Result) int {
	issues := 0
	warn := func(format string, args ...any) {
		res.Warnings = append(res.Warnings, fmt.Sprintf(format, args...))
		issues++
	}

	if !t.Size.Valid() {
		msg := fmt.Sprintf("size %q is not a recognized size category", t.Size)
		if cfg.Strict {
			res.Errors = append(res.Errors, msg)
			issues++
		} else {
			res.Warnings = append(res.Warnings, msg)
			issues++
		}
	}

	if ac := t.ArmorClass; ac != nil {
		switch {
		case *ac < armorClassHardMin || *ac > armorClassHardMax:
			warn("armor class %d is outside the valid range [%d,%d]", *ac, armorClassHardMin, armorClassHardMax)
		case *ac < armorClassSoftMin || *ac > armorClassSoftMax:
			warn("armor class %d is unusual; typical values are [%d,%d]", *ac, armorClassSoftMin, armorClassSoftMax)
		}
	}

	if sp := t.SpeedFeet; sp != nil {
		if *sp < 0 {
			warn("speed %d ft must not be negative", *sp)
		} else {
			if *sp > speedCeiling {
				warn("speed %d ft exceeds %d ft", *sp, speedCeiling)
			}
			if *sp%5 != 0 {
				warn("speed %d ft is not a multiple of 5", *sp)
			}
			if r, ok := speedRanges[t.Size]; ok && (*sp < r[0] || *sp > r[1]) {
				warn("speed %d ft is outside the expected range [%d,%d] ft for %s creatures", *sp, r[0], r[1], t.Size)
			}
		}
	}

	if ini := t.Initiative; ini != nil && (*ini < initiativeMin || *ini > initiativeMax) {
		warn("initiative %d is outside [%d,%d]", *ini, initiativeMin, initiativeMax)
	}

	issues += conditions(t, cfg, res)
	return issues
}

// conditions appends the condition-list advisories: unknown names, declared
// pairwise conflicts, duplicates, and an excessive active count. Conflicts
// are reported here, never blocked; blocking is the resolver's job.
func conditions(t model.Token, cfg Config, res *Result) int {
	issues := 0
	warn := func(format string, args ...any) {
		res.Warnings = append(res.Warnings, fmt.Sprintf(format, args...))
		issues++
	}

	seen := make(map[string]int, len(t.Conditions))
	for _, e := range t.Conditions {
		if !condition.IsKnown(e.Type) && !cfg.AllowCustomConditions {
			warn("condition %q is not a recognized condition", e.Type)
		}
		seen[e.Type]++
	}

	for condType, count := range seen {
		if count > 1 {
			warn("condition %q is applied %d times", condType, count)
		}
	}

	types := t.ConditionTypes()
	for i := 0; i < len(types); i++ {
		for j := i + 1; j < len(types); j++ {
			if types[i] != types[j] && condition.InConflict(types[i], types[j]) {
				warn("conditions %q and %q conflict", types[i], types[j])
			}
		}
	}

	if len(t.Conditions) > conditionAdvisory {
		warn("%d active conditions exceeds the advisory limit of %d", len(t.Conditions), conditionAdvisory)
	}

	return issues
}
