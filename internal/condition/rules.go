// Package condition resolves named status effects against a static
// interaction rule table. Resolution is pure: callers pass the existing
// effect list and receive the reworked list plus a structured outcome.
package condition

// The fourteen recognized condition names.
const (
	Blinded       = "blinded"
	Charmed       = "charmed"
	Deafened      = "deafened"
	Frightened    = "frightened"
	Grappled      = "grappled"
	Incapacitated = "incapacitated"
	Invisible     = "invisible"
	Paralyzed     = "paralyzed"
	Petrified     = "petrified"
	Poisoned      = "poisoned"
	Prone         = "prone"
	Restrained    = "restrained"
	Stunned       = "stunned"
	Unconscious   = "unconscious"
)

// Definition describes one recognized condition. Priority, Color, Icon and
// AnimationStyle are visual metadata for the consuming layer; resolution
// logic only reads CanStack and ConflictsWith.
type Definition struct {
	Type           string
	Priority       int // stacking/display order, higher shown first
	Color          string
	Icon           string
	AnimationStyle string
	CanStack       bool
	ConflictsWith  []string
}

// InteractionKind classifies how a candidate condition interacts with a
// conflicting existing condition.
type InteractionKind string

const (
	// Blocks rejects the candidate; the existing effect is untouched.
	Blocks InteractionKind = "blocks"
	// Replaces removes the existing effect and applies the candidate.
	Replaces InteractionKind = "replaces"
	// Stacks lets both coexist despite the declared conflict.
	Stacks InteractionKind = "stacks"
	// Upgrades removes the weaker existing effect in favor of the candidate.
	Upgrades InteractionKind = "upgrades"
	// Downgrades rejects the candidate as a weaker form of the existing effect.
	Downgrades InteractionKind = "downgrades"
)

// Interaction is one ordered rule: what happens when Candidate is applied
// while Existing is present.
type Interaction struct {
	Candidate string
	Existing  string
	Kind      InteractionKind
	Rationale string
}

// definitions is the static table of recognized conditions.
var definitions = map[string]Definition{
	Blinded: {
		Type: Blinded, Priority: 40, Color: "#5c5c5c", Icon: "eye-off",
		AnimationStyle: "pulse",
	},
	Charmed: {
		Type: Charmed, Priority: 30, Color: "#d457a8", Icon: "heart",
		AnimationStyle: "pulse",
	},
	Deafened: {
		Type: Deafened, Priority: 20, Color: "#8a7f6d", Icon: "ear-off",
		AnimationStyle: "none",
	},
	Frightened: {
		Type: Frightened, Priority: 45, Color: "#7a3fa0", Icon: "ghost",
		AnimationStyle: "shake",
		ConflictsWith:  []string{Charmed},
	},
	Grappled: {
		Type: Grappled, Priority: 50, Color: "#a66a2c", Icon: "grab",
		AnimationStyle: "none",
		ConflictsWith:  []string{Restrained},
	},
	Incapacitated: {
		Type: Incapacitated, Priority: 70, Color: "#b5b52a", Icon: "dizzy",
		AnimationStyle: "pulse",
		ConflictsWith:  []string{Stunned, Paralyzed, Unconscious},
	},
	Invisible: {
		Type: Invisible, Priority: 35, Color: "#9ecfe0", Icon: "eye-slash",
		AnimationStyle: "fade",
	},
	Paralyzed: {
		Type: Paralyzed, Priority: 85, Color: "#2a6eb5", Icon: "bolt",
		AnimationStyle: "flash",
		ConflictsWith:  []string{Stunned, Incapacitated, Unconscious},
	},
	Petrified: {
		Type: Petrified, Priority: 90, Color: "#707070", Icon: "mountain",
		AnimationStyle: "none",
		ConflictsWith:  []string{Poisoned},
	},
	Poisoned: {
		Type: Poisoned, Priority: 55, Color: "#3f9e3f", Icon: "droplet",
		AnimationStyle: "pulse",
		ConflictsWith:  []string{Petrified},
	},
	Prone: {
		Type: Prone, Priority: 25, Color: "#c2823a", Icon: "arrow-down",
		AnimationStyle: "none",
		ConflictsWith:  []string{Unconscious},
	},
	Restrained: {
		Type: Restrained, Priority: 60, Color: "#8a5a2c", Icon: "link",
		AnimationStyle: "none",
		ConflictsWith:  []string{Grappled},
	},
	Stunned: {
		Type: Stunned, Priority: 80, Color: "#e0c030", Icon: "stars",
		AnimationStyle: "flash",
		ConflictsWith:  []string{Incapacitated, Paralyzed, Unconscious},
	},
	Unconscious: {
		Type: Unconscious, Priority: 95, Color: "#3a3a3a", Icon: "zzz",
		AnimationStyle: "fade",
		ConflictsWith:  []string{Prone, Stunned, Incapacitated, Paralyzed},
	},
}

// interactions is the global ordered-pair rule list.
//
// The frightened/charmed conflict deliberately has no entry here: the rule
// table predates those two being declared in conflict, and resolution treats
// a conflict without a rule as pass-through.
var interactions = []Interaction{
	{Unconscious, Prone, Replaces, "an unconscious creature is already prone; the separate marker is redundant"},
	{Unconscious, Stunned, Upgrades, "unconsciousness supersedes being stunned"},
	{Unconscious, Incapacitated, Upgrades, "unconsciousness includes incapacitation"},
	{Unconscious, Paralyzed, Upgrades, "unconsciousness supersedes paralysis"},
	{Paralyzed, Stunned, Upgrades, "paralysis includes the stunned state"},
	{Paralyzed, Incapacitated, Upgrades, "paralysis includes incapacitation"},
	{Stunned, Incapacitated, Upgrades, "stunned includes incapacitation"},
	{Stunned, Paralyzed, Downgrades, "already paralyzed, which includes being stunned"},
	{Stunned, Unconscious, Downgrades, "already unconscious, which includes being stunned"},
	{Incapacitated, Stunned, Downgrades, "already stunned, which includes incapacitation"},
	{Incapacitated, Paralyzed, Downgrades, "already paralyzed, which includes incapacitation"},
	{Incapacitated, Unconscious, Downgrades, "already unconscious, which includes incapacitation"},
	{Paralyzed, Unconscious, Downgrades, "already unconscious, which supersedes paralysis"},
	{Prone, Unconscious, Blocks, "an unconscious creature is already prone"},
	{Petrified, Poisoned, Replaces, "petrification suspends poison"},
	{Poisoned, Petrified, Blocks, "a petrified creature cannot be poisoned"},
	{Restrained, Grappled, Upgrades, "being restrained supersedes being grappled"},
	{Grappled, Restrained, Blocks, "already restrained, which supersedes the grapple"},
}

// IsKnown reports whether the name is one of the fourteen recognized
// conditions.
func IsKnown(condType string) bool {
	_, ok := definitions[condType]
	return ok
}

// Get returns the definition for a recognized condition.
func Get(condType string) (Definition, bool) {
	def, ok := definitions[condType]
	return def, ok
}

// KnownTypes returns the recognized condition names in priority order,
// highest first.
func KnownTypes() []string {
	types := make([]string, 0, len(definitions))
	for name := range definitions {
		types = append(types, name)
	}
	sortByPriority(types)
	return types
}

func sortByPriority(types []string) {
	for i := 1; i < len(types); i++ {
		for j := i; j > 0 && definitions[types[j]].Priority > definitions[types[j-1]].Priority; j-- {
			types[j], types[j-1] = types[j-1], types[j]
		}
	}
}

// InConflict reports whether two condition types are declared in conflict.
// The declaration is symmetric: a conflict listed on either side counts.
func InConflict(a, b string) bool {
	if defA, ok := definitions[a]; ok {
		for _, c := range defA.ConflictsWith {
			if c == b {
				return true
			}
		}
	}
	if defB, ok := definitions[b]; ok {
		for _, c := range defB.ConflictsWith {
			if c == a {
				return true
			}
		}
	}
	return false
}

// FindInteraction looks up the rule for applying candidate while existing is
// present.
func FindInteraction(candidate, existing string) (Interaction, bool) {
	for _, r := range interactions {
		if r.Candidate == candidate && r.Existing == existing {
			return r, true
		}
	}
	return Interaction{}, false
}
