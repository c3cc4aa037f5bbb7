package model

import (
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
)

// SizeCategory is the ordinal size class of a token. Each size maps to a
// fixed footprint in grid squares.
type SizeCategory string

const (
	SizeTiny       SizeCategory = "tiny"
	SizeSmall      SizeCategory = "small"
	SizeMedium     SizeCategory = "medium"
	SizeLarge      SizeCategory = "large"
	SizeHuge       SizeCategory = "huge"
	SizeGargantuan SizeCategory = "gargantuan"
)

// SizeOrder lists the size categories smallest first. Sorting by size uses
// the index in this slice.
var SizeOrder = []SizeCategory{
	SizeTiny,
	SizeSmall,
	SizeMedium,
	SizeLarge,
	SizeHuge,
	SizeGargantuan,
}

// sizeFootprints maps each size to its footprint in grid squares.
var sizeFootprints = map[SizeCategory]float64{
	SizeTiny:       0.5,
	SizeSmall:      1,
	SizeMedium:     1,
	SizeLarge:      2,
	SizeHuge:       3,
	SizeGargantuan: 4,
}

// Ordinal returns the position of s in SizeOrder, or -1 for unknown sizes.
func (s SizeCategory) Ordinal() int {
	for i, v := range SizeOrder {
		if v == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the six recognized sizes.
func (s SizeCategory) Valid() bool {
	return s.Ordinal() >= 0
}

// Footprint returns the token footprint in grid squares, or 0 for unknown sizes.
func (s SizeCategory) Footprint() float64 {
	return sizeFootprints[s]
}

// TokenShape is the drawn outline of a token.
type TokenShape string

const (
	ShapeCircle TokenShape = "circle"
	ShapeSquare TokenShape = "square"
)

// TokenCategory classifies what a token represents on the map.
type TokenCategory string

const (
	CategoryPlayer      TokenCategory = "player"
	CategoryEnemy       TokenCategory = "enemy"
	CategoryNPC         TokenCategory = "npc"
	CategoryObject      TokenCategory = "object"
	CategoryEnvironment TokenCategory = "environment"
)

// LabelPosition is where the token label is drawn relative to the token.
type LabelPosition string

const (
	LabelTop    LabelPosition = "top"
	LabelBottom LabelPosition = "bottom"
	LabelHidden LabelPosition = "hidden"
)

// HitPoints is the hit-point record of a token.
// Invariants: Current >= 0, Maximum > 0, Temporary >= 0,
// Current <= Maximum+Temporary.
type HitPoints struct {
	Current   int `json:"current"`
	Maximum   int `json:"maximum"`
	Temporary int `json:"temporary"`
}

// Label describes the text drawn with a token.
type Label struct {
	Text     string        `json:"text"`
	Position LabelPosition `json:"position"`
	Color    string        `json:"color"`
	FontSize float64       `json:"fontSize"`
	Offset   float64       `json:"offset"`
}

// ConditionEffect is a named status effect carried by a token.
// DurationRounds of -1 means indefinite; expiry is decided by the caller,
// not by the engine.
type ConditionEffect struct {
	Type           string    `json:"type"`
	Source         string    `json:"source,omitempty"`
	DurationRounds int       `json:"durationRounds"`
	AppliedAt      time.Time `json:"appliedAt"`
	AppliedBy      string    `json:"appliedBy,omitempty"`
}

// Token is the central entity of the engine: a placed game piece with
// geometry, visual attributes, and domain (HP/AC/speed/conditions) state.
// Tokens are treated as values; all mutation goes through Apply, which
// returns a fresh copy with UpdatedAt refreshed.
type Token struct {
	ID   TokenID `json:"id"`
	Name string  `json:"name"`

	Position geom.XY      `json:"position"`
	Rotation float64      `json:"rotation"` // degrees, any real; display normalizes to [0,360)
	Size     SizeCategory `json:"size"`

	Shape       TokenShape `json:"shape"`
	FillColor   string     `json:"fillColor"`
	BorderColor string     `json:"borderColor,omitempty"`
	BorderWidth float64    `json:"borderWidth"`
	Opacity     float64    `json:"opacity"`
	Layer       int        `json:"layer"`

	Category   TokenCategory `json:"category"`
	IsPlayer   bool          `json:"isPlayer"`
	Initiative *int          `json:"initiative,omitempty"`
	HitPoints  *HitPoints    `json:"hitPoints,omitempty"`
	ArmorClass *int          `json:"armorClass,omitempty"`
	SpeedFeet  *int          `json:"speedFeet,omitempty"`

	Conditions []ConditionEffect `json:"conditions,omitempty"`

	Label Label `json:"label"`

	TemplateID TemplateID `json:"templateId,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// HasCondition reports whether the token carries a condition of the given type.
func (t Token) HasCondition(condType string) bool {
	for _, c := range t.Conditions {
		if c.Type == condType {
			return true
		}
	}
	return false
}

// ConditionTypes returns the condition type names in application order.
func (t Token) ConditionTypes() []string {
	types := make([]string, len(t.Conditions))
	for i, c := range t.Conditions {
		types[i] = c.Type
	}
	return types
}
