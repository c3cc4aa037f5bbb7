package model

import (
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
)

// Factory defaults applied by NewToken when creation data leaves a field unset.
const (
	DefaultFillColor     = "#4a7ab5"
	DefaultBorderColor   = "#1e1e1e"
	DefaultBorderWidth   = 2.0
	DefaultLabelColor    = "#ffffff"
	DefaultLabelFontSize = 12.0
	DefaultLabelOffset   = 4.0
)

// CreateTokenData is the input bundle consumed by NewToken. Template-library
// defaults arrive in this shape and are consumed unmodified.
type CreateTokenData struct {
	Name     string       `json:"name"`
	Position geom.XY      `json:"position"`
	Rotation float64      `json:"rotation"`
	Size     SizeCategory `json:"size"`

	Shape       TokenShape `json:"shape"`
	FillColor   string     `json:"fillColor"`
	BorderColor string     `json:"borderColor"`
	BorderWidth *float64   `json:"borderWidth,omitempty"`
	Opacity     *float64   `json:"opacity,omitempty"`
	Layer       int        `json:"layer"`

	Category   TokenCategory `json:"category"`
	IsPlayer   bool          `json:"isPlayer"`
	Initiative *int          `json:"initiative,omitempty"`
	HitPoints  *HitPoints    `json:"hitPoints,omitempty"`
	ArmorClass *int          `json:"armorClass,omitempty"`
	SpeedFeet  *int          `json:"speedFeet,omitempty"`

	Conditions []string `json:"conditions,omitempty"`

	Label *Label `json:"label,omitempty"`

	TemplateID TemplateID `json:"templateId,omitempty"`
}

// NewToken builds a Token from creation data, assigning a fresh id, both
// timestamps, and defaults for any unset field.
func NewToken(data CreateTokenData) Token {
	return NewTokenAt(data, time.Now())
}

// NewTokenAt is NewToken with an explicit creation time.
func NewTokenAt(data CreateTokenData, now time.Time) Token {
	t := Token{
		ID:          NewTokenID(),
		Name:        data.Name,
		Position:    data.Position,
		Rotation:    data.Rotation,
		Size:        data.Size,
		Shape:       data.Shape,
		FillColor:   data.FillColor,
		BorderColor: data.BorderColor,
		BorderWidth: DefaultBorderWidth,
		Opacity:     1,
		Layer:       data.Layer,
		Category:    data.Category,
		IsPlayer:    data.IsPlayer,
		Initiative:  data.Initiative,
		HitPoints:   data.HitPoints,
		ArmorClass:  data.ArmorClass,
		SpeedFeet:   data.SpeedFeet,
		TemplateID:  data.TemplateID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if t.Size == "" {
		t.Size = SizeMedium
	}
	if t.Shape == "" {
		t.Shape = ShapeCircle
	}
	if t.Category == "" {
		t.Category = CategoryNPC
	}
	if t.FillColor == "" {
		t.FillColor = DefaultFillColor
	}
	if t.BorderColor == "" {
		t.BorderColor = DefaultBorderColor
	}
	if data.BorderWidth != nil {
		t.BorderWidth = *data.BorderWidth
	}
	if data.Opacity != nil {
		t.Opacity = *data.Opacity
	}

	if data.Label != nil {
		t.Label = *data.Label
	}
	if t.Label.Text == "" {
		t.Label.Text = t.Name
	}
	if t.Label.Position == "" {
		t.Label.Position = LabelBottom
	}
	if t.Label.Color == "" {
		t.Label.Color = DefaultLabelColor
	}
	if t.Label.FontSize == 0 {
		t.Label.FontSize = DefaultLabelFontSize
	}
	if t.Label.Offset == 0 {
		t.Label.Offset = DefaultLabelOffset
	}

	for _, c := range data.Conditions {
		t.Conditions = append(t.Conditions, ConditionEffect{
			Type:           c,
			DurationRounds: -1,
			AppliedAt:      now,
		})
	}

	return t
}

// TokenUpdate carries optional field changes for a token. Nil fields are
// left untouched by Apply.
type TokenUpdate struct {
	Name     *string       `json:"name,omitempty"`
	Position *geom.XY      `json:"position,omitempty"`
	Rotation *float64      `json:"rotation,omitempty"`
	Size     *SizeCategory `json:"size,omitempty"`

	Shape       *TokenShape `json:"shape,omitempty"`
	FillColor   *string     `json:"fillColor,omitempty"`
	BorderColor *string     `json:"borderColor,omitempty"`
	BorderWidth *float64    `json:"borderWidth,omitempty"`
	Opacity     *float64    `json:"opacity,omitempty"`
	Layer       *int        `json:"layer,omitempty"`

	Category   *TokenCategory `json:"category,omitempty"`
	IsPlayer   *bool          `json:"isPlayer,omitempty"`
	Initiative *int           `json:"initiative,omitempty"`
	HitPoints  *HitPoints     `json:"hitPoints,omitempty"`
	ArmorClass *int           `json:"armorClass,omitempty"`
	SpeedFeet  *int           `json:"speedFeet,omitempty"`

	Label *Label `json:"label,omitempty"`
}

// Apply merges an update into the token and returns the resulting copy.
// UpdatedAt is always refreshed, even for an empty update.
func (t Token) Apply(u TokenUpdate) Token {
	return t.ApplyAt(u, time.Now())
}

// ApplyAt is Apply with an explicit update time.
func (t Token) ApplyAt(u TokenUpdate, now time.Time) Token {
	out := t

	if u.Name != nil {
		out.Name = *u.Name
	}
	if u.Position != nil {
		out.Position = *u.Position
	}
	if u.Rotation != nil {
		out.Rotation = *u.Rotation
	}
	if u.Size != nil {
		out.Size = *u.Size
	}
	if u.Shape != nil {
		out.Shape = *u.Shape
	}
	if u.FillColor != nil {
		out.FillColor = *u.FillColor
	}
	if u.BorderColor != nil {
		out.BorderColor = *u.BorderColor
	}
	if u.BorderWidth != nil {
		out.BorderWidth = *u.BorderWidth
	}
	if u.Opacity != nil {
		out.Opacity = *u.Opacity
	}
	if u.Layer != nil {
		out.Layer = *u.Layer
	}
	if u.Category != nil {
		out.Category = *u.Category
	}
	if u.IsPlayer != nil {
		out.IsPlayer = *u.IsPlayer
	}
	if u.Initiative != nil {
		out.Initiative = u.Initiative
	}
	if u.HitPoints != nil {
		out.HitPoints = u.HitPoints
	}
	if u.ArmorClass != nil {
		out.ArmorClass = u.ArmorClass
	}
	if u.SpeedFeet != nil {
		out.SpeedFeet = u.SpeedFeet
	}
	if u.Label != nil {
		out.Label = *u.Label
	}

	out.UpdatedAt = now
	return out
}

// WithConditions returns a copy of the token carrying the given condition
// effects, with UpdatedAt refreshed.
func (t Token) WithConditions(effects []ConditionEffect, now time.Time) Token {
	out := t
	out.Conditions = effects
	out.UpdatedAt = now
	return out
}
