package model

import geom "github.com/peterstace/simplefeatures/geom"

// AnimationStatus is the lifecycle state of a scheduled animation.
type AnimationStatus string

const (
	AnimationPending   AnimationStatus = "pending"
	AnimationRunning   AnimationStatus = "running"
	AnimationPaused    AnimationStatus = "paused"
	AnimationCompleted AnimationStatus = "completed"
	AnimationCancelled AnimationStatus = "cancelled"
)

// AnimationKind is the discriminated kind of an animation. Each kind carries
// its own interpolation fields; the scheduler switches exhaustively over the
// concrete types when producing frames.
type AnimationKind interface {
	Kind() string
}

// Movement linearly interpolates a token position between From and To.
type Movement struct {
	From geom.XY
	To   geom.XY
}

func (Movement) Kind() string { return "movement" }

// Teleport fades the token out at From and back in at To; position switches
// at the halfway point.
type Teleport struct {
	From geom.XY
	To   geom.XY
}

func (Teleport) Kind() string { return "teleport" }

// Rotation interpolates the displayed rotation in degrees.
type Rotation struct {
	FromDegrees float64
	ToDegrees   float64
}

func (Rotation) Kind() string { return "rotation" }

// Scale interpolates the displayed scale factor.
type Scale struct {
	From float64
	To   float64
}

func (Scale) Kind() string { return "scale" }

// Fade interpolates the displayed opacity.
type Fade struct {
	From float64
	To   float64
}

func (Fade) Kind() string { return "fade" }

// ConditionFlash pulses the token with a condition's color while a status
// effect is applied.
type ConditionFlash struct {
	Condition string
	Color     string
}

func (ConditionFlash) Kind() string { return "condition-flash" }

// DamageText floats a damage number up from the token while fading it out.
type DamageText struct {
	Amount     int
	RisePixels float64
}

func (DamageText) Kind() string { return "damage-text" }

// HealText floats a healing number up from the token while fading it out.
type HealText struct {
	Amount     int
	RisePixels float64
}

func (HealText) Kind() string { return "heal-text" }

// TokenFrame is the interpolated visual state for one token produced by a
// single scheduler tick. Nil fields are unaffected by the animation; the
// renderer overlays non-nil fields on the token's persisted state.
type TokenFrame struct {
	TokenID     TokenID
	AnimationID AnimationID
	Kind        string
	Progress    float64

	Position   *geom.XY
	Rotation   *float64
	Scale      *float64
	Opacity    *float64
	FlashColor *string
	FlashAlpha *float64
	Text       *string
	TextOffset *float64
	TextAlpha  *float64
}
