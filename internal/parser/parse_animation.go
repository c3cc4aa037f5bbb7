package parser

import (
	"encoding/json"
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/mapforge/engine/internal/condition"
	"github.com/mapforge/engine/internal/model"
)

// AnimationRequest is the JSON shape of an animation schedule command.
// Which fields are required depends on the kind.
type AnimationRequest struct {
	TokenID    model.TokenID `json:"tokenId"`
	Kind       string        `json:"kind"`
	DurationMs int           `json:"durationMs"`
	Easing     string        `json:"easing,omitempty"`
	DelayMs    int           `json:"delayMs,omitempty"`
	Priority   int           `json:"priority,omitempty"`

	// movement, teleport
	From *[2]float64 `json:"from,omitempty"`
	To   *[2]float64 `json:"to,omitempty"`

	// rotation, scale, fade
	FromValue *float64 `json:"fromValue,omitempty"`
	ToValue   *float64 `json:"toValue,omitempty"`

	// condition-flash
	Condition string `json:"condition,omitempty"`
	Color     string `json:"color,omitempty"`

	// damage-text, heal-text
	Amount int `json:"amount,omitempty"`
}

// ParseAnimationSchedule parses an animation schedule request.
// data[0] is a JSON AnimationRequest payload.
func (p *Parser) ParseAnimationSchedule(data []string) (AnimationRequest, error) {
	var req AnimationRequest

	if len(data) < 1 {
		return req, fmt.Errorf("animation schedule: expected 1 argument, got %d", len(data))
	}
	data = fixArgs(data)

	if err := json.Unmarshal([]byte(data[0]), &req); err != nil {
		return req, fmt.Errorf("error unmarshalling animation request: %w", err)
	}
	if req.TokenID == "" {
		return req, fmt.Errorf("animation schedule: tokenId is required")
	}
	if req.DurationMs <= 0 {
		return req, fmt.Errorf("animation schedule: durationMs must be positive")
	}
	if _, err := req.AnimationKind(); err != nil {
		return req, err
	}
	return req, nil
}

// AnimationKind converts the flat request into the tagged animation kind
// consumed by the scheduler.
func (r AnimationRequest) AnimationKind() (model.AnimationKind, error) {
	switch r.Kind {
	case "movement", "teleport":
		if r.From == nil || r.To == nil {
			return nil, fmt.Errorf("animation %s: from and to positions are required", r.Kind)
		}
		from := geom.XY{X: r.From[0], Y: r.From[1]}
		to := geom.XY{X: r.To[0], Y: r.To[1]}
		if r.Kind == "teleport" {
			return model.Teleport{From: from, To: to}, nil
		}
		return model.Movement{From: from, To: to}, nil

	case "rotation":
		if r.FromValue == nil || r.ToValue == nil {
			return nil, fmt.Errorf("animation rotation: fromValue and toValue are required")
		}
		return model.Rotation{FromDegrees: *r.FromValue, ToDegrees: *r.ToValue}, nil

	case "scale":
		if r.FromValue == nil || r.ToValue == nil {
			return nil, fmt.Errorf("animation scale: fromValue and toValue are required")
		}
		return model.Scale{From: *r.FromValue, To: *r.ToValue}, nil

	case "fade":
		if r.FromValue == nil || r.ToValue == nil {
			return nil, fmt.Errorf("animation fade: fromValue and toValue are required")
		}
		return model.Fade{From: *r.FromValue, To: *r.ToValue}, nil

	case "condition-flash":
		if r.Condition == "" {
			return nil, fmt.Errorf("animation condition-flash: condition is required")
		}
		color := r.Color
		if color == "" {
			if def, ok := condition.Get(r.Condition); ok {
				color = def.Color
			}
		}
		return model.ConditionFlash{Condition: r.Condition, Color: color}, nil

	case "damage-text":
		if r.Amount <= 0 {
			return nil, fmt.Errorf("animation damage-text: amount must be positive")
		}
		return model.DamageText{Amount: r.Amount}, nil

	case "heal-text":
		if r.Amount <= 0 {
			return nil, fmt.Errorf("animation heal-text: amount must be positive")
		}
		return model.HealText{Amount: r.Amount}, nil

	default:
		return nil, fmt.Errorf("animation schedule: unknown kind %q", r.Kind)
	}
}
