package scheduler

import (
	"fmt"

	"github.com/mapforge/engine/internal/grid"
	"github.com/mapforge/engine/internal/model"
)

// defaultTextRise is how far damage/heal text floats when the spec leaves
// RisePixels unset.
const defaultTextRise = 30.0

// interpolate produces the visual frame for one animation at the given eased
// progress. The switch is exhaustive over the animation kinds.
func interpolate(a *animation, eased float64) model.TokenFrame {
	frame := model.TokenFrame{
		TokenID:     a.spec.TokenID,
		AnimationID: a.id,
		Kind:        kindName(a.spec.Kind),
		Progress:    eased,
	}

	switch k := a.spec.Kind.(type) {
	case model.Movement:
		pos := grid.Lerp(k.From, k.To, eased)
		frame.Position = &pos

	case model.Teleport:
		// fade out at the origin, switch position halfway, fade back in
		if eased < 0.5 {
			pos := k.From
			opacity := 1 - 2*eased
			frame.Position = &pos
			frame.Opacity = &opacity
		} else {
			pos := k.To
			opacity := 2*eased - 1
			frame.Position = &pos
			frame.Opacity = &opacity
		}

	case model.Rotation:
		deg := k.FromDegrees + (k.ToDegrees-k.FromDegrees)*eased
		norm := grid.NormalizeDegrees(deg)
		frame.Rotation = &norm

	case model.Scale:
		scale := k.From + (k.To-k.From)*eased
		frame.Scale = &scale

	case model.Fade:
		opacity := k.From + (k.To-k.From)*eased
		frame.Opacity = &opacity

	case model.ConditionFlash:
		color := k.Color
		// triangle pulse: fully lit at the midpoint, dark at both ends
		alpha := 1 - abs(2*eased-1)
		frame.FlashColor = &color
		frame.FlashAlpha = &alpha

	case model.DamageText:
		text := fmt.Sprintf("-%d", k.Amount)
		frame.Text = &text
		setFloatingText(&frame, k.RisePixels, eased)

	case model.HealText:
		text := fmt.Sprintf("+%d", k.Amount)
		frame.Text = &text
		setFloatingText(&frame, k.RisePixels, eased)
	}

	return frame
}

// setFloatingText applies the shared float-up-and-fade treatment for
// damage/heal text.
func setFloatingText(frame *model.TokenFrame, rise, eased float64) {
	if rise == 0 {
		rise = defaultTextRise
	}
	offset := -rise * eased
	alpha := 1 - eased
	frame.TextOffset = &offset
	frame.TextAlpha = &alpha
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
