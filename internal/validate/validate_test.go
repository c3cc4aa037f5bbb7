package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapforge/engine/internal/condition"
	"github.com/mapforge/engine/internal/model"
)

func intPtr(v int) *int { return &v }

func validToken(t *testing.T) model.Token {
	t.Helper()
	return model.NewToken(model.CreateTokenData{Name: "Fighter"})
}

func TestValidate_FactoryDefaultsProduceNoErrors(t *testing.T) {
	res := Validate(validToken(t), Config{})

	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.True(t, res.DNDCompliant, "domain layer disabled means compliant")
}

func TestValidate_StructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.Token)
		wantMsg string
	}{
		{
			name:    "empty name",
			mutate:  func(tok *model.Token) { tok.Name = "" },
			wantMsg: "name must not be empty",
		},
		{
			name:    "bad fill color",
			mutate:  func(tok *model.Token) { tok.FillColor = "red" },
			wantMsg: "#RRGGBB",
		},
		{
			name:    "short hex",
			mutate:  func(tok *model.Token) { tok.FillColor = "#abc" },
			wantMsg: "#RRGGBB",
		},
		{
			name:    "bad border color",
			mutate:  func(tok *model.Token) { tok.BorderColor = "#12345g" },
			wantMsg: "border color",
		},
		{
			name:    "opacity above one",
			mutate:  func(tok *model.Token) { tok.Opacity = 1.5 },
			wantMsg: "opacity",
		},
		{
			name:    "opacity below zero",
			mutate:  func(tok *model.Token) { tok.Opacity = -0.1 },
			wantMsg: "opacity",
		},
		{
			name:    "negative border width",
			mutate:  func(tok *model.Token) { tok.BorderWidth = -1 },
			wantMsg: "border width",
		},
		{
			name:    "negative layer",
			mutate:  func(tok *model.Token) { tok.Layer = -2 },
			wantMsg: "layer",
		},
		{
			name:    "zero label font size",
			mutate:  func(tok *model.Token) { tok.Label.FontSize = 0 },
			wantMsg: "font size",
		},
		{
			name:    "negative label offset",
			mutate:  func(tok *model.Token) { tok.Label.Offset = -3 },
			wantMsg: "label offset",
		},
		{
			name:    "bad label color",
			mutate:  func(tok *model.Token) { tok.Label.Color = "white" },
			wantMsg: "label color",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := validToken(t)
			tt.mutate(&tok)

			res := Validate(tok, Config{})

			assert.False(t, res.IsValid)
			require.NotEmpty(t, res.Errors)
			assert.Contains(t, res.Errors[0], tt.wantMsg)
		})
	}
}

func TestValidate_HitPointInvariants(t *testing.T) {
	t.Run("current above max plus temp is an error", func(t *testing.T) {
		tok := validToken(t)
		tok.HitPoints = &model.HitPoints{Current: 26, Maximum: 20, Temporary: 5}

		res := Validate(tok, Config{})
		assert.False(t, res.IsValid)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "exceeds maximum")
	})

	t.Run("current equal to max plus temp is allowed", func(t *testing.T) {
		tok := validToken(t)
		tok.HitPoints = &model.HitPoints{Current: 25, Maximum: 20, Temporary: 5}

		res := Validate(tok, Config{})
		assert.True(t, res.IsValid)
	})

	t.Run("zero maximum is an error", func(t *testing.T) {
		tok := validToken(t)
		tok.HitPoints = &model.HitPoints{Current: 0, Maximum: 0}

		res := Validate(tok, Config{})
		assert.False(t, res.IsValid)
	})

	t.Run("negative current and temp are errors", func(t *testing.T) {
		tok := validToken(t)
		tok.HitPoints = &model.HitPoints{Current: -1, Maximum: 10, Temporary: -2}

		res := Validate(tok, Config{})
		assert.Len(t, res.Errors, 2)
	})
}

func TestValidate_DomainLayerDisabledByDefault(t *testing.T) {
	tok := validToken(t)
	tok.ArmorClass = intPtr(99)

	res := Validate(tok, Config{})
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Warnings)
	assert.True(t, res.DNDCompliant)
}

func TestValidate_ArmorClass(t *testing.T) {
	dnd := Config{EnforceDND: true}

	t.Run("outside hard bound", func(t *testing.T) {
		tok := validToken(t)
		tok.ArmorClass = intPtr(35)

		res := Validate(tok, dnd)
		assert.True(t, res.IsValid, "domain violations never block")
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "valid range")
		assert.False(t, res.DNDCompliant)
	})

	t.Run("outside advisory band", func(t *testing.T) {
		tok := validToken(t)
		tok.ArmorClass = intPtr(27)

		res := Validate(tok, dnd)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "unusual")
	})

	t.Run("typical value", func(t *testing.T) {
		tok := validToken(t)
		tok.ArmorClass = intPtr(16)

		res := Validate(tok, dnd)
		assert.Empty(t, res.Warnings)
		assert.True(t, res.DNDCompliant)
	})
}

func TestValidate_Speed(t *testing.T) {
	dnd := Config{EnforceDND: true}

	t.Run("typical medium speed", func(t *testing.T) {
		tok := validToken(t)
		tok.SpeedFeet = intPtr(30)

		res := Validate(tok, dnd)
		assert.Empty(t, res.Warnings)
	})

	t.Run("not a multiple of five", func(t *testing.T) {
		tok := validToken(t)
		tok.SpeedFeet = intPtr(33)

		res := Validate(tok, dnd)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "multiple of 5")
	})

	t.Run("outside per-size expected range", func(t *testing.T) {
		tok := validToken(t)
		tok.Size = model.SizeTiny
		tok.SpeedFeet = intPtr(60)

		res := Validate(tok, dnd)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "tiny")
	})

	t.Run("above ceiling stacks warnings", func(t *testing.T) {
		tok := validToken(t)
		tok.SpeedFeet = intPtr(205)

		res := Validate(tok, dnd)
		// exceeds 200 and is above the medium range
		assert.Len(t, res.Warnings, 2)
	})
}

func TestValidate_Initiative(t *testing.T) {
	dnd := Config{EnforceDND: true}

	tok := validToken(t)
	tok.Initiative = intPtr(55)

	res := Validate(tok, dnd)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "initiative")

	tok.Initiative = intPtr(-10)
	res = Validate(tok, dnd)
	assert.Empty(t, res.Warnings, "boundary value is allowed")
}

func TestValidate_SizeMembership(t *testing.T) {
	t.Run("warning by default", func(t *testing.T) {
		tok := validToken(t)
		tok.Size = "colossal"

		res := Validate(tok, Config{EnforceDND: true})
		assert.True(t, res.IsValid)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "size")
		assert.False(t, res.DNDCompliant)
	})

	t.Run("promoted to error under strict", func(t *testing.T) {
		tok := validToken(t)
		tok.Size = "colossal"

		res := Validate(tok, Config{EnforceDND: true, Strict: true})
		assert.False(t, res.IsValid)
		require.Len(t, res.Errors, 1)
		assert.Empty(t, res.Warnings)
		assert.False(t, res.DNDCompliant, "promoted size error still breaks compliance")
	})
}

func TestValidate_Conditions(t *testing.T) {
	dnd := Config{EnforceDND: true}

	t.Run("unknown condition", func(t *testing.T) {
		tok := validToken(t)
		tok.Conditions = []model.ConditionEffect{{Type: "inspired"}}

		res := Validate(tok, dnd)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "not a recognized condition")
	})

	t.Run("unknown condition allowed as custom", func(t *testing.T) {
		tok := validToken(t)
		tok.Conditions = []model.ConditionEffect{{Type: "inspired"}}

		res := Validate(tok, Config{EnforceDND: true, AllowCustomConditions: true})
		assert.Empty(t, res.Warnings)
		assert.True(t, res.DNDCompliant)
	})

	t.Run("pairwise conflict reported not blocked", func(t *testing.T) {
		tok := validToken(t)
		tok.Conditions = []model.ConditionEffect{
			{Type: condition.Prone},
			{Type: condition.Unconscious},
		}

		res := Validate(tok, dnd)
		assert.True(t, res.IsValid)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "conflict")
	})

	t.Run("duplicates", func(t *testing.T) {
		tok := validToken(t)
		tok.Conditions = []model.ConditionEffect{
			{Type: condition.Poisoned},
			{Type: condition.Poisoned},
		}

		res := Validate(tok, dnd)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "applied 2 times")
	})

	t.Run("too many active conditions", func(t *testing.T) {
		tok := validToken(t)
		for _, ct := range []string{
			condition.Blinded, condition.Charmed, condition.Deafened,
			condition.Frightened, condition.Grappled, condition.Invisible,
			condition.Poisoned, condition.Prone, condition.Restrained,
		} {
			tok.Conditions = append(tok.Conditions, model.ConditionEffect{Type: ct})
		}

		res := Validate(tok, dnd)

		var found bool
		for _, w := range res.Warnings {
			if strings.Contains(w, "advisory limit") {
				found = true
			}
		}
		assert.True(t, found, "expected an advisory-limit warning, got %v", res.Warnings)
	})
}
