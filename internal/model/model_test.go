package model

import (
	"testing"
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToken_Defaults(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tok := NewTokenAt(CreateTokenData{Name: "Goblin"}, now)

	require.NotEmpty(t, tok.ID)
	assert.Equal(t, "Goblin", tok.Name)
	assert.Equal(t, SizeMedium, tok.Size)
	assert.Equal(t, ShapeCircle, tok.Shape)
	assert.Equal(t, CategoryNPC, tok.Category)
	assert.Equal(t, DefaultFillColor, tok.FillColor)
	assert.Equal(t, DefaultBorderColor, tok.BorderColor)
	assert.Equal(t, DefaultBorderWidth, tok.BorderWidth)
	assert.Equal(t, 1.0, tok.Opacity)
	assert.Equal(t, LabelBottom, tok.Label.Position)
	assert.Equal(t, "Goblin", tok.Label.Text, "label text defaults to token name")
	assert.Equal(t, now, tok.CreatedAt)
	assert.Equal(t, now, tok.UpdatedAt)
}

func TestNewToken_ExplicitFieldsSurviveDefaults(t *testing.T) {
	opacity := 0.5
	width := 0.0

	tok := NewToken(CreateTokenData{
		Name:        "Ogre",
		Size:        SizeLarge,
		Shape:       ShapeSquare,
		Category:    CategoryEnemy,
		FillColor:   "#aa3322",
		Opacity:     &opacity,
		BorderWidth: &width,
		Position:    geom.XY{X: 100, Y: 250},
	})

	assert.Equal(t, SizeLarge, tok.Size)
	assert.Equal(t, ShapeSquare, tok.Shape)
	assert.Equal(t, CategoryEnemy, tok.Category)
	assert.Equal(t, "#aa3322", tok.FillColor)
	assert.Equal(t, 0.5, tok.Opacity)
	assert.Equal(t, 0.0, tok.BorderWidth, "explicit zero border width is kept")
	assert.Equal(t, geom.XY{X: 100, Y: 250}, tok.Position)
}

func TestNewToken_UniqueIDs(t *testing.T) {
	a := NewToken(CreateTokenData{Name: "a"})
	b := NewToken(CreateTokenData{Name: "b"})
	assert.NotEqual(t, a.ID, b.ID)
}

func TestToken_ApplyMergesAndRefreshesUpdatedAt(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := created.Add(5 * time.Minute)

	tok := NewTokenAt(CreateTokenData{Name: "Cleric"}, created)

	name := "Cleric of Lathander"
	rot := 450.0
	out := tok.ApplyAt(TokenUpdate{Name: &name, Rotation: &rot}, updated)

	assert.Equal(t, "Cleric of Lathander", out.Name)
	assert.Equal(t, 450.0, out.Rotation)
	assert.Equal(t, updated, out.UpdatedAt)
	assert.Equal(t, created, out.CreatedAt)

	// original copy untouched
	assert.Equal(t, "Cleric", tok.Name)
	assert.Equal(t, created, tok.UpdatedAt)
}

func TestToken_ApplyEmptyUpdateStillRefreshesUpdatedAt(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	later := created.Add(time.Hour)

	tok := NewTokenAt(CreateTokenData{Name: "Statue"}, created)
	out := tok.ApplyAt(TokenUpdate{}, later)

	assert.Equal(t, later, out.UpdatedAt)
}

func TestSizeCategory_Ordering(t *testing.T) {
	assert.Equal(t, 0, SizeTiny.Ordinal())
	assert.Equal(t, 2, SizeMedium.Ordinal())
	assert.Equal(t, 5, SizeGargantuan.Ordinal())
	assert.Equal(t, -1, SizeCategory("colossal").Ordinal())
	assert.False(t, SizeCategory("colossal").Valid())

	assert.Less(t, SizeSmall.Ordinal(), SizeLarge.Ordinal())
}

func TestSizeCategory_Footprints(t *testing.T) {
	assert.Equal(t, 0.5, SizeTiny.Footprint())
	assert.Equal(t, 1.0, SizeMedium.Footprint())
	assert.Equal(t, 4.0, SizeGargantuan.Footprint())
	assert.Equal(t, 0.0, SizeCategory("unknown").Footprint())
}

func TestToken_HasCondition(t *testing.T) {
	now := time.Now()
	tok := NewTokenAt(CreateTokenData{Name: "Rogue", Conditions: []string{"poisoned"}}, now)

	assert.True(t, tok.HasCondition("poisoned"))
	assert.False(t, tok.HasCondition("stunned"))
	assert.Equal(t, []string{"poisoned"}, tok.ConditionTypes())
	require.Len(t, tok.Conditions, 1)
	assert.Equal(t, -1, tok.Conditions[0].DurationRounds)
}
