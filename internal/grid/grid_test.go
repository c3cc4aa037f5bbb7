package grid

import (
	"testing"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapforge/engine/internal/model"
)

func TestPositionFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    geom.XY
		wantErr bool
	}{
		{"plain", "100,250", geom.XY{X: 100, Y: 250}, false},
		{"floats", "12.5,-7.25", geom.XY{X: 12.5, Y: -7.25}, false},
		{"spaces", " 3 , 4 ", geom.XY{X: 3, Y: 4}, false},
		{"missing axis", "42", geom.XY{}, true},
		{"too many parts", "1,2,3", geom.XY{}, true},
		{"not numeric", "a,b", geom.XY{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PositionFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPosition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDegrees(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeDegrees(0))
	assert.Equal(t, 90.0, NormalizeDegrees(450))
	assert.Equal(t, 270.0, NormalizeDegrees(-90))
	assert.Equal(t, 0.0, NormalizeDegrees(720))
}

func TestSnap(t *testing.T) {
	assert.Equal(t, geom.XY{X: 50, Y: 100}, Snap(geom.XY{X: 62, Y: 88}, 50))
	assert.Equal(t, geom.XY{X: 0, Y: 0}, Snap(geom.XY{X: 24, Y: -24}, 50))

	// non-positive square size leaves the position untouched
	assert.Equal(t, geom.XY{X: 13, Y: 7}, Snap(geom.XY{X: 13, Y: 7}, 0))
}

func TestFootprintPixels(t *testing.T) {
	assert.Equal(t, 25.0, FootprintPixels(model.SizeTiny, DefaultSquareSize))
	assert.Equal(t, 50.0, FootprintPixels(model.SizeMedium, DefaultSquareSize))
	assert.Equal(t, 200.0, FootprintPixels(model.SizeGargantuan, DefaultSquareSize))
}

func TestLerp(t *testing.T) {
	from := geom.XY{X: 0, Y: 0}
	to := geom.XY{X: 100, Y: 50}

	assert.Equal(t, from, Lerp(from, to, 0))
	assert.Equal(t, to, Lerp(from, to, 1))
	assert.Equal(t, geom.XY{X: 50, Y: 25}, Lerp(from, to, 0.5))

	// out-of-range progress clamps to the endpoints
	assert.Equal(t, from, Lerp(from, to, -0.5))
	assert.Equal(t, to, Lerp(from, to, 1.5))
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 5.0, Distance(geom.XY{X: 0, Y: 0}, geom.XY{X: 3, Y: 4}))
}

func TestCentroid(t *testing.T) {
	points := []geom.XY{{X: 10, Y: 0}, {X: 50, Y: 30}, {X: 90, Y: 60}}
	assert.Equal(t, geom.XY{X: 50, Y: 30}, Centroid(points))
	assert.Equal(t, geom.XY{}, Centroid(nil))
}

func TestExtent(t *testing.T) {
	points := []geom.XY{{X: 10, Y: 90}, {X: 50, Y: 30}, {X: 90, Y: 60}}

	min, max, ok := Extent(points)
	require.True(t, ok)
	assert.Equal(t, geom.XY{X: 10, Y: 30}, min)
	assert.Equal(t, geom.XY{X: 90, Y: 90}, max)

	_, _, ok = Extent(nil)
	assert.False(t, ok)
}

func TestSnapFootprint(t *testing.T) {
	// odd footprints center on squares, even footprints on intersections
	assert.Equal(t, geom.XY{X: 75, Y: 75}, SnapFootprint(geom.XY{X: 60, Y: 60}, model.SizeMedium, 50))
	assert.Equal(t, geom.XY{X: 50, Y: 50}, SnapFootprint(geom.XY{X: 60, Y: 60}, model.SizeLarge, 50))
	assert.Equal(t, geom.XY{X: 125, Y: 25}, SnapFootprint(geom.XY{X: 110, Y: 40}, model.SizeHuge, 50))

	// non-positive square size leaves the position untouched
	assert.Equal(t, geom.XY{X: 13, Y: 7}, SnapFootprint(geom.XY{X: 13, Y: 7}, model.SizeMedium, 0))
}
