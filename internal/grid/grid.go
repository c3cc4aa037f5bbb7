// Package grid provides map-grid math over token positions: snapping,
// footprints, rotation normalization, and centroid/extent bounds.
package grid

import (
	"errors"
	"math"
	"strconv"
	"strings"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/mapforge/engine/internal/model"
)

// DefaultSquareSize is the edge length of one grid square in map pixels.
const DefaultSquareSize = 50.0

// ErrInvalidPosition is returned when a position string cannot be parsed.
var ErrInvalidPosition = errors.New("invalid position provided")

// PositionFromString parses a position in the "x,y" format used by the UI
// bridge payloads.
func PositionFromString(s string) (geom.XY, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return geom.XY{}, ErrInvalidPosition
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geom.XY{}, ErrInvalidPosition
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geom.XY{}, ErrInvalidPosition
	}
	return geom.XY{X: x, Y: y}, nil
}

// NormalizeDegrees maps any real rotation into [0,360) for display.
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// Snap returns the position snapped to the nearest grid intersection.
func Snap(p geom.XY, squareSize float64) geom.XY {
	if squareSize <= 0 {
		return p
	}
	return geom.XY{
		X: math.Round(p.X/squareSize) * squareSize,
		Y: math.Round(p.Y/squareSize) * squareSize,
	}
}

// FootprintPixels returns the edge length in pixels of the square a token of
// the given size occupies.
func FootprintPixels(size model.SizeCategory, squareSize float64) float64 {
	return size.Footprint() * squareSize
}

// SnapFootprint snaps a token center so its footprint sits on the grid.
// Centers of footprints spanning an odd number of squares land on square
// centers; all others land on grid intersections.
func SnapFootprint(p geom.XY, size model.SizeCategory, squareSize float64) geom.XY {
	if squareSize <= 0 {
		return p
	}
	squares := math.Round(FootprintPixels(size, squareSize) / squareSize)
	if math.Mod(squares, 2) == 1 {
		half := squareSize / 2
		s := Snap(geom.XY{X: p.X - half, Y: p.Y - half}, squareSize)
		return geom.XY{X: s.X + half, Y: s.Y + half}
	}
	return Snap(p, squareSize)
}

// Lerp linearly interpolates between two positions. t is clamped to [0,1].
func Lerp(from, to geom.XY, t float64) geom.XY {
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}
	return from.Add(to.Sub(from).Scale(t))
}

// Distance returns the Euclidean distance between two positions.
func Distance(a, b geom.XY) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Centroid returns the arithmetic mean of the given positions.
// Returns the zero value for an empty slice.
func Centroid(points []geom.XY) geom.XY {
	if len(points) == 0 {
		return geom.XY{}
	}
	var sum geom.XY
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(points)))
}

// Extent returns the axis-aligned bounds of the given positions.
// ok is false for an empty slice.
func Extent(points []geom.XY) (min, max geom.XY, ok bool) {
	if len(points) == 0 {
		return geom.XY{}, geom.XY{}, false
	}
	min, max = points[0], points[0]
	for _, p := range points[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max, true
}
