package raster

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Grid is the spatial reference shared by all bands of a Raster.
// The origin is the upper-left corner; rows grow southwards.
type Grid struct {
	Width, Height int
	// OriginX, OriginY locate the upper-left corner of pixel (0,0).
	OriginX, OriginY float64
	// CellSize is the side of one square pixel in ground units.
	CellSize float64
	// CRS is an opaque coordinate reference label; grids only combine when equal.
	CRS string
}

// NewGrid returns a Grid of w×h cells with a unit cell size at the origin.
func NewGrid(w, h int) Grid {
	return Grid{Width: w, Height: h, CellSize: 1}
}

// Validate reports ErrInvalidArgument for non-positive sizes.
func (g Grid) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("grid %dx%d: %w", g.Width, g.Height, ErrInvalidArgument)
	}
	if !(g.CellSize > 0) || math.IsInf(g.CellSize, 0) {
		return fmt.Errorf("grid cell size %g: %w", g.CellSize, ErrInvalidArgument)
	}

	return nil
}

// Pixels returns Width*Height.
func (g Grid) Pixels() int { return g.Width * g.Height }

// Index maps (col,row) to the row-major pixel index.
func (g Grid) Index(col, row int) int { return row*g.Width + col }

// Coordinate converts a pixel index back to (col,row).
func (g Grid) Coordinate(p int) (col, row int) { return p % g.Width, p / g.Width }

// Bound returns the ground extent covered by the grid.
func (g Grid) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{g.OriginX, g.OriginY - float64(g.Height)*g.CellSize},
		Max: orb.Point{g.OriginX + float64(g.Width)*g.CellSize, g.OriginY},
	}
}

// PixelCenter returns the ground coordinate at the center of (col,row).
func (g Grid) PixelCenter(col, row int) orb.Point {
	return orb.Point{
		g.OriginX + (float64(col)+0.5)*g.CellSize,
		g.OriginY - (float64(row)+0.5)*g.CellSize,
	}
}

// PixelAt returns the pixel containing pt. ok is false outside the grid.
// Points on the right or bottom edge belong to no pixel.
func (g Grid) PixelAt(pt orb.Point) (col, row int, ok bool) {
	fx := (pt[0] - g.OriginX) / g.CellSize
	fy := (g.OriginY - pt[1]) / g.CellSize
	if fx < 0 || fy < 0 {
		return 0, 0, false
	}
	col, row = int(math.Floor(fx)), int(math.Floor(fy))
	if col >= g.Width || row >= g.Height {
		return 0, 0, false
	}

	return col, row, true
}
