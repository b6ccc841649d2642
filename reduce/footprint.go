package reduce

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvraster/raster"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Sample rasterizes fp over g and returns the index of the pixel under every
// sample point, in row-major lattice order.
//
// Sample points form a lattice of pitch scale anchored at the grid's
// upper-left corner, so with scale equal to the cell size the points are the
// pixel centers. A finer scale visits a pixel several times, a coarser one
// skips pixels. scale <= 0 selects g.CellSize.
//
// Area geometries (orb.Bound, orb.Ring, orb.Polygon, orb.MultiPolygon and
// collections of those) keep the lattice points they contain. Point
// geometries sample the pixel under each point regardless of scale. A nil
// footprint covers the whole grid.
func Sample(g raster.Grid, fp orb.Geometry, scale float64) ([]int, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("scale %g: %w", scale, raster.ErrInvalidArgument)
	}
	if scale <= 0 {
		scale = g.CellSize
	}

	switch f := fp.(type) {
	case orb.Point:
		return samplePoints(g, f), nil
	case orb.MultiPoint:
		return samplePoints(g, f...), nil
	}

	contains, err := containment(fp)
	if err != nil {
		return nil, err
	}
	gb := g.Bound()
	b := gb
	if fp != nil {
		fb := fp.Bound()
		if !gb.Intersects(fb) {
			return nil, nil
		}
		b = orb.Bound{
			Min: orb.Point{math.Max(gb.Min[0], fb.Min[0]), math.Max(gb.Min[1], fb.Min[1])},
			Max: orb.Point{math.Min(gb.Max[0], fb.Max[0]), math.Min(gb.Max[1], fb.Max[1])},
		}
	}

	// Lattice point (i,j) sits at (minX+(i+½)s, maxY-(j+½)s).
	i0 := max(0, int(math.Floor((b.Min[0]-gb.Min[0])/scale-0.5)))
	i1 := int(math.Ceil((b.Max[0]-gb.Min[0])/scale - 0.5))
	j0 := max(0, int(math.Floor((gb.Max[1]-b.Max[1])/scale-0.5)))
	j1 := int(math.Ceil((gb.Max[1]-b.Min[1])/scale - 0.5))

	var out []int
	var pt orb.Point
	for j := j0; j <= j1; j++ {
		pt[1] = gb.Max[1] - (float64(j)+0.5)*scale
		for i := i0; i <= i1; i++ {
			pt[0] = gb.Min[0] + (float64(i)+0.5)*scale
			if !contains(pt) {
				continue
			}
			if col, row, ok := g.PixelAt(pt); ok {
				out = append(out, g.Index(col, row))
			}
		}
	}

	return out, nil
}

func samplePoints(g raster.Grid, pts ...orb.Point) []int {
	out := make([]int, 0, len(pts))
	for _, pt := range pts {
		if col, row, ok := g.PixelAt(pt); ok {
			out = append(out, g.Index(col, row))
		}
	}

	return out
}

// containment returns the point-in-footprint predicate for area geometries.
func containment(fp orb.Geometry) (func(orb.Point) bool, error) {
	switch f := fp.(type) {
	case nil:
		return func(orb.Point) bool { return true }, nil
	case orb.Bound:
		return f.Contains, nil
	case orb.Ring:
		return func(pt orb.Point) bool { return planar.RingContains(f, pt) }, nil
	case orb.Polygon:
		return func(pt orb.Point) bool { return planar.PolygonContains(f, pt) }, nil
	case orb.MultiPolygon:
		return func(pt orb.Point) bool { return planar.MultiPolygonContains(f, pt) }, nil
	case orb.Collection:
		parts := make([]func(orb.Point) bool, len(f))
		for i, g := range f {
			c, err := containment(g)
			if err != nil {
				return nil, err
			}
			parts[i] = c
		}
		return func(pt orb.Point) bool {
			for _, c := range parts {
				if c(pt) {
					return true
				}
			}
			return false
		}, nil
	default:
		return nil, fmt.Errorf("footprint %s: %w", fp.GeoJSONType(), raster.ErrUnsupported)
	}
}
