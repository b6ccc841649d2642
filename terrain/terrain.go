// Package terrain derives slope, aspect and hillshade from an elevation band.
package terrain

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvraster/raster"
)

// Output band names.
const (
	ElevationBand = "elevation"
	SlopeBand     = "slope"
	AspectBand    = "aspect"
	HillshadeBand = "hillshade"
)

// Terrain returns a raster with bands elevation, slope and aspect computed
// from the scalar band of r named band (the only band when band is empty).
//
// Slope and aspect are in degrees from the Horn 3×3 gradient. Aspect is the
// compass direction the slope faces, clockwise from north, in [0,360); flat
// cells report 0. Neighbors outside the grid or undefined take the center
// value. Undefined elevations stay undefined.
func Terrain(r *raster.Raster, band string) (*raster.Raster, error) {
	const op = "terrain"
	elev, err := elevation(r, band)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	g := r.Grid()
	n := g.Pixels()
	slope := make([]float64, n)
	aspect := make([]float64, n)
	for p := 0; p < n; p++ {
		if !elev.Defined(p) {
			continue
		}
		dx, dy := horn(g, elev, p)
		slope[p], aspect[p] = degrees(dx, dy)
	}
	out, err := raster.New(g,
		elev.Renamed(ElevationBand),
		&raster.Band{Name: SlopeBand, Data: slope, Mask: elev.Mask},
		&raster.Band{Name: AspectBand, Data: aspect, Mask: elev.Mask},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// Hillshade illuminates the elevation band of r from the sun at azimuth
// (degrees clockwise from north) and zenith (degrees from vertical):
//
//	cos(azimuth−aspect)·sin(slope)·sin(zenith) + cos(zenith)·cos(slope)
//
// The single output band "hillshade" ranges over [-1,1].
func Hillshade(r *raster.Raster, band string, azimuth, zenith float64) (*raster.Raster, error) {
	const op = "hillshade"
	t, err := Terrain(r, band)
	if err != nil {
		return nil, err
	}
	slope, _ := t.Band(SlopeBand)
	aspect, _ := t.Band(AspectBand)
	az, ze := azimuth*math.Pi/180, zenith*math.Pi/180
	data := make([]float64, len(slope.Data))
	for p := range data {
		if !slope.Defined(p) {
			continue
		}
		s, a := slope.Data[p]*math.Pi/180, aspect.Data[p]*math.Pi/180
		data[p] = math.Cos(az-a)*math.Sin(s)*math.Sin(ze) + math.Cos(ze)*math.Cos(s)
	}
	out, err := raster.New(r.Grid(), &raster.Band{Name: HillshadeBand, Data: data, Mask: slope.Mask})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func elevation(r *raster.Raster, band string) (*raster.Band, error) {
	if r == nil {
		return nil, raster.ErrInvalidArgument
	}
	var b *raster.Band
	switch {
	case band != "":
		var err error
		if b, err = r.Band(band); err != nil {
			return nil, err
		}
	case r.Len() == 1:
		b = r.BandAt(0)
	default:
		return nil, fmt.Errorf("%d bands and no elevation band named: %w", r.Len(), raster.ErrShapeMismatch)
	}
	if !b.Scalar() {
		return nil, fmt.Errorf("band %q has shape %s: %w", b.Name, b.Shape, raster.ErrShapeMismatch)
	}

	return b, nil
}

// horn returns the eastward and southward elevation gradients at p.
//
//	a b c
//	d e f
//	g h i
func horn(g raster.Grid, b *raster.Band, p int) (dx, dy float64) {
	col, row := g.Coordinate(p)
	center := b.Data[p]
	z := func(dc, dr int) float64 {
		c, r := col+dc, row+dr
		if c < 0 || r < 0 || c >= g.Width || r >= g.Height {
			return center
		}
		q := g.Index(c, r)
		if !b.Defined(q) {
			return center
		}
		return b.Data[q]
	}
	a, bb, c := z(-1, -1), z(0, -1), z(1, -1)
	d, f := z(-1, 0), z(1, 0)
	gg, h, i := z(-1, 1), z(0, 1), z(1, 1)
	dx = ((c + 2*f + i) - (a + 2*d + gg)) / (8 * g.CellSize)
	dy = ((gg + 2*h + i) - (a + 2*bb + c)) / (8 * g.CellSize)

	return dx, dy
}

// degrees converts gradients to slope and aspect in degrees.
func degrees(dx, dy float64) (slope, aspect float64) {
	slope = math.Atan(math.Hypot(dx, dy)) * 180 / math.Pi
	if dx == 0 && dy == 0 {
		return slope, 0
	}
	aspect = math.Atan2(-dx, dy) * 180 / math.Pi
	if aspect < 0 {
		aspect += 360
	}

	return slope, aspect
}
