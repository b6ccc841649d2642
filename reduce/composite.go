package reduce

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvraster/raster"
)

// Composite reduces a stack of rasters pixel by pixel. Every raster must share
// the grid and the band names and shapes of the first. Output bands are named
// "<band>_<reducer>"; a pixel with no defined input stays undefined (count
// reports 0 there instead).
//
// Weighted reducers and the covariances are not defined per pixel and fail
// with ErrUnsupported.
func Composite(red Reducer, rasters ...*raster.Raster) (*raster.Raster, error) {
	const op = "composite"
	if err := red.Validate(); err != nil {
		return nil, reduceErrorf(op, err)
	}
	if red.weighted || red.square() {
		return nil, reduceErrorf(op, fmt.Errorf("reducer %s: %w", red.Name(), raster.ErrUnsupported))
	}
	if len(rasters) == 0 || rasters[0] == nil {
		return nil, reduceErrorf(op, fmt.Errorf("empty stack: %w", raster.ErrInvalidArgument))
	}
	first := rasters[0]
	g := first.Grid()
	for i, r := range rasters[1:] {
		if err := sameLayout(first, r); err != nil {
			return nil, reduceErrorf(op, fmt.Errorf("raster %d: %w", i+1, err))
		}
	}

	pixels := g.Pixels()
	bands := make([]*raster.Band, first.Len())
	stack := make([]*raster.Band, len(rasters))
	for j, b := range first.Bands() {
		for i, r := range rasters {
			stack[i] = r.BandAt(j)
		}
		width := b.Shape.Size()
		data := make([]float64, pixels*width)
		var mask []bool
		samples := make([]float64, 0, len(rasters)*width)
		for p := 0; p < pixels; p++ {
			samples = samples[:0]
			for _, s := range stack {
				if s.Complete(p) {
					samples = append(samples, s.Pixel(p)...)
				}
			}
			v, err := red.fold(samples, nil, width)
			if errors.Is(err, raster.ErrUndefinedReduction) {
				if mask == nil {
					mask = make([]bool, pixels)
					for k := range mask {
						mask[k] = true
					}
				}
				mask[p] = false
				continue
			}
			if err != nil {
				return nil, reduceErrorf(op, err)
			}
			copy(data[p*width:], v)
		}
		bands[j] = &raster.Band{Name: b.Name + "_" + red.Name(), Shape: b.Shape, Data: data, Mask: mask}
	}
	out, err := raster.New(g, bands...)
	if err != nil {
		return nil, reduceErrorf(op, err)
	}

	return out, nil
}

func sameLayout(a, b *raster.Raster) error {
	if b == nil {
		return raster.ErrInvalidArgument
	}
	if a.Grid() != b.Grid() {
		return fmt.Errorf("grid differs: %w", raster.ErrShapeMismatch)
	}
	if a.Len() != b.Len() {
		return fmt.Errorf("%d bands, want %d: %w", b.Len(), a.Len(), raster.ErrShapeMismatch)
	}
	for j := 0; j < a.Len(); j++ {
		x, y := a.BandAt(j), b.BandAt(j)
		if x.Name != y.Name || !x.Shape.Equal(y.Shape) {
			return fmt.Errorf("band %d: %s%s vs %s%s: %w", j, x.Name, x.Shape, y.Name, y.Shape, raster.ErrShapeMismatch)
		}
	}

	return nil
}
