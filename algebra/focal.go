package algebra

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvraster/raster"
)

// FocalMedian replaces every pixel of each scalar band with the median of the
// defined pixels in the (2·radius+1)² window around it, clipped at the grid
// edge. Pixels whose window holds no defined value stay undefined.
func FocalMedian(v raster.Value, radius int) (*raster.Raster, error) {
	const op = "focalMedian"
	r, err := asRaster(op, v)
	if err != nil {
		return nil, err
	}
	if radius < 0 {
		return nil, algebraErrorf(op, fmt.Errorf("radius %d: %w", radius, raster.ErrInvalidArgument))
	}
	g := r.Grid()
	w, h := g.Width, g.Height
	side := 2*radius + 1
	window := make([]float64, 0, side*side)
	bands := make([]*raster.Band, r.Len())
	for j, b := range r.Bands() {
		if !b.Scalar() {
			return nil, algebraErrorf(op, fmt.Errorf("band %q is an array: %w", b.Name, raster.ErrUnsupported))
		}
		data := make([]float64, g.Pixels())
		var mask []bool
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				window = window[:0]
				for dy := -radius; dy <= radius; dy++ {
					yy := y + dy
					if yy < 0 || yy >= h {
						continue
					}
					for dx := -radius; dx <= radius; dx++ {
						xx := x + dx
						if xx < 0 || xx >= w {
							continue
						}
						if p := yy*w + xx; b.Defined(p) {
							window = append(window, b.Data[p])
						}
					}
				}
				p := y*w + x
				if len(window) == 0 {
					if mask == nil {
						mask = allTrue(g.Pixels())
					}
					mask[p] = false
					continue
				}
				data[p] = median(window)
			}
		}
		bands[j] = &raster.Band{Name: b.Name, Data: data, Mask: mask}
	}
	out, err := raster.New(g, bands...)
	if err != nil {
		return nil, algebraErrorf(op, err)
	}

	return out, nil
}

// median sorts xs in place and returns its middle value (mean of the two
// middle values for even lengths).
func median(xs []float64) float64 {
	sort.Float64s(xs)
	n := len(xs)
	if n%2 == 1 {
		return xs[n/2]
	}

	return (xs[n/2-1] + xs[n/2]) / 2
}
