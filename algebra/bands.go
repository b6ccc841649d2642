package algebra

import (
	"fmt"

	"github.com/katalvlaran/lvraster/raster"
)

// NormalizedDifferenceBand is the output band of NormalizedDifference.
const NormalizedDifferenceBand = "nd"

func asRaster(op string, v raster.Value) (*raster.Raster, error) {
	r, ok := v.(*raster.Raster)
	if !ok {
		return nil, algebraErrorf(op, fmt.Errorf("want raster, got %s: %w", kindOf(v), raster.ErrUnsupported))
	}

	return r, nil
}

func kindOf(v raster.Value) string {
	if v == nil {
		return "nil"
	}

	return v.Kind().String()
}

// Select keeps the named bands in the given order.
func Select(v raster.Value, names ...string) (*raster.Raster, error) {
	r, err := asRaster("select", v)
	if err != nil {
		return nil, err
	}
	out, err := r.Select(names...)
	if err != nil {
		return nil, algebraErrorf("select", err)
	}

	return out, nil
}

// Rename gives the bands of v new names, one per band.
func Rename(v raster.Value, names ...string) (*raster.Raster, error) {
	r, err := asRaster("rename", v)
	if err != nil {
		return nil, err
	}
	if len(names) != r.Len() {
		return nil, algebraErrorf("rename", fmt.Errorf("%d names for %d bands: %w", len(names), r.Len(), raster.ErrShapeMismatch))
	}
	bands := make([]*raster.Band, r.Len())
	for i, b := range r.Bands() {
		bands[i] = b.Renamed(names[i])
	}
	out, err := raster.New(r.Grid(), bands...)
	if err != nil {
		return nil, algebraErrorf("rename", err)
	}

	return out, nil
}

// Cat concatenates the bands of several rasters over one grid.
// Band names must stay unique.
func Cat(vals ...raster.Value) (*raster.Raster, error) {
	if len(vals) == 0 {
		return nil, algebraErrorf("cat", fmt.Errorf("no operands: %w", raster.ErrInvalidArgument))
	}
	grid, _, err := gridOf(vals)
	if err != nil {
		return nil, algebraErrorf("cat", err)
	}
	var bands []*raster.Band
	for _, v := range vals {
		r, err := asRaster("cat", v)
		if err != nil {
			return nil, err
		}
		bands = append(bands, r.Bands()...)
	}
	out, err := raster.New(grid, bands...)
	if err != nil {
		return nil, algebraErrorf("cat", err)
	}

	return out, nil
}

// UpdateMask marks pixels undefined wherever mask is zero or undefined.
// A one-band mask applies to every band; an N-band mask applies band by band.
func UpdateMask(v, mask raster.Value) (*raster.Raster, error) {
	r, err := asRaster("updateMask", v)
	if err != nil {
		return nil, err
	}
	var mviews []view
	switch m := mask.(type) {
	case *raster.Raster:
		if m.Grid() != r.Grid() {
			return nil, algebraErrorf("updateMask", fmt.Errorf("mask grid differs: %w", raster.ErrShapeMismatch))
		}
		mviews, _ = views(m)
	case raster.Scalar:
		mviews, _ = views(m)
	default:
		return nil, algebraErrorf("updateMask", fmt.Errorf("mask is %s: %w", kindOf(mask), raster.ErrUnsupported))
	}
	if len(mviews) != 1 && len(mviews) != r.Len() {
		return nil, algebraErrorf("updateMask", fmt.Errorf("%d mask bands for %d: %w", len(mviews), r.Len(), raster.ErrShapeMismatch))
	}

	pixels := r.Grid().Pixels()
	bands := make([]*raster.Band, r.Len())
	for j, b := range r.Bands() {
		mv := mviews[0]
		if len(mviews) > 1 {
			mv = mviews[j]
		}
		if mv.shape.Rank() != 0 {
			return nil, algebraErrorf("updateMask", fmt.Errorf("mask band %q is an array: %w", mv.name, raster.ErrShapeMismatch))
		}
		m := make([]bool, pixels)
		for p := range m {
			m[p] = b.Defined(p) && mv.defined(p) && mv.pixel(p)[0] != 0
		}
		bands[j] = &raster.Band{Name: b.Name, Shape: b.Shape, Data: b.Data, Mask: m}
	}
	out, err := raster.New(r.Grid(), bands...)
	if err != nil {
		return nil, algebraErrorf("updateMask", err)
	}

	return out, nil
}

// Unmask replaces undefined pixels with fill and clears every mask.
func Unmask(v raster.Value, fill float64) (*raster.Raster, error) {
	r, err := asRaster("unmask", v)
	if err != nil {
		return nil, err
	}
	bands := make([]*raster.Band, r.Len())
	for j, b := range r.Bands() {
		if b.Mask == nil {
			bands[j] = b
			continue
		}
		n := b.Shape.Size()
		data := append([]float64(nil), b.Data...)
		for p, ok := range b.Mask {
			if ok {
				continue
			}
			for k := 0; k < n; k++ {
				data[p*n+k] = fill
			}
		}
		bands[j] = &raster.Band{Name: b.Name, Shape: b.Shape, Data: data}
	}
	out, err := raster.New(r.Grid(), bands...)
	if err != nil {
		return nil, algebraErrorf("unmask", err)
	}

	return out, nil
}

// NormalizedDifference computes (a-b)/(a+b) from two named scalar bands into
// a single band named "nd". A zero sum yields 0.
func NormalizedDifference(v raster.Value, a, b string) (*raster.Raster, error) {
	r, err := asRaster("normalizedDifference", v)
	if err != nil {
		return nil, err
	}
	sel, err := r.Select(a, b)
	if err != nil {
		return nil, algebraErrorf("normalizedDifference", err)
	}
	ba, bb := sel.BandAt(0), sel.BandAt(1)
	if !ba.Scalar() || !bb.Scalar() {
		return nil, algebraErrorf("normalizedDifference", fmt.Errorf("array bands: %w", raster.ErrShapeMismatch))
	}
	pixels := r.Grid().Pixels()
	data := make([]float64, pixels)
	var mask []bool
	for p := 0; p < pixels; p++ {
		if !ba.Defined(p) || !bb.Defined(p) {
			if mask == nil {
				mask = allTrue(pixels)
			}
			mask[p] = false
			continue
		}
		x, y := ba.Data[p], bb.Data[p]
		if s := x + y; s != 0 {
			data[p] = (x - y) / s
		}
	}
	out, err := raster.New(r.Grid(), &raster.Band{Name: NormalizedDifferenceBand, Data: data, Mask: mask})
	if err != nil {
		return nil, algebraErrorf("normalizedDifference", err)
	}

	return out, nil
}
