package algebra

import (
	"fmt"

	"github.com/katalvlaran/lvraster/raster"
)

// ConstantBand names the single band of a constant image.
const ConstantBand = "constant"

// pixelFunc computes one output pixel from the operand pixels.
type pixelFunc func(in [][]float64, out []float64) error

// kernel plans a computation once per output band from the operand band
// shapes, returning the output shape and the per-pixel function.
type kernel func(shapes []raster.Shape) (raster.Shape, pixelFunc, error)

// view is one operand band; stride 0 repeats the same values at every pixel.
type view struct {
	name   string
	shape  raster.Shape
	data   []float64
	mask   []bool
	stride int
}

func (v view) pixel(p int) []float64 {
	n := v.shape.Size()
	off := p * v.stride

	return v.data[off : off+n : off+n]
}

func (v view) defined(p int) bool { return v.mask == nil || v.mask[p] }

// asArray lifts a non-raster value into an Array (Scalar → rank 0).
func asArray(v raster.Value) (*raster.Array, error) {
	switch t := v.(type) {
	case *raster.Array:
		return t, nil
	case raster.Scalar:
		return &raster.Array{Data: []float64{float64(t)}}, nil
	case nil:
		return nil, fmt.Errorf("nil operand: %w", raster.ErrInvalidArgument)
	default:
		return nil, fmt.Errorf("operand %s: %w", v.Kind(), raster.ErrUnsupported)
	}
}

// views returns the operand bands of v as seen over a raster grid.
func views(v raster.Value) ([]view, error) {
	if r, ok := v.(*raster.Raster); ok {
		out := make([]view, r.Len())
		for i, b := range r.Bands() {
			out[i] = view{name: b.Name, shape: b.Shape, data: b.Data, mask: b.Mask, stride: b.Shape.Size()}
		}

		return out, nil
	}
	a, err := asArray(v)
	if err != nil {
		return nil, err
	}

	return []view{{name: ConstantBand, shape: a.Shape, data: a.Data}}, nil
}

// gridOf returns the common grid of every raster operand, or ok=false when
// no operand is a raster.
func gridOf(vals []raster.Value) (raster.Grid, bool, error) {
	var g raster.Grid
	found := false
	for _, v := range vals {
		r, isRaster := v.(*raster.Raster)
		if !isRaster {
			continue
		}
		if !found {
			g, found = r.Grid(), true
			continue
		}
		if r.Grid() != g {
			return g, true, fmt.Errorf("grids %+v and %+v differ: %w", g, r.Grid(), raster.ErrShapeMismatch)
		}
	}

	return g, found, nil
}

// apply runs k over the operands following the package operand rules.
func apply(op string, k kernel, vals ...raster.Value) (raster.Value, error) {
	grid, hasRaster, err := gridOf(vals)
	if err != nil {
		return nil, algebraErrorf(op, err)
	}
	if !hasRaster {
		return applyGlobal(op, k, vals)
	}

	ops := make([][]view, len(vals))
	n := 1
	for i, v := range vals {
		if ops[i], err = views(v); err != nil {
			return nil, algebraErrorf(op, err)
		}
		if len(ops[i]) > n {
			n = len(ops[i])
		}
	}
	var names []string
	for i := range ops {
		_, isRaster := vals[i].(*raster.Raster)
		switch len(ops[i]) {
		case n:
			if names == nil && isRaster {
				names = make([]string, n)
				for j := range ops[i] {
					names[j] = ops[i][j].name
				}
			}
		case 1:
		default:
			return nil, algebraErrorf(op, fmt.Errorf("%d bands against %d: %w", len(ops[i]), n, raster.ErrShapeMismatch))
		}
	}

	pixels := grid.Pixels()
	bands := make([]*raster.Band, n)
	shapes := make([]raster.Shape, len(ops))
	in := make([][]float64, len(ops))
	cur := make([]view, len(ops))
	for j := 0; j < n; j++ {
		for i := range ops {
			cur[i] = ops[i][0]
			if len(ops[i]) == n {
				cur[i] = ops[i][j]
			}
			shapes[i] = cur[i].shape
		}
		outShape, fn, err := k(shapes)
		if err != nil {
			return nil, algebraErrorf(op, fmt.Errorf("band %q: %w", names[j], err))
		}
		size := outShape.Size()
		data := make([]float64, pixels*size)
		var mask []bool
		for p := 0; p < pixels; p++ {
			ok := true
			for i := range cur {
				if !cur[i].defined(p) {
					ok = false
					break
				}
				in[i] = cur[i].pixel(p)
			}
			if !ok {
				if mask == nil {
					mask = allTrue(pixels)
				}
				mask[p] = false
				continue
			}
			if err := fn(in, data[p*size:(p+1)*size]); err != nil {
				return nil, algebraErrorf(op, fmt.Errorf("band %q pixel %d: %w", names[j], p, err))
			}
		}
		bands[j] = &raster.Band{Name: names[j], Shape: outShape, Data: data, Mask: mask}
	}
	r, err := raster.New(grid, bands...)
	if err != nil {
		return nil, algebraErrorf(op, err)
	}

	return r, nil
}

// applyGlobal evaluates k once over Array/Scalar operands.
func applyGlobal(op string, k kernel, vals []raster.Value) (raster.Value, error) {
	arrays := make([]*raster.Array, len(vals))
	shapes := make([]raster.Shape, len(vals))
	in := make([][]float64, len(vals))
	allScalar := true
	for i, v := range vals {
		a, err := asArray(v)
		if err != nil {
			return nil, algebraErrorf(op, err)
		}
		if _, isScalar := v.(raster.Scalar); !isScalar {
			allScalar = false
		}
		arrays[i], shapes[i], in[i] = a, a.Shape, a.Data
	}
	outShape, fn, err := k(shapes)
	if err != nil {
		return nil, algebraErrorf(op, err)
	}
	out := make([]float64, outShape.Size())
	if err := fn(in, out); err != nil {
		return nil, algebraErrorf(op, err)
	}
	if allScalar && outShape.Rank() == 0 {
		return raster.Scalar(out[0]), nil
	}
	res := &raster.Array{Shape: outShape, Data: out}
	for _, a := range arrays {
		if a.Labels != nil && outShape.Rank() > 0 && len(a.Labels) == outShape[0].Len {
			res.Labels = append([]string(nil), a.Labels...)
			break
		}
	}

	return res, nil
}

func allTrue(n int) []bool {
	m := make([]bool, n)
	for i := range m {
		m[i] = true
	}

	return m
}

// broadcastShape returns the common shape of element-wise operands: rank-0
// operands broadcast, all others must be mutually compatible.
func broadcastShape(shapes []raster.Shape) (raster.Shape, error) {
	var out raster.Shape
	for _, s := range shapes {
		if s.Rank() == 0 {
			continue
		}
		if out == nil {
			out = s.Clone()
			continue
		}
		if !out.Compatible(s) {
			return nil, fmt.Errorf("array shapes %s and %s: %w", out, s, raster.ErrShapeMismatch)
		}
		out = out.Merge(s)
	}
	if out == nil {
		out = raster.Shape{}
	}

	return out, nil
}

// elem returns element i of an operand pixel, broadcasting scalars.
func elem(x []float64, i int) float64 {
	if len(x) == 1 {
		return x[0]
	}

	return x[i]
}
