package algebra

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/lvraster/raster"
)

// ArrayBand names the single band produced by ToArray.
const ArrayBand = "array"

// ToArray stacks every band of v into one array band, concatenating along
// axis. Bands of lower rank are first extended with length-1 axes. A freshly
// created axis over scalar bands is tagged raster.TagBand.
//
// A band undefined at a pixel contributes NaN elements there; the array pixel
// is undefined only when every band is.
func ToArray(v raster.Value, axis int) (*raster.Raster, error) {
	const op = "toArray"
	r, err := asRaster(op, v)
	if err != nil {
		return nil, err
	}
	if axis < 0 || r.Len() == 0 {
		return nil, algebraErrorf(op, fmt.Errorf("axis %d over %d bands: %w", axis, r.Len(), raster.ErrInvalidArgument))
	}
	bands := r.Bands()

	rank, fresh, allScalar := axis+1, true, true
	for _, b := range bands {
		if b.Shape.Rank() > rank {
			rank = b.Shape.Rank()
		}
		if b.Shape.Rank() > axis {
			fresh = false
		}
		if !b.Scalar() {
			allScalar = false
		}
	}
	promoted := make([]raster.Shape, len(bands))
	for i, b := range bands {
		s := b.Shape.Clone()
		for s.Rank() < rank {
			s = append(s, raster.Dim{Len: 1})
		}
		promoted[i] = s
	}

	out := promoted[0].Clone()
	out[axis] = raster.Dim{Len: 0, Tag: promoted[0][axis].Tag}
	offsets := make([]int, len(bands))
	for i, s := range promoted {
		for k := range s {
			if k == axis {
				continue
			}
			if !out[k].Compatible(s[k]) {
				return nil, algebraErrorf(op, fmt.Errorf("band %q axis %d %s vs %s: %w", bands[i].Name, k, s[k], out[k], raster.ErrShapeMismatch))
			}
			out[k] = out[k].Merge(s[k])
		}
		if !fresh {
			t := s[axis].Tag
			if out[axis].Tag != raster.TagNone && t != raster.TagNone && t != out[axis].Tag {
				return nil, algebraErrorf(op, fmt.Errorf("band %q axis %d tag %q vs %q: %w", bands[i].Name, axis, t, out[axis].Tag, raster.ErrShapeMismatch))
			}
			if out[axis].Tag == raster.TagNone {
				out[axis].Tag = t
			}
		}
		offsets[i] = out[axis].Len
		out[axis].Len += s[axis].Len
	}
	if fresh {
		out[axis].Tag = raster.TagNone
		if allScalar {
			out[axis].Tag = raster.TagBand
		}
	}

	lens := out.Lens()
	outer, inner := 1, 1
	for k := 0; k < axis; k++ {
		outer *= lens[k]
	}
	for k := axis + 1; k < len(lens); k++ {
		inner *= lens[k]
	}
	total := lens[axis]
	pixels := r.Grid().Pixels()
	size := out.Size()
	data := make([]float64, pixels*size)
	var mask []bool
	for p := 0; p < pixels; p++ {
		dst := data[p*size : (p+1)*size]
		seen := false
		for i, b := range bands {
			block := promoted[i][axis].Len * inner
			if !b.Defined(p) {
				for o := 0; o < outer; o++ {
					fill(dst[(o*total+offsets[i])*inner:][:block], math.NaN())
				}
				continue
			}
			seen = true
			src := b.Pixel(p)
			for o := 0; o < outer; o++ {
				copy(dst[(o*total+offsets[i])*inner:], src[o*block:(o+1)*block])
			}
		}
		if !seen {
			if mask == nil {
				mask = allTrue(pixels)
			}
			mask[p] = false
		}
	}
	res, err := raster.New(r.Grid(), &raster.Band{Name: ArrayBand, Shape: out, Data: data, Mask: mask})
	if err != nil {
		return nil, algebraErrorf(op, err)
	}

	return res, nil
}

func fill(dst []float64, v float64) {
	for i := range dst {
		dst[i] = v
	}
}

// gatherPlan maps an input shape to an output shape plus, for every output
// element, the input element it copies.
type gatherPlan func(in raster.Shape) (raster.Shape, []int, error)

func gather(plan gatherPlan) kernel {
	return func(shapes []raster.Shape) (raster.Shape, pixelFunc, error) {
		out, from, err := plan(shapes[0])
		if err != nil {
			return nil, nil, err
		}
		return out, func(in [][]float64, dst []float64) error {
			src := in[0]
			for i, f := range from {
				dst[i] = src[f]
			}
			return nil
		}, nil
	}
}

// walk calls fn with every multi-index of s in row-major order.
func walk(s raster.Shape, fn func(idx []int)) {
	if s.Size() == 0 {
		return
	}
	idx := make([]int, s.Rank())
	for {
		fn(idx)
		k := len(idx) - 1
		for ; k >= 0; k-- {
			idx[k]++
			if idx[k] < s[k].Len {
				break
			}
			idx[k] = 0
		}
		if k < 0 {
			return
		}
	}
}

func offset(idx, strides []int) int {
	off := 0
	for i, x := range idx {
		off += x * strides[i]
	}

	return off
}

// ArrayRepeat repeats each array pixel copies times along axis. axis may
// equal the rank, which appends a new axis of length copies.
func ArrayRepeat(v raster.Value, axis, copies int) (raster.Value, error) {
	plan := func(in raster.Shape) (raster.Shape, []int, error) {
		if axis < 0 || axis > in.Rank() || copies < 1 {
			return nil, nil, fmt.Errorf("axis %d copies %d for %s: %w", axis, copies, in, raster.ErrInvalidArgument)
		}
		src := in.Clone()
		if axis == in.Rank() {
			src = append(src, raster.Dim{Len: 1})
		}
		out := src.Clone()
		out[axis].Len *= copies
		strides := src.Strides()
		from := make([]int, 0, out.Size())
		j := make([]int, out.Rank())
		walk(out, func(idx []int) {
			copy(j, idx)
			j[axis] %= src[axis].Len
			from = append(from, offset(j, strides))
		})
		return out, from, nil
	}

	return apply("arrayRepeat", gather(plan), v)
}

// ArrayTranspose swaps two axes of each array pixel.
func ArrayTranspose(v raster.Value, axis1, axis2 int) (raster.Value, error) {
	return apply("arrayTranspose", gather(transposePlan(axis1, axis2)), v)
}

func transposePlan(axis1, axis2 int) gatherPlan {
	return func(in raster.Shape) (raster.Shape, []int, error) {
		if axis1 < 0 || axis2 < 0 || axis1 >= in.Rank() || axis2 >= in.Rank() {
			return nil, nil, fmt.Errorf("axes %d,%d for %s: %w", axis1, axis2, in, raster.ErrShapeMismatch)
		}
		out := in.Clone()
		out[axis1], out[axis2] = in[axis2], in[axis1]
		strides := in.Strides()
		from := make([]int, 0, out.Size())
		j := make([]int, in.Rank())
		walk(out, func(idx []int) {
			copy(j, idx)
			j[axis1], j[axis2] = idx[axis2], idx[axis1]
			from = append(from, offset(j, strides))
		})
		return out, from, nil
	}
}

// ArrayProject keeps the listed axes, in order. Every dropped axis must
// have length 1.
func ArrayProject(v raster.Value, axes ...int) (raster.Value, error) {
	plan := func(in raster.Shape) (raster.Shape, []int, error) {
		if len(axes) == 0 {
			return nil, nil, fmt.Errorf("no axes: %w", raster.ErrInvalidArgument)
		}
		keep := make([]bool, in.Rank())
		out := make(raster.Shape, len(axes))
		for i, a := range axes {
			if a < 0 || a >= in.Rank() || keep[a] {
				return nil, nil, fmt.Errorf("axis %d for %s: %w", a, in, raster.ErrShapeMismatch)
			}
			keep[a] = true
			out[i] = in[a]
		}
		for a, k := range keep {
			if !k && in[a].Len != 1 {
				return nil, nil, fmt.Errorf("dropping axis %d of length %d: %w", a, in[a].Len, raster.ErrShapeMismatch)
			}
		}
		strides := in.Strides()
		from := make([]int, 0, out.Size())
		j := make([]int, in.Rank())
		walk(out, func(idx []int) {
			for i := range j {
				j[i] = 0
			}
			for i, a := range axes {
				j[a] = idx[i]
			}
			from = append(from, offset(j, strides))
		})
		return out, from, nil
	}

	return apply("arrayProject", gather(plan), v)
}

// ArraySlice keeps elements start, start+step, ... before end along axis.
// Negative start/end count from the end; end is clamped to the axis length.
func ArraySlice(v raster.Value, axis, start, end, step int) (raster.Value, error) {
	plan := func(in raster.Shape) (raster.Shape, []int, error) {
		if axis < 0 || axis >= in.Rank() || step < 1 {
			return nil, nil, fmt.Errorf("slice axis %d step %d for %s: %w", axis, step, in, raster.ErrInvalidArgument)
		}
		n := in[axis].Len
		s, e := start, end
		if s < 0 {
			s += n
		}
		if e < 0 {
			e += n
		}
		if e > n {
			e = n
		}
		if s < 0 || s >= e {
			return nil, nil, fmt.Errorf("slice [%d:%d] of %d: %w", start, end, n, raster.ErrInvalidArgument)
		}
		out := in.Clone()
		out[axis].Len = (e - s + step - 1) / step
		strides := in.Strides()
		from := make([]int, 0, out.Size())
		j := make([]int, in.Rank())
		walk(out, func(idx []int) {
			copy(j, idx)
			j[axis] = s + idx[axis]*step
			from = append(from, offset(j, strides))
		})
		return out, from, nil
	}

	return apply("arraySlice", gather(plan), v)
}

// ArrayGet extracts one element: a Scalar from a global array, a scalar
// band per band from a raster.
func ArrayGet(v raster.Value, index ...int) (raster.Value, error) {
	plan := func(in raster.Shape) (raster.Shape, []int, error) {
		if len(index) != in.Rank() {
			return nil, nil, fmt.Errorf("index %v for %s: %w", index, in, raster.ErrShapeMismatch)
		}
		for i, x := range index {
			if x < 0 || x >= in[i].Len {
				return nil, nil, fmt.Errorf("index %v for %s: %w", index, in, raster.ErrInvalidArgument)
			}
		}
		return raster.Shape{}, []int{offset(index, in.Strides())}, nil
	}
	out, err := apply("arrayGet", gather(plan), v)
	if err != nil {
		return nil, err
	}
	if a, ok := out.(*raster.Array); ok && a.Shape.Rank() == 0 {
		return raster.Scalar(a.Data[0]), nil
	}

	return out, nil
}

// ArrayFlatten turns the single array band of v into one scalar band per
// element. labels[k] names the entries of axis k; band names join one label
// per axis with sep, in row-major order. An output pixel is undefined where
// the array pixel is undefined or its element is NaN.
func ArrayFlatten(v raster.Value, labels [][]string, sep string) (*raster.Raster, error) {
	const op = "arrayFlatten"
	r, err := asRaster(op, v)
	if err != nil {
		return nil, err
	}
	if r.Len() != 1 {
		return nil, algebraErrorf(op, fmt.Errorf("%d bands, want one array band: %w", r.Len(), raster.ErrShapeMismatch))
	}
	b := r.BandAt(0)
	if b.Scalar() || len(labels) != b.Shape.Rank() {
		return nil, algebraErrorf(op, fmt.Errorf("%d label lists for %s: %w", len(labels), b.Shape, raster.ErrShapeMismatch))
	}
	for k, ls := range labels {
		if len(ls) != b.Shape[k].Len {
			return nil, algebraErrorf(op, fmt.Errorf("axis %d: %d labels for length %d: %w", k, len(ls), b.Shape[k].Len, raster.ErrShapeMismatch))
		}
	}

	names := make([]string, 0, b.Shape.Size())
	parts := make([]string, b.Shape.Rank())
	walk(b.Shape, func(idx []int) {
		for k, x := range idx {
			parts[k] = labels[k][x]
		}
		names = append(names, strings.Join(parts, sep))
	})
	pixels := r.Grid().Pixels()
	size := b.Shape.Size()
	bands := make([]*raster.Band, size)
	for e := 0; e < size; e++ {
		data := make([]float64, pixels)
		var mask []bool
		for p := 0; p < pixels; p++ {
			data[p] = b.Data[p*size+e]
			if !b.Defined(p) || math.IsNaN(data[p]) {
				if mask == nil {
					mask = allTrue(pixels)
				}
				mask[p] = false
			}
		}
		bands[e] = &raster.Band{Name: names[e], Data: data, Mask: mask}
	}
	out, err := raster.New(r.Grid(), bands...)
	if err != nil {
		return nil, algebraErrorf(op, err)
	}

	return out, nil
}
