package reduce

import (
	"fmt"

	"github.com/katalvlaran/lvraster/raster"
	"github.com/paulmach/orb"
)

func reduceErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// Region folds the pixels of src sampled over fp at scale into one Array.
//
// Output layout:
//   - scalar bands: a vector [N band] labeled with the band names;
//   - a single array band: an array of that band's shape;
//   - centeredCovariance and covariance: [N band × N band] over scalar bands
//     (labeled), or [k×k] over a single vector band.
//
// Weighted reducers take the last band as weights; it must be scalar and is
// excluded from the output. Pixels with an undefined weight are skipped.
//
// Errors: ErrMissingWeightBand, ErrUndefinedReduction, ErrShapeMismatch,
// ErrUnsupported (invalid weighted form), ErrInvalidArgument.
func Region(src *raster.Raster, red Reducer, fp orb.Geometry, scale float64) (*raster.Array, error) {
	const op = "reduceRegion"
	if src == nil {
		return nil, reduceErrorf(op, fmt.Errorf("nil raster: %w", raster.ErrInvalidArgument))
	}
	if err := red.Validate(); err != nil {
		return nil, reduceErrorf(op, err)
	}
	bands, weight, err := splitWeight(red, src.Bands())
	if err != nil {
		return nil, reduceErrorf(op, err)
	}
	if len(bands) == 0 {
		return nil, reduceErrorf(op, fmt.Errorf("no bands: %w", raster.ErrShapeMismatch))
	}
	pixels, err := Sample(src.Grid(), fp, scale)
	if err != nil {
		return nil, reduceErrorf(op, err)
	}

	var out *raster.Array
	switch {
	case red.square():
		out, err = covariance(red, bands, weight, pixels)
	case allScalar(bands):
		out, err = perBand(red, bands, weight, pixels)
	case len(bands) == 1:
		out, err = perElement(red, bands[0], weight, pixels)
	default:
		err = fmt.Errorf("%d bands mixing array and scalar pixels: %w", len(bands), raster.ErrShapeMismatch)
	}
	if err != nil {
		return nil, reduceErrorf(op, err)
	}

	return out, nil
}

func splitWeight(red Reducer, bands []*raster.Band) ([]*raster.Band, *raster.Band, error) {
	if !red.weighted {
		return bands, nil, nil
	}
	if len(bands) < 2 {
		return nil, nil, fmt.Errorf("%s over %d band(s): %w", red.Name(), len(bands), raster.ErrMissingWeightBand)
	}
	w := bands[len(bands)-1]
	if !w.Scalar() {
		return nil, nil, fmt.Errorf("weight band %q has shape %s: %w", w.Name, w.Shape, raster.ErrShapeMismatch)
	}

	return bands[:len(bands)-1], w, nil
}

func allScalar(bands []*raster.Band) bool {
	for _, b := range bands {
		if !b.Scalar() {
			return false
		}
	}

	return true
}

func names(bands []*raster.Band) []string {
	out := make([]string, len(bands))
	for i, b := range bands {
		out[i] = b.Name
	}

	return out
}

// collect appends the values of b at every usable pixel. A pixel is usable
// when all of need are complete there and the weight is defined.
func collect(pixels []int, need []*raster.Band, weight *raster.Band, emit func(p int)) []float64 {
	var w []float64
	for _, p := range pixels {
		ok := weight == nil || weight.Defined(p)
		for _, b := range need {
			ok = ok && b.Complete(p)
		}
		if !ok {
			continue
		}
		emit(p)
		if weight != nil {
			w = append(w, weight.Data[p])
		}
	}

	return w
}

func perBand(red Reducer, bands []*raster.Band, weight *raster.Band, pixels []int) (*raster.Array, error) {
	out := make([]float64, len(bands))
	samples := make([]float64, 0, len(pixels))
	for j, b := range bands {
		samples = samples[:0]
		w := collect(pixels, []*raster.Band{b}, weight, func(p int) {
			samples = append(samples, b.Data[p])
		})
		v, err := red.fold(samples, w, 1)
		if err != nil {
			return nil, fmt.Errorf("band %q: %w", b.Name, err)
		}
		out[j] = v[0]
	}

	return raster.NewArray(raster.Shape{{Len: len(bands), Tag: raster.TagBand}}, out, names(bands))
}

func perElement(red Reducer, b *raster.Band, weight *raster.Band, pixels []int) (*raster.Array, error) {
	width := b.Shape.Size()
	var samples []float64
	w := collect(pixels, []*raster.Band{b}, weight, func(p int) {
		samples = append(samples, b.Pixel(p)...)
	})
	v, err := red.fold(samples, w, width)
	if err != nil {
		return nil, fmt.Errorf("band %q: %w", b.Name, err)
	}

	return raster.NewArray(b.Shape, v, nil)
}

func covariance(red Reducer, bands []*raster.Band, weight *raster.Band, pixels []int) (*raster.Array, error) {
	var (
		samples []float64
		w       []float64
		dim     raster.Dim
		labels  []string
	)
	switch {
	case allScalar(bands):
		dim = raster.Dim{Len: len(bands), Tag: raster.TagBand}
		labels = names(bands)
		w = collect(pixels, bands, weight, func(p int) {
			for _, b := range bands {
				samples = append(samples, b.Data[p])
			}
		})
	case len(bands) == 1 && bands[0].Shape.Rank() == 1:
		b := bands[0]
		dim = b.Shape[0]
		w = collect(pixels, bands, weight, func(p int) {
			samples = append(samples, b.Pixel(p)...)
		})
	default:
		return nil, fmt.Errorf("%s needs scalar bands or one vector band: %w", red.Name(), raster.ErrShapeMismatch)
	}
	v, err := red.fold(samples, w, dim.Len)
	if err != nil {
		return nil, err
	}

	return raster.NewArray(raster.Shape{dim, dim}, v, labels)
}
