package reduce

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/katalvlaran/lvraster/matrix"
	"github.com/katalvlaran/lvraster/raster"
)

// Kind enumerates the aggregate computed by a Reducer.
type Kind uint8

const (
	KindMean Kind = iota
	KindMedian
	KindSum
	KindMin
	KindMax
	KindCount
	KindCenteredCovariance
	KindCovariance
)

var kindNames = [...]string{
	KindMean:               "mean",
	KindMedian:             "median",
	KindSum:                "sum",
	KindMin:                "min",
	KindMax:                "max",
	KindCount:              "count",
	KindCenteredCovariance: "centeredCovariance",
	KindCovariance:         "covariance",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Reducer is a comparable description of an aggregate. The zero value is Mean.
type Reducer struct {
	kind     Kind
	weighted bool
}

func Mean() Reducer               { return Reducer{kind: KindMean} }
func Median() Reducer             { return Reducer{kind: KindMedian} }
func Sum() Reducer                { return Reducer{kind: KindSum} }
func Min() Reducer                { return Reducer{kind: KindMin} }
func Max() Reducer                { return Reducer{kind: KindMax} }
func Count() Reducer              { return Reducer{kind: KindCount} }
func CenteredCovariance() Reducer { return Reducer{kind: KindCenteredCovariance} }

// Covariance subtracts the (weighted) sample mean before accumulating, so it
// accepts uncentered input. CenteredCovariance trusts the caller to center.
func Covariance() Reducer { return Reducer{kind: KindCovariance} }

// SplitWeights returns the weighted form of r: the last input band becomes a
// per-pixel weight for the others. Only mean, sum and the covariances accept
// weights; Validate reports the rest.
func (r Reducer) SplitWeights() Reducer { return Reducer{kind: r.kind, weighted: true} }

// Kind returns the aggregate.
func (r Reducer) Kind() Kind { return r.kind }

// Weighted reports whether the last band is consumed as weights.
func (r Reducer) Weighted() bool { return r.weighted }

// Name returns "mean", "splitWeights(mean)" and so on. Parse accepts it back.
func (r Reducer) Name() string {
	if r.weighted {
		return "splitWeights(" + r.kind.String() + ")"
	}

	return r.kind.String()
}

func (r Reducer) String() string { return r.Name() }

// Validate rejects unknown kinds and weighted forms without a meaning.
func (r Reducer) Validate() error {
	if int(r.kind) >= len(kindNames) {
		return fmt.Errorf("reducer %s: %w", r.kind, raster.ErrInvalidArgument)
	}
	if r.weighted {
		switch r.kind {
		case KindMean, KindSum, KindCenteredCovariance, KindCovariance:
		default:
			return fmt.Errorf("reducer %s: %w", r.Name(), raster.ErrUnsupported)
		}
	}

	return nil
}

// Parse reads a reducer name as produced by Name.
func Parse(name string) (Reducer, error) {
	inner, weighted := strings.CutPrefix(name, "splitWeights(")
	if weighted {
		var ok bool
		if inner, ok = strings.CutSuffix(inner, ")"); !ok {
			return Reducer{}, fmt.Errorf("reducer %q: %w", name, raster.ErrInvalidArgument)
		}
	}
	for k, s := range kindNames {
		if s == inner {
			r := Reducer{kind: Kind(k), weighted: weighted}
			if err := r.Validate(); err != nil {
				return Reducer{}, err
			}

			return r, nil
		}
	}

	return Reducer{}, fmt.Errorf("reducer %q: %w", name, raster.ErrInvalidArgument)
}

// width returns the number of output values for samples of the given width.
func (r Reducer) width(in int) int {
	if r.square() {
		return in * in
	}

	return in
}

// square reports whether r folds samples into a band×band matrix.
func (r Reducer) square() bool {
	return r.kind == KindCenteredCovariance || r.kind == KindCovariance
}

// fold reduces n samples stored row-major in samples (n = len/width). w holds
// one weight per sample for weighted reducers and is nil otherwise.
func (r Reducer) fold(samples, w []float64, width int) ([]float64, error) {
	n := 0
	if width > 0 {
		n = len(samples) / width
	}
	out := make([]float64, r.width(width))
	if n == 0 {
		if r.kind == KindCount {
			return out, nil
		}
		return nil, fmt.Errorf("%s over 0 samples: %w", r.Name(), raster.ErrUndefinedReduction)
	}

	var i, k int
	switch r.kind {
	case KindCount:
		for k = range out {
			out[k] = float64(n)
		}

	case KindSum, KindMean:
		total := float64(n)
		if w != nil {
			total = 0
			for i = 0; i < n; i++ {
				total += w[i]
			}
		}
		for i = 0; i < n; i++ {
			wi := 1.0
			if w != nil {
				wi = w[i]
			}
			for k = 0; k < width; k++ {
				out[k] += wi * samples[i*width+k]
			}
		}
		if r.kind == KindMean {
			if total == 0 || math.IsNaN(total) {
				return nil, fmt.Errorf("%s: weight sum %g: %w", r.Name(), total, raster.ErrUndefinedReduction)
			}
			for k = range out {
				out[k] /= total
			}
		}

	case KindMin, KindMax:
		for k = 0; k < width; k++ {
			out[k] = samples[k]
		}
		for i = 1; i < n; i++ {
			for k = 0; k < width; k++ {
				v := samples[i*width+k]
				if (r.kind == KindMin && v < out[k]) || (r.kind == KindMax && v > out[k]) {
					out[k] = v
				}
			}
		}

	case KindMedian:
		col := make([]float64, n)
		for k = 0; k < width; k++ {
			for i = 0; i < n; i++ {
				col[i] = samples[i*width+k]
			}
			sort.Float64s(col)
			if n%2 == 1 {
				out[k] = col[n/2]
			} else {
				out[k] = (col[n/2-1] + col[n/2]) / 2
			}
		}

	case KindCenteredCovariance:
		X, err := matrix.NewDenseFrom(n, width, samples)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.Name(), err)
		}
		S, err := matrix.ScatterMatrix(X, w)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %w", r.Name(), raster.ErrUndefinedReduction, err)
		}
		copy(out, S.(*matrix.Dense).Data())

	case KindCovariance:
		X, err := matrix.NewDenseFrom(n, width, samples)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.Name(), err)
		}
		var C matrix.Matrix
		if w == nil {
			C, _, err = matrix.CenteredCovariance(X)
		} else {
			C, _, err = matrix.WeightedCenteredCovariance(X, w)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %w", r.Name(), raster.ErrUndefinedReduction, err)
		}
		copy(out, C.(*matrix.Dense).Data())

	default:
		return nil, fmt.Errorf("reducer %s: %w", r.kind, raster.ErrInvalidArgument)
	}

	return out, nil
}
