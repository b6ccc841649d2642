package classify

import (
	"errors"
	"fmt"
	"runtime"
	"slices"

	"github.com/katalvlaran/lvraster/raster"
	"golang.org/x/sync/errgroup"
)

// predictRows is the strip height handed to one Predict worker.
const predictRows = 64

// OutputBand names the single band produced by Predict.
const OutputBand = "classification"

// ErrEmptyTraining indicates a sample set with no usable rows.
var ErrEmptyTraining = errors.New("classify: no usable training rows")

// Algorithm learns a Model from feature rows X and class labels y.
type Algorithm interface {
	Name() string
	Fit(X [][]float64, y []int) (Model, error)
}

// Model maps one feature vector, ordered as at training time, to a class.
// Models are read-only after Fit and must be safe for concurrent use.
type Model interface {
	Predict(x []float64) int
}

// Trained is an immutable classifier bound to its feature bands and to the
// label domain observed during training.
type Trained struct {
	algorithm string
	features  []string
	label     string
	classes   []int
	model     Model
}

// Train fits alg on the given feature columns of set against the label
// column. Feature order is kept and enforced by Predict.
func Train(alg Algorithm, set *SampleSet, features []string, label string) (*Trained, error) {
	if alg == nil || set == nil {
		return nil, fmt.Errorf("train: nil algorithm or samples: %w", raster.ErrInvalidArgument)
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("train: no feature bands: %w", raster.ErrInvalidArgument)
	}
	X, y, err := set.design(features, label)
	if err != nil {
		return nil, fmt.Errorf("train %s: %w", alg.Name(), err)
	}
	if len(X) == 0 {
		return nil, fmt.Errorf("train %s: %w", alg.Name(), ErrEmptyTraining)
	}
	model, err := alg.Fit(X, y)
	if err != nil {
		return nil, fmt.Errorf("train %s: %w", alg.Name(), err)
	}

	classes := slices.Clone(y)
	slices.Sort(classes)

	return &Trained{
		algorithm: alg.Name(),
		features:  slices.Clone(features),
		label:     label,
		classes:   slices.Compact(classes),
		model:     model,
	}, nil
}

func (t *Trained) Algorithm() string  { return t.algorithm }
func (t *Trained) Features() []string { return slices.Clone(t.features) }
func (t *Trained) Label() string      { return t.label }

// Classes returns the sorted label domain seen at training time.
func (t *Trained) Classes() []int { return slices.Clone(t.classes) }

// PredictRow classifies one feature vector.
func (t *Trained) PredictRow(x []float64) (int, error) {
	if len(x) != len(t.features) {
		return 0, fmt.Errorf("%d features, trained on %d: %w", len(x), len(t.features), raster.ErrFeatureMismatch)
	}

	return t.model.Predict(x), nil
}

// Predict classifies every pixel of r into one integer band named
// OutputBand. Each trained feature band must be present and scalar; a pixel
// with any undefined feature stays undefined. Other bands of r are ignored.
//
// Errors: ErrFeatureMismatch (missing band), ErrShapeMismatch (array band).
func Predict(t *Trained, r *raster.Raster) (*raster.Raster, error) {
	const op = "classify"
	if t == nil || r == nil {
		return nil, fmt.Errorf("%s: nil classifier or raster: %w", op, raster.ErrInvalidArgument)
	}
	bands := make([]*raster.Band, len(t.features))
	for k, name := range t.features {
		b, err := r.Band(name)
		if err != nil {
			return nil, fmt.Errorf("%s: band %q: %w: %w", op, name, raster.ErrFeatureMismatch, err)
		}
		if !b.Scalar() {
			return nil, fmt.Errorf("%s: band %q has shape %s: %w", op, name, b.Shape, raster.ErrShapeMismatch)
		}
		bands[k] = b
	}

	g := r.Grid()
	n := g.Pixels()
	data := make([]float64, n)
	mask := make([]bool, n)
	undefined := false
	for p := range mask {
		mask[p] = true
		for _, b := range bands {
			if !b.Defined(p) {
				mask[p] = false
				undefined = true
				break
			}
		}
	}

	// Rows are independent: at most GOMAXPROCS strips run at once.
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for start := 0; start < g.Height; start += predictRows {
		lo, hi := start*g.Width, min(start+predictRows, g.Height)*g.Width
		eg.Go(func() error {
			x := make([]float64, len(bands))
			for p := lo; p < hi; p++ {
				if !mask[p] {
					continue
				}
				for k, b := range bands {
					x[k] = b.Data[p]
				}
				data[p] = float64(t.model.Predict(x))
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !undefined {
		mask = nil
	}
	out, err := raster.New(g, &raster.Band{Name: OutputBand, Data: data, Mask: mask})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
