package classify

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/lvraster/raster"
)

// MinimumDistance assigns each pixel to the class whose training mean is
// nearest in Euclidean distance. Ties go to the smaller class label.
type MinimumDistance struct{}

func (MinimumDistance) Name() string { return "minimumDistance" }

type centroids struct {
	classes []int
	means   [][]float64
}

// Fit implements Algorithm.
func (MinimumDistance) Fit(X [][]float64, y []int) (Model, error) {
	if len(X) == 0 || len(X) != len(y) {
		return nil, fmt.Errorf("minimumDistance: %d rows, %d labels: %w", len(X), len(y), raster.ErrInvalidArgument)
	}
	p := len(X[0])
	classes := slices.Clone(y)
	slices.Sort(classes)
	classes = slices.Compact(classes)
	m := &centroids{classes: classes, means: make([][]float64, len(classes))}
	n := make([]int, len(classes))
	for k := range m.means {
		m.means[k] = make([]float64, p)
	}
	for i, row := range X {
		if len(row) != p {
			return nil, fmt.Errorf("minimumDistance: row %d has %d features, want %d: %w", i, len(row), p, raster.ErrShapeMismatch)
		}
		k, _ := slices.BinarySearch(classes, y[i])
		n[k]++
		for j, v := range row {
			m.means[k][j] += v
		}
	}
	for k, mean := range m.means {
		for j := range mean {
			mean[j] /= float64(n[k])
		}
	}

	return m, nil
}

func (m *centroids) Predict(x []float64) int {
	best, bestD := 0, -1.0
	for k, mean := range m.means {
		var d float64
		for j, v := range mean {
			e := x[j] - v
			d += e * e
		}
		if bestD < 0 || d < bestD {
			best, bestD = k, d
		}
	}

	return m.classes[best]
}
