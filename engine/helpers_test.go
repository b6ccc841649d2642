package engine_test

import (
	"sync/atomic"
	"testing"

	"github.com/katalvlaran/lvraster/raster"
	"github.com/stretchr/testify/require"
)

func mustRaster(t *testing.T, w, h int, names []string, data ...[]float64) *raster.Raster {
	t.Helper()
	r, err := raster.FromScalars(raster.NewGrid(w, h), names, data...)
	require.NoError(t, err)

	return r
}

// countingSource counts loads.
type countingSource struct {
	id    string
	r     *raster.Raster
	loads atomic.Int32
}

func (s *countingSource) ID() string { return s.id }

func (s *countingSource) Load() (*raster.Raster, error) {
	s.loads.Add(1)
	return s.r, nil
}
