package algebra_test

import (
	"testing"

	"github.com/katalvlaran/lvraster/raster"
	"github.com/stretchr/testify/require"
)

// mustRaster builds a raster of scalar bands over a w×h grid.
func mustRaster(t *testing.T, w, h int, names []string, data ...[]float64) *raster.Raster {
	t.Helper()
	r, err := raster.FromScalars(raster.NewGrid(w, h), names, data...)
	require.NoError(t, err)

	return r
}

func band(t *testing.T, v raster.Value, name string) *raster.Band {
	t.Helper()
	r, ok := v.(*raster.Raster)
	require.Truef(t, ok, "want raster, got %T", v)
	b, err := r.Band(name)
	require.NoError(t, err)

	return b
}
