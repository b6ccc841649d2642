package algebra_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvraster/algebra"
	"github.com/katalvlaran/lvraster/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToArray_ProjectFlatten_RoundTrip(t *testing.T) {
	t.Parallel()

	names := []string{"B1", "B2", "B3"}
	r := mustRaster(t, 2, 2, names,
		[]float64{1, 2, 3, 4},
		[]float64{5, 6, 7, 8},
		[]float64{9, 10, 11, 12},
	)
	arr, err := algebra.ToArray(r, 0)
	require.NoError(t, err)
	b := band(t, arr, algebra.ArrayBand)
	assert.Equal(t, raster.Shape{{Len: 3, Tag: raster.TagBand}}, b.Shape)
	assert.Equal(t, []float64{1, 5, 9}, b.Pixel(0))

	proj, err := algebra.ArrayProject(arr, 0)
	require.NoError(t, err)
	flat, err := algebra.ArrayFlatten(proj, [][]string{names}, "_")
	require.NoError(t, err)
	assert.Equal(t, names, flat.BandNames())
	for _, n := range names {
		want, _ := r.Band(n)
		got, _ := flat.Band(n)
		assert.Equal(t, want.Data, got.Data, n)
		assert.Equal(t, want.Mask, got.Mask, n)
	}
}

func TestToArray_ProjectFlatten_RoundTripMasks(t *testing.T) {
	t.Parallel()

	nan := math.NaN()
	names := []string{"B1", "B2", "B3"}
	r := mustRaster(t, 3, 1, names,
		[]float64{1, nan, nan},
		[]float64{nan, 4, nan},
		[]float64{7, 8, nan},
	)
	arr, err := algebra.ToArray(r, 0)
	require.NoError(t, err)
	b := band(t, arr, algebra.ArrayBand)
	assert.Equal(t, []bool{true, true, false}, b.Mask)
	assert.False(t, b.Complete(0))

	proj, err := algebra.ArrayProject(arr, 0)
	require.NoError(t, err)
	flat, err := algebra.ArrayFlatten(proj, [][]string{names}, "_")
	require.NoError(t, err)
	for _, n := range names {
		want, _ := r.Band(n)
		got, _ := flat.Band(n)
		assert.Equal(t, want.Mask, got.Mask, n)
		for p := range want.Data {
			if want.Defined(p) {
				assert.Equal(t, want.Data[p], got.Data[p], "%s pixel %d", n, p)
			}
		}
	}

	// Undefined elements stay undefined through arithmetic and casts.
	shifted, err := algebra.Binary(algebra.OpAdd, proj, raster.Scalar(127))
	require.NoError(t, err)
	cast, err := algebra.Unary(algebra.OpToByte, shifted)
	require.NoError(t, err)
	out, err := algebra.ArrayFlatten(cast, [][]string{names}, "_")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false}, band(t, out, "B1").Mask)
	assert.Equal(t, 128.0, band(t, out, "B1").Data[0])
	assert.Equal(t, []bool{false, true, false}, band(t, out, "B2").Mask)
}

func TestToArray_SecondAxisBuildsColumn(t *testing.T) {
	t.Parallel()

	r := mustRaster(t, 1, 1, []string{"a", "b"}, []float64{1}, []float64{2})
	vec, err := algebra.ToArray(r, 0)
	require.NoError(t, err)
	col, err := algebra.ToArray(vec, 1)
	require.NoError(t, err)
	b := band(t, col, algebra.ArrayBand)
	assert.Equal(t, raster.Shape{{Len: 2, Tag: raster.TagBand}, {Len: 1}}, b.Shape)
	assert.Equal(t, []float64{1, 2}, b.Data)

	// mixed ranks concatenate along an existing axis
	mixed, err := algebra.Cat(vec, mustRaster(t, 1, 1, []string{"c"}, []float64{3}))
	require.NoError(t, err)
	_, err = algebra.ToArray(mixed, 0)
	require.NoError(t, err)
}

func TestToArray_MaskAndErrors(t *testing.T) {
	t.Parallel()

	r := mustRaster(t, 2, 1, []string{"a", "b"}, []float64{1, 2}, []float64{math.NaN(), 4})
	arr, err := algebra.ToArray(r, 0)
	require.NoError(t, err)
	b := band(t, arr, algebra.ArrayBand)
	assert.True(t, b.Defined(0))
	assert.False(t, b.Complete(0))
	assert.Equal(t, 1.0, b.Pixel(0)[0])
	assert.True(t, math.IsNaN(b.Pixel(0)[1]))
	assert.True(t, b.Complete(1))

	none := mustRaster(t, 1, 1, []string{"a"}, []float64{math.NaN()})
	arr, err = algebra.ToArray(none, 0)
	require.NoError(t, err)
	assert.False(t, band(t, arr, algebra.ArrayBand).Defined(0))

	_, err = algebra.ToArray(raster.Scalar(1), 0)
	require.ErrorIs(t, err, raster.ErrUnsupported)
	_, err = algebra.ToArray(r, -1)
	require.ErrorIs(t, err, raster.ErrInvalidArgument)
}

func TestArrayRepeatTranspose(t *testing.T) {
	t.Parallel()

	r := mustRaster(t, 1, 1, []string{"a", "b", "c"}, []float64{1}, []float64{2}, []float64{3})
	arr, err := algebra.ToArray(r, 0)
	require.NoError(t, err)

	rep, err := algebra.ArrayRepeat(arr, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, raster.Shape{{Len: 3, Tag: raster.TagBand}, {Len: 1}}, band(t, rep, algebra.ArrayBand).Shape)

	tr, err := algebra.ArrayTranspose(rep, 0, 1)
	require.NoError(t, err)
	b := band(t, tr, algebra.ArrayBand)
	assert.Equal(t, raster.Shape{{Len: 1}, {Len: 3, Tag: raster.TagBand}}, b.Shape)
	assert.Equal(t, []float64{1, 2, 3}, b.Data)

	twice, err := algebra.ArrayRepeat(raster.Vector(1, 2), 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 1, 2}, twice.(*raster.Array).Data)

	m, err := raster.FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	mt, err := algebra.ArrayTranspose(m, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, mt.(*raster.Array).Data)
}

func TestArrayProjectSliceGet(t *testing.T) {
	t.Parallel()

	m, err := raster.FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	_, err = algebra.ArrayProject(m, 0)
	require.ErrorIs(t, err, raster.ErrShapeMismatch)

	first, err := algebra.ArraySlice(m, 1, 0, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, raster.Dims(2, 1), first.(*raster.Array).Shape)
	assert.Equal(t, []float64{1, 4}, first.(*raster.Array).Data)

	rest, err := algebra.ArraySlice(m, 1, 1, math.MaxInt, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 5, 6}, rest.(*raster.Array).Data)

	last, err := algebra.ArraySlice(m, 1, -1, math.MaxInt, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 6}, last.(*raster.Array).Data)

	_, err = algebra.ArraySlice(m, 1, 2, 1, 1)
	require.ErrorIs(t, err, raster.ErrInvalidArgument)

	col, err := algebra.ArrayProject(first, 0)
	require.NoError(t, err)
	assert.Equal(t, raster.Dims(2), col.(*raster.Array).Shape)

	v, err := algebra.ArrayGet(m, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, raster.Scalar(6), v)
}

func TestArrayFlatten_LabelMismatch(t *testing.T) {
	t.Parallel()

	r := mustRaster(t, 1, 1, []string{"a", "b"}, []float64{1}, []float64{2})
	arr, err := algebra.ToArray(r, 0)
	require.NoError(t, err)
	_, err = algebra.ArrayFlatten(arr, [][]string{{"only"}}, "_")
	require.ErrorIs(t, err, raster.ErrShapeMismatch)
	_, err = algebra.ArrayFlatten(r, [][]string{{"a"}}, "_")
	require.ErrorIs(t, err, raster.ErrShapeMismatch)

	col, err := algebra.ToArray(arr, 1)
	require.NoError(t, err)
	flat, err := algebra.ArrayFlatten(col, [][]string{{"a", "b"}, {"x"}}, "_")
	require.NoError(t, err)
	assert.Equal(t, []string{"a_x", "b_x"}, flat.BandNames())
}
