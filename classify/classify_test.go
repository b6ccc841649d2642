package classify_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvraster/classify"
	"github.com/katalvlaran/lvraster/raster"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// landcover returns a 4×2 scene: water on the left column pair (low B4,
// high B2), vegetation on the right (high B4).
func landcover(t *testing.T) *raster.Raster {
	t.Helper()
	r, err := raster.FromScalars(raster.NewGrid(4, 2), []string{"B2", "B3", "B4"},
		[]float64{0.30, 0.28, 0.05, 0.06, 0.31, 0.29, 0.04, 0.05},
		[]float64{0.10, 0.11, 0.12, 0.10, 0.09, 0.10, 0.11, 0.12},
		[]float64{0.02, 0.03, 0.40, 0.45, 0.01, 0.02, 0.42, 0.38})
	require.NoError(t, err)

	return r
}

func trainingSet(t *testing.T) *classify.SampleSet {
	t.Helper()
	set, err := classify.NewSampleSet("B2", "B3", "B4", "landcover")
	require.NoError(t, err)
	rows := [][]float64{
		{0.30, 0.10, 0.02, 0},
		{0.29, 0.12, 0.03, 0},
		{0.05, 0.11, 0.40, 1},
		{0.06, 0.10, 0.44, 1},
	}
	for _, row := range rows {
		require.NoError(t, set.Add(row...))
	}

	return set
}

func TestTrainPredict(t *testing.T) {
	t.Parallel()

	for _, alg := range []classify.Algorithm{classify.NewCART(), classify.MinimumDistance{}} {
		t.Run(alg.Name(), func(t *testing.T) {
			trained, err := classify.Train(alg, trainingSet(t), []string{"B2", "B3", "B4"}, "landcover")
			require.NoError(t, err)
			assert.Equal(t, []int{0, 1}, trained.Classes())
			assert.Equal(t, []string{"B2", "B3", "B4"}, trained.Features())

			out, err := classify.Predict(trained, landcover(t))
			require.NoError(t, err)
			require.Equal(t, []string{classify.OutputBand}, out.BandNames())
			assert.Equal(t, []float64{0, 0, 1, 1, 0, 0, 1, 1}, out.BandAt(0).Data)
			assert.Nil(t, out.BandAt(0).Mask)
		})
	}
}

func TestPredict_TallRasterMatchesPredictRow(t *testing.T) {
	t.Parallel()

	trained, err := classify.Train(classify.MinimumDistance{}, trainingSet(t), []string{"B2", "B4"}, "landcover")
	require.NoError(t, err)

	const w, h = 3, 200
	b2 := make([]float64, w*h)
	b4 := make([]float64, w*h)
	for p := range b2 {
		b2[p] = float64(p%7) / 20
		b4[p] = float64(p%5) / 10
	}
	r, err := raster.FromScalars(raster.NewGrid(w, h), []string{"B2", "B4"}, b2, b4)
	require.NoError(t, err)
	out, err := classify.Predict(trained, r)
	require.NoError(t, err)
	for p := range b2 {
		want, err := trained.PredictRow([]float64{b2[p], b4[p]})
		require.NoError(t, err)
		require.Equal(t, float64(want), out.BandAt(0).Data[p], "pixel %d", p)
	}
}

func TestPredict_FeatureMismatch(t *testing.T) {
	t.Parallel()

	trained, err := classify.Train(classify.NewCART(), trainingSet(t), []string{"B2", "B3", "B4"}, "landcover")
	require.NoError(t, err)

	scene := landcover(t)
	noB3, err := scene.Select("B2", "B4")
	require.NoError(t, err)
	_, err = classify.Predict(trained, noB3)
	require.ErrorIs(t, err, raster.ErrFeatureMismatch)

	_, err = trained.PredictRow([]float64{0.3, 0.1})
	require.ErrorIs(t, err, raster.ErrFeatureMismatch)
}

func TestPredict_UndefinedPixels(t *testing.T) {
	t.Parallel()

	trained, err := classify.Train(classify.MinimumDistance{}, trainingSet(t), []string{"B2", "B4"}, "landcover")
	require.NoError(t, err)
	r, err := raster.FromScalars(raster.NewGrid(2, 1), []string{"B2", "B4"},
		[]float64{0.3, math.NaN()}, []float64{0.02, 0.4})
	require.NoError(t, err)
	out, err := classify.Predict(trained, r)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, out.BandAt(0).Mask)
}

func TestTrain_Errors(t *testing.T) {
	t.Parallel()

	set := trainingSet(t)
	_, err := classify.Train(classify.NewCART(), set, []string{"B9"}, "landcover")
	require.ErrorIs(t, err, raster.ErrBandNotFound)

	_, err = classify.Train(classify.NewCART(), set, []string{"B2"}, "class")
	require.ErrorIs(t, err, raster.ErrBandNotFound)

	frac, err := classify.NewSampleSet("x", "y")
	require.NoError(t, err)
	require.NoError(t, frac.Add(1, 0.5))
	_, err = classify.Train(classify.NewCART(), frac, []string{"x"}, "y")
	require.ErrorIs(t, err, raster.ErrInvalidArgument)

	empty, err := classify.NewSampleSet("x", "y")
	require.NoError(t, err)
	require.NoError(t, empty.Add(math.NaN(), 1))
	_, err = classify.Train(classify.NewCART(), empty, []string{"x"}, "y")
	require.ErrorIs(t, err, classify.ErrEmptyTraining)

	_, err = classify.NewSampleSet("x", "x")
	require.ErrorIs(t, err, raster.ErrDuplicateBand)
}

func TestCART_Splits(t *testing.T) {
	t.Parallel()

	// Class depends on x only through the interval it falls into.
	X := [][]float64{{1, 9}, {2, 1}, {3, 7}, {4, 3}, {5, 5}, {6, 2}, {7, 8}, {8, 4}, {9, 6}}
	y := []int{5, 5, 5, 7, 7, 7, 5, 5, 5}
	m, err := classify.NewCART().Fit(X, y)
	require.NoError(t, err)
	for i, x := range X {
		assert.Equal(t, y[i], m.Predict(x), "row %d", i)
	}

	stump, err := classify.NewCART(classify.WithMaxDepth(1)).Fit(X, y)
	require.NoError(t, err)
	hits := 0
	for i, x := range X {
		if stump.Predict(x) == y[i] {
			hits++
		}
	}
	assert.Less(t, hits, len(X), "one split cannot separate the middle interval")
}

func TestSampleRegions(t *testing.T) {
	t.Parallel()

	water := geojson.NewFeature(orb.Bound{Min: orb.Point{0, -2}, Max: orb.Point{2, 0}})
	water.Properties["landcover"] = 0.0
	veg := geojson.NewFeature(orb.Point{3.5, -0.5})
	veg.Properties["landcover"] = 1.0
	fc := geojson.NewFeatureCollection().Append(water).Append(veg)

	set, err := classify.SampleRegions(landcover(t), fc, []string{"landcover"}, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"B2", "B3", "B4", "landcover"}, set.Columns())
	require.Equal(t, 5, set.Len())
	labels, err := set.Column("landcover")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0, 1}, labels)
	assert.Equal(t, []float64{0.06, 0.10, 0.45, 1}, set.Row(4))

	trained, err := classify.Train(classify.NewCART(), set, []string{"B2", "B3", "B4"}, "landcover")
	require.NoError(t, err)
	cm, err := classify.Evaluate(trained, set)
	require.NoError(t, err)
	assert.Equal(t, 1.0, cm.Accuracy())
	assert.Equal(t, [][]int{{4, 0}, {0, 1}}, cm.Counts)

	bad := geojson.NewFeatureCollection().Append(geojson.NewFeature(orb.Point{0.5, -0.5}))
	_, err = classify.SampleRegions(landcover(t), bad, []string{"landcover"}, 1)
	require.ErrorIs(t, err, raster.ErrBandNotFound)
}

func TestSamplePixels(t *testing.T) {
	t.Parallel()

	all, err := classify.SamplePixels(landcover(t), nil, 0, 100, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, all.Len())

	a, err := classify.SamplePixels(landcover(t), nil, 0, 3, 42)
	require.NoError(t, err)
	b, err := classify.SamplePixels(landcover(t), nil, 0, 3, 42)
	require.NoError(t, err)
	require.Equal(t, 3, a.Len())
	for i := 0; i < 3; i++ {
		assert.Equal(t, a.Row(i), b.Row(i))
	}
}
