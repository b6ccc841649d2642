package expr_test

import (
	"testing"

	"github.com/katalvlaran/lvraster/algebra"
	"github.com/katalvlaran/lvraster/expr"
	"github.com/katalvlaran/lvraster/raster"
	"github.com/katalvlaran/lvraster/reduce"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func image(t *testing.T, id string) *expr.Node {
	t.Helper()
	r, err := raster.FromScalars(raster.NewGrid(2, 1), []string{"B4", "B5"}, []float64{1, 2}, []float64{3, 4})
	require.NoError(t, err)

	return expr.Source(raster.NewNamedInMemory(id, r))
}

func TestKeys_Structural(t *testing.T) {
	t.Parallel()

	a := image(t, "scene").NormalizedDifference("B5", "B4").Add(expr.Scalar(1))
	b := image(t, "scene").NormalizedDifference("B5", "B4").Add(expr.Scalar(1))
	assert.Equal(t, a.Key(), b.Key())
	assert.NoError(t, a.Err())

	cases := map[string]*expr.Node{
		"other source":   image(t, "other").NormalizedDifference("B5", "B4").Add(expr.Scalar(1)),
		"swapped bands":  image(t, "scene").NormalizedDifference("B4", "B5").Add(expr.Scalar(1)),
		"other constant": image(t, "scene").NormalizedDifference("B5", "B4").Add(expr.Scalar(2)),
		"other op":       image(t, "scene").NormalizedDifference("B5", "B4").Subtract(expr.Scalar(1)),
	}
	for name, n := range cases {
		assert.NotEqual(t, a.Key(), n.Key(), name)
	}
}

func TestKeys_Parameters(t *testing.T) {
	t.Parallel()

	img := image(t, "scene")
	box := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}
	r1 := img.ReduceRegion(reduce.Mean(), box, 1)
	r2 := img.ReduceRegion(reduce.Mean(), box, 1)
	assert.Equal(t, r1.Key(), r2.Key())
	assert.NotEqual(t, r1.Key(), img.ReduceRegion(reduce.Mean().SplitWeights(), box, 1).Key())
	assert.NotEqual(t, r1.Key(), img.ReduceRegion(reduce.Mean(), nil, 1).Key())
	assert.NotEqual(t, r1.Key(), img.ReduceRegion(reduce.Mean(), box, 2).Key())

	assert.NotEqual(t, img.Select("B4").Key(), img.SelectIndex(0).Key())
	assert.Equal(t, expr.Matrix([][]float64{{1, 2}}).Key(), expr.Matrix([][]float64{{1, 2}}).Key())
	assert.NotEqual(t, expr.Matrix([][]float64{{1, 2}}).Key(), expr.Matrix([][]float64{{1}, {2}}).Key())
}

func TestNilOperand_Deferred(t *testing.T) {
	t.Parallel()

	var missing *expr.Node
	n := image(t, "scene").Add(missing)
	require.NotNil(t, n)
	assert.ErrorIs(t, n.Err(), expr.ErrNilOperand)

	assert.ErrorIs(t, expr.Source(nil).Err(), expr.ErrNilOperand)
	assert.ErrorIs(t, image(t, "scene").Classify(nil).Err(), expr.ErrNilOperand)
	assert.ErrorIs(t, expr.Constant(nil).Err(), raster.ErrUnsupported)

	_, err := expr.Plan(nil)
	assert.ErrorIs(t, err, expr.ErrNilOperand)
}

func TestPlan_OrderAndSharing(t *testing.T) {
	t.Parallel()

	img := image(t, "scene")
	nd := img.NormalizedDifference("B5", "B4")
	root := nd.Multiply(nd).Add(img.Select("B4"))

	order, err := expr.Plan(root)
	require.NoError(t, err)
	// source, nd, multiply, select, add
	require.Len(t, order, 5)
	assert.Equal(t, expr.OpSource, order[0].Op())
	assert.Equal(t, root.Key(), order[len(order)-1].Key())

	pos := make(map[string]int, len(order))
	for i, n := range order {
		_, dup := pos[n.Key()]
		require.False(t, dup, "node %s listed twice", n)
		pos[n.Key()] = i
	}
	for _, n := range order {
		for _, a := range n.Args() {
			assert.Less(t, pos[a.Key()], pos[n.Key()], "%s before %s", a, n)
		}
	}
}

func TestEigenHelpers(t *testing.T) {
	t.Parallel()

	m := expr.Matrix([][]float64{{2, 0}, {0, 1}})
	vals := m.EigenValues()
	assert.Equal(t, expr.OpArraySlice, vals.Op())
	assert.Equal(t, []int{1, 0, 1, 1}, vals.Params().Ints)
	assert.Equal(t, expr.OpEigen, vals.Args()[0].Op())
	// both helpers share the decomposition
	assert.Equal(t, vals.Args()[0].Key(), m.EigenVectors().Args()[0].Key())
}

func TestNodeAccessors(t *testing.T) {
	t.Parallel()

	n := expr.Scalar(3).Binary(algebra.OpAdd, expr.Scalar(4))
	assert.Equal(t, expr.OpBinary, n.Op())
	assert.Equal(t, algebra.OpAdd, n.Params().Binary)
	assert.Len(t, n.Args(), 2)
	assert.Len(t, n.Key(), 32)
	assert.Equal(t, "binary#"+n.ShortKey(), n.String())
}
