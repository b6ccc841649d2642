package gridgraph

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConnectedComponents_Simple4 tests ConnectedComponents on a simple 4×3 grid
// with orthogonal connectivity (Conn4).
//
// Grid (1 = foreground, 0 = background):
//
//	0 1 1 0
//	1 1 0 0
//	0 0 1 1
//
// Expected: 2 regions of sizes 4 and 2.
func TestConnectedComponents_Simple4(t *testing.T) {
	gg, err := From2D([][]float64{
		{0, 1, 1, 0},
		{1, 1, 0, 0},
		{0, 0, 1, 1},
	}, Conn4)
	require.NoError(t, err)

	comps := gg.ConnectedComponents()
	require.Len(t, comps, 2)
	sizes := []int{len(comps[0]), len(comps[1])}
	sort.Ints(sizes)
	assert.Equal(t, []int{2, 4}, sizes)
}

// TestConnectedComponents_Diagonal8 uses a 5×5 X pattern: with Conn8 all 9
// cells connect through diagonal hops, with Conn4 none do.
func TestConnectedComponents_Diagonal8(t *testing.T) {
	grid := [][]float64{
		{1, 0, 0, 0, 1},
		{0, 1, 0, 1, 0},
		{0, 0, 1, 0, 0},
		{0, 1, 0, 1, 0},
		{1, 0, 0, 0, 1},
	}
	gg8, err := From2D(grid, Conn8)
	require.NoError(t, err)
	comps := gg8.ConnectedComponents()
	require.Len(t, comps, 1)
	assert.Len(t, comps[0], 9)

	gg4, err := From2D(grid, Conn4)
	require.NoError(t, err)
	assert.Len(t, gg4.ConnectedComponents(), 9)
}

// TestConnectedComponents_ValuesSeparate checks that touching cells with
// different values form separate regions and that masked cells break them.
//
//	2 2 3
//	2 x 3      x = undefined
//	2 2 3
func TestConnectedComponents_ValuesSeparate(t *testing.T) {
	values := []float64{2, 2, 3, 2, 2, 3, 2, 2, 3}
	defined := []bool{true, true, true, true, false, true, true, true, true}
	gg, err := NewGridGraph(3, 3, values, defined, Conn8)
	require.NoError(t, err)

	comps := gg.ConnectedComponents()
	require.Len(t, comps, 2)
	assert.Equal(t, []int{0, 1, 3, 6, 7}, sorted(comps[0]))
	assert.Equal(t, []int{2, 5, 8}, sorted(comps[1]))
}

// TestConnectedComponents_EmptyAndAllBackground covers the all-zero grid and a
// single foreground cell.
func TestConnectedComponents_EmptyAndAllBackground(t *testing.T) {
	gg1, err := From2D([][]float64{{0, 0}, {0, 0}}, Conn4)
	require.NoError(t, err)
	assert.Empty(t, gg1.ConnectedComponents())

	gg2, err := From2D([][]float64{{0, 1}}, Conn4)
	require.NoError(t, err)
	comps := gg2.ConnectedComponents()
	require.Len(t, comps, 1)
	assert.Equal(t, []int{1}, comps[0])
}

// TestConnectedComponents_InvalidRects ensures constructors reject bad inputs.
func TestConnectedComponents_InvalidRects(t *testing.T) {
	_, err := From2D(nil, Conn4)
	assert.ErrorIs(t, err, ErrEmptyGrid)
	_, err = From2D([][]float64{{1}, {}}, Conn4)
	assert.ErrorIs(t, err, ErrNonRectangular)
	_, err = NewGridGraph(2, 2, []float64{1, 2, 3}, nil, Conn4)
	assert.ErrorIs(t, err, ErrNonRectangular)
	_, err = NewGridGraph(2, 1, []float64{1, 2}, []bool{true}, Conn4)
	assert.ErrorIs(t, err, ErrNonRectangular)
}

func sorted(xs []int) []int {
	out := append([]int(nil), xs...)
	sort.Ints(out)

	return out
}
