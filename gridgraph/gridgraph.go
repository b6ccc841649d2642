package gridgraph

var (
	offsets4 = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	offsets8 = [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
)

// NewGridGraph wraps a w×h row-major value slice and optional mask. Both are
// copied. Returns ErrEmptyGrid for a zero dimension and ErrNonRectangular
// when the slices do not cover w×h cells.
// Complexity: O(W×H) time and memory.
func NewGridGraph(w, h int, values []float64, defined []bool, conn Connectivity) (*GridGraph, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyGrid
	}
	if len(values) != w*h || (defined != nil && len(defined) != w*h) {
		return nil, ErrNonRectangular
	}
	gg := &GridGraph{
		Width:  w,
		Height: h,
		Values: append([]float64(nil), values...),
		Conn:   conn,
	}
	if defined != nil {
		gg.Defined = append([]bool(nil), defined...)
	}
	gg.offsets = offsets4
	if conn == Conn8 {
		gg.offsets = offsets8
	}

	return gg, nil
}

// From2D builds a fully defined GridGraph from rows of values.
func From2D(rows [][]float64, conn Connectivity) (*GridGraph, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(rows), len(rows[0])
	values := make([]float64, 0, w*h)
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		values = append(values, row...)
	}

	return NewGridGraph(w, h, values, nil, conn)
}

// InBounds reports whether (x,y) lies within the grid boundaries.
// Complexity: O(1).
func (gg *GridGraph) InBounds(x, y int) bool {
	return x >= 0 && x < gg.Width && y >= 0 && y < gg.Height
}

// NeighborOffsets returns the (dx,dy) steps for gg.Conn.
// Complexity: O(1).
func (gg *GridGraph) NeighborOffsets() [][2]int {
	return gg.offsets
}

// Foreground reports whether cell i is defined and non-zero.
func (gg *GridGraph) Foreground(i int) bool {
	return (gg.Defined == nil || gg.Defined[i]) && gg.Values[i] != 0
}

// index maps (x,y) to a row‑major index: y*Width + x.
// Complexity: O(1).
func (gg *GridGraph) index(x, y int) int {
	return y*gg.Width + x
}

// Coordinate converts a row‑major index back to (x,y).
// Complexity: O(1).
func (gg *GridGraph) Coordinate(idx int) (x, y int) {
	return idx % gg.Width, idx / gg.Width
}
