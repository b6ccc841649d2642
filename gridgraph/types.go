package gridgraph

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// GridGraph treats a row-major grid of float64 cells as a graph. It is
// immutable once built.
//
// A cell is foreground when it is defined and non-zero. Two foreground
// neighbors are connected when they hold the same value, so distinct class
// IDs form distinct regions even when they touch.
type GridGraph struct {
	Width, Height int
	Values        []float64
	// Defined[i] false excludes cell i; nil means every cell is defined.
	Defined []bool
	Conn    Connectivity
	offsets [][2]int
}
