package gridgraph

// ConnectedComponents finds all regions of equal-valued foreground cells,
// according to gg.Conn connectivity. Components are listed in order of their
// first cell in row-major order; each holds cell indices in BFS order.
//
// To convert an index back to (x,y), use Coordinate(idx).
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for visited flags and output.
func (gg *GridGraph) ConnectedComponents() [][]int {
	seen := make([]bool, gg.Width*gg.Height)
	var comps [][]int
	for i0 := range seen {
		if seen[i0] || !gg.Foreground(i0) {
			continue
		}
		comps = append(comps, gg.flood(i0, seen))
	}

	return comps
}

// flood collects the component containing i0 with a BFS and marks it seen.
func (gg *GridGraph) flood(i0 int, seen []bool) []int {
	v0 := gg.Values[i0]
	queue := []int{i0}
	seen[i0] = true
	for qi := 0; qi < len(queue); qi++ {
		ux, uy := gg.Coordinate(queue[qi])
		for _, d := range gg.offsets {
			vx, vy := ux+d[0], uy+d[1]
			if !gg.InBounds(vx, vy) {
				continue
			}
			vi := gg.index(vx, vy)
			if seen[vi] || !gg.Foreground(vi) || gg.Values[vi] != v0 {
				continue
			}
			seen[vi] = true
			queue = append(queue, vi)
		}
	}

	return queue
}

// ConnectedPixelCount returns, for every cell, the size of the component it
// belongs to capped at maxSize. Background cells (zero or undefined) get 0.
//
// Errors: ErrMaxSize when maxSize < 1.
// Time: O(W·H·d), Memory: O(W·H).
func (gg *GridGraph) ConnectedPixelCount(maxSize int) ([]float64, error) {
	if maxSize < 1 {
		return nil, ErrMaxSize
	}
	out := make([]float64, gg.Width*gg.Height)
	for _, comp := range gg.ConnectedComponents() {
		n := float64(min(len(comp), maxSize))
		for _, i := range comp {
			out[i] = n
		}
	}

	return out, nil
}
