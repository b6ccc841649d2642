// Package gridgraph treats a raster band as a graph of cells, enabling
// component analysis such as connected pixel counts.
//
// What:
//
//   - GridGraph wraps a row-major []float64 grid with an optional mask.
//   - Foreground cells are defined and non-zero; neighbors connect when they
//     hold the same value.
//   - ConnectedComponents lists the regions; ConnectedPixelCount maps every
//     cell to the size of its region, capped at maxSize.
//
// Why:
//
//   - Patch-size filters: drop classified regions smaller than N pixels.
//   - Zone statistics over thresholded night-light or land-cover rasters.
//
// Complexity:
//
//   - ConnectedComponents:  O(W×H×d), Memory: O(W×H)    (d = number of neighbors, 4 or 8).
//   - ConnectedPixelCount:  O(W×H×d), Memory: O(W×H).
//
// Options:
//
//   - Conn4 (4-neighbors) or Conn8 (8-neighbors).
//
// Errors:
//
//   - ErrEmptyGrid: grid has no rows or no columns.
//   - ErrNonRectangular: rows or slices do not cover the grid.
//   - ErrMaxSize: non-positive size cap.
package gridgraph
