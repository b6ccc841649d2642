// Package algebra holds the eager kernels of the raster algebra engine.
//
// Every function takes resolved values (raster.Value: *raster.Raster,
// *raster.Array or raster.Scalar) and returns a freshly built value; inputs
// are never modified. The engine package calls these kernels while walking
// an expression graph, but they are equally usable on their own.
//
// Operand rules shared by all per-pixel kernels:
//
//   - Rasters combine band by band. A one-band operand broadcasts over an
//     N-band operand; other band-count disagreements are ErrShapeMismatch.
//     Output band names come from the first raster operand carrying N bands.
//   - Scalars and global Arrays act as constant one-band images named
//     "constant" when combined with a Raster.
//   - A pixel is defined in the output only when it is defined in every
//     operand.
//   - Array-valued pixels combine element-wise when their shapes are
//     compatible (equal lengths, agreeing axis tags); a scalar pixel
//     broadcasts over an array pixel.
//
// Matrix failures from the matrix package surface as raster.ErrSingularMatrix
// or raster.ErrDimensionMismatch, with the original cause still wrapped.
package algebra
