// Package matrix provides the dense linear-algebra primitives behind global
// arrays: the single, region-wide matrices produced by reductions (band
// covariance, mean vectors) and the constant matrices callers build by hand
// (endmember signatures, rotations).
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set.
//   - Kernels: Mul, MulFlat, Transpose, ToDiag, NewIdentity.
//   - Factorizations: LU (partial pivoting), Inverse, PseudoInverse (thin SVD).
//   - Spectral: Eigen (Jacobi rotations) with eigenvalues sorted descending.
//   - Statistics: CenteredCovariance, WeightedCenteredCovariance and
//     ScatterMatrix over observation rows.
//
// All kernels allocate a fresh result and never mutate their operands, so a
// Dense handed to a caller can be shared read-only between goroutines.
//
// Errors are package sentinels matched with errors.Is; kernels wrap them with
// an operation tag ("Mul: matrix: dimension mismatch").
package matrix
