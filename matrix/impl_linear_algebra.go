// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// matrix multiplication, transpose and pivoted LU inversion. All functions
// perform strict fail-fast validation and return clear errors on dimension
// mismatches.
//
// Notes:
//   - Kernels normalize operands through asDense once and then walk flat slices.
//   - Every kernel allocates its result; operands are never mutated.

package matrix

import (
	"fmt"
	"math"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting a zero pivot in LU/Inverse routines.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opEigen     = "Eigen"
	opInverse   = "Inverse"
	opPinv      = "PseudoInverse"
	opLU        = "LU"
	opCov       = "CenteredCovariance"
	opToDiag    = "ToDiag"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: i→k→j loops over row-major strides, skipping zero A[i,k].
//
// Inputs:
//   - A: left matrix with shape (r × n).
//   - B: right matrix with shape (n × c).
//
// Returns:
//   - Matrix: new Dense C with shape (r × c).
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Determinism:
//   - Fixed loop order i→k→j; identical inputs give bit-identical outputs.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(da.r, db.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	mulInto(res.data, da.data, db.data, da.r, da.c, db.c)

	return res, nil
}

// MulFlat multiplies row-major buffers a (r×n) and b (n×c) into a fresh r×c
// buffer. It is the allocation-light entry point used for per-pixel matrix
// products where wrapping every pixel in a Dense would dominate the cost.
// The caller guarantees len(a)==r*n and len(b)==n*c.
func MulFlat(a, b []float64, r, n, c int) []float64 {
	out := make([]float64, r*c)
	mulInto(out, a, b, r, n, c)

	return out
}

// mulInto accumulates a(r×n)·b(n×c) into out(r×c), which must be zeroed.
func mulInto(out, a, b []float64, r, n, c int) {
	var i, j, k int
	var av float64
	var rowA, rowB, rowR int
	for i = 0; i < r; i++ {
		rowA = i * n
		rowR = i * c
		for k = 0; k < n; k++ {
			av = a[rowA+k]
			if av == 0 {
				continue // skip zero for performance
			}
			rowB = k * c
			for j = 0; j < c; j++ {
				out[rowR+j] += av * b[rowB+j]
			}
		}
	}
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Errors: ErrNilMatrix.
// Complexity: Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	rows, cols := dm.r, dm.c
	res, err := NewDense(cols, rows) // dims flipped
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	// data[i*cols + j] → res.data[j*rows + i]
	var i, j, baseSrc int
	for i = 0; i < rows; i++ {
		baseSrc = i * cols
		for j = 0; j < cols; j++ {
			res.data[j*rows+i] = dm.data[baseSrc+j]
		}
	}

	return res, nil
}

// LU computes the factorization P*A = L*U with partial pivoting: L is unit
// lower triangular, U upper triangular, and perm[i] names the row of A that
// became row i of P*A.
// Implementation:
//   - Stage 1: Validate m (not nil, square); copy it into U; perm = identity.
//   - Stage 2: For each column i pick the row r ≥ i with the largest |U[r,i]|,
//     swap it into place (U, the finished part of L, perm), then eliminate
//     below the pivot and store the multipliers in L.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//   - ErrSingular when a whole column below the diagonal is zero.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func LU(m Matrix) (Matrix, Matrix, []int, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	a, err := asDense(m)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	n := a.r
	L, err := NewDense(n, n)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	U := &Dense{r: n, c: n, data: append([]float64(nil), a.data...)}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	var i, j, r, p, baseI, baseR int
	var best, v, f float64
	for i = 0; i < n; i++ {
		p, best = i, math.Abs(U.data[i*n+i])
		for r = i + 1; r < n; r++ {
			if v = math.Abs(U.data[r*n+i]); v > best {
				p, best = r, v
			}
		}
		if best == ZeroPivot {
			return nil, nil, nil, matrixErrorf(opLU, fmt.Errorf("zero pivot column %d: %w", i, ErrSingular))
		}
		if p != i {
			for j = 0; j < n; j++ {
				U.data[i*n+j], U.data[p*n+j] = U.data[p*n+j], U.data[i*n+j]
			}
			for j = 0; j < i; j++ {
				L.data[i*n+j], L.data[p*n+j] = L.data[p*n+j], L.data[i*n+j]
			}
			perm[i], perm[p] = perm[p], perm[i]
		}

		baseI = i * n
		L.data[baseI+i] = 1.0
		for r = i + 1; r < n; r++ {
			baseR = r * n
			f = U.data[baseR+i] / U.data[baseI+i]
			L.data[baseR+i] = f
			U.data[baseR+i] = NormZero
			for j = i + 1; j < n; j++ {
				U.data[baseR+j] -= f * U.data[baseI+j]
			}
		}
	}

	return L, U, perm, nil
}

// Inverse computes A^{-1} from the pivoted factorization P*A = L*U.
// The input must be non-nil and square. Returns ErrSingular if a pivot
// column vanishes or the result is not finite.
//
// Implementation:
//   - Stage 1: Factorize via LU(m) → L (unit lower), U (upper), perm.
//   - Stage 2: For each canonical basis column e_col solve L*y = P*e_col
//     (top-down) then U*x = y (bottom-up) and write x into column col.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func Inverse(m Matrix) (Matrix, error) {
	Lm, Um, perm, err := LU(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	L, U := Lm.(*Dense), Um.(*Dense)
	n := L.r
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	var (
		col, i, k int
		sum       float64
		y         = make([]float64, n) // forward substitution workspace
		x         = make([]float64, n) // backward substitution workspace
	)
	for col = 0; col < n; col++ {
		// Forward substitution: L*y = e_col
		for i = 0; i < n; i++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += L.data[i*n+k] * y[k]
			}
			if perm[i] == col {
				y[i] = 1.0 - sum
			} else {
				y[i] = -sum
			}
		}
		// Backward substitution: U*x = y
		for i = n - 1; i >= 0; i-- {
			sum = ZeroSum
			for k = i + 1; k < n; k++ {
				sum += U.data[i*n+k] * x[k]
			}
			x[i] = (y[i] - sum) / U.data[i*n+i]
			if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
				return nil, matrixErrorf(opInverse, ErrSingular)
			}
		}
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}
