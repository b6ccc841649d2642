// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the covariance kernels behind region reductions: the population
//     covariance with and without mean removal, optionally weighted.
//   - Keep tight loops on flat row-major buffers.
//
// Exposed API:
//   - CenteredCovariance(X) -> (Cov, means)         // (Xcᵀ Xc) / r
//   - WeightedCenteredCovariance(X, w) -> (Cov, means)
//   - ScatterMatrix(X, w)   -> S                    // Σ w_i x_i x_iᵀ / Σ w_i, no centering
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Covariance fills the upper triangle and mirrors it, so the result is
//     exactly symmetric and Eigen accepts it without tolerance games.

package matrix

import (
	"fmt"
	"math"
)

const (
	opWeightedCov   = "WeightedCenteredCovariance"
)

// columnMeans accumulates sums row by row, then divides once.
func columnMeans(d *Dense) []float64 {
	means := make([]float64, d.c)
	var i, j, base int
	for i = 0; i < d.r; i++ {
		base = i * d.c
		for j = 0; j < d.c; j++ {
			means[j] += d.data[base+j]
		}
	}
	invR := 1.0 / float64(d.r)
	for j = 0; j < d.c; j++ {
		means[j] *= invR
	}

	return means
}

// centerWith returns d - 1·meansᵀ as a fresh Dense.
func centerWith(d *Dense, means []float64) *Dense {
	out := &Dense{r: d.r, c: d.c, data: make([]float64, len(d.data))}
	var i, j, base int
	for i = 0; i < d.r; i++ {
		base = i * d.c
		for j = 0; j < d.c; j++ {
			out.data[base+j] = d.data[base+j] - means[j]
		}
	}

	return out
}

// CenteredCovariance computes the population covariance of the columns of X.
// Implementation:
//   - Stage 1: Validate X; compute column means and the centered copy Xc.
//   - Stage 2: Accumulate the upper triangle of Xcᵀ·Xc and mirror it.
//   - Stage 3: Divide by the row count r (not r-1).
//
// Inputs:
//   - X: r samples × c variables.
//
// Returns:
//   - Matrix: c×c symmetric covariance.
//   - []float64: column means (len=c).
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c²), Space O(r*c + c²).
func CenteredCovariance(X Matrix) (Matrix, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCov, err)
	}
	d, err := asDense(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCov, err)
	}
	means := columnMeans(d)
	xc := centerWith(d, means)
	ones := make([]float64, d.r)
	for i := range ones {
		ones[i] = 1
	}
	cov := gram(xc, ones, float64(d.r))

	return cov, means, nil
}

// WeightedCenteredCovariance computes Σ_i w_i (x_i-μ)(x_i-μ)ᵀ / Σ_i w_i with
// μ the weighted mean. Zero-weight rows contribute nothing.
//
// Errors:
//   - ErrNilMatrix for a nil X.
//   - ErrDimensionMismatch when len(w) != X.Rows().
//   - ErrSingular when the weights sum to zero or are not finite.
func WeightedCenteredCovariance(X Matrix, w []float64) (Matrix, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opWeightedCov, err)
	}
	if err := ValidateVecLen(w, X.Rows()); err != nil {
		return nil, nil, matrixErrorf(opWeightedCov, err)
	}
	d, err := asDense(X)
	if err != nil {
		return nil, nil, matrixErrorf(opWeightedCov, err)
	}

	var total float64
	for _, wi := range w {
		total += wi
	}
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, nil, matrixErrorf(opWeightedCov, fmt.Errorf("weight sum %g: %w", total, ErrSingular))
	}

	means := make([]float64, d.c)
	var i, j, base int
	for i = 0; i < d.r; i++ {
		base = i * d.c
		for j = 0; j < d.c; j++ {
			means[j] += w[i] * d.data[base+j]
		}
	}
	for j = 0; j < d.c; j++ {
		means[j] /= total
	}
	xc := centerWith(d, means)

	return gram(xc, w, total), means, nil
}

// ScatterMatrix returns Σ_i w_i x_i x_iᵀ / Σ_i w_i over the rows x_i of X
// without subtracting any mean. A nil w weights every row by 1. For
// mean-centered rows this is the population covariance.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(w) != rows).
//   - ErrSingular when the weights sum to zero or are not finite.
func ScatterMatrix(X Matrix, w []float64) (Matrix, error) {
	const opScatter = "ScatterMatrix"
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opScatter, err)
	}
	d, err := asDense(X)
	if err != nil {
		return nil, matrixErrorf(opScatter, err)
	}
	if w == nil {
		w = make([]float64, d.r)
		for i := range w {
			w[i] = 1
		}
	}
	if err = ValidateVecLen(w, d.r); err != nil {
		return nil, matrixErrorf(opScatter, err)
	}
	var total float64
	for _, wi := range w {
		total += wi
	}
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, matrixErrorf(opScatter, fmt.Errorf("weight sum %g: %w", total, ErrSingular))
	}

	return gram(d, w, total), nil
}

// gram returns (Xcᵀ·diag(w)·Xc)/div as an exactly symmetric c×c Dense.
func gram(xc *Dense, w []float64, div float64) *Dense {
	c := xc.c
	cov := &Dense{r: c, c: c, data: make([]float64, c*c)}
	var i, p, q, base int
	var wi, xp float64
	for i = 0; i < xc.r; i++ {
		wi = w[i]
		if wi == 0 {
			continue
		}
		base = i * c
		for p = 0; p < c; p++ {
			xp = wi * xc.data[base+p]
			for q = p; q < c; q++ {
				cov.data[p*c+q] += xp * xc.data[base+q]
			}
		}
	}
	for p = 0; p < c; p++ {
		for q = p; q < c; q++ {
			cov.data[p*c+q] /= div
			cov.data[q*c+p] = cov.data[p*c+q]
		}
	}

	return cov
}
