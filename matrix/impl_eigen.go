// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
	"sort"
)

// Eigen performs the symmetric eigendecomposition A = Q * diag(λ) * Qᵀ
// using cyclic Jacobi rotations with the largest-pivot strategy.
//
// Implementation:
//   - Stage 1: Validate symmetry (relative tol); copy A; Q := I.
//   - Stage 2: Repeatedly zero the largest off-diagonal |A[p,q]| with a plane
//     rotation, accumulating it into Q, until max|A[p,q]| < tol·scale where
//     scale = max(1, ‖A‖_F).
//   - Stage 3: Reorder eigenpairs by descending eigenvalue (stable on ties).
//
// Returns:
//   - []float64: eigenvalues, largest first.
//   - Matrix: Q whose column k is the unit eigenvector for eigenvalue k.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrAsymmetry, ErrNaNInf.
//   - ErrMatrixEigenFailed when maxIter rotations do not reach tolerance.
//
// Complexity:
//   - Time O(maxIter * n), Space O(n²).
func Eigen(m Matrix, tol float64, maxIter int) ([]float64, Matrix, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	n := src.r
	a := src.Clone().(*Dense)
	Q, _ := NewDense(n, n)
	var i, j int
	for i = 0; i < n; i++ {
		Q.data[i*n+i] = 1.0
	}

	var frob float64
	for _, v := range a.data {
		frob += v * v
	}
	threshold := tol * math.Max(1, math.Sqrt(frob))

	var (
		iter               int
		base               int
		p, q               int
		maxOff, off        float64
		app, aqq, apq      float64
		aip, aiq, qip, qiq float64
		theta, t, c, s     float64
		converged          bool
	)
	for iter = 0; iter <= maxIter; iter++ {
		// Find pivot (p,q) maximizing |A[p,q]|.
		maxOff = NormZero
		for i = 0; i < n; i++ {
			base = i * n
			for j = i + 1; j < n; j++ {
				off = math.Abs(a.data[base+j])
				if off > maxOff {
					maxOff, p, q = off, i, j
				}
			}
		}
		if maxOff < threshold {
			converged = true
			break
		}
		if iter == maxIter {
			break
		}

		app = a.data[p*n+p]
		aqq = a.data[q*n+q]
		apq = a.data[p*n+q]
		// θ = (aqq−app)/(2*apq); t = sign(θ) / (|θ|+√(θ²+1))
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		for i = 0; i < n; i++ {
			if i == p || i == q {
				continue
			}
			aip = a.data[i*n+p]
			aiq = a.data[i*n+q]
			a.data[i*n+p] = c*aip - s*aiq
			a.data[p*n+i] = a.data[i*n+p]
			a.data[i*n+q] = s*aip + c*aiq
			a.data[q*n+i] = a.data[i*n+q]
		}
		a.data[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
		a.data[q*n+q] = s*s*app + 2*c*s*apq + c*c*aqq
		a.data[p*n+q], a.data[q*n+p] = 0, 0

		for i = 0; i < n; i++ {
			qip = Q.data[i*n+p]
			qiq = Q.data[i*n+q]
			Q.data[i*n+p] = c*qip - s*qiq
			Q.data[i*n+q] = s*qip + c*qiq
		}
	}
	if !converged {
		return nil, nil, matrixErrorf(opEigen, fmt.Errorf("off-diagonal %g after %d rotations: %w", maxOff, maxIter, ErrMatrixEigenFailed))
	}

	// Sort eigenpairs by descending eigenvalue; ties keep their diagonal order.
	order := make([]int, n)
	for i = 0; i < n; i++ {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return a.data[order[x]*n+order[x]] > a.data[order[y]*n+order[y]]
	})

	vals := make([]float64, n)
	vecs, _ := NewDense(n, n)
	for k, from := range order {
		vals[k] = a.data[from*n+from]
		for i = 0; i < n; i++ {
			vecs.data[i*n+k] = Q.data[i*n+from]
		}
	}

	return vals, vecs, nil
}
