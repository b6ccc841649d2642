// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultPinvTol is the relative cutoff for singular values in PseudoInverse:
// σ_k ≤ DefaultPinvTol·σ_max is treated as zero.
const DefaultPinvTol = 1e-12

// PseudoInverse returns the Moore–Penrose inverse A⁺ of an r×c matrix (c×r).
// Implementation:
//   - Stage 1: Validate non-nil and finite; copy into a gonum Dense.
//   - Stage 2: Thin SVD A = U Σ Vᵀ.
//   - Stage 3: A⁺ = V Σ⁺ Uᵀ where Σ⁺ inverts singular values above
//     tol·σ_max and zeroes the rest.
//
// A⁺ satisfies A·A⁺·A = A for every input shape, including rank-deficient
// and non-square matrices. A tol ≤ 0 selects DefaultPinvTol.
//
// Errors:
//   - ErrNilMatrix, ErrNaNInf.
//   - ErrMatrixEigenFailed when the SVD does not converge.
//
// Complexity:
//   - Time O(r*c*min(r,c)), Space O(r*c).
func PseudoInverse(m Matrix, tol float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opPinv, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, matrixErrorf(opPinv, err)
	}
	if tol <= 0 || math.IsNaN(tol) {
		tol = DefaultPinvTol
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opPinv, err)
	}
	r, c := d.r, d.c
	a := mat.NewDense(r, c, d.Data())

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, matrixErrorf(opPinv, fmt.Errorf("svd factorization: %w", ErrMatrixEigenFailed))
	}
	sigma := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	cutoff := 0.0
	if len(sigma) > 0 {
		cutoff = tol * sigma[0] // gonum returns σ in descending order
	}
	// V Σ⁺ : scale column k of V by 1/σ_k (or zero it).
	k := len(sigma)
	vs := mat.NewDense(c, k, nil)
	var i, j int
	for j = 0; j < k; j++ {
		if sigma[j] <= cutoff || sigma[j] == 0 {
			continue
		}
		inv := 1.0 / sigma[j]
		for i = 0; i < c; i++ {
			vs.Set(i, j, v.At(i, j)*inv)
		}
	}
	var out mat.Dense
	out.Mul(vs, u.T())

	res, err := NewDense(c, r)
	if err != nil {
		return nil, matrixErrorf(opPinv, err)
	}
	for i = 0; i < c; i++ {
		for j = 0; j < r; j++ {
			res.data[i*r+j] = out.At(i, j)
		}
	}

	return res, nil
}
