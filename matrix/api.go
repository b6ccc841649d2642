// SPDX-License-Identifier: MIT
// Package matrix: constructors and small helpers over the kernels.
//
// Purpose:
//   - Build matrices with explicit shape and neutral elements.
//   - Build diagonal matrices from vectors.
//   - Compare matrices with combined relative/absolute tolerance.

package matrix

import (
	"fmt"
	"math"
)

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// ToDiag builds the n×n diagonal matrix whose diagonal is v.
// Errors: ErrInvalidDimensions for an empty vector.
func ToDiag(v []float64) (*Dense, error) {
	n := len(v)
	D, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opToDiag, err)
	}
	for i, x := range v {
		D.data[i*n+i] = x
	}

	return D, nil
}

// AllClose reports whether |a-b| ≤ atol + rtol·|b| holds elementwise.
// NaN never compares close; equal infinities do.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf for negative tolerances.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	if rtol < 0 || atol < 0 {
		return false, matrixErrorf("AllClose", fmt.Errorf("rtol=%g atol=%g: %w", rtol, atol, ErrNaNInf))
	}
	da, err := asDense(a)
	if err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	db, err := asDense(b)
	if err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	for idx, x := range da.data {
		if !closeTo(x, db.data[idx], rtol, atol) {
			return false, nil
		}
	}

	return true, nil
}

// closeTo is the scalar predicate behind AllClose.
func closeTo(x, y, rtol, atol float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	if math.IsInf(x, 0) || math.IsInf(y, 0) {
		return x == y
	}

	return math.Abs(x-y) <= atol+rtol*math.Abs(y)
}
