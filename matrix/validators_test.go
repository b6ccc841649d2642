// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/lvraster/matrix"
	"github.com/stretchr/testify/require"
)

// TestValidateSameShape covers nil inputs, matching and mismatched dimensions.
func TestValidateSameShape(t *testing.T) {
	t.Parallel()

	zeros := func(r, c int) matrix.Matrix { return MustDense(t, r, c) }

	tests := []struct {
		name    string
		a, b    matrix.Matrix
		wantErr error
	}{
		{"both nil", nil, nil, matrix.ErrNilMatrix},
		{"first nil", nil, zeros(2, 2), matrix.ErrNilMatrix},
		{"second nil", zeros(2, 2), nil, matrix.ErrNilMatrix},
		{"equal 2x3", zeros(2, 3), zeros(2, 3), nil},
		{"row mismatch", zeros(2, 3), zeros(3, 3), matrix.ErrDimensionMismatch},
		{"col mismatch", zeros(2, 3), zeros(2, 4), matrix.ErrDimensionMismatch},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateSameShape(tc.a, tc.b)
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.Truef(t, errors.Is(err, tc.wantErr),
					"expected errors.Is(%v, %v)", err, tc.wantErr)
			}
		})
	}
}

// TestValidateSquare covers nil inputs, square and non-square cases.
func TestValidateSquare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		m    matrix.Matrix
		want []error
	}{
		{"nil", nil, []error{matrix.ErrNilMatrix}},
		{"1x1", MustDense(t, 1, 1), nil},
		{"3x3", MustDense(t, 3, 3), nil},
		{"2x3", MustDense(t, 2, 3), []error{matrix.ErrNonSquare, matrix.ErrDimensionMismatch}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateSquare(tc.m)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			for _, w := range tc.want {
				require.ErrorIs(t, err, w)
			}
		})
	}
}

func TestValidateSymmetric(t *testing.T) {
	t.Parallel()

	sym := FromRows(t, [][]float64{{2, 1}, {1, 3}})
	require.NoError(t, matrix.ValidateSymmetric(sym, 1e-12))

	asym := FromRows(t, [][]float64{{2, 1}, {1.5, 3}})
	require.ErrorIs(t, matrix.ValidateSymmetric(asym, 1e-12), matrix.ErrAsymmetry)

	// relative tolerance absorbs rounding noise on large entries
	big := FromRows(t, [][]float64{{1e9, 1e9}, {1e9 + 1e-3, 1e9}})
	require.NoError(t, matrix.ValidateSymmetric(big, 1e-10))

	require.ErrorIs(t, matrix.ValidateSymmetric(sym, -1), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateSymmetric(MustDense(t, 2, 3), 1e-9), matrix.ErrNonSquare)
}

func TestValidateFiniteAndVecLen(t *testing.T) {
	t.Parallel()

	m := FromRows(t, [][]float64{{1, math.NaN()}})
	require.ErrorIs(t, matrix.ValidateFinite(m), matrix.ErrNaNInf)
	require.NoError(t, matrix.ValidateFinite(FromRows(t, [][]float64{{1, 2}})))
	require.ErrorIs(t, matrix.ValidateFinite(nil), matrix.ErrNilMatrix)

	require.ErrorIs(t, matrix.ValidateVecLen(nil, 2), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
	require.NoError(t, matrix.ValidateVecLen([]float64{1, 2}, 2))
}
