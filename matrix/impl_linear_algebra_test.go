// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"sort"
	"testing"

	"github.com/katalvlaran/lvraster/matrix"
	"github.com/stretchr/testify/require"
)

func TestNewDenseDefaultZero(t *testing.T) {
	m := MustDense(t, 2, 3)
	r, c := m.Shape()
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)
	CompareExact(t, [][]float64{{0, 0, 0}, {0, 0, 0}}, m)

	_, err := matrix.NewDense(0, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewDenseFrom(2, 2, []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.NewFromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestDense_AtSet_OutOfRange(t *testing.T) {
	m := MustDense(t, 2, 2)
	require.NoError(t, m.Set(1, 1, 7))
	require.Equal(t, 7.0, MustAt(t, m, 1, 1))
	_, err := m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)

	// Data and Clone do not alias
	d := m.Data()
	d[3] = 100
	cl := m.Clone()
	require.NoError(t, cl.Set(0, 0, 5))
	require.Equal(t, 0.0, MustAt(t, m, 0, 0))
	require.Equal(t, 7.0, MustAt(t, m, 1, 1))
}

func TestMul_Correctness(t *testing.T) {
	a := FromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := FromRows(t, [][]float64{{7, 8}, {9, 10}, {11, 12}})

	c, err := matrix.Mul(a, b)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{58, 64}, {139, 154}}, c)

	// fallback path gives identical results
	c2, err := matrix.Mul(hide{a}, hide{b})
	require.NoError(t, err)
	CompareExact(t, [][]float64{{58, 64}, {139, 154}}, c2)

	_, err = matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	flat := matrix.MulFlat([]float64{1, 2, 3, 4, 5, 6}, []float64{7, 8, 9, 10, 11, 12}, 2, 3, 2)
	require.Equal(t, []float64{58, 64, 139, 154}, flat)
}

func TestTranspose_Involution(t *testing.T) {
	a := RandFilledDense(t, 3, 5, 7)
	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	require.Equal(t, 5, at.Rows())
	require.Equal(t, 3, at.Cols())
	require.Equal(t, MustAt(t, a, 2, 4), MustAt(t, at, 4, 2))

	att, err := matrix.Transpose(hide{at})
	require.NoError(t, err)
	CompareClose(t, a, att, 0, 0)
}

func TestLU_Known2x2(t *testing.T) {
	a := FromRows(t, [][]float64{{4, 3}, {6, 3}})
	L, U, perm, err := matrix.LU(a)
	require.NoError(t, err)
	require.Equal(t, []int{1, 0}, perm)
	CompareClose(t, FromRows(t, [][]float64{{1, 0}, {2.0 / 3, 1}}), L, 1e-12, 1e-12)
	CompareClose(t, FromRows(t, [][]float64{{6, 3}, {0, 1}}), U, 1e-12, 1e-12)

	LU, err := matrix.Mul(L, U)
	require.NoError(t, err)
	CompareClose(t, FromRows(t, [][]float64{{6, 3}, {4, 3}}), LU, 1e-12, 1e-12)

	_, _, _, err = matrix.LU(MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestLU_PermutedRowsReconstruct(t *testing.T) {
	a := RandFilledDense(t, 5, 5, 11)
	L, U, perm, err := matrix.LU(hide{a})
	require.NoError(t, err)
	LU, err := matrix.Mul(L, U)
	require.NoError(t, err)
	for i, src := range perm {
		for j := 0; j < 5; j++ {
			require.InDelta(t, MustAt(t, a, src, j), MustAt(t, LU, i, j), 1e-9)
		}
	}
}

func TestInverse(t *testing.T) {
	a := FromRows(t, [][]float64{{4, 7}, {2, 6}})
	inv, err := matrix.Inverse(a)
	require.NoError(t, err)
	want := FromRows(t, [][]float64{{0.6, -0.7}, {-0.2, 0.4}})
	CompareClose(t, want, inv, 1e-12, 1e-12)

	spd := SPD(t, 6, 42)
	inv, err = matrix.Inverse(spd)
	require.NoError(t, err)
	prod, err := matrix.Mul(spd, inv)
	require.NoError(t, err)
	I, err := matrix.NewIdentity(6)
	require.NoError(t, err)
	CompareClose(t, I, prod, 1e-9, 1e-9)

	_, err = matrix.Inverse(FromRows(t, [][]float64{{1, 2}, {2, 4}}))
	require.ErrorIs(t, err, matrix.ErrSingular)
	_, err = matrix.Inverse(MustDense(t, 3, 3))
	require.ErrorIs(t, err, matrix.ErrSingular)
}

func TestInverse_ZeroLeadingPivot(t *testing.T) {
	cases := map[string][][]float64{
		"swap 2x2":   {{0, 1}, {1, 0}},
		"det -1 3x3": {{0, 2, 1}, {1, 0, 0}, {0, 1, 1}},
		"zero 2,2":   {{1, 1, 0}, {1, 1, 1}, {0, 1, 1}},
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			a := FromRows(t, rows)
			inv, err := matrix.Inverse(a)
			require.NoError(t, err)
			prod, err := matrix.Mul(a, inv)
			require.NoError(t, err)
			I, err := matrix.NewIdentity(len(rows))
			require.NoError(t, err)
			CompareClose(t, I, prod, 1e-12, 1e-12)
		})
	}
}

func TestPseudoInverse_Laws(t *testing.T) {
	cases := map[string]*matrix.Dense{
		"tall 3x2":       FromRows(t, [][]float64{{1, 2}, {3, 4}, {5, 6}}),
		"wide 2x3":       FromRows(t, [][]float64{{1, 0, 2}, {0, 1, 1}}),
		"rank deficient": FromRows(t, [][]float64{{1, 2}, {2, 4}}),
		"random 4x4":     RandFilledDense(t, 4, 4, 3),
	}
	for name, a := range cases {
		a := a
		t.Run(name, func(t *testing.T) {
			p, err := matrix.PseudoInverse(a, 0)
			require.NoError(t, err)
			require.Equal(t, a.Cols(), p.Rows())
			require.Equal(t, a.Rows(), p.Cols())

			ap, err := matrix.Mul(a, p)
			require.NoError(t, err)
			apa, err := matrix.Mul(ap, a)
			require.NoError(t, err)
			CompareClose(t, a, apa, 1e-9, 1e-9)

			pa, err := matrix.Mul(p, a)
			require.NoError(t, err)
			pap, err := matrix.Mul(pa, p)
			require.NoError(t, err)
			CompareClose(t, p, pap, 1e-9, 1e-9)
		})
	}
}

func TestPseudoInverse_MatchesInverse(t *testing.T) {
	a := FromRows(t, [][]float64{{4, 7}, {2, 6}})
	p, err := matrix.PseudoInverse(hide{a}, 1e-12)
	require.NoError(t, err)
	inv, err := matrix.Inverse(a)
	require.NoError(t, err)
	CompareClose(t, inv, p, 1e-10, 1e-10)

	_, err = matrix.PseudoInverse(FromRows(t, [][]float64{{math.Inf(1)}}), 0)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestEigen_2x2_Analytic(t *testing.T) {
	a := FromRows(t, [][]float64{{2, 1}, {1, 2}})
	vals, Q, err := matrix.Eigen(a, 1e-12, 100)
	require.NoError(t, err)
	require.InDelta(t, 3.0, vals[0], 1e-12)
	require.InDelta(t, 1.0, vals[1], 1e-12)

	// leading eigenvector is ±[1,1]/√2
	q0, q1 := MustAt(t, Q, 0, 0), MustAt(t, Q, 1, 0)
	require.InDelta(t, math.Abs(q0), math.Sqrt2/2, 1e-12)
	require.InDelta(t, q0, q1, 1e-12)
}

func TestEigen_Diagonal_SortedDescending(t *testing.T) {
	a := FromRows(t, [][]float64{{1, 0, 0}, {0, 3, 0}, {0, 0, 2}})
	vals, Q, err := matrix.Eigen(a, 1e-12, 10)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 2, 1}, vals)
	CompareExact(t, [][]float64{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}}, Q)
}

func TestEigen_Reconstruction_SPD_6x6(t *testing.T) {
	a := SPD(t, 6, 11)
	vals, Q, err := matrix.Eigen(a, 1e-12, 10_000)
	require.NoError(t, err)
	require.True(t, sort.SliceIsSorted(vals, func(i, j int) bool { return vals[i] > vals[j] }))
	for _, v := range vals {
		require.Greater(t, v, 0.0)
	}

	D, err := matrix.ToDiag(vals)
	require.NoError(t, err)
	QD, err := matrix.Mul(Q, D)
	require.NoError(t, err)
	Qt, err := matrix.Transpose(Q)
	require.NoError(t, err)
	rec, err := matrix.Mul(QD, Qt)
	require.NoError(t, err)
	CompareClose(t, a, rec, 1e-9, 1e-9)

	QtQ, err := matrix.Mul(Qt, Q)
	require.NoError(t, err)
	I, _ := matrix.NewIdentity(6)
	CompareClose(t, I, QtQ, 1e-9, 1e-9)
}

func TestEigen_Errors(t *testing.T) {
	_, _, err := matrix.Eigen(nil, 1e-9, 10)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, _, err = matrix.Eigen(FromRows(t, [][]float64{{1, 2}, {3, 4}}), 1e-9, 10)
	require.ErrorIs(t, err, matrix.ErrAsymmetry)

	_, _, err = matrix.Eigen(FromRows(t, [][]float64{{2, 1}, {1, 2}}), 1e-12, 0)
	require.ErrorIs(t, err, matrix.ErrMatrixEigenFailed)
}

func TestCenteredCovariance(t *testing.T) {
	X := FromRows(t, [][]float64{{1, 2}, {3, 6}})
	cov, means, err := matrix.CenteredCovariance(X)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 4}, means)
	CompareExact(t, [][]float64{{1, 2}, {2, 4}}, cov)

	require.NoError(t, matrix.ValidateSymmetric(cov, 0))
}

func TestWeightedCovariance_OnesMatchesUnweighted(t *testing.T) {
	X := RandFilledDense(t, 20, 3, 5)
	cov, means, err := matrix.CenteredCovariance(X)
	require.NoError(t, err)

	ones := make([]float64, 20)
	for i := range ones {
		ones[i] = 1
	}
	wcov, wmeans, err := matrix.WeightedCenteredCovariance(hide{X}, ones)
	require.NoError(t, err)
	require.True(t, AlmostEqualSlice(means, wmeans, 1e-12))
	CompareClose(t, cov, wcov, 1e-12, 1e-12)

	_, _, err = matrix.WeightedCenteredCovariance(X, make([]float64, 20))
	require.ErrorIs(t, err, matrix.ErrSingular)
	_, _, err = matrix.WeightedCenteredCovariance(X, ones[:3])
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestDiagHelpers(t *testing.T) {
	D, err := matrix.ToDiag([]float64{1, 2, 3})
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 0, 0}, {0, 2, 0}, {0, 0, 3}}, D)

	_, err = matrix.ToDiag(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	I, err := matrix.NewIdentity(2)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 0}, {0, 1}}, I)
}

func TestScatterMatrix_CenteredEqualsCovariance(t *testing.T) {
	X := RandFilledDense(t, 12, 3, 9)
	cov, means, err := matrix.CenteredCovariance(X)
	require.NoError(t, err)
	require.Len(t, means, 3)
	xc := make([][]float64, 12)
	for i := range xc {
		xc[i] = make([]float64, 3)
		for j := range xc[i] {
			xc[i][j] = MustAt(t, X, i, j) - means[j]
		}
	}
	S, err := matrix.ScatterMatrix(FromRows(t, xc), nil)
	require.NoError(t, err)
	CompareClose(t, cov, S, 1e-12, 1e-12)

	_, err = matrix.ScatterMatrix(X, make([]float64, 12))
	require.ErrorIs(t, err, matrix.ErrSingular)
}
