package algebra

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvraster/matrix"
	"github.com/katalvlaran/lvraster/raster"
)

// Defaults for the spectral routines when callers pass zero values.
const (
	DefaultEigenTolerance = 1e-12
	DefaultEigenMaxSweeps = 10_000
)

func requireMatrix(s raster.Shape) error {
	if s.Rank() != 2 {
		return fmt.Errorf("want a 2-D array, got %s: %w", s, raster.ErrDimensionMismatch)
	}

	return nil
}

func requireSquare(s raster.Shape) error {
	if err := requireMatrix(s); err != nil {
		return err
	}
	if s[0].Len != s[1].Len {
		return fmt.Errorf("want a square matrix, got %s: %w", s, raster.ErrDimensionMismatch)
	}

	return nil
}

// MatrixMultiply computes a·b per pixel, or once for two global matrices.
// The trailing length of a must equal the leading length of b
// (ErrDimensionMismatch); when both of those axes are tagged the tags must
// agree (ErrShapeMismatch).
func MatrixMultiply(a, b raster.Value) (raster.Value, error) {
	k := func(shapes []raster.Shape) (raster.Shape, pixelFunc, error) {
		sa, sb := shapes[0], shapes[1]
		if err := requireMatrix(sa); err != nil {
			return nil, nil, err
		}
		if err := requireMatrix(sb); err != nil {
			return nil, nil, err
		}
		if sa[1].Len != sb[0].Len {
			return nil, nil, fmt.Errorf("%s · %s: %w", sa, sb, raster.ErrDimensionMismatch)
		}
		if !sa[1].Compatible(sb[0]) {
			return nil, nil, fmt.Errorf("%s · %s: inner axes %q and %q: %w", sa, sb, sa[1].Tag, sb[0].Tag, raster.ErrShapeMismatch)
		}
		r, n, c := sa[0].Len, sa[1].Len, sb[1].Len
		out := raster.Shape{sa[0], sb[1]}
		return out, func(in [][]float64, dst []float64) error {
			copy(dst, matrix.MulFlat(in[0], in[1], r, n, c))
			return nil
		}, nil
	}

	return apply("matrixMultiply", k, a, b)
}

// MatrixTranspose swaps the two axes of each matrix pixel.
func MatrixTranspose(v raster.Value) (raster.Value, error) {
	plan := transposePlan(0, 1)
	k := gather(func(in raster.Shape) (raster.Shape, []int, error) {
		if err := requireMatrix(in); err != nil {
			return nil, nil, err
		}
		return plan(in)
	})

	return apply("matrixTranspose", k, v)
}

// denseKernel adapts a matrix-package routine to a per-pixel kernel. A matrix
// with an undefined (NaN) element yields an all-NaN result.
func denseKernel(check func(raster.Shape) (raster.Shape, error), fn func(*matrix.Dense) ([]float64, error)) kernel {
	return func(shapes []raster.Shape) (raster.Shape, pixelFunc, error) {
		s := shapes[0]
		out, err := check(s)
		if err != nil {
			return nil, nil, err
		}
		r, c := s[0].Len, s[1].Len
		return out, func(in [][]float64, dst []float64) error {
			for _, x := range in[0] {
				if math.IsNaN(x) {
					fill(dst, x)
					return nil
				}
			}
			m, err := matrix.NewDenseFrom(r, c, in[0])
			if err != nil {
				return translate(err)
			}
			vals, err := fn(m)
			if err != nil {
				return translate(err)
			}
			copy(dst, vals)
			return nil
		}, nil
	}
}

// MatrixInverse inverts each square matrix pixel (pivoted LU).
func MatrixInverse(v raster.Value) (raster.Value, error) {
	check := func(s raster.Shape) (raster.Shape, error) {
		if err := requireSquare(s); err != nil {
			return nil, err
		}
		return raster.Shape{s[1], s[0]}, nil
	}
	k := denseKernel(check, func(m *matrix.Dense) ([]float64, error) {
		inv, err := matrix.Inverse(m)
		if err != nil {
			return nil, err
		}
		return inv.(*matrix.Dense).Data(), nil
	})

	return apply("matrixInverse", k, v)
}

// MatrixPseudoInverse computes the Moore–Penrose inverse of each matrix
// pixel; rectangular inputs are allowed. tol ≤ 0 selects the matrix default.
func MatrixPseudoInverse(v raster.Value, tol float64) (raster.Value, error) {
	check := func(s raster.Shape) (raster.Shape, error) {
		if err := requireMatrix(s); err != nil {
			return nil, err
		}
		return raster.Shape{s[1], s[0]}, nil
	}
	k := denseKernel(check, func(m *matrix.Dense) ([]float64, error) {
		p, err := matrix.PseudoInverse(m, tol)
		if err != nil {
			return nil, err
		}
		return p.(*matrix.Dense).Data(), nil
	})

	return apply("matrixPseudoInverse", k, v)
}

// Eigen decomposes each symmetric matrix pixel. The result is N×(N+1):
// column 0 holds the eigenvalues in descending order and columns 1..N the
// eigenvector matrix, column j+1 being the unit eigenvector of eigenvalue j.
func Eigen(v raster.Value, tol float64, maxSweeps int) (raster.Value, error) {
	if tol <= 0 {
		tol = DefaultEigenTolerance
	}
	if maxSweeps <= 0 {
		maxSweeps = DefaultEigenMaxSweeps
	}
	check := func(s raster.Shape) (raster.Shape, error) {
		if err := requireSquare(s); err != nil {
			return nil, err
		}
		return raster.Dims(s[0].Len, s[0].Len+1), nil
	}
	k := denseKernel(check, func(m *matrix.Dense) ([]float64, error) {
		vals, vecs, err := matrix.Eigen(m, tol, maxSweeps)
		if err != nil {
			return nil, err
		}
		n := len(vals)
		q := vecs.(*matrix.Dense).Data()
		out := make([]float64, n*(n+1))
		for i := 0; i < n; i++ {
			out[i*(n+1)] = vals[i]
			copy(out[i*(n+1)+1:(i+1)*(n+1)], q[i*n:(i+1)*n])
		}
		return out, nil
	})

	return apply("eigen", k, v)
}

// MatrixToDiag builds a diagonal matrix from a vector pixel ([n], [n,1] or [1,n]).
func MatrixToDiag(v raster.Value) (raster.Value, error) {
	k := func(shapes []raster.Shape) (raster.Shape, pixelFunc, error) {
		s := shapes[0]
		var d raster.Dim
		switch {
		case s.Rank() == 1:
			d = s[0]
		case s.Rank() == 2 && s[1].Len == 1:
			d = s[0]
		case s.Rank() == 2 && s[0].Len == 1:
			d = s[1]
		default:
			return nil, nil, fmt.Errorf("want a vector, got %s: %w", s, raster.ErrDimensionMismatch)
		}
		n := d.Len
		return raster.Shape{d, d}, func(in [][]float64, dst []float64) error {
			for i := range dst {
				dst[i] = 0
			}
			for i := 0; i < n; i++ {
				dst[i*n+i] = in[0][i]
			}
			return nil
		}, nil
	}

	return apply("matrixToDiag", k, v)
}

// Identity returns the n×n identity as a global matrix.
func Identity(n int) (*raster.Array, error) {
	I, err := matrix.NewIdentity(n)
	if err != nil {
		return nil, algebraErrorf("identity", translate(err))
	}

	return raster.FromDense(I, raster.TagNone, raster.TagNone), nil
}
