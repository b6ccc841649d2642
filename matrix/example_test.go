// SPDX-License-Identifier: MIT
package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/lvraster/matrix"
)

// ExampleEigen decomposes a small band covariance into principal axes.
func ExampleEigen() {
	cov, _ := matrix.NewFromRows([][]float64{{2, 1}, {1, 2}})
	vals, _, err := matrix.Eigen(cov, 1e-12, 100)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%.3f %.3f\n", vals[0], vals[1])
	// Output:
	// 3.000 1.000
}

// ExamplePseudoInverse solves an over-determined system in the least-squares sense.
func ExamplePseudoInverse() {
	A, _ := matrix.NewFromRows([][]float64{{1, 0}, {0, 1}, {1, 1}})
	P, _ := matrix.PseudoInverse(A, 0)
	x := matrix.MulFlat(P.(*matrix.Dense).Data(), []float64{1, 2, 3}, 2, 3, 1)
	fmt.Printf("%.3f %.3f\n", x[0], x[1])
	// Output:
	// 1.000 2.000
}
