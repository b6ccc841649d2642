// SPDX-License-Identifier: MIT
// Package: lvraster/engine
//
// options.go: functional options for the evaluator.
//
// Contract (strict):
//   • Options are functional (type Option func(*settings)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Evaluation itself never panics.
//   • Later options override earlier ones.

package engine

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Option customizes an Evaluator.
type Option func(*settings)

// WithLogger routes evaluation logs to log. Panics on nil.
func WithLogger(log logrus.FieldLogger) Option {
	if log == nil {
		panic("engine: WithLogger(nil)")
	}
	return func(s *settings) {
		s.log = log
	}
}

// WithMemoization toggles the cross-call result cache. With it off, shared
// subgraphs are still computed once per Resolve.
func WithMemoization(on bool) Option {
	return func(s *settings) {
		s.memoize = on
	}
}

// WithEigenTolerance sets the Jacobi off-diagonal convergence threshold.
func WithEigenTolerance(tol float64) Option {
	if !(tol > 0) || math.IsInf(tol, 0) {
		panic(fmt.Sprintf("engine: WithEigenTolerance: tol must be finite and > 0, got %g", tol))
	}
	return func(s *settings) {
		s.eigenTol = tol
	}
}

// WithEigenMaxSweeps bounds the Jacobi iterations.
func WithEigenMaxSweeps(n int) Option {
	if n <= 0 {
		panic(fmt.Sprintf("engine: WithEigenMaxSweeps: n must be > 0, got %d", n))
	}
	return func(s *settings) {
		s.eigenSweeps = n
	}
}

// WithPinvTolerance sets the relative singular-value cutoff used by
// pseudo-inverse nodes that do not carry their own. Zero selects the
// matrix package default.
func WithPinvTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic(fmt.Sprintf("engine: WithPinvTolerance: tol must be finite and ≥ 0, got %g", tol))
	}
	return func(s *settings) {
		s.pinvTol = tol
	}
}

// WithDefaultScale sets the sampling pitch of region reductions that leave
// scale unset. Zero means the raster's cell size.
func WithDefaultScale(scale float64) Option {
	if scale < 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		panic(fmt.Sprintf("engine: WithDefaultScale: scale must be finite and ≥ 0, got %g", scale))
	}
	return func(s *settings) {
		s.defaultScale = scale
	}
}
