// Package raster defines the data model shared by every lvraster package:
// gridded multi-band Rasters, per-pixel array shapes with typed axes, global
// Arrays produced by region reductions, and the Source handle through which
// callers hand imagery to the engine.
//
// Every value in this package is immutable once built. Constructors copy
// their inputs; accessors hand out copies or read-only views, so a Raster can
// be shared between goroutines without locking.
//
// Layout:
//
//   - Grid: upper-left origin, square cells of CellSize ground units.
//   - Band: Width*Height pixels, each holding Shape.Size() float64 values
//     stored pixel-major; an optional Mask marks undefined pixels.
//   - Raster: ordered bands with unique names over one Grid.
//   - Array: a single n-D array not tied to a pixel (GlobalArray/GlobalMatrix).
//   - Scalar: a single number.
//
// Errors:
//
//   - ErrShapeMismatch, ErrDimensionMismatch, ErrMissingWeightBand,
//     ErrUndefinedReduction, ErrFeatureMismatch, ErrSingularMatrix form the
//     evaluation taxonomy; every package wraps them with errors.Is support.
package raster
