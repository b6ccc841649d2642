package raster

import "errors"

// Evaluation error taxonomy. Operations wrap these with context; callers
// match them with errors.Is.
var (
	// ErrShapeMismatch indicates band counts, grids or array axes that cannot be combined.
	ErrShapeMismatch = errors.New("raster: shape mismatch")

	// ErrDimensionMismatch indicates a matrix operand whose dimensions violate
	// the operation (inner lengths of a product, a non-square inverse).
	ErrDimensionMismatch = errors.New("raster: dimension mismatch")

	// ErrMissingWeightBand indicates a weighted reduction over fewer than two bands.
	ErrMissingWeightBand = errors.New("raster: missing weight band")

	// ErrUndefinedReduction indicates a footprint with no valid samples.
	ErrUndefinedReduction = errors.New("raster: undefined reduction")

	// ErrFeatureMismatch indicates a classifier applied to a raster lacking its training bands.
	ErrFeatureMismatch = errors.New("raster: feature mismatch")

	// ErrSingularMatrix indicates a matrix that cannot be inverted or decomposed.
	ErrSingularMatrix = errors.New("raster: singular matrix")
)

// Structural errors raised while building or addressing values.
var (
	// ErrBandNotFound indicates a band name absent from a raster.
	ErrBandNotFound = errors.New("raster: band not found")

	// ErrDuplicateBand indicates two bands with the same name in one raster.
	ErrDuplicateBand = errors.New("raster: duplicate band name")

	// ErrInvalidArgument indicates a malformed parameter (negative size, bad index).
	ErrInvalidArgument = errors.New("raster: invalid argument")

	// ErrUnsupported indicates an operation that is not defined for the given operands.
	ErrUnsupported = errors.New("raster: unsupported operation")
)
