package algebra

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvraster/matrix"
	"github.com/katalvlaran/lvraster/raster"
)

// algebraErrorf wraps err with an operation tag.
func algebraErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// translate maps matrix package failures onto the evaluation taxonomy while
// keeping the matrix sentinel reachable through errors.Is. The caller adds
// the operation tag.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, matrix.ErrDimensionMismatch), errors.Is(err, matrix.ErrInvalidDimensions):
		return fmt.Errorf("%w: %w", raster.ErrDimensionMismatch, err)
	case errors.Is(err, matrix.ErrSingular),
		errors.Is(err, matrix.ErrAsymmetry),
		errors.Is(err, matrix.ErrNaNInf),
		errors.Is(err, matrix.ErrMatrixEigenFailed):
		return fmt.Errorf("%w: %w", raster.ErrSingularMatrix, err)
	default:
		return err
	}
}
