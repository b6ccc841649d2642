package gridgraph

import "errors"

var (
	// ErrEmptyGrid indicates a grid without rows or columns.
	ErrEmptyGrid = errors.New("gridgraph: grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths, or a value or
	// mask slice that does not cover Width×Height cells.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrMaxSize indicates a non-positive component size cap.
	ErrMaxSize = errors.New("gridgraph: maxSize must be positive")
)
