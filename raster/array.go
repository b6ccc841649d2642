package raster

import (
	"fmt"

	"github.com/katalvlaran/lvraster/matrix"
)

// Array is a single n-D array not tied to any pixel: a GlobalArray (rank 1)
// or GlobalMatrix (rank 2). Labels optionally name the entries of axis 0,
// as region reductions do with band names.
type Array struct {
	Shape  Shape
	Data   []float64
	Labels []string
}

// NewArray validates and copies the given layout.
func NewArray(shape Shape, data []float64, labels []string) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.Size() {
		return nil, fmt.Errorf("array %s: %d values: %w", shape, len(data), ErrShapeMismatch)
	}
	if labels != nil && (len(shape) == 0 || len(labels) != shape[0].Len) {
		return nil, fmt.Errorf("array %s: %d labels: %w", shape, len(labels), ErrShapeMismatch)
	}
	a := &Array{Shape: shape.Clone(), Data: append([]float64(nil), data...)}
	if labels != nil {
		a.Labels = append([]string(nil), labels...)
	}

	return a, nil
}

// Vector builds an untagged rank-1 Array.
func Vector(values ...float64) *Array {
	return &Array{Shape: Dims(len(values)), Data: append([]float64(nil), values...)}
}

// FromRows builds an untagged rank-2 Array from literal rows.
func FromRows(rows [][]float64) (*Array, error) {
	m, err := matrix.NewFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("array rows: %w: %w", ErrShapeMismatch, err)
	}

	return FromDense(m, TagNone, TagNone), nil
}

// FromDense wraps a matrix as a rank-2 Array with the given axis tags.
func FromDense(m *matrix.Dense, rowTag, colTag Tag) *Array {
	r, c := m.Shape()

	return &Array{Shape: Shape{{Len: r, Tag: rowTag}, {Len: c, Tag: colTag}}, Data: m.Data()}
}

// Dense converts a rank-2 Array into a matrix.
func (a *Array) Dense() (*matrix.Dense, error) {
	if len(a.Shape) != 2 {
		return nil, fmt.Errorf("array %s is not a matrix: %w", a.Shape, ErrDimensionMismatch)
	}

	return matrix.NewDenseFrom(a.Shape[0].Len, a.Shape[1].Len, a.Data)
}

// At returns the element at the given multi-index.
func (a *Array) At(idx ...int) (float64, error) {
	if len(idx) != len(a.Shape) {
		return 0, fmt.Errorf("index rank %d for %s: %w", len(idx), a.Shape, ErrShapeMismatch)
	}
	off := 0
	for i, st := range a.Shape.Strides() {
		if idx[i] < 0 || idx[i] >= a.Shape[i].Len {
			return 0, fmt.Errorf("index %v for %s: %w", idx, a.Shape, ErrInvalidArgument)
		}
		off += idx[i] * st
	}

	return a.Data[off], nil
}

// Get returns the entry labeled name in a labeled rank-1 Array.
func (a *Array) Get(name string) (float64, error) {
	for i, l := range a.Labels {
		if l == name && len(a.Shape) == 1 {
			return a.Data[i], nil
		}
	}

	return 0, fmt.Errorf("label %q: %w", name, ErrBandNotFound)
}

// Kind implements Value.
func (a *Array) Kind() Kind { return KindArray }

func (a *Array) String() string { return fmt.Sprintf("Array%s%v", a.Shape, a.Data) }
