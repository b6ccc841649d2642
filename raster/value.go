package raster

import "strconv"

// Kind discriminates resolved values.
type Kind int

const (
	KindScalar Kind = iota
	KindArray
	KindRaster
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindArray:
		return "array"
	case KindRaster:
		return "raster"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is anything an expression can resolve to: *Raster, *Array or Scalar.
type Value interface {
	Kind() Kind
}

// Scalar is a single number.
type Scalar float64

// Kind implements Value.
func (Scalar) Kind() Kind { return KindScalar }

var (
	_ Value = (*Raster)(nil)
	_ Value = (*Array)(nil)
	_ Value = Scalar(0)
)
