package raster

import (
	"fmt"
	"strings"
)

// Tag labels what an array axis indexes. Two axes combine only when their
// tags agree or one of them is TagNone.
type Tag string

// Well-known axis tags. Callers may define their own (Tag("fraction")).
const (
	TagNone      Tag = ""
	TagBand      Tag = "band"
	TagEndmember Tag = "endmember"
	TagComponent Tag = "component"
)

// Dim is one axis of an array: its length and what it indexes.
type Dim struct {
	Len int
	Tag Tag
}

// Compatible reports whether two axes may be aligned element by element.
func (d Dim) Compatible(o Dim) bool {
	return d.Len == o.Len && (d.Tag == o.Tag || d.Tag == TagNone || o.Tag == TagNone)
}

// Merge returns the axis produced by aligning d with a compatible o,
// keeping whichever tag is set.
func (d Dim) Merge(o Dim) Dim {
	if d.Tag == TagNone {
		return Dim{Len: d.Len, Tag: o.Tag}
	}

	return d
}

func (d Dim) String() string {
	if d.Tag == TagNone {
		return fmt.Sprintf("%d", d.Len)
	}

	return fmt.Sprintf("%d:%s", d.Len, d.Tag)
}

// Shape is the per-pixel (or global) array layout. An empty Shape is a scalar.
type Shape []Dim

// Dims builds an untagged Shape from lengths.
func Dims(lens ...int) Shape {
	s := make(Shape, len(lens))
	for i, n := range lens {
		s[i] = Dim{Len: n}
	}

	return s
}

// Rank returns the number of axes.
func (s Shape) Rank() int { return len(s) }

// Size returns the number of values one array of this shape holds.
func (s Shape) Size() int {
	n := 1
	for _, d := range s {
		n *= d.Len
	}

	return n
}

// Lens returns the axis lengths.
func (s Shape) Lens() []int {
	out := make([]int, len(s))
	for i, d := range s {
		out[i] = d.Len
	}

	return out
}

// Strides returns row-major strides (last axis contiguous).
func (s Shape) Strides() []int {
	st := make([]int, len(s))
	acc := 1
	for i := len(s) - 1; i >= 0; i-- {
		st[i] = acc
		acc *= s[i].Len
	}

	return st
}

// Validate rejects non-positive axis lengths.
func (s Shape) Validate() error {
	for i, d := range s {
		if d.Len <= 0 {
			return fmt.Errorf("axis %d length %d: %w", i, d.Len, ErrInvalidArgument)
		}
	}

	return nil
}

// Compatible reports axis-by-axis compatibility of equal-rank shapes.
func (s Shape) Compatible(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if !s[i].Compatible(o[i]) {
			return false
		}
	}

	return true
}

// Merge aligns two compatible shapes, keeping set tags.
func (s Shape) Merge(o Shape) Shape {
	out := make(Shape, len(s))
	for i := range s {
		out[i] = s[i].Merge(o[i])
	}

	return out
}

// Equal reports exact equality of lengths and tags.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}

	return true
}

// Clone returns an independent copy.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	out := make(Shape, len(s))
	copy(out, s)

	return out
}

func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = d.String()
	}

	return "[" + strings.Join(parts, " ") + "]"
}
