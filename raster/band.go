package raster

import (
	"fmt"
	"math"
)

// Band is one named layer of a Raster. Scalar bands have an empty Shape and
// hold one value per pixel; array bands hold Shape.Size() values per pixel,
// stored pixel-major.
//
// A nil Mask means every pixel is defined. Inside a defined pixel of an array
// band, an element holding NaN is undefined; stacking bands with different
// masks records the missing ones that way. Bands are never modified after
// construction; operations build new ones.
type Band struct {
	Name  string
	Shape Shape
	Data  []float64
	Mask  []bool
}

// NewBand validates sizes against the pixel count and copies data and mask.
func NewBand(name string, pixels int, shape Shape, data []float64, mask []bool) (*Band, error) {
	if name == "" {
		return nil, fmt.Errorf("band name is empty: %w", ErrInvalidArgument)
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("band %q: %w", name, err)
	}
	if want := pixels * shape.Size(); len(data) != want {
		return nil, fmt.Errorf("band %q: %d values, want %d: %w", name, len(data), want, ErrShapeMismatch)
	}
	if mask != nil && len(mask) != pixels {
		return nil, fmt.Errorf("band %q: mask of %d, want %d: %w", name, len(mask), pixels, ErrShapeMismatch)
	}
	b := &Band{Name: name, Shape: shape.Clone(), Data: append([]float64(nil), data...)}
	if mask != nil {
		b.Mask = append([]bool(nil), mask...)
	}

	return b, nil
}

// Scalar reports whether the band holds one value per pixel.
func (b *Band) Scalar() bool { return len(b.Shape) == 0 }

// Defined reports whether pixel p carries a value.
func (b *Band) Defined(p int) bool { return b.Mask == nil || b.Mask[p] }

// Complete reports whether pixel p is defined and, for array bands, has no
// undefined element.
func (b *Band) Complete(p int) bool {
	if !b.Defined(p) {
		return false
	}
	if b.Scalar() {
		return true
	}
	for _, v := range b.Pixel(p) {
		if math.IsNaN(v) {
			return false
		}
	}

	return true
}

// At returns pixel p of a scalar band (the first element for array bands).
func (b *Band) At(p int) float64 { return b.Data[p*b.Shape.Size()] }

// Pixel returns a read-only view of the values at pixel p.
func (b *Band) Pixel(p int) []float64 {
	n := b.Shape.Size()

	return b.Data[p*n : (p+1)*n : (p+1)*n]
}

// Renamed returns a band sharing storage with b under another name.
// Storage is never written after construction, so sharing is safe.
func (b *Band) Renamed(name string) *Band {
	return &Band{Name: name, Shape: b.Shape, Data: b.Data, Mask: b.Mask}
}

// NaNMask returns a mask that is false wherever data holds NaN, or nil when
// every value is a number.
func NaNMask(data []float64, perPixel int) []bool {
	var mask []bool
	pixels := len(data) / perPixel
	for p := 0; p < pixels; p++ {
		for k := 0; k < perPixel; k++ {
			if math.IsNaN(data[p*perPixel+k]) {
				if mask == nil {
					mask = make([]bool, pixels)
					for i := range mask {
						mask[i] = true
					}
				}
				mask[p] = false
				break
			}
		}
	}

	return mask
}
