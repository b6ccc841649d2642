package raster

import (
	"fmt"
	"strings"
)

// Raster is an ordered, immutable sequence of named bands over one Grid.
type Raster struct {
	grid  Grid
	bands []*Band
	index map[string]int
}

// New assembles a Raster. Band names must be unique and every band must
// cover grid.Pixels() pixels.
func New(grid Grid, bands ...*Band) (*Raster, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	r := &Raster{grid: grid, bands: make([]*Band, 0, len(bands)), index: make(map[string]int, len(bands))}
	for _, b := range bands {
		if b == nil {
			return nil, fmt.Errorf("nil band: %w", ErrInvalidArgument)
		}
		if _, dup := r.index[b.Name]; dup {
			return nil, fmt.Errorf("band %q: %w", b.Name, ErrDuplicateBand)
		}
		if want := grid.Pixels() * b.Shape.Size(); len(b.Data) != want {
			return nil, fmt.Errorf("band %q: %d values, want %d: %w", b.Name, len(b.Data), want, ErrShapeMismatch)
		}
		if b.Mask != nil && len(b.Mask) != grid.Pixels() {
			return nil, fmt.Errorf("band %q mask: %w", b.Name, ErrShapeMismatch)
		}
		r.index[b.Name] = len(r.bands)
		r.bands = append(r.bands, b)
	}

	return r, nil
}

// FromScalars builds a Raster of scalar bands from name/data pairs given in
// order. It is a convenience for tests and small in-memory sources.
func FromScalars(grid Grid, names []string, data ...[]float64) (*Raster, error) {
	if len(names) != len(data) {
		return nil, fmt.Errorf("%d names for %d bands: %w", len(names), len(data), ErrShapeMismatch)
	}
	bands := make([]*Band, len(names))
	for i, name := range names {
		b, err := NewBand(name, grid.Pixels(), nil, data[i], NaNMask(data[i], 1))
		if err != nil {
			return nil, err
		}
		bands[i] = b
	}

	return New(grid, bands...)
}

// Grid returns the spatial reference.
func (r *Raster) Grid() Grid { return r.grid }

// Len returns the band count.
func (r *Raster) Len() int { return len(r.bands) }

// Bands returns the bands in order. The slice is a copy; bands are shared.
func (r *Raster) Bands() []*Band { return append([]*Band(nil), r.bands...) }

// BandAt returns band i.
func (r *Raster) BandAt(i int) *Band { return r.bands[i] }

// BandNames returns the band names in order.
func (r *Raster) BandNames() []string {
	out := make([]string, len(r.bands))
	for i, b := range r.bands {
		out[i] = b.Name
	}

	return out
}

// Band looks a band up by name.
func (r *Raster) Band(name string) (*Band, error) {
	i, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("band %q: %w", name, ErrBandNotFound)
	}

	return r.bands[i], nil
}

// Has reports whether a band with the given name exists.
func (r *Raster) Has(name string) bool {
	_, ok := r.index[name]

	return ok
}

// Select returns a Raster with the named bands in the requested order.
func (r *Raster) Select(names ...string) (*Raster, error) {
	bands := make([]*Band, len(names))
	for i, name := range names {
		b, err := r.Band(name)
		if err != nil {
			return nil, err
		}
		bands[i] = b
	}

	return New(r.grid, bands...)
}

// Kind implements Value.
func (r *Raster) Kind() Kind { return KindRaster }

func (r *Raster) String() string {
	return fmt.Sprintf("Raster(%dx%d, [%s])", r.grid.Width, r.grid.Height, strings.Join(r.BandNames(), " "))
}
