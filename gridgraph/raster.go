package gridgraph

import (
	"fmt"

	"github.com/katalvlaran/lvraster/raster"
)

// FromBand builds the graph of one scalar band over g.
func FromBand(g raster.Grid, b *raster.Band, conn Connectivity) (*GridGraph, error) {
	if !b.Scalar() {
		return nil, fmt.Errorf("band %q has shape %s: %w", b.Name, b.Shape, raster.ErrUnsupported)
	}

	return NewGridGraph(g.Width, g.Height, b.Data, b.Mask, conn)
}

// ConnectedPixelCount replaces every scalar band of r with the capped size
// of the equal-valued region each pixel belongs to. Band names and masks are
// kept; defined zero pixels count 0.
func ConnectedPixelCount(r *raster.Raster, maxSize int, conn Connectivity) (*raster.Raster, error) {
	const op = "connectedPixelCount"
	g := r.Grid()
	bands := make([]*raster.Band, r.Len())
	for j, b := range r.Bands() {
		gg, err := FromBand(g, b, conn)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		counts, err := gg.ConnectedPixelCount(maxSize)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %w", op, raster.ErrInvalidArgument, err)
		}
		bands[j] = &raster.Band{Name: b.Name, Data: counts, Mask: b.Mask}
	}
	out, err := raster.New(g, bands...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
