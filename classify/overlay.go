package classify

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvraster/raster"
	"github.com/katalvlaran/lvraster/reduce"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// SampleRegions overlays labeled geometries on r. Every pixel sampled by a
// feature's geometry at scale becomes one row: the values of all bands of r
// followed by the requested numeric properties of the feature. Pixels with
// any undefined band are skipped.
//
// Columns are r.BandNames() followed by properties.
func SampleRegions(r *raster.Raster, fc *geojson.FeatureCollection, properties []string, scale float64) (*SampleSet, error) {
	const op = "sampleRegions"
	if r == nil || fc == nil {
		return nil, fmt.Errorf("%s: nil raster or features: %w", op, raster.ErrInvalidArgument)
	}
	bands, err := scalarBands(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	set, err := NewSampleSet(append(r.BandNames(), properties...)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	row := make([]float64, len(bands)+len(properties))
	for i, f := range fc.Features {
		for k, name := range properties {
			v, err := numericProperty(f.Properties, name)
			if err != nil {
				return nil, fmt.Errorf("%s: feature %d: %w", op, i, err)
			}
			row[len(bands)+k] = v
		}
		pixels, err := reduce.Sample(r.Grid(), f.Geometry, scale)
		if err != nil {
			return nil, fmt.Errorf("%s: feature %d: %w", op, i, err)
		}
		for _, p := range pixels {
			if !fillRow(row, bands, p) {
				continue
			}
			if err := set.Add(row...); err != nil {
				return nil, fmt.Errorf("%s: feature %d: %w", op, i, err)
			}
		}
	}

	return set, nil
}

// SamplePixels draws up to n rows of band values from the pixels of r inside
// fp (nil for the whole grid) at scale. Pixels are chosen without replacement
// by a generator seeded with seed, then kept in sampling order.
func SamplePixels(r *raster.Raster, fp orb.Geometry, scale float64, n int, seed int64) (*SampleSet, error) {
	const op = "sample"
	if r == nil || n < 0 {
		return nil, fmt.Errorf("%s: %w", op, raster.ErrInvalidArgument)
	}
	bands, err := scalarBands(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	pixels, err := reduce.Sample(r.Grid(), fp, scale)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	set, err := NewSampleSet(r.BandNames()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	row := make([]float64, len(bands))
	valid := pixels[:0:0]
	for _, p := range pixels {
		if fillRow(row, bands, p) {
			valid = append(valid, p)
		}
	}
	if n < len(valid) {
		rnd := rand.New(rand.NewSource(seed))
		pick := rnd.Perm(len(valid))[:n]
		chosen := make([]bool, len(valid))
		for _, k := range pick {
			chosen[k] = true
		}
		kept := valid[:0:0]
		for k, p := range valid {
			if chosen[k] {
				kept = append(kept, p)
			}
		}
		valid = kept
	}
	for _, p := range valid {
		fillRow(row, bands, p)
		if err := set.Add(row...); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return set, nil
}

func scalarBands(r *raster.Raster) ([]*raster.Band, error) {
	bands := r.Bands()
	for _, b := range bands {
		if !b.Scalar() {
			return nil, fmt.Errorf("band %q has shape %s: %w", b.Name, b.Shape, raster.ErrShapeMismatch)
		}
	}

	return bands, nil
}

// fillRow writes the band values at p into the head of row and reports
// whether all of them are defined.
func fillRow(row []float64, bands []*raster.Band, p int) bool {
	for k, b := range bands {
		if !b.Defined(p) {
			return false
		}
		row[k] = b.Data[p]
	}

	return true
}

func numericProperty(props geojson.Properties, name string) (float64, error) {
	switch v := props[name].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case nil:
		return 0, fmt.Errorf("property %q missing: %w", name, raster.ErrBandNotFound)
	default:
		return 0, fmt.Errorf("property %q is %T: %w", name, v, raster.ErrInvalidArgument)
	}
}
