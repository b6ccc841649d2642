// Package reduce aggregates raster pixels into global statistics.
//
// A region reduction rasterizes a footprint (any area orb.Geometry, a point
// set, or nil for the whole grid) at a caller-chosen sampling scale and folds
// the sampled pixels of every band with a Reducer:
//
//	mean, median, sum, min, max, count    per band (or per array element)
//	splitWeights(mean|sum)                last band weights the others
//	centeredCovariance                    band×band Σ c·cᵀ / N
//	covariance                            same, after subtracting the mean
//
// Undefined pixels are left out of both numerator and denominator. A
// footprint with no valid samples fails with raster.ErrUndefinedReduction,
// except for count which reports zero.
//
// Composite applies the same reducers per pixel across a stack of rasters.
package reduce
