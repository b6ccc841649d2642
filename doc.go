// Package lvraster is a lazy raster-algebra engine: build an expression
// graph over multi-band rasters and matrices, then resolve it in one step.
//
// 🚀 What is in the box?
//
//	• Expression graphs: immutable nodes with structural keys, a builder API
//	  and a text parser for band-math expressions
//	• Element-wise algebra: arithmetic, comparisons, casts, masks, where
//	• Arrays & matrices: toArray, slice/project/flatten, multiply, inverse,
//	  Moore-Penrose pseudo-inverse, symmetric eigen-decomposition
//	• Region reducers: mean, median, sum, min, max, count, weighted
//	  (splitWeights) and centered covariance over orb footprints
//	• Classification: sample regions, train CART / minimum distance, classify
//	• Terrain: slope, aspect, hillshade; connected pixel counts
//
// Packages:
//
//	raster/     Grid, Band, Raster, Array, Shape and the error taxonomy
//	matrix/     dense linear algebra kernels (Jacobi eigen, SVD pinv, covariance)
//	algebra/    eager per-pixel kernels
//	reduce/     footprint sampling, reducers, composites
//	classify/   SampleSet, Algorithm/Model, Train, Predict
//	gridgraph/  pixel connectivity over grids
//	terrain/    Horn-gradient slope/aspect and hillshade
//	expr/       lazy expression graph
//	engine/     memoized evaluation, logging, configuration
//	esri/       ESRI ASCII grid source
//
// Quick example:
//
//	img := expr.Source(esri.NewSource("dem.asc", "elevation"))
//	shade := img.Hillshade("elevation", 315, 45)
//	out, err := engine.New().ResolveRaster(shade)
package lvraster
