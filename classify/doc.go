// Package classify is the supervised-classification contract of the engine.
//
// Training data is a SampleSet: rows of named numeric columns, usually drawn
// from a raster by overlaying labeled geometries (SampleRegions). Train binds
// an Algorithm to the chosen feature columns and label column and returns an
// immutable Trained classifier; Predict applies it to every pixel of a raster
// that carries the same feature bands.
//
// The learning algorithm is a plug-in behind the two-method Algorithm/Model
// pair. CART (gini decision tree) and MinimumDistance ship with the package.
package classify
