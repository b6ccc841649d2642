// Package esri reads and writes ESRI ASCII grids, the plain-text raster
// format used for elevation models:
//
//	ncols        4
//	nrows        3
//	xllcorner    500000
//	yllcorner    4100000
//	cellsize     30
//	NODATA_value -9999
//	 12  14  15  15
//	 ...
//
// Header keywords are case-insensitive. xllcenter/yllcenter may replace the
// corner keywords; NODATA_value is optional. Grids parse into a single-band
// raster.Raster whose NODATA cells are masked. A Source serves a file to an
// evaluator, transparently gunzipping ".gz" paths.
package esri
