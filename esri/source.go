package esri

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/katalvlaran/lvraster/raster"
)

// Source serves an ASCII grid file. Each Load re-reads the file; evaluators
// memoize by ID.
type Source struct {
	path string
	band string
}

// NewSource returns a Source for path whose band is named band.
func NewSource(path, band string) *Source {
	return &Source{path: path, band: band}
}

// ID implements raster.Source.
func (s *Source) ID() string { return "esri:" + s.path + "#" + s.band }

// Load implements raster.Source.
func (s *Source) Load() (*raster.Raster, error) { return Read(s.path, s.band) }

// Read parses the grid at path, gunzipping it when the name ends in ".gz".
func Read(path, band string) (*raster.Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("esri: %w", err)
	}
	defer f.Close()

	var rd io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("esri: %s: %w", path, err)
		}
		defer gz.Close()
		rd = gz
	}
	r, err := Parse(rd, band)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return r, nil
}
