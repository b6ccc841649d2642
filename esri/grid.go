package esri

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvraster/raster"
)

// DefaultBand names the band of a parsed grid when the caller gives none.
const DefaultBand = "elevation"

// MaxCells bounds ncols×nrows; larger headers fail with ErrHeader before any
// data is read.
const MaxCells = 1 << 28

// preallocCells caps the buffer reserved up front from header sizes.
const preallocCells = 1 << 20

// Header is the metadata block of an ASCII grid.
type Header struct {
	Cols, Rows int
	// XLL, YLL locate the lower-left corner of the grid, or the center of
	// the lower-left cell when Center is set.
	XLL, YLL float64
	Center   bool
	CellSize float64
	// NoData marks missing cells; nil when the file declares none.
	NoData *float64
}

// Grid converts the header to an upper-left anchored raster.Grid.
func (h Header) Grid() raster.Grid {
	x, y := h.XLL, h.YLL
	if h.Center {
		x -= h.CellSize / 2
		y -= h.CellSize / 2
	}

	return raster.Grid{
		Width:    h.Cols,
		Height:   h.Rows,
		OriginX:  x,
		OriginY:  y + float64(h.Rows)*h.CellSize,
		CellSize: h.CellSize,
	}
}

var headerKeys = []string{"NCOLS", "NROWS", "XLLCORNER", "XLLCENTER", "YLLCORNER", "YLLCENTER", "CELLSIZE", "NODATA_VALUE"}

func isHeaderKey(s string) bool {
	for _, k := range headerKeys {
		if k == s {
			return true
		}
	}

	return false
}

// Parse reads an ASCII grid into a raster with one band named band
// (DefaultBand when empty). Cells equal to NODATA_value or written as NaN
// are undefined.
func Parse(rd io.Reader, band string) (*raster.Raster, error) {
	if band == "" {
		band = DefaultBand
	}
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		h      Header
		seen   = make(map[string]bool)
		data   []float64
		mask   []bool
		masked bool
		line   int
	)
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		key := strings.ToUpper(fields[0])
		if data == nil && isHeaderKey(key) {
			if seen[key] {
				return nil, fmt.Errorf("line %d: duplicate %s: %w", line, key, ErrHeader)
			}
			seen[key] = true
			if err := parseHeaderLine(&h, key, fields); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			continue
		}
		if data == nil {
			if err := checkHeader(h, seen); err != nil {
				return nil, err
			}
			hint := min(h.Cols*h.Rows, preallocCells)
			data = make([]float64, 0, hint)
			mask = make([]bool, 0, hint)
		}
		for _, f := range fields {
			if len(data) == h.Cols*h.Rows {
				return nil, fmt.Errorf("line %d: more than %d values: %w", line, h.Cols*h.Rows, ErrData)
			}
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %q: %w", line, f, ErrData)
			}
			ok := !math.IsNaN(v) && (h.NoData == nil || v != *h.NoData)
			if !ok {
				masked = true
				v = 0
			}
			data = append(data, v)
			mask = append(mask, ok)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("esri: read: %w", err)
	}
	if data == nil {
		if err := checkHeader(h, seen); err != nil {
			return nil, err
		}
	}
	if len(data) != h.Cols*h.Rows {
		return nil, fmt.Errorf("%d values for a %dx%d grid: %w", len(data), h.Cols, h.Rows, ErrData)
	}
	if !masked {
		mask = nil
	}

	return raster.New(h.Grid(), &raster.Band{Name: band, Data: data, Mask: mask})
}

func parseHeaderLine(h *Header, key string, fields []string) error {
	if len(fields) != 2 {
		return fmt.Errorf("%s wants one value, got %d: %w", key, len(fields)-1, ErrHeader)
	}
	v := fields[1]
	switch key {
	case "NCOLS", "NROWS":
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s %q: %w", key, v, ErrHeader)
		}
		if key == "NCOLS" {
			h.Cols = n
		} else {
			h.Rows = n
		}
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s %q: %w", key, v, ErrHeader)
	}
	switch key {
	case "XLLCORNER", "XLLCENTER":
		h.XLL = f
		h.Center = key == "XLLCENTER"
	case "YLLCORNER", "YLLCENTER":
		h.YLL = f
	case "CELLSIZE":
		if !(f > 0) || math.IsInf(f, 0) {
			return fmt.Errorf("CELLSIZE %g: %w", f, ErrHeader)
		}
		h.CellSize = f
	case "NODATA_VALUE":
		h.NoData = &f
	}

	return nil
}

// checkHeader requires every mandatory keyword and one anchor style.
func checkHeader(h Header, seen map[string]bool) error {
	for _, k := range []string{"NCOLS", "NROWS", "CELLSIZE"} {
		if !seen[k] {
			return fmt.Errorf("missing %s: %w", k, ErrHeader)
		}
	}
	corner := seen["XLLCORNER"] && seen["YLLCORNER"]
	center := seen["XLLCENTER"] && seen["YLLCENTER"]
	mixed := (seen["XLLCORNER"] || seen["YLLCORNER"]) && (seen["XLLCENTER"] || seen["YLLCENTER"])
	if corner == center || mixed {
		return fmt.Errorf("want xllcorner/yllcorner or xllcenter/yllcenter: %w", ErrHeader)
	}
	if h.Cols > MaxCells/h.Rows {
		return fmt.Errorf("%dx%d grid exceeds %d cells: %w", h.Cols, h.Rows, MaxCells, ErrHeader)
	}

	return nil
}

// Write renders the scalar band of r named band (the only band when empty)
// as an ASCII grid. Undefined cells are written as noData.
func Write(w io.Writer, r *raster.Raster, band string, noData float64) error {
	var b *raster.Band
	switch {
	case band != "":
		var err error
		if b, err = r.Band(band); err != nil {
			return fmt.Errorf("esri: write: %w", err)
		}
	case r.Len() == 1:
		b = r.BandAt(0)
	default:
		return fmt.Errorf("esri: write: %d bands and none named: %w", r.Len(), raster.ErrInvalidArgument)
	}
	if !b.Scalar() {
		return fmt.Errorf("esri: write: band %q has shape %s: %w", b.Name, b.Shape, raster.ErrShapeMismatch)
	}
	g := r.Grid()
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "ncols        %d\n", g.Width)
	fmt.Fprintf(bw, "nrows        %d\n", g.Height)
	fmt.Fprintf(bw, "xllcorner    %s\n", formatFloat(g.OriginX))
	fmt.Fprintf(bw, "yllcorner    %s\n", formatFloat(g.OriginY-float64(g.Height)*g.CellSize))
	fmt.Fprintf(bw, "cellsize     %s\n", formatFloat(g.CellSize))
	fmt.Fprintf(bw, "NODATA_value %s\n", formatFloat(noData))
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if col > 0 {
				bw.WriteByte(' ')
			}
			v := noData
			if p := g.Index(col, row); b.Defined(p) {
				v = b.Data[p]
			}
			bw.WriteString(formatFloat(v))
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
