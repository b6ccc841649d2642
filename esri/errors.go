package esri

import "errors"

var (
	// ErrHeader indicates a missing, duplicated or malformed header line.
	ErrHeader = errors.New("esri: bad header")
	// ErrData indicates a short, long or unparsable data section.
	ErrData = errors.New("esri: bad data")
)
