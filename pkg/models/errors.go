package models

import "errors"

var (
	// ErrDegeneratePolygon is returned for polygons that cannot be
	// triangulated: fewer than three vertices, no vertical extent, zero area.
	ErrDegeneratePolygon = errors.New("degenerate polygon")

	// ErrMeshFull is returned when an append would grow a mesh past its limit.
	ErrMeshFull = errors.New("mesh capacity exceeded")
)
