package models

import (
	"fmt"

	"github.com/rclancey/earcut"
)

// earClip triangulates any simple ring with earcut. Coordinates are passed
// in arena order, so every returned index is an arena index and the
// triangles go through makeTriangle like the sweep's.
func (p *Polygon) earClip() ([]Triangle, error) {
	n := p.Size()
	coords := make([]float64, 0, 2*n)
	for _, v := range p.vertices {
		coords = append(coords, v.Coord.X, v.Coord.Y)
	}

	indices, err := earcut.Earcut(coords, nil, 2)
	if err != nil {
		return nil, fmt.Errorf("earcut %d vertices: %w: %w", n, ErrDegeneratePolygon, err)
	}
	if len(indices) != 3*(n-2) {
		return nil, fmt.Errorf("earcut returned %d indices for %d vertices: %w", len(indices), n, ErrDegeneratePolygon)
	}

	tris := make([]Triangle, 0, n-2)
	for i := 0; i < len(indices); i += 3 {
		tris = append(tris, p.makeTriangle(indices[i], indices[i+1], indices[i+2]))
	}
	return tris, nil
}
