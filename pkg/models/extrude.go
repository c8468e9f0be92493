package models

import (
	"fmt"

	"github.com/taigrr/wirecut/pkg/math3d"
)

// Extrude builds a closed prism from a polygon profile lying in the Z=0
// plane: a top cap at Z=height, a bottom cap at Z=0 and two side triangles
// per polygon edge. Triangles are ordered top cap, bottom cap, sides, giving
// 2(N-2)+2N triangles for an N-gon.
//
// Only true boundary edges are visible: cap outlines, the vertical edges at
// each profile vertex and the top and bottom of each side wall. The diagonal
// splitting each side quad stays hidden.
func Extrude(p *Polygon, height float64) (*TriangleMesh, error) {
	top, err := p.Triangulate()
	if err != nil {
		return nil, fmt.Errorf("extrude top cap: %w", err)
	}
	top.Translate(math3d.V3(0, 0, height))

	bottom, err := p.Triangulate()
	if err != nil {
		return nil, fmt.Errorf("extrude bottom cap: %w", err)
	}
	bottom.Flip()

	res := NewTriangleMesh(2*(p.Size()-2) + 2*p.Size())
	if err := res.Merge(top); err != nil {
		return nil, err
	}
	if err := res.Merge(bottom); err != nil {
		return nil, err
	}
	if err := res.Merge(sideWalls(p, height)); err != nil {
		return nil, err
	}
	return res, nil
}

// sideWalls emits two triangles per polygon edge. The ring is walked so the
// wall normals point away from the interior whatever the ring orientation.
func sideWalls(p *Polygon, height float64) *TriangleMesh {
	step := func(i int) int { return p.vertices[i].Next }
	if p.SignedArea() < 0 {
		step = func(i int) int { return p.vertices[i].Prev }
	}

	sides := NewTriangleMesh(2 * p.Size())
	cur := p.head
	for range p.vertices {
		nxt := step(cur)
		c0 := p.point(cur).Vec3(0)
		ch := p.point(cur).Vec3(height)
		n0 := p.point(nxt).Vec3(0)
		nh := p.point(nxt).Vec3(height)

		sides.Triangles = append(sides.Triangles,
			Triangle{A: n0, B: c0, C: ch, Visible: [3]bool{true, true, false}},
			Triangle{A: n0, B: ch, C: nh, Visible: [3]bool{false, true, true}},
		)
		cur = nxt
	}
	return sides
}
