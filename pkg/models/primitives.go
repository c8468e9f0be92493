package models

import "github.com/taigrr/wirecut/pkg/math3d"

// Cube builds the 12 triangles of an axis-aligned cube spanning [0, size] on
// every axis. Each face is two triangles sharing one hidden diagonal.
func Cube(size float64) *TriangleMesh {
	a := math3d.V3(0, 0, 0)
	b := math3d.V3(size, 0, 0)
	c := math3d.V3(size, size, 0)
	d := math3d.V3(0, size, 0)
	e := math3d.V3(0, 0, size)
	f := math3d.V3(size, 0, size)
	g := math3d.V3(size, size, size)
	h := math3d.V3(0, size, size)

	// Each face as a quad p0 p1 p2 p3, split along p2-p0.
	faces := [6][4]math3d.Vec3{
		{a, b, c, d}, // z = 0
		{b, f, g, c}, // x = size
		{c, g, h, d}, // y = size
		{e, a, d, h}, // x = 0
		{f, e, h, g}, // z = size
		{e, f, b, a}, // y = 0
	}

	mesh := NewTriangleMesh(12)
	for _, q := range faces {
		mesh.Triangles = append(mesh.Triangles,
			Triangle{A: q[0], B: q[1], C: q[2], Visible: [3]bool{true, true, false}},
			Triangle{A: q[2], B: q[3], C: q[0], Visible: [3]bool{true, true, false}},
		)
	}
	return mesh
}

// TriangulatedRegularPolygon builds a flat, triangulated regular n-gon.
func TriangulatedRegularPolygon(radius float64, sides int) (*TriangleMesh, error) {
	p, err := RegularPolygon(radius, sides)
	if err != nil {
		return nil, err
	}
	return p.Triangulate()
}
