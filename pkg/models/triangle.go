package models

import (
	"math"

	"github.com/taigrr/wirecut/pkg/math3d"
)

// Triangle is a mesh triangle with one visibility flag per edge.
// Visible[0] is edge A→B, Visible[1] is B→C and Visible[2] is C→A. A false
// flag marks a synthetic diagonal that must never be drawn.
//
// Vertices are wound clockwise when seen from outside the solid, so the
// outward normal is (C−A)×(B−A).
type Triangle struct {
	A, B, C math3d.Vec3
	Visible [3]bool
}

// Vertices returns A, B and C as an array.
func (t Triangle) Vertices() [3]math3d.Vec3 {
	return [3]math3d.Vec3{t.A, t.B, t.C}
}

// Edge returns the endpoints of edge i (0: A→B, 1: B→C, 2: C→A).
func (t Triangle) Edge(i int) (from, to math3d.Vec3) {
	v := t.Vertices()
	return v[i], v[(i+1)%3]
}

// Normal returns the (unnormalized) outward normal.
func (t Triangle) Normal() math3d.Vec3 {
	return t.C.Sub(t.A).Cross(t.B.Sub(t.A))
}

// Centroid returns the average of the three vertices.
func (t Triangle) Centroid() math3d.Vec3 {
	return t.A.Add(t.B).Add(t.C).Scale(1.0 / 3)
}

// MinZ returns the smallest Z among the three vertices.
func (t Triangle) MinZ() float64 {
	return math.Min(math.Min(t.A.Z, t.B.Z), t.C.Z)
}

// Area returns the surface area of the triangle.
func (t Triangle) Area() float64 {
	return t.Normal().Len() / 2
}

// Flip reverses the winding by swapping A and B. The flags of edges B→C and
// C→A trade places so every flag stays attached to the same geometric edge.
func (t *Triangle) Flip() {
	t.A, t.B = t.B, t.A
	t.Visible[1], t.Visible[2] = t.Visible[2], t.Visible[1]
}

// Transform applies m to every vertex.
func (t *Triangle) Transform(m math3d.Mat4) {
	t.A = m.MulVec3(t.A)
	t.B = m.MulVec3(t.B)
	t.C = m.MulVec3(t.C)
}
