// Package models builds the triangle meshes that flow through the wirecut
// pipeline: polygons, triangulation, extrusion, primitives and scenes.
package models

import (
	"fmt"

	"github.com/taigrr/wirecut/pkg/math3d"
)

// TriangleMesh is an ordered, growable collection of triangles.
// Order is insertion order until something (a depth sort) reorders it.
type TriangleMesh struct {
	Triangles []Triangle

	// limit caps the number of triangles; zero means unbounded.
	limit int
}

// NewTriangleMesh creates an empty mesh with room for capacity triangles.
func NewTriangleMesh(capacity int) *TriangleMesh {
	return &TriangleMesh{
		Triangles: make([]Triangle, 0, max(capacity, 0)),
	}
}

// NewTriangleMeshLimit creates an empty mesh that refuses to hold more than
// limit triangles. Appends past the limit fail with ErrMeshFull.
func NewTriangleMeshLimit(limit int) *TriangleMesh {
	m := NewTriangleMesh(limit)
	m.limit = limit
	return m
}

// Len returns the number of triangles.
func (m *TriangleMesh) Len() int {
	return len(m.Triangles)
}

// Append adds triangles to the end of the mesh.
func (m *TriangleMesh) Append(tris ...Triangle) error {
	if m.limit > 0 && len(m.Triangles)+len(tris) > m.limit {
		return fmt.Errorf("append %d triangles to %d/%d: %w", len(tris), len(m.Triangles), m.limit, ErrMeshFull)
	}
	m.Triangles = append(m.Triangles, tris...)
	return nil
}

// Merge appends all of other's triangles after m's, preserving both orders.
func (m *TriangleMesh) Merge(other *TriangleMesh) error {
	if other == nil {
		return nil
	}
	return m.Append(other.Triangles...)
}

// Clone creates a deep copy of the mesh. The copy has no limit.
func (m *TriangleMesh) Clone() *TriangleMesh {
	clone := &TriangleMesh{
		Triangles: make([]Triangle, len(m.Triangles)),
	}
	copy(clone.Triangles, m.Triangles)
	return clone
}

// Filter returns a new mesh holding the triangles for which keep returns
// true, in their original relative order.
func (m *TriangleMesh) Filter(keep func(Triangle) bool) *TriangleMesh {
	res := NewTriangleMesh(len(m.Triangles))
	for _, t := range m.Triangles {
		if keep(t) {
			res.Triangles = append(res.Triangles, t)
		}
	}
	return res
}

// Flip reverses the winding of every triangle.
func (m *TriangleMesh) Flip() {
	for i := range m.Triangles {
		m.Triangles[i].Flip()
	}
}

// Transform applies a homogeneous matrix to every vertex, in place.
// A matrix that mirrors space also flips the winding so normals stay outward.
func (m *TriangleMesh) Transform(mat math3d.Mat4) {
	for i := range m.Triangles {
		m.Triangles[i].Transform(mat)
	}
	if mat.ReversesOrientation() {
		m.Flip()
	}
}

// Rotate rotates the mesh by the Euler angles (X, then Y, then Z).
func (m *TriangleMesh) Rotate(angles math3d.Vec3) {
	m.Transform(math3d.EulerRotation(angles))
}

// Translate moves the mesh by offset.
func (m *TriangleMesh) Translate(offset math3d.Vec3) {
	m.Transform(math3d.Translate(offset))
}

// Reflect mirrors the mesh across the plane through the origin with the given
// normal. Because reflection reverses orientation, every triangle is flipped.
func (m *TriangleMesh) Reflect(normal math3d.Vec3) {
	m.Transform(math3d.Reflection(normal))
}

// Bounds returns the axis-aligned bounding box of all vertices.
// An empty mesh returns zero vectors.
func (m *TriangleMesh) Bounds() (lo, hi math3d.Vec3) {
	if len(m.Triangles) == 0 {
		return math3d.Zero3(), math3d.Zero3()
	}
	lo, hi = m.Triangles[0].A, m.Triangles[0].A
	for _, t := range m.Triangles {
		for _, v := range t.Vertices() {
			lo = lo.Min(v)
			hi = hi.Max(v)
		}
	}
	return lo, hi
}

// Center returns the center of the bounding box.
func (m *TriangleMesh) Center() math3d.Vec3 {
	lo, hi := m.Bounds()
	return lo.Add(hi).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *TriangleMesh) Size() math3d.Vec3 {
	lo, hi := m.Bounds()
	return hi.Sub(lo)
}

// VisibleEdgeCount returns how many edges are flagged visible.
func (m *TriangleMesh) VisibleEdgeCount() int {
	n := 0
	for _, t := range m.Triangles {
		for _, v := range t.Visible {
			if v {
				n++
			}
		}
	}
	return n
}
