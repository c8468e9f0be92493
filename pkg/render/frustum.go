package render

import (
	"github.com/taigrr/wirecut/pkg/math3d"
	"github.com/taigrr/wirecut/pkg/models"
)

// Plane represents a plane in 3D space using the equation: Ax + By + Cz + D = 0
// where (A, B, C) is the normal and D is the distance from origin.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize normalizes the plane equation so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1.0 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = in front (same side as normal), negative = behind.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum holds the five bounds of a camera's view in camera space.
// Each plane's normal points inward. There is no far plane.
type Frustum struct {
	Planes [5]Plane
}

// FrustumPlane indices for clarity.
const (
	FrustumNear = iota
	FrustumLeft
	FrustumRight
	FrustumBottom
	FrustumTop
)

// NewFrustum builds the frustum of cam. The near plane is z = FocalLength.
// The side planes pass through the eye and the viewport edges at depth
// FocalLength, so a point with z > 0 is inside the left plane exactly when
// x·f/z ≥ −W/2, and likewise for the others.
func NewFrustum(cam *Camera) Frustum {
	f := cam.FocalLength
	hw, hh := cam.Width/2, cam.Height/2

	var fr Frustum
	fr.Planes[FrustumNear] = Plane{Normal: math3d.V3(0, 0, 1), D: -f}
	fr.Planes[FrustumLeft] = Plane{Normal: math3d.V3(f, 0, hw)}
	fr.Planes[FrustumRight] = Plane{Normal: math3d.V3(-f, 0, hw)}
	fr.Planes[FrustumBottom] = Plane{Normal: math3d.V3(0, f, hh)}
	fr.Planes[FrustumTop] = Plane{Normal: math3d.V3(0, -f, hh)}

	for i := range fr.Planes {
		fr.Planes[i].Normalize()
	}
	return fr
}

// fails reports whether p lies outside plane i. Points at or behind the eye
// (z ≤ 0) have no projected position and never fail a side plane.
func (fr Frustum) fails(i int, p math3d.Vec3) bool {
	if i != FrustumNear && p.Z <= 0 {
		return false
	}
	return fr.Planes[i].DistanceToPoint(p) < 0
}

// ContainsPoint tests if a point is inside the frustum.
func (fr Frustum) ContainsPoint(p math3d.Vec3) bool {
	for i := range fr.Planes {
		if fr.fails(i, p) {
			return false
		}
	}
	return true
}

// ExcludesTriangle reports whether all three vertices of t fail the same
// plane. Triangles that straddle bounds are kept whole; nothing is clipped.
func (fr Frustum) ExcludesTriangle(t models.Triangle) bool {
	for i := range fr.Planes {
		if fr.fails(i, t.A) && fr.fails(i, t.B) && fr.fails(i, t.C) {
			return true
		}
	}
	return false
}
