package render

import (
	"github.com/taigrr/wirecut/pkg/models"
)

// FacingCamera reports whether a camera-space triangle faces the eye at the
// origin: the vector from its centroid to the eye has a non-negative
// component along the outward normal. Edge-on triangles count as facing.
func FacingCamera(t models.Triangle) bool {
	toEye := t.Centroid().Negate()
	return toEye.Dot(t.Normal()) >= 0
}

// BackfaceCull returns a new mesh holding the camera-space triangles of m
// that face the camera, in their original order.
func BackfaceCull(m *models.TriangleMesh) *models.TriangleMesh {
	return m.Filter(FacingCamera)
}

// FrustumCull returns a new mesh without the camera-space triangles of m
// that lie wholly outside one bound of cam's frustum, in their original
// order.
func FrustumCull(m *models.TriangleMesh, cam *Camera) *models.TriangleMesh {
	fr := NewFrustum(cam)
	return m.Filter(func(t models.Triangle) bool {
		return !fr.ExcludesTriangle(t)
	})
}
