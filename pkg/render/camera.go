package render

import (
	"github.com/taigrr/wirecut/pkg/math3d"
)

// MinFocalLength is the smallest focal length a camera accepts. Smaller
// values, including zero and negatives, are clamped to it.
const MinFocalLength = 0.001

// Camera is a pinhole camera fixed at the origin of camera space, looking
// down +Z with +X to the right and +Y up. Moving the view moves the world:
// Transform maps scene coordinates into camera space and accumulates every
// rotation, translation and orbit applied this session.
type Camera struct {
	// Perspective scale: a point at depth z projects to (x, y)·FocalLength/z.
	FocalLength float64

	// Logical viewport extent, centred on the view axis.
	Width  float64
	Height float64

	Transform math3d.Mat4
}

// CameraDelta is one frame's worth of view change.
type CameraDelta struct {
	// Rotation holds Euler angles in radians (X, then Y, then Z).
	Rotation math3d.Vec3

	// Translation moves the world relative to the camera.
	Translation math3d.Vec3

	// Orbit pivots the rotation on the point (0, 0, OrbitRadius) in camera
	// space instead of on the eye.
	Orbit       bool
	OrbitRadius float64

	FocalDelta float64
}

// IsZero reports whether applying d would leave a camera unchanged.
func (d CameraDelta) IsZero() bool {
	return d.Rotation == math3d.Zero3() && d.Translation == math3d.Zero3() && d.FocalDelta == 0
}

// NewCamera creates a camera with an identity transform.
func NewCamera(width, height, focal float64) *Camera {
	c := &Camera{
		Width:     width,
		Height:    height,
		Transform: math3d.Identity(),
	}
	c.SetFocalLength(focal)
	return c
}

// SetFocalLength sets the focal length, clamping it to MinFocalLength.
func (c *Camera) SetFocalLength(f float64) {
	if !(f >= MinFocalLength) {
		f = MinFocalLength
	}
	c.FocalLength = f
}

// SetViewport sets the logical viewport size.
func (c *Camera) SetViewport(width, height float64) {
	c.Width = width
	c.Height = height
}

// Apply folds a delta into the camera. The new transform is
// T(d)·R(d)·M, or T(pivot)·R(d)·T(−pivot)·T(d)·M in orbit mode.
func (c *Camera) Apply(d CameraDelta) {
	c.SetFocalLength(c.FocalLength + d.FocalDelta)

	rot := math3d.EulerRotation(d.Rotation)
	step := math3d.Translate(d.Translation)
	if d.Orbit {
		pivot := math3d.V3(0, 0, d.OrbitRadius)
		c.Transform = math3d.Translate(pivot).
			Mul(rot).
			Mul(math3d.Translate(pivot.Negate())).
			Mul(step).
			Mul(c.Transform)
		return
	}
	c.Transform = step.Mul(rot).Mul(c.Transform)
}

// Reset restores the identity transform, keeping focal length and viewport.
func (c *Camera) Reset() {
	c.Transform = math3d.Identity()
}

// ToPixel maps a projected point in logical units to pixel coordinates of a
// w×h raster. The view axis lands on the raster centre and Y is flipped so
// pixel rows grow downward.
func (c *Camera) ToPixel(p math3d.Vec2, w, h int) math3d.Vec2 {
	sx, sy := 1.0, 1.0
	if c.Width > 0 {
		sx = float64(w) / c.Width
	}
	if c.Height > 0 {
		sy = float64(h) / c.Height
	}
	return math3d.V2(
		float64(w)/2+p.X*sx,
		float64(h)/2-p.Y*sy,
	)
}
