package render

import (
	"math"
	"testing"

	"github.com/taigrr/wirecut/pkg/math3d"
)

const eps = 1e-9

func TestCameraFocalClamp(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		delta float64
		want  float64
	}{
		{"grow", 10, 1, 11},
		{"shrink", 10, -1, 9},
		{"to zero", 1, -1, MinFocalLength},
		{"negative", 2, -5, MinFocalLength},
		{"already minimal", MinFocalLength, -1, MinFocalLength},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cam := NewCamera(100, 100, tc.start)
			cam.Apply(CameraDelta{FocalDelta: tc.delta})
			if math.Abs(cam.FocalLength-tc.want) > eps {
				t.Errorf("focal length = %v, want %v", cam.FocalLength, tc.want)
			}
		})
	}

	if cam := NewCamera(100, 100, -3); cam.FocalLength != MinFocalLength {
		t.Errorf("NewCamera with negative focal = %v", cam.FocalLength)
	}
	if cam := NewCamera(100, 100, math.NaN()); cam.FocalLength != MinFocalLength {
		t.Errorf("NewCamera with NaN focal = %v", cam.FocalLength)
	}
}

func TestCameraApply(t *testing.T) {
	cam := NewCamera(100, 100, 50)
	cam.Apply(CameraDelta{})
	if cam.Transform != math3d.Identity() {
		t.Fatalf("zero delta changed the transform: %v", cam.Transform)
	}

	cam.Apply(CameraDelta{Translation: math3d.V3(0, 0, -1)})
	cam.Apply(CameraDelta{Translation: math3d.V3(2, 0, 0)})
	got := cam.Transform.MulVec3(math3d.V3(0, 0, 100))
	if !got.ApproxEqual(math3d.V3(2, 0, 99), eps) {
		t.Errorf("translated point = %v, want (2, 0, 99)", got)
	}

	// Rotation turns about the eye, after the accumulated translation.
	cam.Reset()
	cam.Apply(CameraDelta{Rotation: math3d.V3(0, math.Pi/2, 0)})
	got = cam.Transform.MulVec3(math3d.V3(0, 0, 10))
	if !got.ApproxEqual(math3d.V3(10, 0, 0), eps) {
		t.Errorf("rotated point = %v, want (10, 0, 0)", got)
	}
}

func TestCameraOrbit(t *testing.T) {
	cam := NewCamera(100, 100, 50)
	cam.Apply(CameraDelta{
		Rotation:    math3d.V3(0, math.Pi, 0),
		Orbit:       true,
		OrbitRadius: 100,
	})

	pivot := cam.Transform.MulVec3(math3d.V3(0, 0, 100))
	if !pivot.ApproxEqual(math3d.V3(0, 0, 100), 1e-9) {
		t.Errorf("pivot moved to %v", pivot)
	}
	near := cam.Transform.MulVec3(math3d.V3(0, 0, 50))
	if !near.ApproxEqual(math3d.V3(0, 0, 150), 1e-9) {
		t.Errorf("point in front of pivot = %v, want (0, 0, 150)", near)
	}
}

func TestCameraDeltaIsZero(t *testing.T) {
	if !(CameraDelta{Orbit: true, OrbitRadius: 10}).IsZero() {
		t.Error("orbit settings alone should not count as a change")
	}
	if (CameraDelta{FocalDelta: 1}).IsZero() {
		t.Error("focal delta is a change")
	}
	if (CameraDelta{Rotation: math3d.V3(0, 0, 0.1)}).IsZero() {
		t.Error("rotation is a change")
	}
}

func TestCameraToPixel(t *testing.T) {
	cam := NewCamera(100, 50, 10)

	tests := []struct {
		name string
		in   math3d.Vec2
		want math3d.Vec2
	}{
		{"centre", math3d.V2(0, 0), math3d.V2(100, 50)},
		{"top right", math3d.V2(50, 25), math3d.V2(200, 0)},
		{"bottom left", math3d.V2(-50, -25), math3d.V2(0, 100)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := cam.ToPixel(tc.in, 200, 100)
			if math.Abs(got.X-tc.want.X) > eps || math.Abs(got.Y-tc.want.Y) > eps {
				t.Errorf("ToPixel(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
