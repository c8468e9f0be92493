package models

import (
	"math"
	"testing"

	"github.com/taigrr/wirecut/pkg/math3d"
)

func TestCube(t *testing.T) {
	cube := Cube(10)
	if cube.Len() != 12 {
		t.Fatalf("cube has %d triangles, want 12", cube.Len())
	}

	center := math3d.V3(5, 5, 5)
	for i, tri := range cube.Triangles {
		out := tri.Centroid().Sub(center)
		if tri.Normal().Dot(out) <= 0 {
			t.Errorf("triangle %d normal %v points inward", i, tri.Normal())
		}
		if tri.Visible != [3]bool{true, true, false} {
			t.Errorf("triangle %d flags = %v", i, tri.Visible)
		}
	}

	if got := volume(cube); math.Abs(got-1000) > 1e-6 {
		t.Errorf("volume = %v, want 1000", got)
	}
	// 12 cube edges, each drawn from both adjacent faces.
	if got := cube.VisibleEdgeCount(); got != 24 {
		t.Errorf("visible edges = %d, want 24", got)
	}
}

func TestExtrude(t *testing.T) {
	tests := []struct {
		name   string
		points []math3d.Vec2
	}{
		{"square", pts(0, 0, 1, 0, 1, 1, 0, 1)},
		{"square reversed", reverse(pts(0, 0, 1, 0, 1, 1, 0, 1))},
		{"l-shape", pts(0, 0, 40, 0, 40, 12, 12, 12, 12, 40, 0, 40)},
		{"dent", pts(0, 0, 4, 0, 4, 4, 2, 1, 0, 4, -1, 2)},
		{"dent reversed", reverse(pts(0, 0, 4, 0, 4, 4, 2, 1, 0, 4, -1, 2))},
	}

	const height = 3
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPolygon(tt.points)
			if err != nil {
				t.Fatal(err)
			}
			mesh, err := Extrude(p, height)
			if err != nil {
				t.Fatalf("Extrude: %v", err)
			}

			n := p.Size()
			if got, want := mesh.Len(), 2*(n-2)+2*n; got != want {
				t.Fatalf("triangle count = %d, want %d", got, want)
			}
			if got, want := volume(mesh), p.Area()*height; math.Abs(got-want) > 1e-6 {
				t.Errorf("volume = %v, want %v", got, want)
			}

			caps := n - 2
			for i, tri := range mesh.Triangles[:caps] {
				if tri.MinZ() != height || tri.Normal().Z <= 0 {
					t.Errorf("top triangle %d misplaced: %v", i, tri)
				}
			}
			for i, tri := range mesh.Triangles[caps : 2*caps] {
				if tri.MinZ() != 0 || tri.Normal().Z >= 0 {
					t.Errorf("bottom triangle %d misplaced: %v", i, tri)
				}
			}
			for i, tri := range mesh.Triangles[2*caps:] {
				if math.Abs(tri.Normal().Z) > eps {
					t.Errorf("side triangle %d is not vertical: %v", i, tri.Normal())
				}
			}

			// Caps: n outline edges each. Sides: per edge the bottom, the
			// top and both verticals.
			if got, want := mesh.VisibleEdgeCount(), 2*n+4*n; got != want {
				t.Errorf("visible edges = %d, want %d", got, want)
			}
		})
	}
}

func TestExtrudeRegularPolygonNormals(t *testing.T) {
	hex, err := RegularPolygon(10, 6)
	if err != nil {
		t.Fatal(err)
	}
	mesh, err := Extrude(hex, 4)
	if err != nil {
		t.Fatal(err)
	}

	center := mesh.Center()
	for i, tri := range mesh.Triangles {
		if tri.Normal().Dot(tri.Centroid().Sub(center)) <= 0 {
			t.Errorf("triangle %d normal points inward", i)
		}
	}
}

func TestStarPolygon(t *testing.T) {
	star, err := StarPolygon(10, 4, 5)
	if err != nil {
		t.Fatal(err)
	}
	if star.Size() != 10 {
		t.Errorf("star has %d vertices, want 10", star.Size())
	}
	if _, err := StarPolygon(4, 10, 5); err == nil {
		t.Error("inner radius larger than outer should fail")
	}
}

func TestDefaultScene(t *testing.T) {
	scene, err := DefaultScene()
	if err != nil {
		t.Fatalf("DefaultScene: %v", err)
	}

	// cube + hexagon prism + L prism + star prism
	want := 12 + (2*4 + 12) + (2*4 + 12) + (2*8 + 20)
	if scene.Len() != want {
		t.Errorf("scene has %d triangles, want %d", scene.Len(), want)
	}

	lo, _ := scene.Mesh.Bounds()
	if lo.Z <= 0 {
		t.Errorf("scene reaches behind the camera: min z = %v", lo.Z)
	}
}
