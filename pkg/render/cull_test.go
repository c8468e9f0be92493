package render

import (
	"testing"

	"github.com/taigrr/wirecut/pkg/math3d"
	"github.com/taigrr/wirecut/pkg/models"
)

func TestFacingCamera(t *testing.T) {
	tests := []struct {
		name   string
		tri    models.Triangle
		facing bool
	}{
		{
			// Normal (C−A)×(B−A) = −Z, towards the eye.
			"towards eye",
			tri(math3d.V3(0, 0, 100), math3d.V3(1, 0, 100), math3d.V3(0, 1, 100)),
			true,
		},
		{
			"away from eye",
			tri(math3d.V3(0, 0, 100), math3d.V3(0, 1, 100), math3d.V3(1, 0, 100)),
			false,
		},
		{
			"edge on",
			tri(math3d.V3(0, 0, 100), math3d.V3(0, 1, 100), math3d.V3(0, 0, 200)),
			true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FacingCamera(tc.tri); got != tc.facing {
				t.Errorf("FacingCamera = %v, want %v", got, tc.facing)
			}
		})
	}
}

func TestBackfaceCullCube(t *testing.T) {
	tests := []struct {
		name   string
		offset math3d.Vec3
		want   int
	}{
		{"head on", math3d.V3(-5, -5, 50), 2},
		{"two faces", math3d.V3(20, -5, 60), 4},
		{"three faces", math3d.V3(20, 15, 60), 6},
		{"three faces opposite", math3d.V3(-30, -25, 60), 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cube := models.Cube(10)
			cube.Translate(tc.offset)

			culled := BackfaceCull(cube)
			if culled.Len() != tc.want {
				t.Fatalf("kept %d triangles, want %d", culled.Len(), tc.want)
			}

			// Survivors keep their relative order.
			j := 0
			for _, tri := range cube.Triangles {
				if j < culled.Len() && tri == culled.Triangles[j] {
					j++
				}
			}
			if j != culled.Len() {
				t.Error("culled mesh is not an ordered subsequence of the input")
			}
		})
	}
}

func TestBackfaceCullFromAnyOutsideView(t *testing.T) {
	for _, angles := range []math3d.Vec3{
		math3d.V3(0.3, 0.2, 0.1),
		math3d.V3(-1.1, 2.5, 0),
		math3d.V3(0.7, -0.4, 3),
	} {
		cube := models.Cube(10)
		cube.Translate(math3d.V3(-5, -5, -5))
		cube.Rotate(angles)
		cube.Translate(math3d.V3(0, 0, 40))

		n := BackfaceCull(cube).Len()
		if n < 1 || n > cube.Len()-1 {
			t.Errorf("angles %v: kept %d of %d triangles", angles, n, cube.Len())
		}
	}
}

func TestFrustumCull(t *testing.T) {
	m := models.NewTriangleMesh(3)
	_ = m.Append(
		tri(math3d.V3(0, 0, 100), math3d.V3(10, 0, 100), math3d.V3(0, 10, 100)),
		tri(math3d.V3(150, 0, 100), math3d.V3(200, 0, 100), math3d.V3(120, 10, 100)),
		tri(math3d.V3(0, 0, 10), math3d.V3(10, 0, 20), math3d.V3(0, 10, 100)),
	)

	culled := FrustumCull(m, testCamera())
	if culled.Len() != 2 {
		t.Fatalf("kept %d triangles, want 2", culled.Len())
	}
	if culled.Triangles[0] != m.Triangles[0] || culled.Triangles[1] != m.Triangles[2] {
		t.Error("FrustumCull should keep survivors in order")
	}
	if m.Len() != 3 {
		t.Error("FrustumCull must not modify its input")
	}
}
