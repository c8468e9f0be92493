package render

import (
	"math"
	"testing"

	"github.com/taigrr/wirecut/pkg/math3d"
)

func TestBarycentric(t *testing.T) {
	// Test barycentric coordinates at triangle vertices
	tests := []struct {
		name     string
		px, py   float64
		expected math3d.Vec3
	}{
		{"vertex 0", 0, 0, math3d.V3(1, 0, 0)},
		{"vertex 1", 1, 0, math3d.V3(0, 1, 0)},
		{"vertex 2", 0, 1, math3d.V3(0, 0, 1)},
		{"centroid", 1.0 / 3, 1.0 / 3, math3d.V3(1.0/3, 1.0/3, 1.0/3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Triangle: (0,0), (1,0), (0,1)
			bc := barycentric(0, 0, 1, 0, 0, 1, tc.px, tc.py)

			if math.Abs(bc.X-tc.expected.X) > 0.001 ||
				math.Abs(bc.Y-tc.expected.Y) > 0.001 ||
				math.Abs(bc.Z-tc.expected.Z) > 0.001 {
				t.Errorf("barycentric(%v, %v) = %v, want %v", tc.px, tc.py, bc, tc.expected)
			}
		})
	}

	// Test point outside triangle
	t.Run("outside triangle", func(t *testing.T) {
		bc := barycentric(0, 0, 1, 0, 0, 1, -1, -1)
		if bc.X >= 0 && bc.Y >= 0 && bc.Z >= 0 {
			t.Error("point outside triangle should have negative barycentric coordinate")
		}
	})
}

func TestMin3Max3(t *testing.T) {
	if min3(1, 2, 3) != 1 || min3(3, 1, 2) != 1 || min3(2, 3, 1) != 1 {
		t.Error("min3 failed")
	}
	if max3(1, 2, 3) != 3 || max3(3, 1, 2) != 3 || max3(2, 3, 1) != 3 {
		t.Error("max3 failed")
	}
}

func TestClipSegment(t *testing.T) {
	tests := []struct {
		name   string
		a, b   math3d.Vec2
		ok     bool
		t0, t1 float64
	}{
		{"inside", math3d.V2(10, 10), math3d.V2(20, 20), true, 0, 1},
		{"crosses left", math3d.V2(-11, 5), math3d.V2(9, 5), true, 0.5, 1},
		{"crosses right", math3d.V2(50, 5), math3d.V2(150, 5), true, 0, 0.5},
		{"outside", math3d.V2(-50, -50), math3d.V2(-20, -40), false, 0, 0},
		{"huge", math3d.V2(-1e9, 10), math3d.V2(1e9, 10), true, 0.5 - 1/2e9, 0.5 + 100/2e9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t0, t1, ok := clipSegment(tc.a, tc.b, 100, 100)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			if math.Abs(t0-tc.t0) > 1e-9 || math.Abs(t1-tc.t1) > 1e-9 {
				t.Errorf("range = [%v, %v], want [%v, %v]", t0, t1, tc.t0, tc.t1)
			}
		})
	}
}

// occlusionScene is a 100×100 raster at one pixel per unit. A near
// triangle at depth 50 covers the middle of a long horizontal edge.
func occlusionScene(edgeZ float64) (*ProjectedMesh, *Camera) {
	cam := NewCamera(100, 100, 50)
	pm := &ProjectedMesh{
		Triangles: []ProjectedTriangle{
			{
				V:       [3]math3d.Vec2{math3d.V2(-20, -20), math3d.V2(20, -20), math3d.V2(0, 30)},
				Z:       [3]float64{50, 50, 50},
				MinZ:    50,
				Visible: [3]bool{true, true, true},
			},
			{
				V:       [3]math3d.Vec2{math3d.V2(-45, 0), math3d.V2(45, 0), math3d.V2(0, -40)},
				Z:       [3]float64{edgeZ, edgeZ, edgeZ},
				MinZ:    edgeZ,
				Visible: [3]bool{true, false, false},
			},
		},
		Edges: []ProjectedEdge{{
			From:     math3d.V2(-45, 0),
			To:       math3d.V2(45, 0),
			FromZ:    edgeZ,
			ToZ:      edgeZ,
			Visible:  true,
			Triangle: 1,
		}},
	}
	if edgeZ < 50 {
		pm.Triangles[0], pm.Triangles[1] = pm.Triangles[1], pm.Triangles[0]
		pm.Edges[0].Triangle = 0
	}
	return pm, cam
}

func TestLinePainterHiddenLine(t *testing.T) {
	bg := ColorBlack
	lp := NewLinePainter()

	tests := []struct {
		name       string
		edgeZ      float64
		hiddenLine bool
		centre     bool
	}{
		{"behind, plain", 100, false, true},
		{"behind, hidden line", 100, true, false},
		{"in front, hidden line", 20, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pm, cam := occlusionScene(tc.edgeZ)
			fb := NewFramebuffer(100, 100)
			fb.Clear(bg)
			lp.Paint(fb, pm, cam, tc.hiddenLine)

			// Pixel row 50 is the edge; x 39..61 lies under the triangle.
			if got := fb.GetPixel(50, 50) == lp.Visible; got != tc.centre {
				t.Errorf("centre pixel drawn = %v, want %v", got, tc.centre)
			}
			for _, x := range []int{10, 30, 70, 90} {
				if fb.GetPixel(x, 50) != lp.Visible {
					t.Errorf("uncovered pixel (%d, 50) not drawn", x)
				}
			}
		})
	}
}

func TestLinePainterDiagonals(t *testing.T) {
	cam := NewCamera(100, 100, 50)
	pm := &ProjectedMesh{
		Triangles: []ProjectedTriangle{{MinZ: 60, Z: [3]float64{60, 60, 60}}},
		Edges: []ProjectedEdge{
			{From: math3d.V2(-10, 10), To: math3d.V2(10, 10), FromZ: 60, ToZ: 60, Visible: true},
			{From: math3d.V2(-10, -10), To: math3d.V2(10, -10), FromZ: 60, ToZ: 60, Visible: false},
			{From: math3d.V2(-10, 20), To: math3d.V2(10, 20), FromZ: -1, ToZ: 60, Visible: true},
		},
	}

	lp := NewLinePainter()
	fb := NewFramebuffer(100, 100)
	lp.Paint(fb, pm, cam, false)
	if fb.GetPixel(50, 40) != lp.Visible {
		t.Error("visible edge not drawn")
	}
	if fb.GetPixel(50, 60) != lp.Hidden {
		t.Error("diagonal should be drawn in the hidden colour")
	}
	if fb.GetPixel(50, 30) != (Color{}) {
		t.Error("edge reaching behind the eye should be skipped")
	}

	lp.Hidden = Color{}
	fb = NewFramebuffer(100, 100)
	lp.Paint(fb, pm, cam, false)
	if fb.GetPixel(50, 60) != (Color{}) {
		t.Error("diagonal drawn with a transparent hidden colour")
	}
}

func BenchmarkPaint(b *testing.B) {
	scene := bigScene(b)
	cam := NewCamera(160, 90, 80)
	pm, err := Project(scene, cam, Config{BackfaceCull: true, FrustumCull: true})
	if err != nil {
		b.Fatal(err)
	}
	lp := NewLinePainter()
	fb := NewFramebuffer(160, 90)

	for _, hl := range []bool{false, true} {
		name := "plain"
		if hl {
			name = "hidden-line"
		}
		b.Run(name, func(b *testing.B) {
			for b.Loop() {
				fb.Clear(ColorBlack)
				lp.Paint(fb, pm, cam, hl)
			}
		})
	}
}
