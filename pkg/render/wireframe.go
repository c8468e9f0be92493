package render

import (
	"math"

	"github.com/taigrr/wirecut/pkg/math3d"
)

// occlusionMargin is how far, in pixels, a sample must sit inside a
// triangle before that triangle may hide it. Edges shared with a neighbour
// stay drawn.
const occlusionMargin = 1.0

// depthBias is the relative depth a triangle must be in front of a sample
// to hide it.
const depthBias = 1e-3

// LinePainter draws a ProjectedMesh into a framebuffer.
type LinePainter struct {
	// Visible is the colour of boundary edges.
	Visible Color

	// Hidden is the colour of synthetic diagonals, which are only present
	// when the mesh was projected with DrawHidden. A zero alpha skips them.
	Hidden Color
}

// NewLinePainter creates a painter with white edges and grey diagonals.
func NewLinePainter() *LinePainter {
	return &LinePainter{
		Visible: ColorWhite,
		Hidden:  ColorGray,
	}
}

// screenTriangle is a projected triangle in pixel space, ready for
// point-in-triangle and depth queries.
type screenTriangle struct {
	p                      [3]math3d.Vec2
	invZ                   [3]float64
	minZ                   float64
	minX, maxX, minY, maxY float64
	// edge holds A, B, C of each edge line, scaled so that A·x+B·y+C is the
	// signed pixel distance, positive inside.
	edge [3][3]float64
	ok   bool
}

// Paint draws every edge of pm in order. With hiddenLine set, a pixel is
// skipped when a nearer projected triangle covers it; otherwise all edges
// are drawn in full. Edges touching a vertex at or behind the eye are
// skipped.
func (lp *LinePainter) Paint(fb *Framebuffer, pm *ProjectedMesh, cam *Camera, hiddenLine bool) {
	var occluders []screenTriangle
	if hiddenLine {
		occluders = toScreen(pm.Triangles, cam, fb.Width, fb.Height)
	}

	for _, e := range pm.Edges {
		if e.FromZ <= 0 || e.ToZ <= 0 {
			continue
		}
		c := lp.Visible
		if !e.Visible {
			if lp.Hidden.A == 0 {
				continue
			}
			c = lp.Hidden
		}

		a := cam.ToPixel(e.From, fb.Width, fb.Height)
		b := cam.ToPixel(e.To, fb.Width, fb.Height)
		t0, t1, ok := clipSegment(a, b, float64(fb.Width), float64(fb.Height))
		if !ok {
			continue
		}
		d := b.Sub(a)
		p0, p1 := a.Add(d.Scale(t0)), a.Add(d.Scale(t1))
		x0, y0 := int(math.Round(p0.X)), int(math.Round(p0.Y))
		x1, y1 := int(math.Round(p1.X)), int(math.Round(p1.Y))

		if !hiddenLine {
			fb.DrawLine(x0, y0, x1, y1, c)
			continue
		}

		lenSq := d.X*d.X + d.Y*d.Y
		bresenham(x0, y0, x1, y1, func(x, y int) {
			px := math3d.V2(float64(x), float64(y))
			t := 0.0
			if lenSq > 0 {
				rel := px.Sub(a)
				t = math.Min(math.Max((rel.X*d.X+rel.Y*d.Y)/lenSq, 0), 1)
			}
			// 1/z is linear in screen space.
			z := 1 / ((1-t)/e.FromZ + t/e.ToZ)
			if !occluded(occluders, e.Triangle, px, z) {
				fb.SetPixel(x, y, c)
			}
		})
	}
}

// toScreen converts projected triangles to pixel space. Triangles touching
// the eye plane cannot occlude anything meaningful and are marked unusable.
func toScreen(tris []ProjectedTriangle, cam *Camera, w, h int) []screenTriangle {
	out := make([]screenTriangle, len(tris))
	for i, t := range tris {
		st := screenTriangle{minZ: t.MinZ}
		if t.Z[0] <= 0 || t.Z[1] <= 0 || t.Z[2] <= 0 {
			out[i] = st
			continue
		}
		for k := range 3 {
			st.p[k] = cam.ToPixel(t.V[k], w, h)
			st.invZ[k] = 1 / t.Z[k]
		}
		st.minX = min3(st.p[0].X, st.p[1].X, st.p[2].X)
		st.maxX = max3(st.p[0].X, st.p[1].X, st.p[2].X)
		st.minY = min3(st.p[0].Y, st.p[1].Y, st.p[2].Y)
		st.maxY = max3(st.p[0].Y, st.p[1].Y, st.p[2].Y)

		area := st.p[1].Sub(st.p[0]).Cross(st.p[2].Sub(st.p[0]))
		if area == 0 {
			out[i] = st
			continue
		}
		// edgeCoeffs has the sign of the signed area; flip for clockwise
		// triangles so inside is always positive.
		orient := 1.0
		if area < 0 {
			orient = -1
		}
		for k := range 3 {
			p, q := st.p[k], st.p[(k+1)%3]
			a, b, c := edgeCoeffs(p.X, p.Y, q.X, q.Y)
			l := math.Hypot(a, b)
			st.edge[k] = [3]float64{orient * a / l, orient * b / l, orient * c / l}
		}
		st.ok = true
		out[i] = st
	}
	return out
}

// occluded reports whether the pixel sample px at depth z lies well inside a
// triangle other than self that is nearer than z. occluders must be sorted
// by ascending minZ.
func occluded(occluders []screenTriangle, self int, px math3d.Vec2, z float64) bool {
	for j := range occluders {
		st := &occluders[j]
		if st.minZ >= z {
			return false
		}
		if j == self || !st.ok {
			continue
		}
		if px.X < st.minX || px.X > st.maxX || px.Y < st.minY || px.Y > st.maxY {
			continue
		}

		inside := true
		for _, e := range st.edge {
			if edgeFunc(e[0], e[1], e[2], px.X, px.Y) < occlusionMargin {
				inside = false
				break
			}
		}
		if !inside {
			continue
		}

		bc := barycentric(st.p[0].X, st.p[0].Y, st.p[1].X, st.p[1].Y, st.p[2].X, st.p[2].Y, px.X, px.Y)
		triZ := 1 / (bc.X*st.invZ[0] + bc.Y*st.invZ[1] + bc.Z*st.invZ[2])
		if triZ < z*(1-depthBias) {
			return true
		}
	}
	return false
}

// clipSegment clips the segment a→b to the raster [−1, w] × [−1, h] with
// the Liang-Barsky method and returns the surviving parameter range.
func clipSegment(a, b math3d.Vec2, w, h float64) (t0, t1 float64, ok bool) {
	t0, t1 = 0, 1
	d := b.Sub(a)
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return false
			}
			t1 = math.Min(t1, r)
		}
		return true
	}
	ok = clip(-d.X, a.X+1) && clip(d.X, w-a.X) &&
		clip(-d.Y, a.Y+1) && clip(d.Y, h-a.Y)
	return t0, t1, ok
}

// edgeCoeffs returns A, B, C for the edge function A*x + B*y + C, which is
// zero on the line through (x0, y0) and (x1, y1).
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1 // dy
	B = x1 - x0 // -dx
	C = x0*y1 - x1*y0
	return
}

// edgeFunc evaluates edge function at point (x, y)
func edgeFunc(A, B, C, x, y float64) float64 {
	return A*x + B*y + C
}

// barycentric calculates barycentric coordinates for point (px, py) in triangle.
func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) math3d.Vec3 {
	v0x, v0y := x2-x0, y2-y0
	v1x, v1y := x1-x0, y1-y0
	v2x, v2y := px-x0, py-y0

	dot00 := v0x*v0x + v0y*v0y
	dot01 := v0x*v1x + v0y*v1y
	dot02 := v0x*v2x + v0y*v2y
	dot11 := v1x*v1x + v1y*v1y
	dot12 := v1x*v2x + v1y*v2y

	invDenom := 1.0 / (dot00*dot11 - dot01*dot01)
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	return math3d.V3(1-u-v, v, u)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
