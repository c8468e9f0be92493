package render

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/wirecut/pkg/math3d"
	"github.com/taigrr/wirecut/pkg/models"
)

// ErrNonFinite is returned when a vertex projects to NaN or infinity, which
// only happens when the camera transform itself has gone bad.
var ErrNonFinite = errors.New("non-finite projected coordinate")

// depthEpsilon is the smallest depth used as a perspective divisor.
const depthEpsilon = 1e-6

// parallelThreshold is the triangle count below which projection stays on
// the calling goroutine whatever Config.Workers says.
const parallelThreshold = 64

// ProjectedEdge is one 2D line segment of the output, in logical units.
type ProjectedEdge struct {
	From, To math3d.Vec2

	// Camera-space depths of the endpoints.
	FromZ, ToZ float64

	// Visible is false for synthetic diagonals.
	Visible bool

	// Triangle indexes the owning triangle in ProjectedMesh.Triangles.
	Triangle int
}

// ProjectedTriangle keeps what occlusion tests need of a projected triangle.
type ProjectedTriangle struct {
	V       [3]math3d.Vec2
	Z       [3]float64
	MinZ    float64
	Visible [3]bool
}

// FrameStats tracks how many triangles survive each pipeline stage.
type FrameStats struct {
	Input         int // triangles in the scene
	AfterBackface int // after back-face culling (equal to Input when disabled)
	AfterFrustum  int // after frustum culling (equal to AfterBackface when disabled)
	Edges         int // edges emitted
}

// ProjectedMesh is the per-frame output: edges in depth order, nearest
// triangle first, plus the projected triangles they belong to.
type ProjectedMesh struct {
	Edges     []ProjectedEdge
	Triangles []ProjectedTriangle
	Stats     FrameStats
}

// ProjectPoint maps a camera-space point onto the image plane:
// (x, y)·FocalLength/z. Depths at or behind the eye are clamped to a tiny
// positive value.
func ProjectPoint(p math3d.Vec3, cam *Camera) math3d.Vec2 {
	z := math.Max(p.Z, depthEpsilon)
	s := cam.FocalLength / z
	return math3d.V2(p.X*s, p.Y*s)
}

// ZSort orders the triangles of m by ascending minimum Z, nearest first.
// The sort is stable: equal depths keep their relative order.
func ZSort(m *models.TriangleMesh) {
	slices.SortStableFunc(m.Triangles, func(a, b models.Triangle) int {
		return cmp.Compare(a.MinZ(), b.MinZ())
	})
}

// Project runs the per-frame pipeline on a copy of scene: transform into
// camera space, optional back-face cull, optional frustum cull, depth sort,
// projection and edge extraction. scene is never modified.
func Project(scene *models.TriangleMesh, cam *Camera, cfg Config) (*ProjectedMesh, error) {
	m := scene.Clone()
	m.Transform(cam.Transform)

	stats := FrameStats{Input: m.Len()}
	if cfg.BackfaceCull {
		m = BackfaceCull(m)
	}
	stats.AfterBackface = m.Len()
	if cfg.FrustumCull {
		m = FrustumCull(m, cam)
	}
	stats.AfterFrustum = m.Len()

	ZSort(m)

	tris, err := projectTriangles(m, cam, cfg.Workers)
	if err != nil {
		return nil, err
	}

	pm := &ProjectedMesh{
		Triangles: tris,
		Edges:     extractEdges(tris, cfg.DrawHidden),
	}
	stats.Edges = len(pm.Edges)
	pm.Stats = stats
	return pm, nil
}

// projectTriangles projects every triangle of m. With more than one worker
// the mesh is split into contiguous chunks; each result is written at its
// own index, so the output order never depends on scheduling.
func projectTriangles(m *models.TriangleMesh, cam *Camera, workers int) ([]ProjectedTriangle, error) {
	n := m.Len()
	out := make([]ProjectedTriangle, n)

	project := func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			pt, err := projectTriangle(m.Triangles[i], cam)
			if err != nil {
				return fmt.Errorf("project triangle %d: %w", i, err)
			}
			out[i] = pt
		}
		return nil
	}

	if workers <= 1 || n < parallelThreshold {
		if err := project(0, n); err != nil {
			return nil, err
		}
		return out, nil
	}

	var g errgroup.Group
	chunk := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			return project(lo, hi)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func projectTriangle(t models.Triangle, cam *Camera) (ProjectedTriangle, error) {
	pt := ProjectedTriangle{
		MinZ:    t.MinZ(),
		Visible: t.Visible,
	}
	for k, v := range t.Vertices() {
		p := ProjectPoint(v, cam)
		if !finite(p.X) || !finite(p.Y) {
			return ProjectedTriangle{}, fmt.Errorf("vertex %v: %w", v, ErrNonFinite)
		}
		pt.V[k] = p
		pt.Z[k] = v.Z
	}
	return pt, nil
}

// extractEdges emits the edges of tris in order. Synthetic diagonals are
// skipped unless all is set.
func extractEdges(tris []ProjectedTriangle, all bool) []ProjectedEdge {
	edges := make([]ProjectedEdge, 0, 3*len(tris))
	for i, t := range tris {
		for e := range 3 {
			if !all && !t.Visible[e] {
				continue
			}
			next := (e + 1) % 3
			edges = append(edges, ProjectedEdge{
				From:     t.V[e],
				To:       t.V[next],
				FromZ:    t.Z[e],
				ToZ:      t.Z[next],
				Visible:  t.Visible[e],
				Triangle: i,
			})
		}
	}
	return edges
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
