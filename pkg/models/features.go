package models

import (
	"math"

	"github.com/taigrr/wirecut/pkg/math3d"
)

// edgeKey identifies an undirected edge by its quantized endpoints.
type edgeKey [2][3]int64

// quantum is the grid used to weld vertices that should coincide.
const quantum = 1e-6

func quantize(v math3d.Vec3) [3]int64 {
	return [3]int64{
		int64(math.Round(v.X / quantum)),
		int64(math.Round(v.Y / quantum)),
		int64(math.Round(v.Z / quantum)),
	}
}

func makeEdgeKey(a, b math3d.Vec3) edgeKey {
	qa, qb := quantize(a), quantize(b)
	if qb[0] < qa[0] || (qb[0] == qa[0] && (qb[1] < qa[1] || (qb[1] == qa[1] && qb[2] < qa[2]))) {
		qa, qb = qb, qa
	}
	return edgeKey{qa, qb}
}

type edgeRef struct {
	tri, edge int
}

// MarkFeatureEdges recomputes edge visibility from geometry: an edge shared by
// exactly two triangles whose normals differ by less than maxAngle (radians)
// is a synthetic diagonal and is hidden. Every other edge (boundary, crease or
// non-manifold) is visible.
func (m *TriangleMesh) MarkFeatureEdges(maxAngle float64) {
	edges := make(map[edgeKey][]edgeRef, len(m.Triangles)*3/2)
	for ti, t := range m.Triangles {
		for e := range 3 {
			from, to := t.Edge(e)
			k := makeEdgeKey(from, to)
			edges[k] = append(edges[k], edgeRef{tri: ti, edge: e})
		}
	}

	cosLimit := math.Cos(maxAngle)
	for _, refs := range edges {
		visible := true
		if len(refs) == 2 {
			n0 := m.Triangles[refs[0].tri].Normal().Normalize()
			n1 := m.Triangles[refs[1].tri].Normal().Normalize()
			visible = n0.Dot(n1) < cosLimit
		}
		for _, r := range refs {
			m.Triangles[r.tri].Visible[r.edge] = visible
		}
	}
}
