package models

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/taigrr/wirecut/pkg/math3d"
)

// PolygonVertex is one node of a polygon ring. Next and Prev are indices into
// the owning polygon's vertex arena, not owning references.
type PolygonVertex struct {
	Coord math3d.Vec2
	Index int // position in the input point list
	Next  int
	Prev  int
}

// Polygon is a simple polygon stored as a circular doubly-linked ring of
// vertices in an index arena. Vertex order determines edge adjacency.
type Polygon struct {
	vertices []PolygonVertex
	head     int
}

// NewPolygon builds a polygon ring from points in order. Edges join
// consecutive points and the last point back to the first.
func NewPolygon(points []math3d.Vec2) (*Polygon, error) {
	n := len(points)
	if n < 3 {
		return nil, fmt.Errorf("polygon with %d vertices: %w", n, ErrDegeneratePolygon)
	}

	p := &Polygon{vertices: make([]PolygonVertex, n)}
	for i, pt := range points {
		p.vertices[i] = PolygonVertex{
			Coord: pt,
			Index: i,
			Next:  (i + 1) % n,
			Prev:  (i + n - 1) % n,
		}
	}
	return p, nil
}

// RegularPolygon builds an n-gon inscribed in a circle of the given radius,
// centred on the origin. Vertex i sits at angle −i·2π/n.
func RegularPolygon(radius float64, sides int) (*Polygon, error) {
	if sides < 3 {
		return nil, fmt.Errorf("regular polygon with %d sides: %w", sides, ErrDegeneratePolygon)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("regular polygon with radius %v: %w", radius, ErrDegeneratePolygon)
	}

	points := make([]math3d.Vec2, sides)
	for i := range points {
		angle := -float64(i) * 2 * math.Pi / float64(sides)
		points[i] = math3d.V2(radius*math.Cos(angle), radius*math.Sin(angle))
	}
	return NewPolygon(points)
}

// Size returns the number of vertices in the ring.
func (p *Polygon) Size() int {
	return len(p.vertices)
}

// Head returns the arena index of the first vertex.
func (p *Polygon) Head() int {
	return p.head
}

// Vertex returns the vertex stored at arena index i.
func (p *Polygon) Vertex(i int) PolygonVertex {
	return p.vertices[i]
}

// Adjacent reports whether arena vertices i and j share a polygon edge.
func (p *Polygon) Adjacent(i, j int) bool {
	return p.vertices[i].Next == j || p.vertices[i].Prev == j
}

// Points returns the vertex coordinates in ring order starting at the head.
func (p *Polygon) Points() []math3d.Vec2 {
	pts := make([]math3d.Vec2, 0, len(p.vertices))
	i := p.head
	for range p.vertices {
		pts = append(pts, p.vertices[i].Coord)
		i = p.vertices[i].Next
	}
	return pts
}

// ring converts the polygon to a closed orb ring.
func (p *Polygon) ring() orb.Ring {
	pts := p.Points()
	r := make(orb.Ring, 0, len(pts)+1)
	for _, pt := range pts {
		r = append(r, orb.Point{pt.X, pt.Y})
	}
	return append(r, r[0])
}

// Area returns the unsigned area enclosed by the ring.
func (p *Polygon) Area() float64 {
	return math.Abs(planar.Area(p.ring()))
}

// Orientation returns orb.CCW when the ring runs counter-clockwise in a
// Y-up frame (positive signed area), orb.CW when clockwise, and 0 when the
// ring encloses no area.
func (p *Polygon) Orientation() orb.Orientation {
	return p.ring().Orientation()
}

// SignedArea returns the shoelace area, positive for counter-clockwise rings.
func (p *Polygon) SignedArea() float64 {
	switch p.Orientation() {
	case orb.CCW:
		return p.Area()
	case orb.CW:
		return -p.Area()
	default:
		return 0
	}
}
