package models

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/taigrr/wirecut/internal/logging"
	"github.com/taigrr/wirecut/pkg/math3d"
)

// chainSide tags which monotone chain a merged-chain entry came from.
type chainSide int

const (
	chainEnd   chainSide = iota // top or bottom vertex
	chainLeft                   // reached from the top by following Next
	chainRight                  // reached from the top by following Prev
)

// chainEntry is one vertex of the merged top-to-bottom chain.
type chainEntry struct {
	vertex int
	side   chainSide
}

// chainStack is the reflex-chain stack of the monotone sweep.
type chainStack []chainEntry

func (s *chainStack) push(e chainEntry) {
	*s = append(*s, e)
}

func (s *chainStack) pop() chainEntry {
	old := *s
	e := old[len(old)-1]
	*s = old[:len(old)-1]
	return e
}

func (s chainStack) peek() chainEntry {
	return s[len(s)-1]
}

func (s chainStack) empty() bool {
	return len(s) == 0
}

// Triangulate splits the polygon into exactly Size()-2 triangles covering its
// interior. Edges that lie on the polygon boundary are flagged visible;
// diagonals added by the triangulation are not. Triangles are wound so that
// their outward normal is +Z.
//
// Y-monotone rings use the monotone-chain sweep; any other simple ring, or a
// sweep whose triangles do not tile the ring, falls back to earcut. A result
// that still does not tile the ring is an ErrDegeneratePolygon.
func (p *Polygon) Triangulate() (*TriangleMesh, error) {
	if p.Size() < 3 {
		return nil, fmt.Errorf("triangulate %d vertices: %w", p.Size(), ErrDegeneratePolygon)
	}

	var sign float64
	switch p.Orientation() {
	case orb.CCW:
		sign = 1
	case orb.CW:
		sign = -1
	default:
		return nil, fmt.Errorf("triangulate zero-area ring: %w", ErrDegeneratePolygon)
	}

	top, bottom, err := p.findExtremes()
	if err != nil {
		return nil, err
	}

	var tris []Triangle
	if p.isMonotone(top, bottom) {
		tris = p.sweep(p.mergeChains(top, bottom), sign)
		if !p.covers(tris) {
			logging.Logger().Warn("monotone sweep overlapped, using earcut", "vertices", p.Size())
			tris = nil
		}
	} else {
		logging.Logger().Warn("polygon is not y-monotone, using earcut", "vertices", p.Size())
	}
	if tris == nil {
		tris, err = p.earClip()
		if err != nil {
			return nil, err
		}
		if !p.covers(tris) {
			return nil, fmt.Errorf("triangles do not tile %d-vertex ring: %w", p.Size(), ErrDegeneratePolygon)
		}
	}

	mesh := NewTriangleMesh(p.Size() - 2)
	if err := mesh.Append(tris...); err != nil {
		return nil, err
	}
	return mesh, nil
}

// findExtremes returns the arena indices of the vertex with the smallest Y
// (top) and the largest Y (bottom). Ties go to the first vertex met walking
// the ring from the head.
func (p *Polygon) findExtremes() (top, bottom int, err error) {
	top, bottom = p.head, p.head
	i := p.head
	for range p.vertices {
		y := p.vertices[i].Coord.Y
		if y < p.vertices[top].Coord.Y {
			top = i
		}
		if y > p.vertices[bottom].Coord.Y {
			bottom = i
		}
		i = p.vertices[i].Next
	}
	if p.vertices[top].Coord.Y == p.vertices[bottom].Coord.Y {
		return 0, 0, fmt.Errorf("no vertical extent: %w", ErrDegeneratePolygon)
	}
	return top, bottom, nil
}

// isMonotone reports whether both chains between top and bottom are
// non-decreasing in Y. A horizontal step on one chain at a Y where the other
// chain has a vertex is rejected: the merged order cannot place that vertex
// consistently.
func (p *Polygon) isMonotone(top, bottom int) bool {
	left := p.chain(top, bottom, func(i int) int { return p.vertices[i].Next })
	right := p.chain(top, bottom, func(i int) int { return p.vertices[i].Prev })
	return p.chainMonotone(top, bottom, left, right) &&
		p.chainMonotone(top, bottom, right, left)
}

// chain returns the arena indices strictly between top and bottom, walking
// the ring with step.
func (p *Polygon) chain(top, bottom int, step func(int) int) []int {
	var c []int
	for i := step(top); i != bottom; i = step(i) {
		c = append(c, i)
	}
	return c
}

// chainMonotone checks the chain top, c..., bottom against the interior
// vertices of the opposite chain.
func (p *Polygon) chainMonotone(top, bottom int, c, other []int) bool {
	taken := make(map[float64]bool, len(other))
	for _, i := range other {
		taken[p.vertices[i].Coord.Y] = true
	}

	prev := p.vertices[top].Coord.Y
	for k := 0; k <= len(c); k++ {
		i := bottom
		if k < len(c) {
			i = c[k]
		}
		y := p.vertices[i].Coord.Y
		if y < prev || (y == prev && taken[y]) {
			return false
		}
		prev = y
	}
	return true
}

// covers reports whether tris tiles the ring: Size()-2 triangles whose areas
// add up to the ring's area, with every ring edge used once and every
// diagonal shared by exactly two triangles.
func (p *Polygon) covers(tris []Triangle) bool {
	if len(tris) != p.Size()-2 {
		return false
	}

	type use struct{ ring, diagonal int }
	uses := make(map[[2]math3d.Vec2]use, 3*len(tris))
	var sum float64
	for _, t := range tris {
		sum += t.Area()
		for e := range 3 {
			from, to := t.Edge(e)
			a, b := from.Vec2(), to.Vec2()
			if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
				a, b = b, a
			}
			u := uses[[2]math3d.Vec2{a, b}]
			if t.Visible[e] {
				u.ring++
			} else {
				u.diagonal++
			}
			uses[[2]math3d.Vec2{a, b}] = u
		}
	}
	for _, u := range uses {
		if (u.ring > 0 && (u.ring != 1 || u.diagonal != 0)) || (u.ring == 0 && u.diagonal != 2) {
			return false
		}
	}

	area := p.Area()
	return math.Abs(sum-area) <= 1e-9*max(area, 1)
}

// mergeChains merges the left (Next) and right (Prev) chains into a single
// list ordered from top to bottom. On equal Y the left chain goes first.
func (p *Polygon) mergeChains(top, bottom int) []chainEntry {
	chain := make([]chainEntry, 0, p.Size())
	chain = append(chain, chainEntry{vertex: top, side: chainEnd})

	left := p.vertices[top].Next
	right := p.vertices[top].Prev
	for left != bottom || right != bottom {
		takeLeft := right == bottom ||
			(left != bottom && p.vertices[left].Coord.Y <= p.vertices[right].Coord.Y)
		if takeLeft {
			chain = append(chain, chainEntry{vertex: left, side: chainLeft})
			left = p.vertices[left].Next
		} else {
			chain = append(chain, chainEntry{vertex: right, side: chainRight})
			right = p.vertices[right].Prev
		}
	}

	return append(chain, chainEntry{vertex: bottom, side: chainEnd})
}

// sweep triangulates a merged chain with the stack-based monotone algorithm.
// sign is +1 for counter-clockwise rings and -1 for clockwise ones.
func (p *Polygon) sweep(chain []chainEntry, sign float64) []Triangle {
	tris := make([]Triangle, 0, len(chain)-2)
	stack := make(chainStack, 0, len(chain))
	stack.push(chain[0])
	stack.push(chain[1])

	last := len(chain) - 1
	for i := 2; i < last; i++ {
		if chain[i].side != stack.peek().side {
			tris = p.popAll(&stack, chain[i].vertex, tris)
			stack.push(chain[i-1])
			stack.push(chain[i])
		} else {
			tris = p.popVisible(&stack, chain[i], sign, tris)
		}
	}

	return p.drain(&stack, chain[last].vertex, tris)
}

// popAll empties the stack, joining cur to every popped vertex except the
// last one.
func (p *Polygon) popAll(stack *chainStack, cur int, tris []Triangle) []Triangle {
	for {
		e := stack.pop()
		if stack.empty() {
			return tris
		}
		tris = append(tris, p.makeTriangle(cur, e.vertex, stack.peek().vertex))
	}
}

// popVisible pops vertices while the diagonal from cur stays inside the
// polygon, then pushes back the last vertex kept and cur itself.
func (p *Polygon) popVisible(stack *chainStack, cur chainEntry, sign float64, tris []Triangle) []Triangle {
	last := stack.pop()
	for !stack.empty() {
		prev := last
		cand := stack.pop()
		if !p.diagonalInside(cur, prev.vertex, cand.vertex, sign) {
			stack.push(cand)
			last = prev
			break
		}
		tris = append(tris, p.makeTriangle(cur.vertex, cand.vertex, prev.vertex))
		last = cand
	}
	stack.push(last)
	stack.push(cur)
	return tris
}

// diagonalInside reports whether the diagonal from cur to cand lies inside the
// polygon, given that prev sits between them on cur's chain. The required sign
// of the cross product is negative on the left chain and positive on the right
// chain for a counter-clockwise ring.
func (p *Polygon) diagonalInside(cur chainEntry, prev, cand int, sign float64) bool {
	o := p.vertices[cur.vertex].Coord
	v1 := p.vertices[prev].Coord.Sub(o)
	v2 := p.vertices[cand].Coord.Sub(o)
	cross := v1.Cross(v2) * sign
	switch cur.side {
	case chainLeft:
		return cross < 0
	case chainRight:
		return cross > 0
	default:
		return false
	}
}

// drain joins the bottom vertex to each adjacent pair left on the stack.
func (p *Polygon) drain(stack *chainStack, bottom int, tris []Triangle) []Triangle {
	if stack.empty() {
		return tris
	}
	prev := stack.pop()
	for !stack.empty() {
		cand := stack.pop()
		tris = append(tris, p.makeTriangle(bottom, cand.vertex, prev.vertex))
		prev = cand
	}
	return tris
}

// makeTriangle builds the triangle on arena vertices i, j, k at Z=0. The
// vertices are wound for a +Z outward normal, then rotated so the first ring
// edge (if any) sits at A→B. An edge is visible exactly when its endpoints are
// neighbours in the ring.
func (p *Polygon) makeTriangle(i, j, k int) Triangle {
	vi, vj, vk := p.vertices[i].Coord, p.vertices[j].Coord, p.vertices[k].Coord
	if vj.Sub(vi).Cross(vk.Sub(vi)) > 0 {
		j, k = k, j
	}

	switch {
	case p.Adjacent(i, j):
	case p.Adjacent(j, k):
		i, j, k = j, k, i
	case p.Adjacent(k, i):
		i, j, k = k, i, j
	}

	return Triangle{
		A: p.vertices[i].Coord.Vec3(0),
		B: p.vertices[j].Coord.Vec3(0),
		C: p.vertices[k].Coord.Vec3(0),
		Visible: [3]bool{
			p.Adjacent(i, j),
			p.Adjacent(j, k),
			p.Adjacent(k, i),
		},
	}
}

// point returns the coordinates of arena vertex i.
func (p *Polygon) point(i int) math3d.Vec2 {
	return p.vertices[i].Coord
}
