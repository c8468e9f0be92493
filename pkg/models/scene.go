package models

import (
	"fmt"
	"math"

	"github.com/taigrr/wirecut/pkg/math3d"
)

// Scene is the renderable world: every primitive merged into one mesh.
// It is built once and then only read by the per-frame pipeline.
type Scene struct {
	Mesh *TriangleMesh
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{Mesh: NewTriangleMesh(0)}
}

// Add merges mesh into the scene after everything already there.
func (s *Scene) Add(mesh *TriangleMesh) error {
	if err := s.Mesh.Merge(mesh); err != nil {
		return fmt.Errorf("add to scene: %w", err)
	}
	return nil
}

// Len returns the number of triangles in the scene.
func (s *Scene) Len() int {
	return s.Mesh.Len()
}

// StarPolygon builds a star with the given number of points, alternating
// between the outer and inner radius.
func StarPolygon(outer, inner float64, points int) (*Polygon, error) {
	if points < 2 || inner <= 0 || outer <= inner {
		return nil, fmt.Errorf("star with %d points, radii %v/%v: %w", points, outer, inner, ErrDegeneratePolygon)
	}
	pts := make([]math3d.Vec2, 0, 2*points)
	for i := range 2 * points {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		angle := float64(i)*math.Pi/float64(points) - math.Pi/2
		pts = append(pts, math3d.V2(r*math.Cos(angle), r*math.Sin(angle)))
	}
	return NewPolygon(pts)
}

// placed is a scene primitive with its placement.
type placed struct {
	build    func() (*TriangleMesh, error)
	rotation math3d.Vec3
	offset   math3d.Vec3
}

// DefaultScene builds the demo world: a cube, an extruded hexagon, an
// extruded concave L profile and an extruded star, laid out in front of a
// camera at the origin looking down +Z.
func DefaultScene() (*Scene, error) {
	items := []placed{
		{
			build:  func() (*TriangleMesh, error) { return Cube(40), nil },
			offset: math3d.V3(-70, -20, 150),
		},
		{
			build: func() (*TriangleMesh, error) {
				hex, err := RegularPolygon(22, 6)
				if err != nil {
					return nil, err
				}
				return Extrude(hex, 30)
			},
			rotation: math3d.V3(math.Pi/2, 0, 0),
			offset:   math3d.V3(40, 10, 170),
		},
		{
			build: func() (*TriangleMesh, error) {
				l, err := NewPolygon([]math3d.Vec2{
					{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 40, Y: 12},
					{X: 12, Y: 12}, {X: 12, Y: 40}, {X: 0, Y: 40},
				})
				if err != nil {
					return nil, err
				}
				return Extrude(l, 15)
			},
			rotation: math3d.V3(0, math.Pi/6, 0),
			offset:   math3d.V3(-10, -60, 200),
		},
		{
			build: func() (*TriangleMesh, error) {
				star, err := StarPolygon(26, 11, 5)
				if err != nil {
					return nil, err
				}
				return Extrude(star, 10)
			},
			offset: math3d.V3(0, 45, 190),
		},
	}

	scene := NewScene()
	for i, it := range items {
		mesh, err := it.build()
		if err != nil {
			return nil, fmt.Errorf("build scene item %d: %w", i, err)
		}
		mesh.Rotate(it.rotation)
		mesh.Translate(it.offset)
		if err := scene.Add(mesh); err != nil {
			return nil, err
		}
	}
	return scene, nil
}
