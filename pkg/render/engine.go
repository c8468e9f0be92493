// Package render turns a triangle mesh and a camera into depth-ordered 2D
// line segments, and paints them into a terminal framebuffer.
package render

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/taigrr/wirecut/internal/logging"
	"github.com/taigrr/wirecut/pkg/models"
)

// Config selects the optional pipeline stages for one frame. It is passed by
// value and never modified by the pipeline.
type Config struct {
	// BackfaceCull drops triangles that face away from the camera.
	BackfaceCull bool

	// FrustumCull drops triangles wholly outside one bound of the view.
	FrustumCull bool

	// DrawHidden emits synthetic diagonals as well as boundary edges.
	DrawHidden bool

	// HiddenLine asks the painter to suppress edge pixels that lie behind a
	// nearer projected triangle.
	HiddenLine bool

	// Workers is the number of goroutines used for projection. Values below
	// two project on the calling goroutine.
	Workers int
}

// DefaultConfig returns the configuration the viewer starts with.
func DefaultConfig() Config {
	return Config{
		BackfaceCull: true,
		FrustumCull:  true,
		Workers:      1,
	}
}

// Engine owns the scene mesh and produces one ProjectedMesh per frame.
// An Engine is not safe for concurrent use.
type Engine struct {
	Scene *models.TriangleMesh
}

// NewEngine creates an engine rendering scene.
func NewEngine(scene *models.TriangleMesh) *Engine {
	return &Engine{Scene: scene}
}

// Frame applies d to cam and projects the scene through it. cam is only
// updated when the projection succeeds.
func (e *Engine) Frame(cam *Camera, d CameraDelta, cfg Config) (*ProjectedMesh, error) {
	if e.Scene == nil {
		return nil, errors.New("frame: engine has no scene")
	}

	next := *cam
	next.Apply(d)
	pm, err := Project(e.Scene, &next, cfg)
	if err != nil {
		return nil, fmt.Errorf("frame: %w", err)
	}
	*cam = next

	logging.Logger().Debug("frame projected",
		"input", pm.Stats.Input,
		"after_backface", pm.Stats.AfterBackface,
		"after_frustum", pm.Stats.AfterFrustum,
		"edges", pm.Stats.Edges,
		"focal", cam.FocalLength,
	)
	return pm, nil
}

// SetLogger sets the logger used by the wirecut packages. Passing nil
// restores the silent default.
func SetLogger(l *slog.Logger) {
	logging.SetLogger(l)
}
