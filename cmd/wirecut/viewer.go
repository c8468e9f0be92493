package main

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/wirecut/internal/logging"
	"github.com/taigrr/wirecut/pkg/math3d"
	"github.com/taigrr/wirecut/pkg/models"
	"github.com/taigrr/wirecut/pkg/render"
)

const (
	// focalStep is the focal length change per wheel notch or +/- press.
	focalStep = 5.0

	// dragScale is the angular velocity, in radians per frame, added per
	// terminal cell of mouse drag.
	dragScale = 0.01

	// modelExtent is the size a loaded model is scaled to, and modelDepth
	// the distance in front of the camera it is placed at.
	modelExtent = 60.0
	modelDepth  = 120.0
)

// buildScene creates the demo scene plus the model at path, if any.
func buildScene(path string) (*models.Scene, string, error) {
	scene, err := models.DefaultScene()
	if err != nil {
		return nil, "", fmt.Errorf("build scene: %w", err)
	}
	if path == "" {
		return scene, "demo scene", nil
	}

	mesh, err := models.LoadGLB(path)
	if err != nil {
		return nil, "", fmt.Errorf("load model: %w", err)
	}

	// Center and scale model
	center := mesh.Center()
	size := mesh.Size()
	maxDim := max(size.X, size.Y, size.Z)
	mesh.Translate(center.Negate())
	if maxDim > 0 {
		mesh.Transform(math3d.ScaleUniform(modelExtent / maxDim))
	}
	mesh.Translate(math3d.V3(0, 0, modelDepth))

	if err := scene.Add(mesh); err != nil {
		return nil, "", err
	}
	return scene, filepath.Base(path), nil
}

// dragState tracks the mouse button held since the last click.
type dragState struct {
	down   bool
	button uv.MouseButton
	shift  bool
	x, y   int
}

// viewer is the state of one interactive session. It is owned by the
// frame loop goroutine.
type viewer struct {
	opts Options
	bg   color.RGBA

	term     *uv.Terminal
	renderer *render.TerminalRenderer
	fb       *render.Framebuffer
	width    int
	height   int

	cam     *render.Camera
	engine  *render.Engine
	painter *render.LinePainter

	view        *ViewState
	motion      *Motion
	input       Input
	drag        dragState
	orbitRadius float64
	homeRadius  float64
	hud         *HUD
}

func run(ctx context.Context, opts Options) error {
	bg, err := parseRGB(opts.Background)
	if err != nil {
		return err
	}

	scene, title, err := buildScene(opts.Model)
	if err != nil {
		return err
	}
	logging.Logger().Info("scene built", "title", title, "triangles", scene.Len())

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	v := &viewer{
		opts:       opts,
		bg:         bg,
		term:       term,
		engine:     render.NewEngine(scene.Mesh),
		painter:    render.NewLinePainter(),
		view:       NewViewState(opts),
		motion:     NewMotion(opts.FPS),
		homeRadius: scene.Mesh.Center().Z,
		hud:        NewHUD(title),
	}
	v.orbitRadius = v.homeRadius
	v.resize(width, height)
	v.cam = render.NewCamera(float64(v.fb.Width), float64(v.fb.Height), opts.Focal)

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	// Events are handed to the frame loop so view state has one owner.
	events := make(chan uv.Event, 64)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	targetDuration := time.Second / time.Duration(opts.FPS)
	for {
		now := time.Now()

	drain:
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-events:
				if quit := v.handle(ev); quit {
					return nil
				}
			default:
				break drain
			}
		}

		if err := v.frame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// resize rebuilds the presenter and framebuffer for a terminal of the
// given size.
func (v *viewer) resize(width, height int) {
	v.width, v.height = width, height
	v.renderer = render.NewTerminalRenderer(v.term, width, height)
	fbWidth, fbHeight := v.renderer.FramebufferSize()
	if v.fb == nil {
		v.fb = render.NewFramebuffer(fbWidth, fbHeight)
	} else {
		v.fb.Resize(fbWidth, fbHeight)
	}
	if v.cam != nil {
		v.cam.SetViewport(float64(fbWidth), float64(fbHeight))
	}
	v.input.Touch()
}

// handle applies one terminal event and reports whether the user quit.
func (v *viewer) handle(ev uv.Event) bool {
	step := v.opts.MoveStep

	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		v.term.Erase()
		v.term.Resize(ev.Width, ev.Height)
		v.resize(ev.Width, ev.Height)

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape", "ctrl+c"):
			return true
		case ev.MatchString("w", "up"):
			v.input.Translate(math3d.V3(0, 0, -step))
			v.orbitRadius -= step
		case ev.MatchString("s", "down"):
			v.input.Translate(math3d.V3(0, 0, step))
			v.orbitRadius += step
		case ev.MatchString("a", "left"):
			v.input.Translate(math3d.V3(step, 0, 0))
		case ev.MatchString("d", "right"):
			v.input.Translate(math3d.V3(-step, 0, 0))
		case ev.MatchString("q"):
			v.input.Translate(math3d.V3(0, step, 0))
		case ev.MatchString("e"):
			v.input.Translate(math3d.V3(0, -step, 0))
		case ev.MatchString("+", "="):
			v.input.Zoom(focalStep)
		case ev.MatchString("-", "_"):
			v.input.Zoom(-focalStep)
		case ev.MatchString("o"):
			v.view.Orbit = !v.view.Orbit
		case ev.MatchString("b"):
			v.view.Config.BackfaceCull = !v.view.Config.BackfaceCull
			v.input.Touch()
		case ev.MatchString("f"):
			v.view.Config.FrustumCull = !v.view.Config.FrustumCull
			v.input.Touch()
		case ev.MatchString("x"):
			v.view.Config.DrawHidden = !v.view.Config.DrawHidden
			v.input.Touch()
		case ev.MatchString("h"):
			v.view.Config.HiddenLine = !v.view.Config.HiddenLine
			v.input.Touch()
		case ev.MatchString("r"):
			v.view.OneShotHLR = true
			v.input.Touch()
		case ev.MatchString("c"):
			v.cam.Reset()
			v.cam.SetFocalLength(v.opts.Focal)
			v.motion.Stop()
			v.orbitRadius = v.homeRadius
			v.input.Touch()
		case ev.MatchString("?", "shift+/"):
			v.view.ShowHUD = !v.view.ShowHUD
			v.term.Erase()
			v.input.Touch()
		}

	case uv.MouseClickEvent:
		v.drag = dragState{
			down:   true,
			button: ev.Button,
			shift:  ev.Mod&uv.ModShift != 0,
			x:      ev.X,
			y:      ev.Y,
		}

	case uv.MouseReleaseEvent:
		v.drag.down = false

	case uv.MouseMotionEvent:
		if !v.drag.down {
			break
		}
		dx := float64(ev.X - v.drag.x)
		dy := float64(ev.Y - v.drag.y)
		v.drag.x, v.drag.y = ev.X, ev.Y
		switch {
		case v.drag.shift:
			v.input.Translate(math3d.V3(dx*step/2, -dy*step/2, 0))
		case v.drag.button == uv.MouseRight:
			v.motion.ApplyImpulse(0, 0, dx*dragScale)
		default:
			v.motion.ApplyImpulse(dy*dragScale, -dx*dragScale, 0)
		}

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			v.input.Zoom(focalStep)
		case uv.MouseWheelDown:
			v.input.Zoom(-focalStep)
		}
	}
	return false
}

// frame reprojects and repaints when the view changed, and refreshes the
// HUD either way. An unchanged view keeps the last picture on screen.
func (v *viewer) frame() error {
	d, dirty := v.input.Take()
	if v.motion.Moving() {
		d.Rotation = d.Rotation.Add(v.motion.Step())
		dirty = true
	}

	if dirty {
		d.Orbit = v.view.Orbit
		d.OrbitRadius = v.orbitRadius
		cfg := v.view.FrameConfig()

		pm, err := v.engine.Frame(v.cam, d, cfg)
		if err != nil {
			return fmt.Errorf("render frame: %w", err)
		}

		v.fb.Clear(v.bg)
		v.painter.Paint(v.fb, pm, v.cam, cfg.HiddenLine)
		v.renderer.Render(v.fb)
		if err := v.renderer.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}
		v.hud.Record(pm.Stats, v.cam.FocalLength, cfg.HiddenLine)
	}

	// HUD overlay (always update FPS, render clears lines when HUD off)
	v.hud.UpdateFPS()
	v.hud.Render(v.width, v.height, v.view)
	return nil
}
