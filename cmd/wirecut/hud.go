package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/taigrr/wirecut/pkg/render"
)

// ViewState holds the toggles the keyboard controls.
type ViewState struct {
	Config     render.Config
	Orbit      bool
	ShowHUD    bool
	OneShotHLR bool // hidden-line frame requested with R
}

// NewViewState creates the view state an Options value asks for.
func NewViewState(opts Options) *ViewState {
	return &ViewState{
		Config: render.Config{
			BackfaceCull: opts.Backface,
			FrustumCull:  opts.Frustum,
			DrawHidden:   opts.DrawHidden,
			HiddenLine:   opts.HiddenLine,
			Workers:      opts.Workers,
		},
		ShowHUD: opts.ShowHUD,
	}
}

// FrameConfig returns the pipeline configuration for the next frame. A
// pending hidden-line request draws that frame with hidden-line removal and
// turns back-face culling on for good.
func (v *ViewState) FrameConfig() render.Config {
	if v.OneShotHLR {
		v.Config.BackfaceCull = true
	}
	cfg := v.Config
	if v.OneShotHLR {
		cfg.HiddenLine = true
		v.OneShotHLR = false
	}
	return cfg
}

// HUD renders an overlay with scene and pipeline info
type HUD struct {
	title     string
	fps       float64
	fpsFrames int
	fpsTime   time.Time
	stats     render.FrameStats
	focal     float64
	hlr       bool
}

// NewHUD creates a new HUD
func NewHUD(title string) *HUD {
	return &HUD{
		title:   title,
		fpsTime: time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per loop iteration)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Record keeps the statistics of the last projected frame.
func (h *HUD) Record(stats render.FrameStats, focal float64, hlr bool) {
	h.stats = stats
	h.focal = focal
	h.hlr = hlr
}

// StatusLine returns the top line: FPS, title, triangles dropped by each
// culling stage and focal length.
func (h *HUD) StatusLine() string {
	return fmt.Sprintf(" %.0f FPS  %s  %d tris  -%d back  -%d frustum  %d kept  %d edges  f=%.1f ",
		h.fps, h.title, h.stats.Input,
		h.stats.Input-h.stats.AfterBackface,
		h.stats.AfterBackface-h.stats.AfterFrustum,
		h.stats.AfterFrustum,
		h.stats.Edges, h.focal)
}

// ModeLine returns the bottom line: one checkbox per toggle.
func (h *HUD) ModeLine(v *ViewState) string {
	check := func(on bool) string {
		if on {
			return "[✓]"
		}
		return "[ ]"
	}
	parts := []string{
		check(v.Config.BackfaceCull) + " B backface",
		check(v.Config.FrustumCull) + " F frustum",
		check(v.Config.DrawHidden) + " X diagonals",
		check(v.Config.HiddenLine || h.hlr) + " H hidden-line",
		check(v.Orbit) + " O orbit",
	}
	return " " + strings.Join(parts, "  ") + " "
}

// Render draws the HUD overlay directly to the terminal
func (h *HUD) Render(width, height int, v *ViewState) {
	const (
		reset     = "\x1b[0m"
		bgBlack   = "\x1b[40m"
		fgGreen   = "\x1b[92m"
		fgWhite   = "\x1b[97m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)
	if !v.ShowHUD {
		return
	}

	fmt.Print(moveTo(1, 1) + bgBlack + fgGreen + truncate(h.StatusLine(), width) + reset)
	fmt.Print(moveTo(height, 1) + bgBlack + fgWhite + truncate(h.ModeLine(v), width) + reset)
}

// truncate cuts s to at most width runes.
func truncate(s string, width int) string {
	r := []rune(s)
	if width < 0 {
		width = 0
	}
	if len(r) <= width {
		return s
	}
	return string(r[:width])
}
