package main

import (
	"bytes"
	"fmt"
	"image/color"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
)

// Options is everything the viewer can be configured with. It is filled
// from defaults, then the optional TOML config file, then any flag given
// explicitly on the command line.
type Options struct {
	Model      string  `toml:"model"`
	FPS        int     `toml:"fps"`
	Focal      float64 `toml:"focal"`
	Background string  `toml:"bg"`
	Workers    int     `toml:"workers"`
	MoveStep   float64 `toml:"move_step"`

	Backface   bool `toml:"backface"`
	Frustum    bool `toml:"frustum"`
	DrawHidden bool `toml:"draw_hidden"`
	HiddenLine bool `toml:"hidden_line"`
	ShowHUD    bool `toml:"hud"`

	Debug   bool   `toml:"debug"`
	LogFile string `toml:"log_file"`
}

// DefaultOptions returns the options used when nothing else is given.
func DefaultOptions() Options {
	return Options{
		FPS:        60,
		Focal:      120,
		Background: "30,30,40",
		Workers:    1,
		MoveStep:   5,
		Backface:   true,
		Frustum:    true,
		ShowHUD:    true,
	}
}

// bindFlags registers one flag per option, writing into o.
func (o *Options) bindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Model, "model", "m", o.Model, "GLB model to add to the scene")
	fs.IntVar(&o.FPS, "fps", o.FPS, "target frames per second")
	fs.Float64Var(&o.Focal, "focal", o.Focal, "initial focal length in pixels")
	fs.StringVar(&o.Background, "bg", o.Background, "background color (R,G,B)")
	fs.IntVarP(&o.Workers, "workers", "j", o.Workers, "goroutines used for projection")
	fs.Float64Var(&o.MoveStep, "move-step", o.MoveStep, "scene units moved per key press")
	fs.BoolVar(&o.Backface, "backface", o.Backface, "cull triangles facing away from the camera")
	fs.BoolVar(&o.Frustum, "frustum", o.Frustum, "cull triangles outside the view")
	fs.BoolVar(&o.DrawHidden, "draw-hidden", o.DrawHidden, "draw triangulation diagonals")
	fs.BoolVar(&o.HiddenLine, "hidden-line", o.HiddenLine, "suppress edges behind nearer faces on every frame")
	fs.BoolVar(&o.ShowHUD, "hud", o.ShowHUD, "show the status overlay")
	fs.BoolVar(&o.Debug, "debug", o.Debug, "log per-frame pipeline statistics")
	fs.StringVar(&o.LogFile, "log-file", o.LogFile, "write logs to this file")
}

// LoadOptions decodes a TOML config file on top of base. Unknown keys are
// an error.
func LoadOptions(path string, base Options) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config: %w", err)
	}
	return decodeOptions(data, base)
}

func decodeOptions(data []byte, base Options) (Options, error) {
	opts := base
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		return base, fmt.Errorf("decode config: %w", err)
	}
	return opts, nil
}

// overrideFlag copies the option behind flag name from src into dst.
func overrideFlag(dst *Options, src Options, name string) {
	switch name {
	case "model":
		dst.Model = src.Model
	case "fps":
		dst.FPS = src.FPS
	case "focal":
		dst.Focal = src.Focal
	case "bg":
		dst.Background = src.Background
	case "workers":
		dst.Workers = src.Workers
	case "move-step":
		dst.MoveStep = src.MoveStep
	case "backface":
		dst.Backface = src.Backface
	case "frustum":
		dst.Frustum = src.Frustum
	case "draw-hidden":
		dst.DrawHidden = src.DrawHidden
	case "hidden-line":
		dst.HiddenLine = src.HiddenLine
	case "hud":
		dst.ShowHUD = src.ShowHUD
	case "debug":
		dst.Debug = src.Debug
	case "log-file":
		dst.LogFile = src.LogFile
	}
}

// mergeOptions layers the flags that were set explicitly over file.
func mergeOptions(file, flags Options, changed []string) Options {
	merged := file
	for _, name := range changed {
		overrideFlag(&merged, flags, name)
	}
	return merged
}

// Validate rejects option values the viewer cannot run with.
func (o Options) Validate() error {
	if o.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", o.FPS)
	}
	if o.MoveStep <= 0 {
		return fmt.Errorf("move step must be positive, got %v", o.MoveStep)
	}
	if _, err := parseRGB(o.Background); err != nil {
		return err
	}
	return nil
}

// parseRGB parses an "R,G,B" triple.
func parseRGB(s string) (color.RGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return color.RGBA{r, g, b, 255}, nil
}
