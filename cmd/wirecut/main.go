// wirecut - Terminal wireframe viewer
// Projects a scene of extruded polygons (and optionally a GLB model) as
// wireframe edges in your terminal.
//
// Controls:
//
//	Mouse drag        - Rotate (yaw/pitch)
//	Right drag        - Roll
//	Shift+drag        - Pan
//	Scroll, +/-       - Focal length
//	W/S               - Move forward/back (and pull the orbit pivot along)
//	A/D               - Move left/right
//	Q/E               - Move up/down
//	O                 - Toggle orbit mode (rotate about the pivot)
//	B                 - Toggle back-face culling
//	F                 - Toggle frustum culling
//	X                 - Toggle triangulation diagonals
//	H                 - Toggle hidden-line removal
//	R                 - Render one hidden-line frame, back-face culling on
//	C                 - Reset view
//	?                 - Toggle HUD overlay
//	Esc, Ctrl+C       - Quit
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/taigrr/wirecut/pkg/render"
)

func main() {
	if err := fang.Execute(context.Background(), newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := DefaultOptions()
	var configPath string

	cmd := &cobra.Command{
		Use:   "wirecut [model.glb]",
		Short: "Terminal wireframe viewer",
		Long: "wirecut projects a scene of extruded polygons as wireframe edges in the terminal,\n" +
			"with back-face and frustum culling, depth ordering and hidden-line removal.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			final := opts
			if configPath != "" {
				file, err := LoadOptions(configPath, DefaultOptions())
				if err != nil {
					return err
				}
				var changed []string
				cmd.Flags().Visit(func(f *pflag.Flag) {
					changed = append(changed, f.Name)
				})
				final = mergeOptions(file, opts, changed)
			}
			if len(args) == 1 {
				final.Model = args[0]
			}
			if err := final.Validate(); err != nil {
				return err
			}

			closeLog, err := setupLogging(final)
			if err != nil {
				return err
			}
			defer closeLog()

			return run(cmd.Context(), final)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	opts.bindFlags(cmd.Flags())
	return cmd
}

// setupLogging routes the wirecut loggers to the configured file. The
// terminal belongs to the viewer, so nothing is logged without one.
func setupLogging(opts Options) (func(), error) {
	path := opts.LogFile
	if path == "" && opts.Debug {
		path = "wirecut.log"
	}
	if path == "" {
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	render.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return func() {
		render.SetLogger(nil)
		f.Close()
	}, nil
}
