package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

const impulseUnit = 4

var (
	dataDir    string
	configFile string
	preset     string
	logFile    string
	levelFlag  = logLevelFlag{value: slog.LevelInfo}

	stars     int
	seed      uint64
	clockSeed bool
	speed     float32
	centered  bool
	recycle   string
	scale     float32
	fps       float32
	width     float32
	height    float32
	theme     string
	frames    int

	// record
	runName     string
	sampleEvery int
	runs        int
	// gif, svg
	gifOut     string
	svgOut     string
	pixelScale int
	gifEvery   int
	braille    bool
	// gui, window
	windowScale float32
	antialias   bool
	// bench
	benchFrames int
	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "warpfield",
		Short:         "crank-driven 3D starfield",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLive,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(logModeFor(cmd))
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".warpfield", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logFile, "log-file", "", "write logs to a rotated file")
	pf.Var(&levelFlag, "log-level", "log level (debug, info, warn, error)")

	pf.IntVar(&stars, "stars", 0, "number of stars")
	pf.Uint64Var(&seed, "seed", 0, "random seed")
	pf.BoolVar(&clockSeed, "clock-seed", false, "seed from the wall clock")
	pf.Float32Var(&speed, "speed", 0, "travel per frame")
	pf.BoolVar(&centered, "centered", true, "project around the display centre")
	pf.StringVar(&recycle, "recycle", "", "recycle mode (signed, unsigned)")
	pf.Float32Var(&scale, "scale", 0, "random range scale")
	pf.Float32Var(&fps, "fps", 0, "refresh rate")
	pf.Float32Var(&width, "width", 0, "display width")
	pf.Float32Var(&height, "height", 0, "display height")
	pf.StringVar(&theme, "theme", "", "colour theme")
	pf.IntVar(&frames, "frames", 0, "frames for headless commands")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "starfield in the terminal",
		RunE:  runLive,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "starfield in a raylib window",
		RunE:  runGUI,
	}
	guiCmd.Flags().Float32Var(&windowScale, "window-scale", 2, "window pixels per display pixel")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "starfield in an ebiten window",
		RunE:  runWindow,
	}
	windowCmd.Flags().Float32Var(&windowScale, "window-scale", 2, "window pixels per display pixel")
	windowCmd.Flags().BoolVar(&antialias, "antialias", false, "antialias lines")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "record a headless run",
		RunE:  recordRun,
	}
	recordCmd.Flags().StringVar(&runName, "name", "run", "run name")
	recordCmd.Flags().IntVar(&sampleEvery, "sample", 10, "keep star states every n frames (0 for none)")
	recordCmd.Flags().IntVar(&runs, "runs", 1, "record consecutive seeds in parallel")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export recorded star states to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	gifCmd := &cobra.Command{
		Use:   "gif",
		Short: "render a headless run to an animated GIF",
		RunE:  renderGIF,
	}
	gifCmd.Flags().StringVarP(&gifOut, "out", "o", "warpfield.gif", "output file")
	gifCmd.Flags().IntVar(&pixelScale, "pixel-scale", 1, "image pixels per display pixel")
	gifCmd.Flags().IntVar(&gifEvery, "every", 1, "keep one frame in n")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "render one headless frame to SVG",
		RunE:  renderSVG,
	}
	svgCmd.Flags().StringVarP(&svgOut, "out", "o", "warpfield.svg", "output file")
	svgCmd.Flags().BoolVar(&braille, "braille", false, "render the terminal braille canvas instead of lines")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the headless core",
		RunE:  bench,
	}
	benchCmd.Flags().IntVar(&benchFrames, "bench-frames", 2000, "frames per star count")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "record a scripted crank scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().IntVar(&sampleEvery, "sample", 10, "keep star states every n frames (0 for none)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep a parameter and compare frame metrics",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "stars", "parameter to sweep (stars, speed, scale, width, height)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 50, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 600, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 12, "number of values")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "print the resolved config, or save it to path",
		Args:  cobra.MaximumNArgs(1),
		RunE:  dumpConfig,
	}

	rootCmd.AddCommand(liveCmd, guiCmd, windowCmd, recordCmd, listCmd, plotCmd, exportCSVCmd, gifCmd, svgCmd, benchCmd, scenarioCmd, sweepCmd, presetsCmd, configCmd)
	return rootCmd
}

func logModeFor(cmd *cobra.Command) logMode {
	switch cmd.Name() {
	case "warpfield", "live":
		return logTerminal
	case "gui", "window":
		return logWindow
	}
	return logConsole
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		restoreLogging()
		slog.Error("command failed", "err", err)
		stop()
		os.Exit(1)
	}
}
