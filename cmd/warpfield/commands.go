package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/warpfield/internal/automation"
	"github.com/san-kum/warpfield/internal/config"
	"github.com/san-kum/warpfield/internal/export"
	"github.com/san-kum/warpfield/internal/gui"
	"github.com/san-kum/warpfield/internal/hal"
	"github.com/san-kum/warpfield/internal/metrics"
	"github.com/san-kum/warpfield/internal/sim"
	"github.com/san-kum/warpfield/internal/starfield"
	"github.com/san-kum/warpfield/internal/storage"
	"github.com/san-kum/warpfield/internal/viz"
	"github.com/san-kum/warpfield/internal/window"
	"github.com/spf13/cobra"
)

func runLive(cmd *cobra.Command, args []string) error {
	s, err := resolve(cmd)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(s.field, viz.Options{
		Theme:    s.theme,
		Throttle: s.cfg.Speed,
		Impulse:  s.impulse(),
	})
	if err != nil {
		return err
	}
	slog.Info("live", "stars", s.field.Stars, "seed", m.Field().Seed())

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(viz.Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	s, err := resolve(cmd)
	if err != nil {
		return err
	}
	return gui.Run(s.field, gui.Options{
		Scale:    windowScale,
		Theme:    s.theme,
		Throttle: s.cfg.Speed,
		Impulse:  s.impulse(),
		ShowHUD:  true,
	})
}

func runWindow(cmd *cobra.Command, args []string) error {
	s, err := resolve(cmd)
	if err != nil {
		return err
	}
	return window.Run(s.field, window.Options{
		Scale:     max(1, int(math.Round(float64(windowScale)))),
		Theme:     s.theme,
		Throttle:  s.cfg.Speed,
		Impulse:   s.impulse(),
		Antialias: antialias,
	})
}

func recordRun(cmd *cobra.Command, args []string) error {
	s, err := resolve(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	simCfg := sim.Config{
		Frames:      s.cfg.Frames,
		SampleEvery: sampleEvery,
		Input:       hal.Fixed(s.cfg.Speed),
	}

	var results []*sim.Result
	if runs > 1 {
		results, err = sim.NewEnsemble(metrics.Standard, runs, s.field.Seed).Run(cmd.Context(), s.field, simCfg)
		if err != nil {
			return err
		}
	} else {
		r := sim.New()
		for _, m := range metrics.Standard() {
			r.AddMetric(m)
		}
		res, err := r.Run(cmd.Context(), s.field, simCfg)
		if err != nil {
			return err
		}
		results = []*sim.Result{res}
	}

	for _, res := range results {
		meta := storage.NewMetadata(runName, s.field, s.cfg.Speed, sampleEvery, res)
		runID, err := st.Save(meta, res.Snapshots)
		if err != nil {
			return err
		}
		slog.Info("run saved", "id", runID, "seed", res.Seed, "frames", len(res.Stats), "elapsed", res.Elapsed)
		fmt.Printf("saved: %s\n", runID)
		fmt.Printf("  seed: %d\n", res.Seed)
		fmt.Printf("  frames: %d (%.0f frames/s)\n", len(res.Stats), res.FramesPerSecond())
		for _, name := range []string{"recycle_rate", "mean_depth", "mean_streak", "peak_speed"} {
			fmt.Printf("  %s: %.4f\n", name, res.Metrics[name])
		}
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSTARS\tFRAMES\tSEED\tSPEED\tRECYCLE\tRECYCLED/FRAME")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%.2f\t%s\t%.3f\n",
			run.ID,
			humanize.Time(run.Timestamp),
			run.Stars,
			run.Frames,
			run.Seed,
			run.Speed,
			run.Recycle,
			run.Metrics["recycle_rate"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	if len(meta.Stats) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("stars: %d  seed: %d  frames: %d\n\n", meta.Stars, meta.Seed, len(meta.Stats))

	recycled := make([]float64, len(meta.Stats))
	depth := make([]float64, len(meta.Stats))
	streak := make([]float64, len(meta.Stats))
	for i, fs := range meta.Stats {
		recycled[i] = float64(fs.Recycled)
		depth[i] = fs.MeanDepth
		streak[i] = fs.MeanStreak
	}

	series := []struct {
		caption string
		data    []float64
	}{
		{"stars recycled per frame", recycled},
		{"mean depth", depth},
		{"mean streak length (px)", streak},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportCSV(args[0], os.Stdout)
}

func renderGIF(cmd *cobra.Command, args []string) error {
	s, err := resolve(cmd)
	if err != nil {
		return err
	}

	capture := &hal.Capture{}
	rec := export.NewGIFRecorder(capture, s.field.View, pixelScale, s.field.RefreshRate, s.theme.Star, s.theme.Space)
	rec.Every = gifEvery

	r := sim.New()
	r.AddObserver(rec)
	if _, err := r.Run(cmd.Context(), s.field, sim.Config{
		Frames:   s.cfg.Frames,
		Renderer: capture,
		Input:    hal.Fixed(s.cfg.Speed),
	}); err != nil {
		return err
	}

	f, err := os.Create(gifOut)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := rec.Encode(f); err != nil {
		return err
	}
	slog.Info("gif written", "path", gifOut, "frames", len(rec.Frames()))
	fmt.Printf("wrote %s (%d frames)\n", gifOut, len(rec.Frames()))
	return nil
}

func renderSVG(cmd *cobra.Command, args []string) error {
	s, err := resolve(cmd)
	if err != nil {
		return err
	}

	capture := &hal.Capture{}
	if _, err := sim.New().Run(cmd.Context(), s.field, sim.Config{
		Frames:   s.cfg.Frames,
		Renderer: capture,
		Input:    hal.Fixed(s.cfg.Speed),
	}); err != nil {
		return err
	}

	var out string
	if braille {
		surface := viz.NewSurface(80, 24, s.field.View.Width, s.field.View.Height)
		for _, l := range capture.Lines {
			if err := surface.DrawLine(l.From, l.To, l.Thickness, l.Color); err != nil {
				return err
			}
		}
		out = export.CanvasToSVG(surface.Canvas(), 4, s.theme.Star, s.theme.Space)
	} else {
		out = export.FrameToSVG(capture.Lines, s.field.View.Width, s.field.View.Height, 2, s.theme.Star, s.theme.Space)
	}

	if err := os.WriteFile(svgOut, []byte(out), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (frame %d, %d lines)\n", svgOut, s.cfg.Frames, len(capture.Lines))
	return nil
}

func bench(cmd *cobra.Command, args []string) error {
	s, err := resolve(cmd)
	if err != nil {
		return err
	}
	counts := []int{50, 150, 300, starfield.MaxStars}

	fmt.Printf("benchmarking %d frames per star count\n\n", benchFrames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STARS\tFRAMES\tTIME\tFRAMES/SEC\tSTARS/SEC")

	for _, n := range counts {
		fc := s.field
		fc.Stars = n
		res, err := sim.New().Run(cmd.Context(), fc, sim.Config{
			Frames: benchFrames,
			Input:  hal.Fixed(max(s.cfg.Speed, 1)),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n",
			n,
			len(res.Stats),
			res.Elapsed.Round(time.Microsecond),
			humanize.Comma(int64(res.FramesPerSecond())),
			humanize.Comma(int64(res.FramesPerSecond()*float64(n))),
		)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	s, err := resolve(cmd)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	r := sim.New()
	for _, m := range metrics.Standard() {
		r.AddMetric(m)
	}
	slog.Info("scenario", "name", sc.Name, "steps", len(sc.Steps), "frames", sc.TotalFrames())
	res, err := automation.RunScenario(cmd.Context(), sc, s.field, r, sampleEvery)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	name := sc.Name
	if name == "" {
		name = "scenario"
	}
	runID, err := st.Save(storage.NewMetadata(name, s.field, sc.Steps[0].Speed, sampleEvery, res), res.Snapshots)
	if err != nil {
		return err
	}
	fmt.Printf("saved: %s\n", runID)
	fmt.Printf("  frames: %d\n", len(res.Stats))
	for _, name := range []string{"recycle_rate", "mean_depth", "mean_streak", "peak_speed"} {
		fmt.Printf("  %s: %.4f\n", name, res.Metrics[name])
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	s, err := resolve(cmd)
	if err != nil {
		return err
	}
	results, err := automation.RunSweep(cmd.Context(), automation.Sweep{
		Param:  sweepParam,
		Min:    sweepMin,
		Max:    sweepMax,
		Steps:  sweepSteps,
		Frames: s.cfg.Frames,
		Speed:  s.cfg.Speed,
	}, s.field, metrics.Standard)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tRECYCLED/FRAME\tMEAN DEPTH\tMEAN STREAK\n", sweepParam)
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%.3f\t%.1f\t%.2f\n",
			r.Value, r.Metrics["recycle_rate"], r.Metrics["mean_depth"], r.Metrics["mean_streak"])
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTARS\tFPS\tSPEED\tCENTERED\tRECYCLE\tTHEME")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%g\t%g\t%v\t%s\t%s\n",
			name, p.Stars, p.RefreshRate, p.Speed, p.Centered, p.Recycle, p.Theme)
	}
	return w.Flush()
}

func dumpConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		if err := config.Save(args[0], cfg); err != nil {
			return err
		}
		fmt.Printf("saved %s\n", args[0])
		return nil
	}
	return printYAML(cfg)
}
