package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/griddlepan/internal/automation"
	"github.com/san-kum/griddlepan/internal/config"
	"github.com/san-kum/griddlepan/internal/experiment"
	"github.com/san-kum/griddlepan/internal/export"
	"github.com/san-kum/griddlepan/internal/metrics"
	"github.com/san-kum/griddlepan/internal/pan"
	"github.com/san-kum/griddlepan/internal/sim"
	"github.com/san-kum/griddlepan/internal/storage"
	"github.com/san-kum/griddlepan/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	watch      bool
	touch      bool
	resizable  bool
	noPause    bool
	logFile    string
	// sweep, jitter and compare
	sweepSteps    int
	sweepFrames   int
	trials        int
	seed          int64
	compareFrames int
	// bench
	benchRuns   int
	benchFrames int
	// svg size
	svgWidth  int
	svgHeight int
)

const demoScenario = `
name: demo
description: pointer enters, sweeps right, then leaves
steps:
  - frames: 10
    pointer_x: 50
  - frames: 60
    hover: true
  - frames: 60
    pointer_x: 200
  - frames: 30
    pointer_x: 100
  - frames: 20
    hover: false
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "griddlepan",
		Short: "pointer-driven horizontal panning",
		RunE:  runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".griddlepan", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVar(&touch, "touch", false, "emulate a touch device (native scrolling)")
	rootCmd.PersistentFlags().BoolVar(&resizable, "resizable", false, "re-measure on resize")
	rootCmd.PersistentFlags().BoolVar(&noPause, "no-pause", false, "keep panning while the pointer is outside")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "reload --config on change")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write logs to file")

	runCmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "run a scenario headless and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run offsets",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [out.svg]",
		Short: "export run offsets as an SVG plot",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 300, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				opts := p.Resolved()
				fmt.Printf("  %-8s theme=%-9s cards=%-3d pause=%-5v resizable=%-5v touch=%v\n",
					name, p.Theme, p.Strip.Cards, opts.PauseOnMouseOut, opts.IsResizable, p.Touch)
			}
			return nil
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare [easer...]",
		Short: "compare easing curves on a step input",
		RunE:  compareEasers,
	}
	compareCmd.Flags().IntVar(&compareFrames, "frames", 300, "frames per easer")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "settle time across pointer positions",
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 9, "pointer positions")
	sweepCmd.Flags().IntVar(&sweepFrames, "frames", 300, "frames per position")

	jitterCmd := &cobra.Command{
		Use:   "jitter",
		Short: "random pointer walks, checking the offset stays in range",
		RunE:  runJitter,
	}
	jitterCmd.Flags().IntVar(&trials, "trials", 20, "number of walks")
	jitterCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the headless runner",
		RunE:  benchRunner,
	}
	benchCmd.Flags().IntVar(&benchRuns, "runs", 100, "runs")
	benchCmd.Flags().IntVar(&benchFrames, "frames", 600, "frames per run")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, compareCmd, sweepCmd, jitterCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers preset, config file and flags, later ones winning.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("touch") {
		cfg.Touch = touch
	}
	if cmd.Flags().Changed("resizable") {
		cfg.Options.IsResizable = pan.Bool(resizable)
	}
	if cmd.Flags().Changed("no-pause") {
		cfg.Options.PauseOnMouseOut = pan.Bool(!noPause)
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return viz.Run(viz.RunOptions{
		Config:     cfg,
		ConfigPath: configFile,
		Watch:      watch,
		LogFile:    logFile,
	})
}

func runScenario(cmd *cobra.Command, args []string) error {
	var (
		scenario *automation.Scenario
		err      error
	)
	if len(args) == 1 {
		scenario, err = automation.LoadScenario(args[0])
	} else {
		scenario, err = automation.ParseScenario([]byte(demoScenario))
	}
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if configFile != "" || preset != "" || cmd.Flags().Changed("touch") {
		scenario.Touch = cfg.Touch
	}
	if cfg.Options.PauseOnMouseOut != nil {
		scenario.Options.PauseOnMouseOut = cfg.Options.PauseOnMouseOut
	}
	if cfg.Options.IsResizable != nil {
		scenario.Options.IsResizable = cfg.Options.IsResizable
	}
	if cfg.Options.Container != nil {
		scenario.Options.Container = cfg.Options.Container
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running scenario %s...\n", scenario.Name)
	start := time.Now()
	result, err := automation.RunScenario(context.Background(), scenario, metrics.Default())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	simCfg := scenario.Config()
	info := storage.RunInfo{
		Scenario:       scenario.Name,
		FPS:            simCfg.FrameRate,
		ContainerWidth: simCfg.ContainerWidth,
		ContentWidth:   simCfg.ContentWidth,
		Touch:          simCfg.Touch,
		Options:        storage.OptionsOf(pan.DefaultOptions().Merge(simCfg.Options)),
	}
	runID, err := st.Save(info, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d (surface writes: %d)\n", result.Frames, result.Writes)
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}

	fmt.Println("\nmetrics:")
	for _, m := range metrics.Default() {
		fmt.Printf("  %s: %.6f\n", m.Name(), result.Metrics[m.Name()])
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tFRAMES\tWIDTH\tCONTENT\tPAUSE\tRESIZE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.0f\t%.0f\t%v\t%v\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.ContainerWidth,
			run.ContentWidth,
			run.Options.PauseOnMouseOut,
			run.Options.IsResizable,
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

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(samples))

	series := export.OffsetSeries(samples)
	speeds := make([]float64, len(samples))
	for i, s := range samples {
		speeds[i] = s.Speed
	}
	series = append(series, export.Series{Name: "speed", Values: speeds})

	for _, s := range series {
		data := finiteValues(s.Values)
		if len(data) < 2 {
			fmt.Printf("%s: not enough finite samples\n\n", s.Name)
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.Name+" vs frame"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func finiteValues(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v == v && v-v == 0 {
			out = append(out, v)
		}
	}
	return out
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write([]string{"frame", "time", "target", "running", "speed", "playing"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Frame),
			strconv.FormatFloat(s.Time, 'f', 6, 64),
			strconv.FormatFloat(s.Target, 'f', 6, 64),
			strconv.FormatFloat(s.Running, 'f', 6, 64),
			strconv.FormatFloat(s.Speed, 'f', 6, 64),
			strconv.FormatBool(s.Playing),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSONStdout(meta.RunInfo, samples, meta.Metrics)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	svg := export.SamplesToSVG(samples, svgWidth, svgHeight)
	if svg == "" {
		return fmt.Errorf("run %s has no plottable samples", args[0])
	}
	if err := os.WriteFile(args[1], []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[1])
	return nil
}

func compareEasers(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	names := args
	if len(names) == 0 {
		names = registry.ListEasers()
	}

	cfg := experiment.DefaultConfig()
	cfg.Frames = compareFrames

	results, err := experiment.Compare(context.Background(), registry, names, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("step input: 0 → %.0f over %d frames at %d fps\n\n", cfg.Target, cfg.Frames, cfg.FPS)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EASER\tSETTLE (frames)\tOVERSHOOT\tFINAL")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%.0f\t%.4f\t%.4f\n", r.Name, r.SettleFrames, r.Overshoot, r.Final)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	simCfg := sim.DefaultConfig()
	simCfg.Touch = cfg.Touch
	simCfg.Options = cfg.Options.Override()
	if cfg.Options.PauseOnMouseOut == nil {
		simCfg.Options.PauseOnMouseOut = pan.Bool(false)
	}

	results, err := automation.RunSweep(context.Background(), &automation.PointerSweep{
		Config:   simCfg,
		From:     simCfg.ContainerLeft,
		To:       simCfg.ContainerLeft + simCfg.ContainerWidth,
		NumSteps: sweepSteps,
		Frames:   sweepFrames,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POINTER\tTARGET\tFINAL\tSETTLE\tOVERSHOOT")
	for _, r := range results {
		fmt.Fprintf(w, "%.1f\t%.2f\t%.2f\t%.0f\t%.4f\n", r.PointerX, r.Target, r.Final, r.SettleFrames, r.Overshoot)
	}
	return w.Flush()
}

func runJitter(cmd *cobra.Command, args []string) error {
	results, err := automation.RunJitter(context.Background(), &automation.JitterConfig{
		Config:        sim.DefaultConfig(),
		Moves:         30,
		FramesPerMove: 8,
		NumTrials:     trials,
		Seed:          seed,
	})
	if err != nil {
		return err
	}

	bounded, escaped := automation.JitterStats(results)
	fmt.Printf("bounded: %d  escaped: %d\n", bounded, escaped)
	return nil
}

func benchRunner(cmd *cobra.Command, args []string) error {
	cfg := sim.DefaultConfig()
	cfg.Options = &pan.Override{PauseOnMouseOut: pan.Bool(false)}
	x := cfg.ContainerWidth
	steps := []sim.Step{{Frames: benchFrames, PointerX: &x}}

	fmt.Printf("benchmarking %d runs of %d frames...\n", benchRuns, benchFrames)

	r := sim.New()
	start := time.Now()
	for i := 0; i < benchRuns; i++ {
		if _, err := r.Run(context.Background(), cfg, steps); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	total := benchRuns * benchFrames
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUNS\tFRAMES\tELAPSED\tFRAMES/SEC")
	fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", benchRuns, total, elapsed, float64(total)/elapsed.Seconds())
	return w.Flush()
}
