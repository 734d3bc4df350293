package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/lenzsim/internal/analysis"
	"github.com/san-kum/lenzsim/internal/config"
	"github.com/san-kum/lenzsim/internal/dynamo"
	"github.com/san-kum/lenzsim/internal/force"
	"github.com/san-kum/lenzsim/internal/integrators"
	"github.com/san-kum/lenzsim/internal/metrics"
	"github.com/san-kum/lenzsim/internal/optim"
	"github.com/san-kum/lenzsim/internal/scenario"
	"github.com/san-kum/lenzsim/internal/sim"
	"github.com/san-kum/lenzsim/internal/store"
	"github.com/san-kum/lenzsim/internal/viz"
)

var (
	dataDir    string
	dt         float64
	tMax       float64
	q0         float64
	qMin       float64
	qMax       float64
	tol        float64
	integrator string
	tablePath  string
	tableCol   int
	lenzScale  float64
	configFile string
	preset     string
	// live view
	frameRate int
	// sweep
	sweepTarget    float64
	sweepThreshold float64
	sweepLo        float64
	sweepHi        float64
	sweepSteps     int
	// svg export
	svgOut string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lenzsim",
		Short: "eddy-current braking dynamics simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".lenzsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [scenario]",
		Short: "plot the run with and without the magnet",
		Args:  cobra.ExactArgs(1),
		RunE:  compareMagnet,
	}
	addRunFlags(compareCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "oscillation frequency and damping estimate",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "grid-search the magnet strength for a target stopping time",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepScale,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepTarget, "target", 2.0, "target stopping time (s)")
	sweepCmd.Flags().Float64Var(&sweepThreshold, "threshold", 1e-3, "speed threshold for 'stopped'")
	sweepCmd.Flags().Float64Var(&sweepLo, "lo", 0.1, "lowest scale factor")
	sweepCmd.Flags().Float64Var(&sweepHi, "hi", 10.0, "highest scale factor")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 25, "grid points")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write run trajectory CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write run data as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render run curves to an SVG file",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output path (default <run_id>.svg)")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run simulation with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, compareCmd, listCmd, plotCmd, phaseCmd, analyzeCmd,
		sweepCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", 0.01, "output sampling step")
	cmd.Flags().Float64Var(&tMax, "time", 0, "time horizon (0 = scenario default)")
	cmd.Flags().Float64Var(&q0, "q0", 0, "initial dof value (scenario default unless set)")
	cmd.Flags().Float64Var(&qMin, "qmin", 0, "lower domain bound (scenario default unless set)")
	cmd.Flags().Float64Var(&qMax, "qmax", 0, "upper domain bound (scenario default unless set)")
	cmd.Flags().Float64Var(&tol, "tol", 1e-6, "integration tolerance")
	cmd.Flags().StringVar(&integrator, "integrator", "adams", "integrator (adams, rk4, euler)")
	cmd.Flags().StringVar(&tablePath, "table", "", "tabulated lenz force file")
	cmd.Flags().IntVar(&tableCol, "col", 1, "force column in the table file")
	cmd.Flags().Float64Var(&lenzScale, "scale", 1.0, "lenz coefficient scale factor")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

type runSetup struct {
	name    string
	sc      scenario.Scenario
	fm      dynamo.ForceModel
	params  sim.Params
	isAngle bool
	integ   string
}

// buildSetup resolves preset, config file, and flags (in increasing
// precedence) into a runnable setup.
func buildSetup(cmd *cobra.Command, name string) (*runSetup, error) {
	registry := scenario.NewRegistry()
	sc, err := registry.Get(name)
	if err != nil {
		return nil, err
	}

	p := sc.Defaults
	p.Tol = tol
	isAngle := sc.IsAngle
	integ := integrator
	scale := lenzScale
	table := tablePath
	col := tableCol

	apply := func(cfg *config.Config) {
		if !cmd.Flags().Changed("dt") && cfg.Dt > 0 {
			p.Dt = cfg.Dt
		}
		if !cmd.Flags().Changed("time") && cfg.TMax > 0 {
			p.TMax = cfg.TMax
		}
		if !cmd.Flags().Changed("q0") && cfg.Q0 != nil {
			p.Q0 = *cfg.Q0
		}
		if !cmd.Flags().Changed("qmin") && cfg.QMin != nil {
			p.QMin = *cfg.QMin
		}
		if !cmd.Flags().Changed("qmax") && cfg.QMax != nil {
			p.QMax = *cfg.QMax
		}
		if !cmd.Flags().Changed("tol") && cfg.Tol > 0 {
			p.Tol = cfg.Tol
		}
		if !cmd.Flags().Changed("integrator") && cfg.Integrator != "" {
			integ = cfg.Integrator
		}
		if !cmd.Flags().Changed("scale") && cfg.Lenz.Scale != nil {
			scale = *cfg.Lenz.Scale
		}
		if !cmd.Flags().Changed("table") && cfg.Lenz.Table != "" {
			table = cfg.Lenz.Table
		}
		if !cmd.Flags().Changed("col") && cfg.Lenz.Column > 0 {
			col = cfg.Lenz.Column
		}
		if cfg.IsAngle != nil {
			isAngle = *cfg.IsAngle
		}
	}

	if preset != "" {
		cfg := config.GetPreset(name, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
		apply(cfg)
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		apply(cfg)
	}

	if cmd.Flags().Changed("dt") {
		p.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		p.TMax = tMax
	}
	if cmd.Flags().Changed("q0") {
		p.Q0 = q0
	}
	if cmd.Flags().Changed("qmin") {
		p.QMin = qMin
	}
	if cmd.Flags().Changed("qmax") {
		p.QMax = qMax
	}

	var tb *force.Table
	if table != "" {
		tb, err = force.LoadTable(table, col)
		if err != nil {
			return nil, err
		}
	}

	return &runSetup{
		name:    name,
		sc:      sc,
		fm:      sc.Model(tb, scale),
		params:  p,
		isAngle: isAngle,
		integ:   integ,
	}, nil
}

func newAdvancer(name string) (func() dynamo.Advancer, error) {
	switch name {
	case "adams":
		return func() dynamo.Advancer { return integrators.NewAdams() }, nil
	case "rk4":
		return func() dynamo.Advancer { return integrators.NewDoubling(integrators.NewRK4()) }, nil
	case "euler":
		return func() dynamo.Advancer { return integrators.NewDoubling(integrators.NewEuler()) }, nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

func defaultMetrics(fm dynamo.ForceModel) []metrics.Metric {
	return []metrics.Metric{
		metrics.NewPeakSpeed(),
		metrics.NewStoppingTime(1e-3),
		metrics.NewDisplacement(),
		metrics.NewLenzDissipation(fm),
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	setup, err := buildSetup(cmd, args[0])
	if err != nil {
		return err
	}

	advFn, err := newAdvancer(setup.integ)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s simulation...\n", setup.name)
	start := time.Now()

	traj, err := sim.New(advFn()).Solve(context.Background(), setup.fm, setup.params)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	vals := metrics.Apply(traj, defaultMetrics(setup.fm)...)

	runID, err := st.Save(setup.name, setup.integ, setup.params, setup.isAngle, setup.fm, traj, vals)
	if err != nil {
		return err
	}

	tEnd, _, _ := traj.Last()
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d (final t=%.4f)\n", traj.Len(), tEnd)
	if tEnd < setup.params.TMax {
		fmt.Println("terminated early (domain exit or stepper stop)")
	}
	fmt.Println("\nmetrics:")
	for name, val := range vals {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func compareMagnet(cmd *cobra.Command, args []string) error {
	setup, err := buildSetup(cmd, args[0])
	if err != nil {
		return err
	}

	advFn, err := newAdvancer(setup.integ)
	if err != nil {
		return err
	}

	with, without, err := sim.New(advFn()).CompareMagnet(context.Background(), setup.fm, setup.params)
	if err != nil {
		return err
	}

	fmt.Println(viz.PlotComparison(with, without, setup.fm, setup.isAngle))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tT_MAX\tDT\tSAMPLES\tINTEG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.TMax,
			run.Dt,
			run.Samples,
			run.Integrator,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	traj, meta, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	if traj.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", traj.Len())
	fmt.Println(viz.PlotTrajectory(traj, meta.IsAngle))
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	traj, meta, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s  (dof vs velocity)\n\n", meta.ID)
	fmt.Println(analysis.PhaseToASCII(traj, 80, 24))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	traj, meta, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	freq := analysis.DominantFrequency(traj)
	zeta := analysis.DampingRatio(traj)

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("dominant frequency: %.4f Hz\n", freq)
	fmt.Printf("damping ratio: %.4f\n", zeta)
	return nil
}

func sweepScale(cmd *cobra.Command, args []string) error {
	setup, err := buildSetup(cmd, args[0])
	if err != nil {
		return err
	}

	advFn, err := newAdvancer(setup.integ)
	if err != nil {
		return err
	}

	ens := sim.NewEnsemble(setup.fm, advFn)
	gs := optim.NewGridSearch(sweepLo, sweepHi, sweepSteps)

	fmt.Printf("sweeping lenz scale over [%g, %g] (%d points)...\n", sweepLo, sweepHi, sweepSteps)
	best, val, err := gs.Search(context.Background(), ens, setup.params,
		optim.StoppingTimeTarget(sweepTarget, sweepThreshold))
	if err != nil {
		return err
	}

	fmt.Printf("best scale: %.4f (|stopping_time - %.2fs| = %.4f)\n", best, sweepTarget, val)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	path := filepath.Join(dataDir, args[0], "trajectory.csv")
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(os.Stdout, f)
	return err
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	traj, meta, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return store.ExportJSON(os.Stdout, meta, traj)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	traj, _, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	out := svgOut
	if out == "" {
		out = args[0] + ".svg"
	}
	if err := store.ExportSVGFile(out, traj); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	setup, err := buildSetup(cmd, args[0])
	if err != nil {
		return err
	}

	advFn, err := newAdvancer(setup.integ)
	if err != nil {
		return err
	}

	return viz.RunLive(setup.fm, advFn(), setup.params, setup.isAngle, frameRate)
}
