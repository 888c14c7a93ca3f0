package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/driver"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	values     string
	algorithm  string
	speed      int
	preset     string
	theme      string
	autostart  bool
	logLevel   string
	// Headless pacing overrides
	base  time.Duration
	step  time.Duration
	floor time.Duration
	quiet bool
	save  bool
	// SVG export
	svgWidth  int
	svgHeight int
	svgTrace  bool
)

// main registers every command and launches the TUI when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:          "sortviz",
		Short:        "step-by-step sorting algorithm visualizer",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&values, "values", "", "comma separated integers to sort")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "named input sequence")
	rootCmd.PersistentFlags().IntVar(&speed, "speed", session.DefaultSpeed, "animation speed (1-100)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level")
	rootCmd.Flags().StringVar(&algorithm, "algorithm", "", "preselected algorithm (bubble, selection, insertion)")
	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	rootCmd.Flags().BoolVar(&autostart, "autostart", false, "start the animation immediately")

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "animate a sort in the terminal without the TUI",
		Args:  cobra.ExactArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "do not print status lines")
	runCmd.Flags().BoolVar(&save, "save", false, "store the run record")
	runCmd.Flags().DurationVar(&base, "base", 0, "delay at speed 0")
	runCmd.Flags().DurationVar(&step, "step", 0, "delay removed per speed unit")
	runCmd.Flags().DurationVar(&floor, "floor", 0, "minimum delay")

	compareCmd := &cobra.Command{
		Use:   "compare [algorithm...]",
		Short: "run several algorithms on the same input",
		RunE:  compareAlgorithms,
	}

	algorithmsCmd := &cobra.Command{
		Use:   "algorithms",
		Short: "list available algorithms",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range sorting.NewRegistry().Names() {
				fmt.Printf("  %-10s %s\n", name, name.Title())
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list input presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Printf("  %-14s %s\n", name, config.FormatValues(config.GetPreset(name)))
			}
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot inversions over a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the step trace as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the final bars of a run, or its inversion trace, as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")
	exportSVGCmd.Flags().BoolVar(&svgTrace, "trace", false, "plot inversions per event instead of bars")
	exportSVGCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario of headless sorts",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	rootCmd.AddCommand(runCmd, compareCmd, algorithmsCmd, presetsCmd, listCmd, plotCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, scenarioCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig loads the config file, if any, and applies flags the user set.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("preset") {
		v := config.GetPreset(preset)
		if v == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
		cfg.Values = v
	}
	if flags.Changed("values") {
		v := config.ParseValues(values)
		if len(v) == 0 {
			return nil, fmt.Errorf("no integers in %q", values)
		}
		cfg.Values = v
	}
	if flags.Changed("algorithm") {
		cfg.Algorithm = algorithm
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("base") {
		cfg.Pacing.Base = base
	}
	if flags.Changed("step") {
		cfg.Pacing.Step = step
	}
	if flags.Changed("floor") {
		cfg.Pacing.Floor = floor
	}
	if len(cfg.Values) == 0 {
		cfg.Values = config.GetPreset("classic")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// prepare installs the configured sequence, speed and algorithm.
func prepare(d *driver.Driver, cfg *config.Config) error {
	sess := d.Session()
	if err := sess.SetSequence(cfg.Values); err != nil {
		return err
	}
	sess.SetSpeed(cfg.Speed)
	sess.SetStatus(driver.StatusReady)

	algo, err := cfg.SelectedAlgorithm()
	if err != nil {
		return err
	}
	if algo != session.AlgorithmNone {
		return d.Select(algo)
	}
	return nil
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Open(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeLog()

	n := viz.NewNotifier()
	d, err := driver.Setup(n, cfg.Curve(), nil, driver.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := prepare(d, cfg); err != nil {
		return err
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	err = viz.Run(ctx, d, n, viz.Options{Theme: cfg.Theme, Autostart: autostart})
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func printTable(header string, rows func(w *tabwriter.Writer)) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, header)
	rows(w)
	return w.Flush()
}
