package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sortviz/internal/automation"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/export"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/viz"
	"github.com/spf13/cobra"
)

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

	return printTable("ID\tALGORITHM\tTIME\tLEN\tSTEPS\tCOMPLETED", func(w *tabwriter.Writer) {
		for _, run := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%t\n",
				run.ID,
				run.Algorithm,
				run.Timestamp.Format("2006-01-02 15:04:05"),
				len(run.Initial),
				run.Steps,
				run.Completed,
			)
		}
	})
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	steps, err := st.LoadSteps(runID)
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("algorithm: %s\n", meta.Algorithm)
	fmt.Printf("events: %d\n\n", len(steps))

	data := make([]float64, len(steps))
	for i, s := range steps {
		data[i] = float64(s.Inversions)
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("inversions per event"),
	)
	fmt.Println(graph)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).CopySteps(os.Stdout, args[0])
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	if svgTrace {
		steps, err := st.LoadSteps(runID)
		if err != nil {
			return err
		}
		data := make([]float64, len(steps))
		for i, s := range steps {
			data[i] = float64(s.Inversions)
		}
		svg := export.SeriesToSVG(data, svgWidth, svgHeight, string(viz.GetTheme(theme).Primary))
		if svg == "" {
			return fmt.Errorf("not enough events to plot")
		}
		fmt.Println(svg)
		return nil
	}

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	tag := session.Default
	if meta.Completed {
		tag = session.Sorted
	}
	tags := make([]session.Tag, len(meta.Final))
	for i := range tags {
		tags[i] = tag
	}
	fmt.Println(export.BarsToSVG(meta.Final, tags, viz.GetTheme(theme), svgWidth, svgHeight))
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	r := &automation.Runner{
		Curve:  cfg.Curve(),
		Store:  storage.New(cfg.DataDir),
		Logger: logging.New(os.Stderr, level),
	}
	results, runErr := r.Run(ctx, scenario)

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Printf("%s\n", scenario.Description)
	}
	fmt.Println()
	err = printTable("STEP\tALGORITHM\tFINAL\tSTEPS\tELAPSED\tRUN", func(w *tabwriter.Writer) {
		for i, sr := range results {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n",
				i+1,
				sr.Result.Algorithm.Title(),
				config.FormatValues(sr.Result.Final),
				sr.Result.Steps,
				sr.Result.Elapsed.Round(time.Millisecond),
				sr.RunID,
			)
		}
	})
	if runErr != nil {
		return runErr
	}
	return err
}
