package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/driver"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/pacing"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// statusPrinter writes every status line as its own output line.
type statusPrinter struct {
	w io.Writer
}

func (p statusPrinter) OnChange(c session.Change) {
	if c.Kind == session.ChangeStatus {
		fmt.Fprintln(p.w, c.Snapshot.Status)
	}
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Algorithm = args[0]
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, level)

	var printer session.Observer
	if !quiet {
		printer = statusPrinter{w: os.Stdout}
	}
	rec := storage.NewRecorder()

	d, err := driver.Setup(session.Tee(printer, rec), cfg.Curve(), nil, driver.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := prepare(d, cfg); err != nil {
		return err
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	res, err := d.Run(ctx)
	if res == nil {
		return err
	}

	fmt.Println()
	fmt.Printf("algorithm:   %s\n", res.Algorithm.Title())
	fmt.Printf("initial:     %s\n", config.FormatValues(res.Initial))
	fmt.Printf("final:       %s\n", config.FormatValues(res.Final))
	fmt.Printf("completed:   %t\n", res.Completed)
	fmt.Printf("steps:       %d\n", res.Steps)
	fmt.Printf("comparisons: %.0f\n", res.Metrics[metrics.NameComparisons])
	fmt.Printf("exchanges:   %.0f\n", res.Metrics[metrics.NameExchanges])
	fmt.Printf("elapsed:     %s\n", res.Elapsed.Round(time.Millisecond))

	if save {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, serr := st.Save(storage.FromResult(res, cfg.Speed), rec.Steps())
		if serr != nil {
			return serr
		}
		fmt.Printf("saved:       %s\n", runID)
	}
	return err
}

func compareAlgorithms(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := sorting.NewRegistry()
	names := registry.Names()
	if len(args) > 0 {
		names = names[:0]
		for _, arg := range args {
			name, err := session.ParseAlgorithm(arg)
			if err != nil {
				return err
			}
			names = append(names, name)
		}
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, level)

	ctx, stop := signalContext(cmd)
	defer stop()

	results := make([]*driver.Result, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			d, err := driver.Setup(nil, pacing.Instant, nil,
				driver.WithLogger(logger.With("algorithm", string(name))),
				driver.WithRegistry(registry))
			if err != nil {
				return err
			}
			if err := d.Session().SetSequence(cfg.Values); err != nil {
				return err
			}
			if err := d.Session().SetAlgorithm(name); err != nil {
				return err
			}
			res, err := d.Run(gctx)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("comparing %d algorithms on %s\n\n", len(names), config.FormatValues(cfg.Values))
	return printTable("ALGORITHM\tCOMPARISONS\tEXCHANGES\tSTEPS\tSORTED", func(w *tabwriter.Writer) {
		for _, res := range results {
			fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%d\t%t\n",
				res.Algorithm.Title(),
				res.Metrics[metrics.NameComparisons],
				res.Metrics[metrics.NameExchanges],
				res.Steps,
				session.IsSorted(res.Final),
			)
		}
	})
}
