// Command sis is the significant-interval-search CLI: it loads a dataset,
// runs the two-pass enumeration, and writes reporting artifacts.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gohypo-sis/adapters/chisquare"
	"gohypo-sis/adapters/sink"
	"gohypo-sis/app"
	"gohypo-sis/internal"
	"gohypo-sis/internal/config"
	"gohypo-sis/internal/kernel"
	"gohypo-sis/internal/loader"
	"gohypo-sis/internal/testkit"
	"gohypo-sis/ports"
)

var log = internal.NewDefaultLogger()

func main() {
	rootCmd := &cobra.Command{
		Use:   "sis",
		Short: "Significant interval search over binary sequences with Fisher's exact test and Tarone pruning",
	}

	rootCmd.AddCommand(newScanCmd(), newDemoCmd(), newPsiCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newScanCmd() *cobra.Command {
	var alpha float64
	var lMax int
	var datasetFile, labelsFile, covariatesFile string
	var outputDir, pvaluesFile string
	var emitTestable, emitXLSX, emitHTML bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run the two-pass enumeration over the configured input files",
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := config.Overrides{
				DatasetFile:    datasetFile,
				LabelsFile:     labelsFile,
				CovariatesFile: covariatesFile,
				OutputDir:      outputDir,
				PValuesFile:    pvaluesFile,
			}
			if cmd.Flags().Changed("alpha") {
				overrides.Alpha = &alpha
			}
			if cmd.Flags().Changed("l-max") {
				overrides.LMax = &lMax
			}
			if cmd.Flags().Changed("emit-testable") {
				overrides.EmitTestable = &emitTestable
			}
			if cmd.Flags().Changed("emit-xlsx") {
				overrides.EmitXLSX = &emitXLSX
			}
			if cmd.Flags().Changed("emit-html") {
				overrides.EmitHTML = &emitHTML
			}
			return runScan(cmd.Context(), overrides)
		},
	}

	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "target family-wise error rate")
	cmd.Flags().IntVar(&lMax, "l-max", 0, "maximum interval length, 0 disables the cap")
	cmd.Flags().StringVar(&datasetFile, "dataset-file", "", "path to the binary sequence matrix file")
	cmd.Flags().StringVar(&labelsFile, "labels-file", "", "path to the binary outcome labels file")
	cmd.Flags().StringVar(&covariatesFile, "covariates-file", "", "path to the per-stratum sizes file")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory to write report artifacts to")
	cmd.Flags().BoolVar(&emitTestable, "emit-testable", false, "also report every testable interval's p-value")
	cmd.Flags().BoolVar(&emitXLSX, "emit-xlsx", false, "also write significant.xlsx")
	cmd.Flags().BoolVar(&emitHTML, "emit-html", false, "also write summary.html")
	cmd.Flags().StringVar(&pvaluesFile, "pvalues-file", "", "custom path for the testable p-values CSV, implies --emit-testable (mirrors the original's -pval_file)")

	return cmd
}

func runScan(ctx context.Context, overrides config.Overrides) error {
	cfg, err := config.LoadWithOverrides(overrides)
	if err != nil {
		log.Error("loading configuration: %v", err)
		return fmt.Errorf("loading configuration: %w", err)
	}

	log.Info("loading dataset from %s", cfg.Paths.DatasetFile)
	ds, err := loader.Load(ctx, loader.Paths{
		DatasetFile:    cfg.Paths.DatasetFile,
		LabelsFile:     cfg.Paths.LabelsFile,
		CovariatesFile: cfg.Paths.CovariatesFile,
	})
	if err != nil {
		log.Error("loading dataset: %v", err)
		return fmt.Errorf("loading dataset: %w", err)
	}
	log.Debug("dataset loaded: N=%d L=%d K=%d", ds.N, ds.L, ds.K)

	csvSink, err := sink.NewCSV(cfg.Output.Dir, cfg.Output.EmitTestable, cfg.Output.TestablePath)
	if err != nil {
		return fmt.Errorf("opening output files: %w", err)
	}
	defer csvSink.Close()

	reportSink := sink.Multi{Sinks: []ports.ReportingSink{csvSink}}

	var xlsx *sink.XLSX
	if cfg.Output.EmitXLSX {
		xlsx = sink.NewXLSX(cfg.Output.Dir + "/significant.xlsx")
		reportSink.Sinks = append(reportSink.Sinks, xlsx)
	}

	log.Info("starting two-pass enumeration: alpha=%g lMax=%d", cfg.Run.Alpha, cfg.Run.LMax)
	driver := app.NewDriver(chisquare.Gonum{})
	summary, err := driver.Run(ctx, ds, cfg.Run.Alpha, cfg.Run.LMax, reportSink, cfg.Output.EmitTestable)
	if err != nil {
		log.Error("running scan: %v", err)
		return fmt.Errorf("running scan: %w", err)
	}
	log.Info("enumeration finished: pass1=%d intervals, pass2=%d intervals, delta*=%g",
		summary.Pass1.IntervalsProcessed, summary.Pass2.IntervalsProcessed, summary.DeltaStar)
	if summary.Pass1.LayerCapHit || summary.Pass2.LayerCapHit {
		log.Warn("maximum interval length l=%d reached, stopping enumeration", cfg.Run.LMax)
	}

	if xlsx != nil {
		if err := xlsx.Close(); err != nil {
			return fmt.Errorf("writing xlsx: %w", err)
		}
	}

	fmt.Print(summary.Text())

	if err := os.WriteFile(cfg.Output.Dir+"/summary.txt", []byte(summary.Text()), 0o644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	if cfg.Output.EmitHTMLSummary {
		if err := sink.WriteHTMLSummary(cfg.Output.Dir+"/summary.html", summary.Markdown()); err != nil {
			return fmt.Errorf("writing html summary: %w", err)
		}
	}

	return nil
}

func newDemoCmd() *cobra.Command {
	var seed int64
	var n, l int
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the engine on a reproducible synthetic dataset with a planted signal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), seed, n, l)
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 42, "RNG seed")
	cmd.Flags().IntVar(&n, "n", 40, "number of observations")
	cmd.Flags().IntVar(&l, "l", 20, "sequence length")
	return cmd
}

func runDemo(ctx context.Context, seed int64, n, l int) error {
	gen := testkit.NewGenerator(testkit.RandomConfig{
		N: n, L: l,
		NtPerStratum: []int{n / 2, n - n/2},
		Seed:         seed,
		PlantStart:   l / 2,
		PlantLength:  1,
	})
	ds, err := gen.Dataset()
	if err != nil {
		return fmt.Errorf("generating demo dataset: %w", err)
	}
	log.Debug("demo dataset generated: seed=%d N=%d L=%d", seed, n, l)

	driver := app.NewDriver(chisquare.Gonum{})
	summary, err := driver.Run(ctx, ds, 0.05, 0, sink.Multi{}, false)
	if err != nil {
		return fmt.Errorf("running demo: %w", err)
	}
	fmt.Print(summary.Text())
	return nil
}

func newPsiCmd() *cobra.Command {
	var n, x int
	cmd := &cobra.Command{
		Use:   "psi",
		Short: "Print the natural log of the minimum attainable p-value table for a stratum of size n with x positives",
		RunE: func(cmd *cobra.Command, args []string) error {
			table := kernel.BuildLogPsi(x, n)
			for i, v := range table {
				fmt.Printf("%d\t%g\n", i, v)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "n", 10, "stratum size")
	cmd.Flags().IntVar(&x, "x", 5, "stratum positives")
	return cmd
}
