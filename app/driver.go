// Package app orchestrates a complete enumeration run: load the dataset,
// run the threshold pass, run the significance pass against a reporting
// sink, and assemble a human-readable summary. This mirrors the teacher's
// app/ services, which own orchestration and centralize what gets reported
// for a run (see app/stage_runner.go in the teacher repo).
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"gohypo-sis/domain/core"
	"gohypo-sis/domain/dataset"
	"gohypo-sis/domain/interval"
	"gohypo-sis/internal/engine"
	"gohypo-sis/ports"
)

// Summary reports everything about a completed run worth showing a user:
// dataset shape, both passes' traversal statistics, the corrected
// threshold, and wall-clock timing. Timing is ambient bookkeeping, not
// part of the enumeration semantics.
type Summary struct {
	RunID core.RunID

	N, L, K int
	Nt, Nt2 []int // per-stratum totals and positive counts (Nt2 holds positives)

	Alpha float64
	LMax  int

	Pass1 engine.Stats
	Pass2 engine.Stats

	// LatticeSize is the full interval lattice L*(L+1)/2, the denominator
	// the original's output_significance_threshold uses when it reports
	// what fraction of the lattice a pass actually visited.
	LatticeSize    int64
	Pass1PrunedPct float64
	Pass2PrunedPct float64

	M               int64
	Pth             float64
	DeltaStar       float64
	DeltaStarValid  bool
	TestablePValues int

	MeanTestablePValue   float64
	StdDevTestablePValue float64

	Pass1Duration time.Duration
	Pass2Duration time.Duration
	StartedAt     core.Timestamp
	FinishedAt    core.Timestamp
}

// Driver wires the numeric kernels to the enumeration engine and a
// reporting sink for one run.
type Driver struct {
	ChiSquare ports.ChiSquareSurvival
}

// NewDriver builds a Driver over the given chi-squared survival function
// implementation (see adapters/chisquare).
func NewDriver(chisq ports.ChiSquareSurvival) *Driver {
	return &Driver{ChiSquare: chisq}
}

// Run executes both passes of spec §4.4 over ds and reports to sink.
// emitTestable controls whether pass 2 also streams every testable
// interval's p-value to sink, in addition to significant intervals.
func (d *Driver) Run(ctx context.Context, ds *dataset.Dataset, alpha float64, lMax int, sink ports.ReportingSink, emitTestable bool) (*Summary, error) {
	runID := core.NewRunID()
	started := core.Now()

	eng, err := engine.New(ds, d.ChiSquare, alpha, lMax)
	if err != nil {
		return nil, fmt.Errorf("initializing engine: %w", err)
	}

	pass1Start := time.Now()
	pass1Stats := eng.RunThresholdPass()
	pass1Duration := time.Since(pass1Start)

	threshold := eng.Threshold()
	deltaStar, ok := threshold.DeltaStar()

	collector := &testableCollector{inner: sink}
	pass2Start := time.Now()
	pass2Stats, err := eng.RunSignificancePass(collector, emitTestable, deltaStar)
	pass2Duration := time.Since(pass2Start)
	if err != nil {
		return nil, fmt.Errorf("significance pass: %w", err)
	}

	histBuckets := buildHistogram(threshold.Histogram())
	if err := sink.Histogram(histBuckets); err != nil {
		return nil, fmt.Errorf("writing histogram: %w", err)
	}

	nt := make([]int, ds.K)
	positives := make([]int, ds.K)
	for i, s := range ds.Strata {
		nt[i] = s.N()
		positives[i] = s.Positives()
	}

	latticeSize := int64(ds.L) * int64(ds.L+1) / 2

	summary := &Summary{
		RunID:           runID,
		N:               ds.N,
		L:               ds.L,
		K:               ds.K,
		Nt:              nt,
		Nt2:             positives,
		Alpha:           alpha,
		LMax:            lMax,
		Pass1:           pass1Stats,
		Pass2:           pass2Stats,
		LatticeSize:     latticeSize,
		Pass1PrunedPct:  prunedPercent(pass1Stats.IntervalsProcessed, latticeSize),
		Pass2PrunedPct:  prunedPercent(pass2Stats.IntervalsProcessed, latticeSize),
		M:               threshold.M(),
		Pth:             threshold.Pth(),
		DeltaStar:       deltaStar,
		DeltaStarValid:  ok,
		TestablePValues: len(collector.testable),
		Pass1Duration:   pass1Duration,
		Pass2Duration:   pass2Duration,
		StartedAt:       started,
		FinishedAt:      core.Now(),
	}

	if len(collector.testable) > 0 {
		if mean, err := stats.Mean(collector.testable); err == nil {
			summary.MeanTestablePValue = mean
		}
		if sd, err := stats.StandardDeviation(collector.testable); err == nil {
			summary.StdDevTestablePValue = sd
		}
	}

	return summary, nil
}

// testableCollector wraps a sink to additionally capture every testable
// p-value in memory, for the summary's descriptive statistics
// (montanaflynn/stats, per the driver's ambient reporting, not the
// engine's enumeration semantics).
type testableCollector struct {
	inner    ports.ReportingSink
	testable []float64
}

func (c *testableCollector) TestablePValue(rec interval.Result) error {
	c.testable = append(c.testable, rec.PValue)
	return c.inner.TestablePValue(rec)
}

func (c *testableCollector) SignificantInterval(rec interval.Result) error {
	return c.inner.SignificantInterval(rec)
}

func (c *testableCollector) Histogram(buckets []interval.HistogramBucket) error {
	return nil // the driver writes the histogram once, from pass 1's grid
}

// prunedPercent reports the percentage of the full lattice Tarone pruning
// skipped: 100 * (1 - visited/total), mirroring the original's
// output_significance_threshold reporting of n_intervals_processed against
// the full L*(L+1)/2 lattice.
func prunedPercent(visited, total int64) float64 {
	if total == 0 {
		return 0
	}
	return 100 * (1 - float64(visited)/float64(total))
}

func buildHistogram(counts []int64) []interval.HistogramBucket {
	buckets := make([]interval.HistogramBucket, 0, len(counts))
	for i, c := range counts {
		buckets = append(buckets, interval.HistogramBucket{Index: i, Count: c})
	}
	return buckets
}

// Text renders a plain-text run summary, in the teacher's terse
// %-formatted reporting style.
func (s *Summary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s\n", s.RunID)
	fmt.Fprintf(&b, "N=%d L=%d K=%d alpha=%g L_max=%d\n", s.N, s.L, s.K, s.Alpha, s.LMax)
	for k := range s.Nt {
		fmt.Fprintf(&b, "  stratum %d: Nt=%d nt=%d\n", k, s.Nt[k], s.Nt2[k])
	}
	fmt.Fprintf(&b, "pass 1: intervals processed=%d max layer=%d layer cap hit=%v pruned=%.2f%% (%s)\n",
		s.Pass1.IntervalsProcessed, s.Pass1.MaxLayer, s.Pass1.LayerCapHit, s.Pass1PrunedPct, s.Pass1Duration)
	fmt.Fprintf(&b, "pass 2: intervals processed=%d max layer=%d layer cap hit=%v pruned=%.2f%% (%s)\n",
		s.Pass2.IntervalsProcessed, s.Pass2.MaxLayer, s.Pass2.LayerCapHit, s.Pass2PrunedPct, s.Pass2Duration)
	fmt.Fprintf(&b, "m=%d final pth=%g\n", s.M, s.Pth)
	if s.DeltaStarValid {
		fmt.Fprintf(&b, "delta* = alpha/m = %g\n", s.DeltaStar)
	} else {
		fmt.Fprintf(&b, "delta* undefined: m=0, no testable intervals\n")
	}
	if s.TestablePValues > 0 {
		fmt.Fprintf(&b, "testable p-values: n=%d mean=%g stddev=%g\n",
			s.TestablePValues, s.MeanTestablePValue, s.StdDevTestablePValue)
	}
	return b.String()
}

// Markdown renders the same summary as markdown, for adapters/sink's
// optional HTML report.
func (s *Summary) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Run %s\n\n", s.RunID)
	fmt.Fprintf(&b, "- N=%d, L=%d, K=%d, alpha=%g, L_max=%d\n", s.N, s.L, s.K, s.Alpha, s.LMax)
	fmt.Fprintf(&b, "- pass 1: %d intervals, max layer %d, %.2f%% pruned, %s\n", s.Pass1.IntervalsProcessed, s.Pass1.MaxLayer, s.Pass1PrunedPct, s.Pass1Duration)
	fmt.Fprintf(&b, "- pass 2: %d intervals, max layer %d, %.2f%% pruned, %s\n", s.Pass2.IntervalsProcessed, s.Pass2.MaxLayer, s.Pass2PrunedPct, s.Pass2Duration)
	fmt.Fprintf(&b, "- m=%d, final pth=%g\n", s.M, s.Pth)
	if s.DeltaStarValid {
		fmt.Fprintf(&b, "- delta* = %g\n", s.DeltaStar)
	} else {
		fmt.Fprintf(&b, "- delta* undefined (m=0)\n")
	}
	return b.String()
}
