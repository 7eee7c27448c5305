package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gohypo-sis/adapters/chisquare"
	"gohypo-sis/domain/interval"
	"gohypo-sis/internal/testkit"
)

type nullSink struct{}

func (nullSink) TestablePValue(interval.Result) error      { return nil }
func (nullSink) SignificantInterval(interval.Result) error { return nil }
func (nullSink) Histogram([]interval.HistogramBucket) error { return nil }

// TestDriverDeltaStarMatchesThreshold is spec §8 property 5: the summary's
// reported delta-star must equal alpha/m for the m the run actually found.
func TestDriverDeltaStarMatchesThreshold(t *testing.T) {
	c := testkit.PerfectSeparator()
	ds, err := c.Build()
	require.NoError(t, err)

	driver := NewDriver(chisquare.Gonum{})
	summary, err := driver.Run(context.Background(), ds, 0.05, 1, nullSink{}, false)
	require.NoError(t, err)

	require.True(t, summary.DeltaStarValid)
	assert.InDelta(t, 0.05/float64(summary.M), summary.DeltaStar, 1e-12)
}

func TestDriverReportsDeltaStarUndefinedWhenNothingTestable(t *testing.T) {
	c := testkit.DegenerateSingleStratum()
	ds, err := c.Build()
	require.NoError(t, err)

	driver := NewDriver(chisquare.Gonum{})
	summary, err := driver.Run(context.Background(), ds, 0.05, 0, nullSink{}, false)
	require.NoError(t, err)

	assert.False(t, summary.DeltaStarValid)
	assert.Equal(t, int64(0), summary.M)
	assert.Contains(t, summary.Text(), "delta* undefined")
}

// TestDriverReportsPrunedPercentAgainstFullLattice is grounded in the
// original's output_significance_threshold, which reports how much of the
// full L*(L+1)/2 lattice Tarone pruning skipped.
func TestDriverReportsPrunedPercentAgainstFullLattice(t *testing.T) {
	c := testkit.PerfectSeparator()
	ds, err := c.Build()
	require.NoError(t, err)

	driver := NewDriver(chisquare.Gonum{})
	summary, err := driver.Run(context.Background(), ds, 0.05, 0, nullSink{}, false)
	require.NoError(t, err)

	wantLattice := int64(ds.L) * int64(ds.L+1) / 2
	assert.Equal(t, wantLattice, summary.LatticeSize)
	assert.GreaterOrEqual(t, summary.Pass1PrunedPct, 0.0)
	assert.LessOrEqual(t, summary.Pass1PrunedPct, 100.0)
	assert.GreaterOrEqual(t, summary.Pass2PrunedPct, 0.0)
	assert.LessOrEqual(t, summary.Pass2PrunedPct, 100.0)
	assert.Contains(t, summary.Text(), "pruned=")
	assert.Contains(t, summary.Markdown(), "pruned")
}

func TestDriverAssignsRunID(t *testing.T) {
	c := testkit.PerfectSeparator()
	ds, err := c.Build()
	require.NoError(t, err)

	driver := NewDriver(chisquare.Gonum{})
	summary, err := driver.Run(context.Background(), ds, 0.05, 0, nullSink{}, false)
	require.NoError(t, err)
	assert.False(t, summary.RunID.IsEmpty())
}
