package sink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gohypo-sis/domain/interval"
)

func TestCSVWritesSignificantAndTestable(t *testing.T) {
	dir := t.TempDir()
	c, err := NewCSV(dir, true, "")
	require.NoError(t, err)

	require.NoError(t, c.TestablePValue(interval.Result{Length: 2, Start: 1, PValue: 0.03}))
	require.NoError(t, c.SignificantInterval(interval.Result{Length: 2, Start: 1, PValue: 0.03}))
	require.NoError(t, c.Histogram([]interval.HistogramBucket{{Index: 0, Count: 5}}))
	require.NoError(t, c.Close())

	sig, err := os.ReadFile(filepath.Join(dir, "significant.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(sig), "l,tau,P-value")
	assert.Contains(t, string(sig), "2,1,")

	testable, err := os.ReadFile(filepath.Join(dir, "testable.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(testable), "2,1,")

	hist, err := os.ReadFile(filepath.Join(dir, "histogram.tsv"))
	require.NoError(t, err)
	assert.Contains(t, string(hist), "0\t5")
}

func TestCSVSkipsTestableFileWhenDisabled(t *testing.T) {
	dir := t.TempDir()
	c, err := NewCSV(dir, false, "")
	require.NoError(t, err)
	require.NoError(t, c.TestablePValue(interval.Result{Length: 1, Start: 0, PValue: 0.5}))
	require.NoError(t, c.Close())

	_, err = os.Stat(filepath.Join(dir, "testable.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestCSVHonorsCustomTestablePath(t *testing.T) {
	dir := t.TempDir()
	customPath := filepath.Join(dir, "custom-pvalues.csv")
	c, err := NewCSV(dir, true, customPath)
	require.NoError(t, err)
	require.NoError(t, c.TestablePValue(interval.Result{Length: 1, Start: 0, PValue: 0.5}))
	require.NoError(t, c.Close())

	testable, err := os.ReadFile(customPath)
	require.NoError(t, err)
	assert.Contains(t, string(testable), "l,tau,P-value")
}

func TestFormatPValueUsesScientificNotation(t *testing.T) {
	assert.Equal(t, "7.936508e-03", formatPValue(0.007936508))
}
