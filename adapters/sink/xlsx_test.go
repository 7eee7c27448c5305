package sink

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gohypo-sis/domain/interval"
)

func TestXLSXWritesSignificantIntervals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "significant.xlsx")
	x := NewXLSX(path)

	require.NoError(t, x.TestablePValue(interval.Result{Length: 1, Start: 0, PValue: 0.9}))
	require.NoError(t, x.SignificantInterval(interval.Result{Length: 3, Start: 2, PValue: 0.001}))
	require.NoError(t, x.Histogram(nil))
	require.NoError(t, x.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheet := "Significant Intervals"
	header, _ := f.GetCellValue(sheet, "A1")
	assert.Equal(t, "l", header)
	pvalHeader, _ := f.GetCellValue(sheet, "C1")
	assert.Equal(t, "P-value", pvalHeader)
	length, _ := f.GetCellValue(sheet, "A2")
	assert.Equal(t, "3", length)
	tau, _ := f.GetCellValue(sheet, "B2")
	assert.Equal(t, "2", tau)
}
