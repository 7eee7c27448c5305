package sink

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"gohypo-sis/domain/interval"
	"gohypo-sis/internal/errors"
)

// XLSX accumulates significant intervals in memory and writes them to a
// single workbook sheet on Close, the same excelize round-trip the
// teacher's reader used for Excel input turned around for output.
type XLSX struct {
	path string
	f    *excelize.File
	row  int
}

// NewXLSX creates a new workbook that will be written to path on Close.
func NewXLSX(path string) *XLSX {
	f := excelize.NewFile()
	sheet := "Significant Intervals"
	f.SetSheetName("Sheet1", sheet)
	f.SetCellValue(sheet, "A1", "l")
	f.SetCellValue(sheet, "B1", "tau")
	f.SetCellValue(sheet, "C1", "P-value")
	return &XLSX{path: path, f: f, row: 1}
}

// TestablePValue is a no-op: the workbook only reports significant intervals.
func (x *XLSX) TestablePValue(rec interval.Result) error { return nil }

// SignificantInterval implements ports.ReportingSink.
func (x *XLSX) SignificantInterval(rec interval.Result) error {
	x.row++
	sheet := "Significant Intervals"
	x.f.SetCellValue(sheet, cell("A", x.row), rec.Length)
	x.f.SetCellValue(sheet, cell("B", x.row), rec.Start)
	x.f.SetCellValue(sheet, cell("C", x.row), rec.PValue)
	return nil
}

// Histogram is a no-op for the workbook sink.
func (x *XLSX) Histogram(buckets []interval.HistogramBucket) error { return nil }

// Close writes the workbook to disk.
func (x *XLSX) Close() error {
	if err := x.f.SaveAs(x.path); err != nil {
		return errors.IOError("writing "+x.path, err)
	}
	return nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
