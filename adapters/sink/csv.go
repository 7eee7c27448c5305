// Package sink implements the ports.ReportingSink adapters that turn the
// engine's output records into files: CSV, an optional Excel workbook, and
// an optional HTML summary report.
package sink

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"gohypo-sis/domain/interval"
	"gohypo-sis/internal/errors"
)

// CSV writes significant intervals, and optionally testable p-values and
// the psi-histogram, to plain CSV/TSV files under a directory.
type CSV struct {
	significant    *bufio.Writer
	significantF   *os.File
	testable       *bufio.Writer
	testableF      *os.File
	reportTestable bool
}

// NewCSV opens (creating if absent) significant.csv in dir, and the
// testable p-value CSV as well if reportTestable is set, at testablePath
// if given or dir/testable.csv otherwise.
func NewCSV(dir string, reportTestable bool, testablePath string) (*CSV, error) {
	sigF, err := os.Create(dir + "/significant.csv")
	if err != nil {
		return nil, errors.IOError("creating significant.csv", err)
	}
	c := &CSV{significantF: sigF, significant: bufio.NewWriter(sigF), reportTestable: reportTestable}
	fmt.Fprintln(c.significant, "l,tau,P-value")

	if reportTestable {
		if testablePath == "" {
			testablePath = dir + "/testable.csv"
		}
		testF, err := os.Create(testablePath)
		if err != nil {
			sigF.Close()
			return nil, errors.IOError("creating "+testablePath, err)
		}
		c.testableF = testF
		c.testable = bufio.NewWriter(testF)
		fmt.Fprintln(c.testable, "l,tau,P-value")
	}

	return c, nil
}

// TestablePValue implements ports.ReportingSink.
func (c *CSV) TestablePValue(rec interval.Result) error {
	if !c.reportTestable {
		return nil
	}
	_, err := fmt.Fprintf(c.testable, "%d,%d,%s\n", rec.Length, rec.Start, formatPValue(rec.PValue))
	return err
}

// SignificantInterval implements ports.ReportingSink.
func (c *CSV) SignificantInterval(rec interval.Result) error {
	_, err := fmt.Fprintf(c.significant, "%d,%d,%s\n", rec.Length, rec.Start, formatPValue(rec.PValue))
	return err
}

// Histogram writes the psi-histogram as a TSV of bucket index and count.
func (c *CSV) Histogram(buckets []interval.HistogramBucket) error {
	f, err := os.Create(dirOf(c.significantF.Name()) + "/histogram.tsv")
	if err != nil {
		return errors.IOError("creating histogram.tsv", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	defer w.Flush()
	fmt.Fprintln(w, "bucket\tcount")
	for _, b := range buckets {
		fmt.Fprintf(w, "%d\t%d\n", b.Index, b.Count)
	}
	return nil
}

// Close flushes and closes all open files.
func (c *CSV) Close() error {
	c.significant.Flush()
	err := c.significantF.Close()
	if c.testableF != nil {
		c.testable.Flush()
		if cerr := c.testableF.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func formatPValue(p float64) string {
	return strconv.FormatFloat(p, 'e', 6, 64)
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
