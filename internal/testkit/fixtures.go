// Package testkit provides synthetic dataset fixtures for exercising the
// enumeration engine without depending on real genomic input files. It
// mirrors the teacher's pattern of a small generator package consumed by
// both unit tests and a CLI demo subcommand.
package testkit

import (
	"fmt"

	"gohypo-sis/domain/dataset"
)

// Row describes one position of the sequence matrix as a literal bit
// string, e.g. "11001100", read left to right as observation 0..N-1.
type Row string

// Case bundles a fixture's matrix, labels and stratum sizes so callers can
// build a dataset.Dataset with dataset.New directly.
type Case struct {
	Name   string
	Rows   []Row
	Labels string // bit string, length N
	NtPerStratum []int
}

// Build converts a Case into byte slices and constructs the Dataset.
func (c Case) Build() (*dataset.Dataset, error) {
	n := len(c.Labels)
	l := len(c.Rows)
	y := make([]byte, n)
	for j, ch := range c.Labels {
		y[j] = bit(ch)
	}
	x := make([]byte, l*n)
	for i, row := range c.Rows {
		if len(row) != n {
			return nil, fmt.Errorf("testkit: row %d has length %d, want %d", i, len(row), n)
		}
		for j, ch := range row {
			x[i*n+j] = bit(ch)
		}
	}
	return dataset.New(x, y, c.NtPerStratum, l)
}

func bit(ch rune) byte {
	if ch == '1' {
		return 1
	}
	return 0
}

// DegenerateSingleStratum is spec scenario S1: no signal, every length-1
// interval has zero support and is untestable.
func DegenerateSingleStratum() Case {
	return Case{
		Name:         "S1-degenerate-no-signal",
		Rows:         []Row{"0000000000"},
		Labels:       "0000011111",
		NtPerStratum: []int{10},
	}
}

// PerfectSeparator is spec scenario S2: a single row that equals the
// label vector exactly, the strongest possible length-1 signal.
func PerfectSeparator() Case {
	return Case{
		Name:         "S2-perfect-separator",
		Rows:         []Row{"0000011111"},
		Labels:       "0000011111",
		NtPerStratum: []int{10},
	}
}

// TwoStrataNoSignal is spec scenario S3: two strata of four, where the
// row is the complement of the labels within each stratum; the strata are
// too small for that to reach significance (per-stratum Fisher p = 1/3).
func TwoStrataNoSignal() Case {
	return Case{
		Name:         "S3-two-strata-no-signal",
		Rows:         []Row{"11001100"},
		Labels:       "00110011",
		NtPerStratum: []int{4, 4},
	}
}

// HypercornerPruning is spec scenario S4: a length-2 extension whose
// support already saturates the stratum's hypercorner bound.
func HypercornerPruning() Case {
	return Case{
		Name:         "S4-hypercorner-pruning",
		Rows:         []Row{"111111", "000000", "000000"},
		Labels:       "000111",
		NtPerStratum: []int{6},
	}
}
