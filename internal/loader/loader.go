// Package loader reads the three plain-text input files of spec §1 (the
// binary sequence matrix, the binary outcome vector, and the per-stratum
// sizes) and assembles a dataset.Dataset.
package loader

import (
	"bufio"
	"context"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"gohypo-sis/domain/core"
	"gohypo-sis/domain/dataset"
	"gohypo-sis/internal/errors"
)

// Paths names the three input files.
type Paths struct {
	DatasetFile    string
	LabelsFile     string
	CovariatesFile string
}

// Load reads all three files concurrently (they are independent) and
// builds the Dataset. The sequence matrix file holds one row per line,
// each line a string of '0'/'1' characters of length N; the labels file
// holds a single line of N '0'/'1' characters; the covariates file holds
// one integer stratum size per line.
func Load(ctx context.Context, p Paths) (*dataset.Dataset, error) {
	var rows []string
	var labelsLine string
	var ntPerStratum []int

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = readLines(p.DatasetFile)
		return err
	})
	g.Go(func() error {
		lines, err := readLines(p.LabelsFile)
		if err != nil {
			return err
		}
		if len(lines) != 1 {
			return errors.ValidationError("labels file must contain exactly one line")
		}
		labelsLine = lines[0]
		return nil
	})
	g.Go(func() error {
		lines, err := readLines(p.CovariatesFile)
		if err != nil {
			return err
		}
		ntPerStratum = make([]int, len(lines))
		for i, line := range lines {
			v, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil {
				return core.NewMalformedInputError("covariates file", err)
			}
			ntPerStratum[i] = v
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	n := len(labelsLine)
	y := make([]byte, n)
	for j, ch := range labelsLine {
		b, err := parseBit(ch)
		if err != nil {
			return nil, core.NewMalformedInputError("labels file", err)
		}
		y[j] = b
	}

	l := len(rows)
	x := make([]byte, l*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, errors.ValidationError("dataset row length does not match label count")
		}
		for j, ch := range row {
			b, err := parseBit(ch)
			if err != nil {
				return nil, core.NewMalformedInputError("dataset file", err)
			}
			x[i*n+j] = b
		}
	}

	return dataset.New(x, y, ntPerStratum, l)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IOError("opening "+path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.IOError("reading "+path, err)
	}
	return lines, nil
}

func parseBit(ch rune) (byte, error) {
	switch ch {
	case '0':
		return 0, nil
	case '1':
		return 1, nil
	default:
		return 0, core.ErrMalformedInput
	}
}
