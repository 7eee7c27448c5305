package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gohypo-sis/adapters/chisquare"
)

func TestCombinerMinAttainableBoundedByCombined(t *testing.T) {
	// The minimum attainable p-value is, by construction, a lower bound on
	// the actual combined p-value for any cell count compatible with the
	// support vector (spec §4.1).
	lf := NewLogFactorialCache(20)
	nt := []int{10}
	N := []int{20}
	logPsi := [][]float64{BuildLogPsi(10, 20)}
	c := NewCombiner(lf, chisquare.Gonum{}, nt, N, logPsi)

	x := []int{8}
	a := []int{4}
	minAttainable := c.MinAttainable(x)
	combined := c.Combined(a, x)
	assert.LessOrEqual(t, minAttainable, combined+1e-9)
}

func TestCombinerNoSignalIsNotSignificant(t *testing.T) {
	// Spec scenario S3: two strata of four, each with support 2 and no
	// positive inside the support (a=0). With so few observations each
	// stratum's Fisher p-value is only 1/3 and the combined p-value about
	// 0.355, far from significant at alpha=0.05.
	lf := NewLogFactorialCache(8)
	nt := []int{2, 2}
	N := []int{4, 4}
	logPsi := [][]float64{BuildLogPsi(2, 4), BuildLogPsi(2, 4)}
	c := NewCombiner(lf, chisquare.Gonum{}, nt, N, logPsi)

	x := []int{2, 2}
	a := []int{0, 0}
	p := c.Combined(a, x)
	assert.Greater(t, p, 0.05)
}

func TestClampProbability(t *testing.T) {
	assert.Equal(t, 0.0, clampProbability(-0.5))
	assert.Equal(t, 1.0, clampProbability(1.5))
	assert.Equal(t, 0.3, clampProbability(0.3))
}
