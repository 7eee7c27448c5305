package kernel

import (
	"math"

	"gohypo-sis/ports"
)

// Combiner evaluates Fisher's method for combining per-stratum p-values
// into a single chi-squared statistic with 2K degrees of freedom, and the
// minimum attainable version of the same statistic from psi tables alone.
type Combiner struct {
	lf      *LogFactorialCache
	chisq   ports.ChiSquareSurvival
	logPsi  [][]float64 // per-stratum logPsi tables, logPsi[k][x]
	nt, N   []int       // per-stratum margins
	k       int
}

// NewCombiner builds a combiner over K strata given their margins and
// precomputed logPsi tables (see BuildLogPsi).
func NewCombiner(lf *LogFactorialCache, chisq ports.ChiSquareSurvival, nt, N []int, logPsi [][]float64) *Combiner {
	return &Combiner{lf: lf, chisq: chisq, logPsi: logPsi, nt: nt, N: N, k: len(nt)}
}

// MinAttainable returns the minimum attainable combined p-value for a
// support vector x (one row margin per stratum): Chi2SF(-2*sum(logPsi_k[x_k]), 2K).
func (c *Combiner) MinAttainable(x []int) float64 {
	t := 0.0
	for i := 0; i < c.k; i++ {
		t += c.logPsi[i][x[i]]
	}
	return clampProbability(c.chisq.SF(-2*t, float64(2*c.k)))
}

// Combined returns the Fisher combined p-value for observed cell counts a
// against support vector x: Chi2SF(-2*sum(ln FisherExact_k(a_k,x_k)), 2K).
func (c *Combiner) Combined(a, x []int) float64 {
	t := 0.0
	for i := 0; i < c.k; i++ {
		t += math.Log(FisherExact(c.lf, a[i], x[i], c.nt[i], c.N[i]))
	}
	return clampProbability(c.chisq.SF(-2*t, float64(2*c.k)))
}

func clampProbability(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
