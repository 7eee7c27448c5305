// Package dataset holds the core entities of the sequence/label/strata
// input to the significant interval search engine.
package dataset

import (
	"gohypo-sis/domain/core"
)

// Dataset is the immutable input the engine enumerates over: a row-major
// binary sequence matrix X of shape L x N, a binary label vector Y of
// length N ordered by stratum, and the stratum boundaries that partition
// [0,N) into K contiguous blocks.
type Dataset struct {
	N int // number of observations
	L int // sequence length
	K int // number of strata

	// X is row-major: X[tau*N+j] is position tau of observation j.
	X []byte
	// Y holds the binary outcome for each observation, ordered so that
	// stratum k occupies [CumNt[k], CumNt[k+1]).
	Y []byte

	Strata []Stratum
	// CumNt is the prefix sum of stratum sizes, length K+1, CumNt[0]=0.
	CumNt []int
}

// Stratum carries the per-table quantities derived once at construction
// time and held immutable for the lifetime of a run.
type Stratum struct {
	Nt int // total observations in this stratum
	nt int // positives in this stratum

	// HypercornerBound is max(nt, Nt-nt): once a support count in this
	// stratum reaches this bound, further extension cannot lower psi.
	HypercornerBound int

	// LogPsi[x] is the log of the minimum attainable two-tailed Fisher
	// exact p-value for a row margin of x observations in this stratum,
	// for x in [0, Nt].
	LogPsi []float64
}

// N returns the stratum's total observation count.
func (s Stratum) N() int { return s.Nt }

// Positives returns the stratum's positive-label count.
func (s Stratum) Positives() int { return s.nt }

// Row returns the tau-th row of X as a byte slice view (no copy).
func (d *Dataset) Row(tau int) []byte {
	return d.X[tau*d.N : (tau+1)*d.N]
}

// New validates raw inputs and constructs a Dataset. Stratum-derived
// quantities (hypercorner bounds, psi tables) are filled in later by
// kernel.PrepareStrata, which engine.New calls — New only establishes the
// structural invariants of §3.
func New(x, y []byte, ntPerStratum []int, l int) (*Dataset, error) {
	n := len(y)
	if l < 1 {
		return nil, core.ErrSequenceTooShort
	}
	if len(x) != l*n {
		return nil, core.NewMalformedInputError("dataset matrix", core.ErrInvalidDataset)
	}
	k := len(ntPerStratum)
	if k == 0 {
		return nil, core.ErrInvalidDataset
	}

	cumNt := make([]int, k+1)
	sum := 0
	for i, nt := range ntPerStratum {
		if nt <= 0 {
			return nil, core.ErrEmptyStratum
		}
		sum += nt
		cumNt[i+1] = sum
	}
	if sum != n {
		return nil, core.NewStrataMismatchError(sum, n)
	}

	strata := make([]Stratum, k)
	for i := range strata {
		positives := 0
		for j := cumNt[i]; j < cumNt[i+1]; j++ {
			positives += int(y[j])
		}
		strata[i] = Stratum{Nt: ntPerStratum[i], nt: positives}
	}

	return &Dataset{
		N:      n,
		L:      l,
		K:      k,
		X:      x,
		Y:      y,
		Strata: strata,
		CumNt:  cumNt,
	}, nil
}
