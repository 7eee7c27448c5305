// Package grid implements the logarithmic threshold grid and bucket
// counter of spec §4.2: the corrected significance threshold is tightened
// by walking down a fixed grid of candidate p-values, and the number of
// testable intervals falling below the current threshold is tracked with
// O(1) amortized decrements via a histogram of bucket counts.
package grid

import "math"

const (
	// NGrid is the number of non-trivial grid steps; pgrid has NGrid+1 entries.
	NGrid = 500
	// Log10MinPVal is the grid floor: the smallest representable threshold is 10^Log10MinPVal.
	Log10MinPVal = -30.0
)

// Threshold owns the logarithmic grid pgrid[0..NGrid], the current index
// into it, and the bucket histogram of testable intervals. It evolves
// monotonically (pth only ever decreases) during pass 1 and is frozen
// thereafter.
type Threshold struct {
	alpha      float64
	pgrid      []float64
	log10Step  float64
	idxTh      int
	freqCnt    []int64
	m          int64
}

// NewThreshold builds the grid pgrid[j] = 10^(-j*step) for j in
// [0,NGrid], step = -Log10MinPVal/NGrid, and starts the tentative
// threshold at pgrid[1] (pgrid[0] = 1 is the trivial, always-testable
// threshold).
func NewThreshold(alpha float64) *Threshold {
	step := -Log10MinPVal / NGrid
	pgrid := make([]float64, NGrid+1)
	log10p := 0.0
	for j := 0; j <= NGrid; j++ {
		pgrid[j] = math.Pow(10, log10p)
		log10p -= step
	}
	return &Threshold{
		alpha:     alpha,
		pgrid:     pgrid,
		log10Step: step,
		idxTh:     1,
		freqCnt:   make([]int64, NGrid+1),
	}
}

// Pth returns the current tentative corrected significance threshold.
func (t *Threshold) Pth() float64 { return t.pgrid[t.idxTh] }

// M returns the current number of testable intervals.
func (t *Threshold) M() int64 { return t.m }

// BucketIndex maps a minimum attainable p-value to its grid bucket,
// clamping to [0,NGrid] to absorb p-values below the grid floor or (due
// to floating point clamping upstream) exactly at 1.
func (t *Threshold) BucketIndex(p float64) int {
	idx := int(math.Floor(-math.Log10(p) / t.log10Step))
	if idx < 0 {
		idx = 0
	}
	if idx > NGrid {
		idx = NGrid
	}
	return idx
}

// RecordTestable registers a newly testable interval with minimum
// attainable p-value psiComb, then tightens the threshold until the FWER
// budget m*pth <= alpha is re-established.
func (t *Threshold) RecordTestable(psiComb float64) {
	t.freqCnt[t.BucketIndex(psiComb)]++
	t.m++
	for float64(t.m)*t.Pth() > t.alpha {
		t.decrease()
	}
}

// decrease drops the intervals in the current bucket out of the testable
// count and advances to the next, smaller grid threshold. Those dropped
// intervals are never revisited: pth is monotone non-increasing.
func (t *Threshold) decrease() {
	t.m -= t.freqCnt[t.idxTh]
	t.idxTh++
}

// DeltaStar returns the corrected significance threshold alpha/m reached
// at the end of pass 1. ok is false when m is zero, per spec §9 OQ3: no
// testable intervals were found, so no correction factor is defined.
func (t *Threshold) DeltaStar() (delta float64, ok bool) {
	if t.m == 0 {
		return 0, false
	}
	return t.alpha / float64(t.m), true
}

// Histogram returns a copy of the bucket counts, indices 0..NGrid.
func (t *Threshold) Histogram() []int64 {
	out := make([]int64, len(t.freqCnt))
	copy(out, t.freqCnt)
	return out
}
