package engine

import "gohypo-sis/domain/dataset"

// buffers holds the per-run, engine-owned arrays of spec §4.3: the OR
// accumulator X_par (reset to the raw dataset at the start of each pass),
// the per-start per-stratum support counts freq_par, and the last
// computed minimum attainable p-value per start, pmhMinPar.
type buffers struct {
	ds *dataset.Dataset

	xPar      []byte  // L*N, OR-accumulated membership, reset each pass
	freqPar   [][]int // L x K support counts
	pmhMinPar []float64
	cellCount []int // K-length scratch for per-stratum cell counts (a_k)
}

func newBuffers(ds *dataset.Dataset) *buffers {
	freqPar := make([][]int, ds.L)
	for i := range freqPar {
		freqPar[i] = make([]int, ds.K)
	}
	return &buffers{
		ds:        ds,
		xPar:      make([]byte, ds.L*ds.N),
		freqPar:   freqPar,
		pmhMinPar: make([]float64, ds.L),
		cellCount: make([]int, ds.K),
	}
}

// resetPass clears freq_par and reinitializes X_par to the raw dataset
// snapshot X_tr, as both passes require (spec §4.4 "find_significant
// intervals" / "compute_corrected_significance_threshold" preambles).
func (b *buffers) resetPass() {
	copy(b.xPar, b.ds.X)
	for i := range b.freqPar {
		for k := range b.freqPar[i] {
			b.freqPar[i][k] = 0
		}
	}
}

func (b *buffers) xParRow(tau int) []byte {
	return b.xPar[tau*b.ds.N : (tau+1)*b.ds.N]
}

// countFirstLayer computes freq_par[tau] directly from the raw dataset
// row, for the length-1 layer where no OR-extension is needed yet.
func (b *buffers) countFirstLayer(tau int) {
	row := b.ds.Row(tau)
	for k := 0; k < b.ds.K; k++ {
		sum := 0
		for j := b.ds.CumNt[k]; j < b.ds.CumNt[k+1]; j++ {
			sum += int(row[j])
		}
		b.freqPar[tau][k] = sum
	}
}

// extend performs the incremental OR of X_tr[tau+l] into X_par[tau],
// incrementing freq_par[tau][k] for every newly-set bit, without
// rescanning bits already set (spec §4.4 "Extension step").
func (b *buffers) extend(tau, l int) {
	newRow := b.ds.Row(tau + l)
	par := b.xParRow(tau)
	for k := 0; k < b.ds.K; k++ {
		count := 0
		for j := b.ds.CumNt[k]; j < b.ds.CumNt[k+1]; j++ {
			if par[j] == 0 && newRow[j] == 1 {
				par[j] = 1
				count++
			}
		}
		b.freqPar[tau][k] += count
	}
}

// cellCounts computes a_k = |{j in stratum k : X_par[tau][j]=1 and Y_j=1}|
// for the interval currently assembled at tau.
func (b *buffers) cellCounts(tau int) []int {
	par := b.xParRow(tau)
	for k := 0; k < b.ds.K; k++ {
		sum := 0
		for j := b.ds.CumNt[k]; j < b.ds.CumNt[k+1]; j++ {
			if par[j] == 1 {
				sum += int(b.ds.Y[j])
			}
		}
		b.cellCount[k] = sum
	}
	return b.cellCount
}
