// Package engine implements the two-pass breadth-first enumeration of
// spec §4.4: a first pass over the interval lattice that tightens the
// corrected significance threshold on the fly (Tarone/FWER control), and a
// second pass, run against the threshold frozen by the first, that emits
// testable and significant intervals to a reporting sink.
package engine

import (
	"gohypo-sis/domain/core"
	"gohypo-sis/domain/dataset"
	"gohypo-sis/domain/interval"
	"gohypo-sis/internal/grid"
	"gohypo-sis/internal/kernel"
	"gohypo-sis/ports"
)

// Engine owns the numeric kernels, the threshold grid, and the per-run
// buffers needed to enumerate the interval lattice of a single dataset.
type Engine struct {
	ds        *dataset.Dataset
	combiner  *kernel.Combiner
	threshold *grid.Threshold
	bufs      *buffers
	queue     *ringQueue
	bound     []int // per-stratum hypercorner bound, cached for isprunable
	lMax      int   // 0 means uncapped
}

// Stats summarizes one pass over the lattice, for the driver's run summary.
type Stats struct {
	IntervalsProcessed int64
	MaxLayer           int  // longest interval length reached (1-based)
	LayerCapHit        bool // true if L_max stopped enumeration early
}

// New builds an Engine over ds for a target FWER alpha, with an optional
// cap lMax on interval length (0 disables the cap). It fills in ds's
// hypercorner bounds and psi tables as a side effect.
func New(ds *dataset.Dataset, chisq ports.ChiSquareSurvival, alpha float64, lMax int) (*Engine, error) {
	if alpha <= 0 || alpha >= 1 {
		return nil, core.ErrInvalidAlpha
	}
	if lMax < 0 {
		return nil, core.ErrInvalidLayerCap
	}

	kernel.PrepareStrata(ds)

	nt := make([]int, ds.K)
	N := make([]int, ds.K)
	logPsi := make([][]float64, ds.K)
	bound := make([]int, ds.K)
	for i, s := range ds.Strata {
		nt[i] = s.Positives()
		N[i] = s.N()
		logPsi[i] = s.LogPsi
		bound[i] = s.HypercornerBound
	}

	lf := kernel.NewLogFactorialCache(ds.N)
	combiner := kernel.NewCombiner(lf, chisq, nt, N, logPsi)

	return &Engine{
		ds:        ds,
		combiner:  combiner,
		threshold: grid.NewThreshold(alpha),
		bufs:      newBuffers(ds),
		queue:     newRingQueue(ds.L),
		bound:     bound,
		lMax:      lMax,
	}, nil
}

// isprunable reports whether the interval whose support vector is x and
// whose minimum attainable combined p-value is pmin can never become
// testable against the current threshold, because every stratum's support
// has already crossed its hypercorner bound (spec §4.2, §9).
func (e *Engine) isprunable(x []int, pmin float64) bool {
	if pmin <= e.threshold.Pth() {
		return false
	}
	for k, b := range e.bound {
		if x[k] < b {
			return false
		}
	}
	return true
}

// RunThresholdPass is the first pass: it enumerates every testable
// interval exactly once, feeding each one's minimum attainable p-value to
// the threshold grid so that, at the end, Threshold.DeltaStar reports the
// corrected significance threshold for the second pass.
func (e *Engine) RunThresholdPass() Stats {
	e.bufs.resetPass()
	e.queue.reset()
	return e.run(false, nil)
}

// RunSignificancePass is the second pass: it re-enumerates the same
// lattice against the threshold frozen by RunThresholdPass, emitting every
// testable interval's p-value (if reportTestable) and every interval at or
// below deltaStar to sink.
func (e *Engine) RunSignificancePass(sink ports.ReportingSink, reportTestable bool, deltaStar float64) (Stats, error) {
	e.bufs.resetPass()
	e.queue.reset()
	emitter := &emitFn{sink: sink, reportTestable: reportTestable, deltaStar: deltaStar, combiner: e.combiner, bufs: e.bufs}
	stats := e.run(true, emitter)
	return stats, emitter.err
}

// Threshold exposes the grid built up by RunThresholdPass, for the
// driver to read DeltaStar and the psi-histogram from once pass 1 ends.
func (e *Engine) Threshold() *grid.Threshold { return e.threshold }

type emitFn struct {
	sink           ports.ReportingSink
	reportTestable bool
	deltaStar      float64
	combiner       *kernel.Combiner
	bufs           *buffers
	err            error
}

// evaluate computes the Fisher combined p-value for the interval at tau
// and emits it to the sink per the pass-2 rules of spec §4.4.
func (e *emitFn) evaluate(tau, l int) {
	if e.err != nil {
		return
	}
	x := e.bufs.freqPar[tau]
	a := e.bufs.cellCounts(tau)
	pval := e.combiner.Combined(a, x)
	rec := interval.Result{Length: l + 1, Start: tau, PValue: pval}
	if e.reportTestable {
		if err := e.sink.TestablePValue(rec); err != nil {
			e.err = err
			return
		}
	}
	if pval <= e.deltaStar {
		if err := e.sink.SignificantInterval(rec); err != nil {
			e.err = err
		}
	}
}

// run drives the shared first-layer + queue-drain traversal of spec §4.4.
// In pass 1 (emit == nil) every testable interval's minimum attainable
// p-value feeds the threshold grid. In pass 2 (emit != nil) the frozen
// threshold from pass 1 gates which intervals get their actual Fisher
// combined p-value computed and handed to emit.
func (e *Engine) run(pass2 bool, emit *emitFn) Stats {
	stats := Stats{}
	L := e.ds.L
	lastTau := L - 1
	l := 0

	for tau := 0; tau < L; tau++ {
		stats.IntervalsProcessed++
		e.bufs.countFirstLayer(tau)
		x := e.bufs.freqPar[tau]
		pmin := e.combiner.MinAttainable(x)
		e.bufs.pmhMinPar[tau] = pmin

		if !pass2 {
			if pmin <= e.threshold.Pth() {
				e.threshold.RecordTestable(pmin)
			}
		} else if pmin <= e.threshold.Pth() {
			emit.evaluate(tau, l)
		}

		if tau == 0 {
			continue
		}
		if e.isprunable(e.bufs.freqPar[tau], pmin) || e.isprunable(e.bufs.freqPar[tau-1], e.bufs.pmhMinPar[tau-1]) {
			continue
		}
		e.queue.push(tau - 1)
	}
	stats.MaxLayer = l + 1

	for !e.queue.empty() {
		tau := e.queue.pop()
		if tau < lastTau {
			l++
		}
		if e.lMax > 0 && l+1 > e.lMax {
			stats.LayerCapHit = true
			break
		}
		lastTau = tau

		if !pass2 {
			// The testable region can still shrink between the moment an
			// interval was enqueued and the moment it is popped (its
			// neighbors may since have crossed their hypercorner bound),
			// so pass 1 rechecks prunability before doing any work.
			if e.isprunable(e.bufs.freqPar[tau], e.bufs.pmhMinPar[tau]) || e.isprunable(e.bufs.freqPar[tau+1], e.bufs.pmhMinPar[tau+1]) {
				continue
			}
		}

		stats.IntervalsProcessed++
		e.bufs.extend(tau, l)
		x := e.bufs.freqPar[tau]
		pmin := e.combiner.MinAttainable(x)
		e.bufs.pmhMinPar[tau] = pmin

		if !pass2 {
			if pmin <= e.threshold.Pth() {
				e.threshold.RecordTestable(pmin)
			}
		} else if pmin <= e.threshold.Pth() {
			// pth is frozen in pass 2, so this check can never change the
			// testable region; an enqueued interval is always processed.
			emit.evaluate(tau, l)
		}

		if l+1 > stats.MaxLayer {
			stats.MaxLayer = l + 1
		}
		if tau == 0 {
			continue
		}
		if e.isprunable(e.bufs.freqPar[tau], pmin) || e.isprunable(e.bufs.freqPar[tau-1], e.bufs.pmhMinPar[tau-1]) {
			continue
		}
		e.queue.push(tau - 1)
	}

	return stats
}
