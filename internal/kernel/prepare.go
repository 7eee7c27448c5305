package kernel

import "gohypo-sis/domain/dataset"

// PrepareStrata fills in the per-stratum derived quantities (hypercorner
// bound, log-psi table) that domain/dataset.New leaves zero-valued, since
// building them requires the numeric kernels in this package.
func PrepareStrata(ds *dataset.Dataset) {
	for i := range ds.Strata {
		s := &ds.Strata[i]
		s.HypercornerBound = max(s.Positives(), s.N()-s.Positives())
		s.LogPsi = BuildLogPsi(s.Positives(), s.N())
	}
}
