package ports

import "gohypo-sis/domain/interval"

// ReportingSink receives the engine's output records. Implementations must
// be append-only and must preserve emission order: layer-major, tau
// ascending within a layer (the order intervals are popped from the
// enumeration queue; see DESIGN.md on the queue-order resolution).
type ReportingSink interface {
	// TestablePValue records a testable interval's combined p-value,
	// emitted only during pass 2 and only when the sink opted in.
	TestablePValue(rec interval.Result) error

	// SignificantInterval records an interval whose p-value is at or
	// below the corrected significance threshold delta-star.
	SignificantInterval(rec interval.Result) error

	// Histogram records the full psi-histogram (bucket index -> testable
	// interval count) once, after pass 2, from the counts pass 1 recorded.
	Histogram(buckets []interval.HistogramBucket) error
}
