// Package interval holds the records the enumeration engine emits to its
// reporting sink.
package interval

// Result is a single testable or significant interval, identified by its
// 1-based length l and 0-based start tau.
type Result struct {
	Length int
	Start  int
	PValue float64
}

// HistogramBucket is one row of the psi-histogram: the count of testable
// intervals whose minimum attainable combined p-value fell in bucket
// (10^-((Index+1)*step), 10^-(Index*step)].
type HistogramBucket struct {
	Index int
	Count int64
}
