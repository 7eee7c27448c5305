package sink

import (
	"gohypo-sis/domain/interval"
	"gohypo-sis/ports"
)

// Multi fans out every record to a list of ports.ReportingSink, returning
// the first error encountered while still delivering to every sink it can.
type Multi struct {
	Sinks []ports.ReportingSink
}

func (m Multi) TestablePValue(rec interval.Result) error {
	var first error
	for _, s := range m.Sinks {
		if err := s.TestablePValue(rec); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m Multi) SignificantInterval(rec interval.Result) error {
	var first error
	for _, s := range m.Sinks {
		if err := s.SignificantInterval(rec); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m Multi) Histogram(buckets []interval.HistogramBucket) error {
	var first error
	for _, s := range m.Sinks {
		if err := s.Histogram(buckets); err != nil && first == nil {
			first = err
		}
	}
	return first
}
