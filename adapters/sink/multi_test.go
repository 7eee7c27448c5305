package sink

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"gohypo-sis/domain/interval"
	"gohypo-sis/ports"
)

type fakeSink struct {
	failSignificant bool
	significant     []interval.Result
}

func (f *fakeSink) TestablePValue(rec interval.Result) error { return nil }

func (f *fakeSink) SignificantInterval(rec interval.Result) error {
	if f.failSignificant {
		return errors.New("boom")
	}
	f.significant = append(f.significant, rec)
	return nil
}

func (f *fakeSink) Histogram(buckets []interval.HistogramBucket) error { return nil }

func TestMultiFansOutToEverySink(t *testing.T) {
	a, b := &fakeSink{}, &fakeSink{}
	m := Multi{Sinks: []ports.ReportingSink{a, b}}

	rec := interval.Result{Length: 1, Start: 0, PValue: 0.01}
	assert.NoError(t, m.SignificantInterval(rec))
	assert.Equal(t, []interval.Result{rec}, a.significant)
	assert.Equal(t, []interval.Result{rec}, b.significant)
}

func TestMultiReturnsFirstErrorButStillDeliversToAll(t *testing.T) {
	a := &fakeSink{failSignificant: true}
	b := &fakeSink{}
	m := Multi{Sinks: []ports.ReportingSink{a, b}}

	rec := interval.Result{Length: 1, Start: 0, PValue: 0.01}
	err := m.SignificantInterval(rec)
	assert.Error(t, err)
	assert.Equal(t, []interval.Result{rec}, b.significant)
}
