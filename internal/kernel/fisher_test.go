package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFisherExactKnownValue(t *testing.T) {
	// Spec scenario S2: N=10, row margin x=5, column margin n=5, a=5
	// (perfect separation) gives a two-tailed p-value of 2/252 = 7.936508e-03.
	lf := NewLogFactorialCache(10)
	p := FisherExact(lf, 5, 5, 5, 10)
	assert.InDelta(t, 7.936508e-03, p, 1e-8)
}

func TestFisherExactDegenerateMarginIsCertain(t *testing.T) {
	// A zero row margin leaves only one possible cell count: p-value is 1.
	lf := NewLogFactorialCache(10)
	p := FisherExact(lf, 0, 0, 5, 10)
	assert.Equal(t, 1.0, p)
}

func TestFisherExactSymmetric(t *testing.T) {
	// Swapping the roles of row and column margins must not change the
	// p-value: Fisher's exact test is symmetric in its two margins.
	lf := NewLogFactorialCache(20)
	p1 := FisherExact(lf, 3, 8, 10, 20)
	p2 := FisherExact(lf, 3, 10, 8, 20)
	assert.InDelta(t, p1, p2, 1e-9)
}

func TestFisherExactBounded(t *testing.T) {
	lf := NewLogFactorialCache(20)
	for a := 0; a <= 8; a++ {
		p := FisherExact(lf, a, 8, 10, 20)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}
