package kernel

import "math"

// FisherExact evaluates the two-tailed p-value of a 2x2 table with cell
// count a, row margin x, column margin n and total N, using the
// log-factorial cache for every hypergeometric PMF evaluation.
//
// The two-tailed p-value sums the hypergeometric PMF over every cell
// count whose probability is less than or equal to that of a. Rather
// than evaluating every term and sorting, the accumulator walks inward
// from both ends of the support simultaneously, always accepting the
// smaller of the two boundary probabilities, and stops the moment the
// accepted boundary equals a.
func FisherExact(lf *LogFactorialCache, a, x, n, N int) float64 {
	aMin := 0
	if n+x-N > 0 {
		aMin = n + x - N
	}
	aMax := n
	if x < n {
		aMax = x
	}

	preComp := lf.At(n) + lf.At(N-n) - lf.At(N) + lf.At(x) + lf.At(N-x)

	pmf := func(k int) float64 {
		return math.Exp(preComp - (lf.At(k) + lf.At(n-k) + lf.At(x-k) + lf.At((N-n)-(x-k))))
	}

	pval := 0.0
	for aMin < aMax {
		pLeft := pmf(aMin)
		pRight := pmf(aMax)
		switch {
		case pLeft == pRight:
			pval += pLeft + pRight
			if a == aMin || a == aMax {
				return pval
			}
			aMin++
			aMax--
		case pLeft < pRight:
			pval += pLeft
			if a == aMin {
				return pval
			}
			aMin++
		default:
			pval += pRight
			if a == aMax {
				return pval
			}
			aMax--
		}
	}
	// aMin met aMax without terminating: a is the mode, p-value is 1.
	return 1
}
