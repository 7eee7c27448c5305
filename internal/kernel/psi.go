package kernel

import "math"

// BuildLogPsi computes, for a stratum with column margin n (positives) out
// of N total observations, the table logPsi[x] = ln(psi(x)) for x in
// [0,N], where psi(x) is the minimum attainable two-tailed Fisher exact
// p-value over all cell counts compatible with row margin x.
//
// logPsi is 0 at the boundaries (x=0 or x=N, where only one table is
// possible and its p-value is 1) and is W-shaped and symmetric about N/2:
// with n normalized to min(n, N-n), it falls to its minimum at x=n, rises
// again on (n, N/2], and mirrors on the right half. It is built by a stable
// recurrence that never evaluates the Fisher p-value directly, walking
// the left arm from x=0, bootstrapping the midpoint from the opposite
// boundary, and mirroring the right half.
func BuildLogPsi(n, N int) []float64 {
	if n > N-n {
		n = N - n
	}

	logPsi := make([]float64, N+1)

	var nOver2 int
	if N%2 != 0 {
		nOver2 = (N - 1) / 2
	} else {
		nOver2 = N / 2
	}

	// Left arm: x in [0,n].
	logPsi[0] = 0
	for x := 1; x <= n; x++ {
		logPsi[x] = math.Log(float64(n-(x-1))/float64(N-(x-1))) + logPsi[x-1]
	}

	// Bootstrap xi1 walking down from x=N to x=N-nOver2 using the mirror
	// recurrence, without storing intermediate values.
	xInit := N - nOver2
	xi1 := 0.0
	for x := N - 1; x >= xInit; x-- {
		xi1 = math.Log(float64((x+1)-n)/float64(x+1)) + xi1
	}

	if N%2 != 0 {
		logPsi[nOver2] = math.Log(float64(xInit-n)/float64(xInit)) + xi1
	} else {
		logPsi[nOver2] = xi1
	}

	// Right arm of the W: x in (n, nOver2).
	for x := nOver2 - 1; x > n; x-- {
		logPsi[x] = math.Log(float64((x+1)-n)/float64(x+1)) + logPsi[x+1]
	}

	// Mirror to complete the right half.
	for x := xInit; x <= N; x++ {
		logPsi[x] = logPsi[N-x]
	}

	// Two-tailed doubling at the symmetric point when N is even.
	if N%2 == 0 {
		if n == N/2 {
			for x := 1; x < N; x++ {
				logPsi[x] += math.Ln2
			}
		} else {
			logPsi[N/2] += math.Ln2
		}
	}

	return logPsi
}
