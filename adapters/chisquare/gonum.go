// Package chisquare provides the injected chi-squared survival function
// the combined-statistic kernel depends on (see ports.ChiSquareSurvival).
package chisquare

import "gonum.org/v1/gonum/mathext"

// Gonum implements ports.ChiSquareSurvival using gonum's regularized
// upper incomplete gamma function, the same series-plus-continued-fraction
// machinery described in spec §9: for X ~ chi2(df), P(X > t) = Q(df/2, t/2).
type Gonum struct{}

// SF returns the chi-squared survival function P(X > t) for X ~ chi2(df).
func (Gonum) SF(t float64, df float64) float64 {
	if t <= 0 {
		return 1
	}
	return mathext.GammaIncRegComp(df/2, t/2)
}
