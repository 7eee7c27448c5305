package testkit

import (
	"math/rand"

	"gohypo-sis/domain/dataset"
)

// RandomConfig parameterizes a synthetic random dataset for the demo
// subcommand and for property-based tests: a background of independent
// Bernoulli(0.5) rows, plus an optional planted interval correlated with
// the label.
type RandomConfig struct {
	N, L int
	NtPerStratum []int
	Seed int64

	// PlantStart/PlantLength, if PlantLength > 0, mark a contiguous run of
	// rows that are set equal to the label vector, guaranteeing at least
	// one strongly testable interval.
	PlantStart, PlantLength int
}

// DefaultRandomConfig mirrors the teacher's fixed-seed-42 convention for
// reproducible fixtures.
func DefaultRandomConfig() RandomConfig {
	return RandomConfig{N: 40, L: 20, NtPerStratum: []int{20, 20}, Seed: 42}
}

// Generator produces reproducible random datasets from a fixed seed, the
// same pattern the teacher's shopping data generator used for fixtures.
type Generator struct {
	rng *rand.Rand
	cfg RandomConfig
}

// NewGenerator builds a Generator seeded per cfg.Seed.
func NewGenerator(cfg RandomConfig) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(cfg.Seed)), cfg: cfg}
}

// Dataset builds the configured random dataset.
func (g *Generator) Dataset() (*dataset.Dataset, error) {
	n := g.cfg.N
	l := g.cfg.L
	y := make([]byte, n)
	for j := range y {
		y[j] = byte(g.rng.Intn(2))
	}
	x := make([]byte, l*n)
	for tau := 0; tau < l; tau++ {
		planted := g.cfg.PlantLength > 0 && tau >= g.cfg.PlantStart && tau < g.cfg.PlantStart+g.cfg.PlantLength
		for j := 0; j < n; j++ {
			if planted {
				x[tau*n+j] = y[j]
			} else {
				x[tau*n+j] = byte(g.rng.Intn(2))
			}
		}
	}
	return dataset.New(x, y, g.cfg.NtPerStratum, l)
}
