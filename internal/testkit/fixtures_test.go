package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixturesBuildValidDatasets(t *testing.T) {
	cases := []Case{
		DegenerateSingleStratum(),
		PerfectSeparator(),
		TwoStrataNoSignal(),
		HypercornerPruning(),
	}
	for _, c := range cases {
		ds, err := c.Build()
		require.NoError(t, err, c.Name)
		assert.Positive(t, ds.N, c.Name)
		assert.Positive(t, ds.L, c.Name)
	}
}

func TestGeneratorIsDeterministic(t *testing.T) {
	cfg := DefaultRandomConfig()
	ds1, err := NewGenerator(cfg).Dataset()
	require.NoError(t, err)
	ds2, err := NewGenerator(cfg).Dataset()
	require.NoError(t, err)
	assert.Equal(t, ds1.X, ds2.X)
	assert.Equal(t, ds1.Y, ds2.Y)
}

func TestGeneratorPlantsSignal(t *testing.T) {
	cfg := DefaultRandomConfig()
	cfg.PlantStart = 0
	cfg.PlantLength = 1
	ds, err := NewGenerator(cfg).Dataset()
	require.NoError(t, err)
	assert.Equal(t, ds.Y, ds.Row(0))
}
